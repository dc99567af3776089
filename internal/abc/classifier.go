// internal/abc/classifier.go
package abc

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andresuchdata/replenish-go/internal/domain"
	"github.com/andresuchdata/replenish-go/internal/series"
)

// Cumulative value-share thresholds: items are A while the running
// share is within 80% of total value, B within 95%, C for the rest.
var (
	thresholdA = decimal.NewFromFloat(0.80)
	thresholdB = decimal.NewFromFloat(0.95)
)

// Per-class stocking policy attached to each summary.
var (
	serviceLevels = map[domain.ValueClass]float64{
		domain.ClassA: 0.98,
		domain.ClassB: 0.95,
		domain.ClassC: 0.90,
	}
	reviewDays = map[domain.ValueClass]int{
		domain.ClassA: 7,
		domain.ClassB: 14,
		domain.ClassC: 30,
	}
)

// Result is a full-catalog Pareto classification.
type Result struct {
	Classes    map[uuid.UUID]domain.ValueClass
	Summaries  map[domain.ValueClass]domain.CategorySummary
	TotalValue domain.Money
}

type itemValue struct {
	id          uuid.UUID
	annualValue decimal.Decimal
}

// Classify ranks every catalog item by trailing annualized value (unit
// cost × annualized shipped quantity) and assigns A/B/C classes by
// cumulative value share. When the catalog has no shipped value at
// all, every item falls to class C.
func Classify(items []domain.ItemProfile, movements []domain.MovementRecord) (*Result, error) {
	currency := ""
	values := make([]itemValue, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))

	for _, item := range items {
		if item.ID == uuid.Nil {
			return nil, domain.Validationf("catalog item %q has a nil id", item.SKU)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, domain.Validationf("catalog item id %s appears more than once", item.ID)
		}
		seen[item.ID] = struct{}{}
		if currency == "" {
			currency = item.UnitCost.Currency
		}

		annualDemand := series.AnnualizedDemand(movements, item.ID)
		values = append(values, itemValue{
			id:          item.ID,
			annualValue: item.UnitCost.Amount.Mul(decimal.NewFromInt(int64(annualDemand))),
		})
	}

	sort.SliceStable(values, func(i, j int) bool {
		cmp := values[i].annualValue.Cmp(values[j].annualValue)
		if cmp != 0 {
			return cmp > 0
		}
		return values[i].id.String() < values[j].id.String()
	})

	totalValue := decimal.Zero
	for _, v := range values {
		totalValue = totalValue.Add(v.annualValue)
	}

	result := &Result{
		Classes:    make(map[uuid.UUID]domain.ValueClass, len(values)),
		Summaries:  make(map[domain.ValueClass]domain.CategorySummary, 3),
		TotalValue: domain.NewMoney(totalValue, currency),
	}

	classValue := map[domain.ValueClass]decimal.Decimal{
		domain.ClassA: decimal.Zero,
		domain.ClassB: decimal.Zero,
		domain.ClassC: decimal.Zero,
	}
	classCount := map[domain.ValueClass]int{}

	cumulative := decimal.Zero
	for _, v := range values {
		cumulative = cumulative.Add(v.annualValue)

		class := domain.ClassC
		if totalValue.IsPositive() {
			share := cumulative.Div(totalValue)
			switch {
			case share.Cmp(thresholdA) <= 0:
				class = domain.ClassA
			case share.Cmp(thresholdB) <= 0:
				class = domain.ClassB
			}
		}

		result.Classes[v.id] = class
		classValue[class] = classValue[class].Add(v.annualValue)
		classCount[class]++
	}

	for _, class := range []domain.ValueClass{domain.ClassA, domain.ClassB, domain.ClassC} {
		pctItems := 0.0
		if len(values) > 0 {
			pctItems = float64(classCount[class]) / float64(len(values)) * 100.0
		}
		pctValue := 0.0
		if totalValue.IsPositive() {
			pctValue, _ = classValue[class].Div(totalValue).Mul(decimal.NewFromInt(100)).Float64()
		}
		result.Summaries[class] = domain.CategorySummary{
			Class:                   class,
			ItemCount:               classCount[class],
			PercentageOfItems:       pctItems,
			ValueContribution:       domain.NewMoney(classValue[class], currency),
			PercentageOfValue:       pctValue,
			RecommendedServiceLevel: serviceLevels[class],
			ReviewFrequencyDays:     reviewDays[class],
		}
	}

	return result, nil
}
