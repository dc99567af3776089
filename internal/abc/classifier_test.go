package abc_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/replenish-go/internal/abc"
	"github.com/andresuchdata/replenish-go/internal/domain"
)

func catalogItem(unitCost int64) domain.ItemProfile {
	id := uuid.New()
	return domain.ItemProfile{
		ID:           id,
		SKU:          "SKU-" + id.String()[:8],
		UnitCost:     domain.NewMoney(decimal.NewFromInt(unitCost), "USD"),
		LeadTimeDays: 7,
		MaximumStock: 100,
	}
}

// yearOfShipments spreads the total quantity across exactly 365 days
// so the annualized figure equals the raw total.
func yearOfShipments(itemID uuid.UUID, total int) []domain.MovementRecord {
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	half := total / 2
	return []domain.MovementRecord{
		{ID: uuid.New(), ItemID: itemID, Kind: domain.MovementShipment, Quantity: -half, Timestamp: first},
		{ID: uuid.New(), ItemID: itemID, Kind: domain.MovementShipment, Quantity: -(total - half), Timestamp: first.Add(365 * 24 * time.Hour)},
	}
}

func TestClassify_ParetoPartition(t *testing.T) {
	// Annual values 800 / 150 / 50 out of 1000: cumulative shares
	// land exactly on the 80% and 95% boundaries.
	big := catalogItem(1)
	mid := catalogItem(1)
	small := catalogItem(1)

	var movements []domain.MovementRecord
	movements = append(movements, yearOfShipments(big.ID, 800)...)
	movements = append(movements, yearOfShipments(mid.ID, 150)...)
	movements = append(movements, yearOfShipments(small.ID, 50)...)

	result, err := abc.Classify([]domain.ItemProfile{small, big, mid}, movements)
	require.NoError(t, err)

	assert.Equal(t, domain.ClassA, result.Classes[big.ID])
	assert.Equal(t, domain.ClassB, result.Classes[mid.ID])
	assert.Equal(t, domain.ClassC, result.Classes[small.ID])

	assert.True(t, result.TotalValue.Amount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "USD", result.TotalValue.Currency)
}

func TestClassify_SummariesAccountForWholeCatalog(t *testing.T) {
	big := catalogItem(1)
	mid := catalogItem(1)
	small := catalogItem(1)

	var movements []domain.MovementRecord
	movements = append(movements, yearOfShipments(big.ID, 800)...)
	movements = append(movements, yearOfShipments(mid.ID, 150)...)
	movements = append(movements, yearOfShipments(small.ID, 50)...)

	result, err := abc.Classify([]domain.ItemProfile{big, mid, small}, movements)
	require.NoError(t, err)
	require.Len(t, result.Summaries, 3)

	totalItems := 0
	pctItems := 0.0
	pctValue := 0.0
	for _, s := range result.Summaries {
		totalItems += s.ItemCount
		pctItems += s.PercentageOfItems
		pctValue += s.PercentageOfValue
	}
	assert.Equal(t, 3, totalItems)
	assert.InDelta(t, 100.0, pctItems, 1e-6)
	assert.InDelta(t, 100.0, pctValue, 1e-6)

	a := result.Summaries[domain.ClassA]
	assert.Equal(t, 1, a.ItemCount)
	assert.InDelta(t, 80.0, a.PercentageOfValue, 1e-6)
	assert.Equal(t, 0.98, a.RecommendedServiceLevel)
	assert.Equal(t, 7, a.ReviewFrequencyDays)

	c := result.Summaries[domain.ClassC]
	assert.Equal(t, 0.90, c.RecommendedServiceLevel)
	assert.Equal(t, 30, c.ReviewFrequencyDays)
}

func TestClassify_NoShippedValueFallsToClassC(t *testing.T) {
	items := []domain.ItemProfile{catalogItem(10), catalogItem(20), catalogItem(30)}

	result, err := abc.Classify(items, nil)
	require.NoError(t, err)

	for _, item := range items {
		assert.Equal(t, domain.ClassC, result.Classes[item.ID])
	}
	assert.True(t, result.TotalValue.Amount.IsZero())
	assert.Equal(t, 3, result.Summaries[domain.ClassC].ItemCount)
}

func TestClassify_CurrencyFromFirstLabeledItem(t *testing.T) {
	unlabeled := catalogItem(1)
	unlabeled.UnitCost.Currency = ""
	labeled := catalogItem(1)

	var movements []domain.MovementRecord
	movements = append(movements, yearOfShipments(unlabeled.ID, 100)...)
	movements = append(movements, yearOfShipments(labeled.ID, 100)...)

	result, err := abc.Classify([]domain.ItemProfile{unlabeled, labeled}, movements)
	require.NoError(t, err)

	assert.Equal(t, "USD", result.TotalValue.Currency)
	assert.Equal(t, "USD", result.Summaries[domain.ClassA].ValueContribution.Currency)
}

func TestClassify_EmptyCatalog(t *testing.T) {
	result, err := abc.Classify(nil, nil)
	require.NoError(t, err)

	assert.Empty(t, result.Classes)
	require.Len(t, result.Summaries, 3)
	assert.Equal(t, 0, result.Summaries[domain.ClassA].ItemCount)
}

func TestClassify_RejectsMalformedCatalog(t *testing.T) {
	item := catalogItem(10)
	nilID := catalogItem(10)
	nilID.ID = uuid.Nil

	_, err := abc.Classify([]domain.ItemProfile{item, item}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = abc.Classify([]domain.ItemProfile{nilID}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
