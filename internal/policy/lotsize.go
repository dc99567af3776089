// internal/policy/lotsize.go
package policy

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/andresuchdata/replenish-go/internal/domain"
)

// DefaultHoldingRate is the annual holding cost as a fraction of unit
// cost when the caller does not configure one.
const DefaultHoldingRate = 0.25

// EconomicOrderQuantity computes EOQ = sqrt(2·D·S / H), where D is
// annual demand, S the ordering cost, and H the annual holding cost
// per unit (unit cost × holding rate). Zero demand yields 0; positive
// demand yields at least 1.
func EconomicOrderQuantity(annualDemand int, orderingCost decimal.Decimal, unitCost domain.Money, holdingRate float64) (int, error) {
	if annualDemand < 0 {
		return 0, domain.Validationf("annual demand must be non-negative, got %d", annualDemand)
	}
	if annualDemand == 0 {
		return 0, nil
	}
	if holdingRate <= 0 {
		holdingRate = DefaultHoldingRate
	}

	holdingCost := unitCost.Amount.Mul(decimal.NewFromFloat(holdingRate))
	if holdingCost.IsZero() || holdingCost.IsNegative() {
		return 0, domain.Arithmeticf("holding cost resolves to %s, EOQ undefined", holdingCost)
	}

	numerator := decimal.NewFromInt(2).
		Mul(decimal.NewFromInt(int64(annualDemand))).
		Mul(orderingCost)
	eoqSquared := numerator.Div(holdingCost).InexactFloat64()

	eoq := int(math.Round(math.Sqrt(eoqSquared)))
	if eoq < 1 {
		eoq = 1
	}
	return eoq, nil
}
