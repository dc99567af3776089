// internal/policy/turnover.go
package policy

import (
	"github.com/shopspring/decimal"

	"github.com/andresuchdata/replenish-go/internal/domain"
)

// InventoryTurnover is cost of goods sold divided by average inventory
// value over the same period. A zero average inventory value leaves
// the ratio undefined.
func InventoryTurnover(costOfGoodsSold, averageInventoryValue decimal.Decimal) (float64, error) {
	if averageInventoryValue.IsZero() {
		return 0, domain.Arithmeticf("average inventory value is zero, turnover undefined")
	}
	return costOfGoodsSold.Div(averageInventoryValue).InexactFloat64(), nil
}

// DaysInventoryOutstanding is the average number of days stock sits
// before being sold: average inventory value over daily cost of goods
// sold.
func DaysInventoryOutstanding(averageInventoryValue, costOfGoodsSold decimal.Decimal, daysInPeriod int) (float64, error) {
	if daysInPeriod < 1 {
		return 0, domain.Validationf("days in period must be >= 1, got %d", daysInPeriod)
	}
	if costOfGoodsSold.IsZero() {
		return 0, domain.Arithmeticf("cost of goods sold is zero, DIO undefined")
	}

	dailyCOGS := costOfGoodsSold.Div(decimal.NewFromInt(int64(daysInPeriod)))
	return averageInventoryValue.Div(dailyCOGS).InexactFloat64(), nil
}
