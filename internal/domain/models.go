// internal/domain/models.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Money is an amount in a single currency. Amounts are carried as
// decimals so value rankings do not accumulate float drift.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// NewMoney builds a Money value.
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// MovementKind categorizes a stock movement.
type MovementKind string

const (
	MovementReceipt    MovementKind = "receipt"
	MovementShipment   MovementKind = "shipment"
	MovementAdjustment MovementKind = "adjustment"
	MovementReturn     MovementKind = "return"
	MovementTransfer   MovementKind = "transfer"
)

// MovementRecord is a single entry in the stock-movement log. Quantity
// is signed: positive for inbound, negative for outbound. Records are
// owned by the external transaction log; the engine only reads them.
type MovementRecord struct {
	ID         uuid.UUID    `json:"id"`
	ItemID     uuid.UUID    `json:"item_id"`
	LocationID uuid.UUID    `json:"location_id"`
	Kind       MovementKind `json:"kind"`
	Quantity   int          `json:"quantity"`
	Timestamp  time.Time    `json:"timestamp"`
}

// ItemProfile describes a tracked catalog item. Supplied by the
// external catalog and read-only to the engine.
type ItemProfile struct {
	ID           uuid.UUID `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	UnitCost     Money     `json:"unit_cost"`
	LeadTimeDays int       `json:"lead_time_days"`
	MinimumStock int       `json:"minimum_stock"`
	MaximumStock int       `json:"maximum_stock"`
	ReorderPoint int       `json:"reorder_point"`
}

// NeedsReorder reports whether the item should be replenished at the
// given stock level.
func (p ItemProfile) NeedsReorder(currentStock int) bool {
	return currentStock <= p.ReorderPoint
}

// StockSnapshot is a live on-hand figure for an item at one location.
// Snapshots are optional planner input; when absent, on-hand levels
// are reconstructed from the movement log.
type StockSnapshot struct {
	ItemID     uuid.UUID `json:"item_id"`
	LocationID uuid.UUID `json:"location_id"`
	OnHand     int       `json:"on_hand"`
	Available  int       `json:"available"`
	AsOf       time.Time `json:"as_of"`
}

// Forecast is a demand projection for one item over a horizon.
type Forecast struct {
	ItemID          uuid.UUID `json:"item_id"`
	HorizonDays     int       `json:"horizon_days"`
	PredictedDemand int       `json:"predicted_demand"`
	AnnualDemand    int       `json:"annual_demand"`
	Confidence      float64   `json:"confidence"`
	TrendFactor     float64   `json:"trend_factor"`
}

// Recommendation is a ranked reorder suggestion for one item.
type Recommendation struct {
	ItemID              uuid.UUID `json:"item_id"`
	CurrentStock        int       `json:"current_stock"`
	ReorderPoint        int       `json:"reorder_point"`
	RecommendedQuantity int       `json:"recommended_quantity"`
	SafetyStock         int       `json:"safety_stock"`
	Forecast            Forecast  `json:"forecast"`
	Urgency             float64   `json:"urgency"`
}

// ItemFailure records a per-item planning error. A failing item is
// excluded from the ranked list without aborting the batch.
type ItemFailure struct {
	ItemID uuid.UUID `json:"item_id"`
	Err    error     `json:"-"`
}

// ValueClass is the Pareto classification bucket for an item.
type ValueClass string

const (
	ClassA ValueClass = "A"
	ClassB ValueClass = "B"
	ClassC ValueClass = "C"
)

// CategorySummary aggregates one value class across the catalog.
type CategorySummary struct {
	Class                   ValueClass `json:"class"`
	ItemCount               int        `json:"item_count"`
	PercentageOfItems       float64    `json:"percentage_of_items"`
	ValueContribution       Money      `json:"value_contribution"`
	PercentageOfValue       float64    `json:"percentage_of_value"`
	RecommendedServiceLevel float64    `json:"recommended_service_level"`
	ReviewFrequencyDays     int        `json:"review_frequency_days"`
}
