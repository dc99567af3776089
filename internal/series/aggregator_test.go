package series_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/andresuchdata/replenish-go/internal/domain"
	"github.com/andresuchdata/replenish-go/internal/series"
)

func shipment(itemID uuid.UUID, qty int, ts time.Time) domain.MovementRecord {
	return domain.MovementRecord{
		ID:        uuid.New(),
		ItemID:    itemID,
		Kind:      domain.MovementShipment,
		Quantity:  qty,
		Timestamp: ts,
	}
}

func receipt(itemID uuid.UUID, qty int, ts time.Time) domain.MovementRecord {
	return domain.MovementRecord{
		ID:        uuid.New(),
		ItemID:    itemID,
		Kind:      domain.MovementReceipt,
		Quantity:  qty,
		Timestamp: ts,
	}
}

func TestWeekOf_BucketsFromStartOfYear(t *testing.T) {
	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jan7 := time.Date(2024, 1, 7, 23, 59, 0, 0, time.UTC)
	jan8 := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, series.WeekKey{Year: 2024, Week: 1}, series.WeekOf(jan1))
	assert.Equal(t, series.WeekKey{Year: 2024, Week: 1}, series.WeekOf(jan7))
	assert.Equal(t, series.WeekKey{Year: 2024, Week: 2}, series.WeekOf(jan8))
}

func TestWeeklyDemand_SumsShipmentsPerWeek(t *testing.T) {
	itemID := uuid.New()
	other := uuid.New()

	movements := []domain.MovementRecord{
		shipment(itemID, -5, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)),
		shipment(itemID, -3, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)),
		shipment(itemID, 4, time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)),
		// Receipts and other items never count as demand.
		receipt(itemID, 50, time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)),
		shipment(other, -99, time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC)),
	}

	assert.Equal(t, []int{8, 4}, series.WeeklyDemand(movements, itemID))
}

func TestWeeklyDemand_OrdersAcrossYearBoundary(t *testing.T) {
	itemID := uuid.New()

	// Listed out of order on purpose.
	movements := []domain.MovementRecord{
		shipment(itemID, -7, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
		shipment(itemID, -3, time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC)),
	}

	assert.Equal(t, []int{3, 7}, series.WeeklyDemand(movements, itemID))
}

func TestWeeklyDemand_EmptyWithoutShipments(t *testing.T) {
	itemID := uuid.New()
	movements := []domain.MovementRecord{
		receipt(itemID, 10, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
	}

	assert.Empty(t, series.WeeklyDemand(movements, itemID))
	assert.Empty(t, series.WeeklyDemand(nil, itemID))
}

func TestOnHand_SnapshotsTakePrecedence(t *testing.T) {
	itemID := uuid.New()

	snapshots := []domain.StockSnapshot{
		{ItemID: itemID, LocationID: uuid.New(), OnHand: 12},
		{ItemID: itemID, LocationID: uuid.New(), OnHand: 8},
		{ItemID: uuid.New(), LocationID: uuid.New(), OnHand: 100},
	}
	// Movements would say something else entirely.
	movements := []domain.MovementRecord{
		receipt(itemID, 500, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	assert.Equal(t, 20, series.OnHand(snapshots, movements, itemID))
}

func TestOnHand_ReplaysMovementLogWithoutSnapshots(t *testing.T) {
	itemID := uuid.New()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	movements := []domain.MovementRecord{
		// Out of order: the replay must sort by timestamp first,
		// otherwise the early shipment would clamp to zero.
		shipment(itemID, -15, base.Add(24*time.Hour)),
		receipt(itemID, 40, base),
		{ID: uuid.New(), ItemID: itemID, Kind: domain.MovementAdjustment, Quantity: -5, Timestamp: base.Add(48 * time.Hour)},
		{ID: uuid.New(), ItemID: itemID, Kind: domain.MovementReturn, Quantity: 2, Timestamp: base.Add(72 * time.Hour)},
	}

	// 40 - 15 - 5 + 2
	assert.Equal(t, 22, series.OnHand(nil, movements, itemID))
}

func TestOnHand_ReplayNeverGoesNegative(t *testing.T) {
	itemID := uuid.New()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	movements := []domain.MovementRecord{
		receipt(itemID, 10, base),
		shipment(itemID, -25, base.Add(time.Hour)),
		receipt(itemID, 5, base.Add(2*time.Hour)),
	}

	assert.Equal(t, 5, series.OnHand(nil, movements, itemID))
}

func TestAnnualizedDemand_ScalesToFullYear(t *testing.T) {
	itemID := uuid.New()
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	movements := []domain.MovementRecord{
		shipment(itemID, -60, first),
		shipment(itemID, -40, first.Add(73*24*time.Hour)),
	}

	// 100 shipped over 73 days -> 500 per year.
	assert.Equal(t, 500, series.AnnualizedDemand(movements, itemID))
}

func TestAnnualizedDemand_SingleDayClampsToOneDay(t *testing.T) {
	itemID := uuid.New()
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	movements := []domain.MovementRecord{shipment(itemID, -10, ts)}

	assert.Equal(t, 3650, series.AnnualizedDemand(movements, itemID))
}

func TestAnnualizedDemand_ZeroWithoutMovements(t *testing.T) {
	assert.Equal(t, 0, series.AnnualizedDemand(nil, uuid.New()))
}
