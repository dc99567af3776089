// internal/series/aggregator.go
package series

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/andresuchdata/replenish-go/internal/domain"
)

// WeekKey identifies one calendar-week demand bucket.
type WeekKey struct {
	Year int
	Week int
}

// WeekOf returns the bucket key for a timestamp. Weeks are counted
// from the start of the year: (dayOfYear-1)/7 + 1.
func WeekOf(t time.Time) WeekKey {
	return WeekKey{Year: t.Year(), Week: (t.YearDay()-1)/7 + 1}
}

// Less orders keys chronologically.
func (k WeekKey) Less(other WeekKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Week < other.Week
}

// WeeklyDemand buckets an item's shipment quantities into calendar
// weeks and returns the demand series in chronological order. Items
// with no shipments yield an empty series.
func WeeklyDemand(movements []domain.MovementRecord, itemID uuid.UUID) []int {
	buckets := make(map[WeekKey]int)
	for _, m := range movements {
		if m.ItemID != itemID || m.Kind != domain.MovementShipment {
			continue
		}
		buckets[WeekOf(m.Timestamp)] += abs(m.Quantity)
	}

	keys := make([]WeekKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	demands := make([]int, len(keys))
	for i, k := range keys {
		demands[i] = buckets[k]
	}
	return demands
}

// OnHand returns the item's total on-hand stock. Live snapshots take
// precedence; without any, the level is reconstructed by replaying the
// movement log in timestamp order.
func OnHand(snapshots []domain.StockSnapshot, movements []domain.MovementRecord, itemID uuid.UUID) int {
	total := 0
	found := false
	for _, s := range snapshots {
		if s.ItemID == itemID {
			total += s.OnHand
			found = true
		}
	}
	if found {
		return total
	}
	return replayNetQuantity(movements, itemID)
}

// replayNetQuantity reconstructs on-hand stock from the movement
// history: receipts and returns add, shipments subtract, adjustments
// apply signed. Stock never goes below zero.
func replayNetQuantity(movements []domain.MovementRecord, itemID uuid.UUID) int {
	history := make([]domain.MovementRecord, 0)
	for _, m := range movements {
		if m.ItemID == itemID {
			history = append(history, m)
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp.Before(history[j].Timestamp)
	})

	total := 0
	for _, m := range history {
		switch m.Kind {
		case domain.MovementReceipt, domain.MovementReturn:
			total += abs(m.Quantity)
		case domain.MovementShipment:
			total -= abs(m.Quantity)
			if total < 0 {
				total = 0
			}
		case domain.MovementAdjustment:
			total += m.Quantity
			if total < 0 {
				total = 0
			}
		}
	}
	return total
}

// AnnualizedDemand scales an item's total shipped quantity over the
// observed movement span to a 365-day figure.
func AnnualizedDemand(movements []domain.MovementRecord, itemID uuid.UUID) int {
	var (
		totalShipped int
		first, last  time.Time
		seen         bool
	)
	for _, m := range movements {
		if m.ItemID != itemID {
			continue
		}
		if !seen || m.Timestamp.Before(first) {
			first = m.Timestamp
		}
		if !seen || m.Timestamp.After(last) {
			last = m.Timestamp
		}
		seen = true
		if m.Kind == domain.MovementShipment {
			totalShipped += abs(m.Quantity)
		}
	}
	if !seen {
		return 0
	}

	daysObserved := int(last.Sub(first).Hours() / 24)
	if daysObserved < 1 {
		daysObserved = 1
	}
	return int(float64(totalShipped) * 365.0 / float64(daysObserved))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
