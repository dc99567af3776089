// internal/ingest/csv.go
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andresuchdata/replenish-go/internal/domain"
)

// Column layouts for the three input files. Extra columns are
// tolerated; the named ones must be present.
var (
	catalogColumns  = []string{"id", "sku", "name", "category", "unit_cost", "currency", "lead_time_days", "minimum_stock", "maximum_stock", "reorder_point"}
	movementColumns = []string{"id", "item_id", "location_id", "kind", "quantity", "timestamp"}
	snapshotColumns = []string{"item_id", "location_id", "on_hand", "available", "as_of"}
)

// LoadCatalog reads item profiles from a CSV file.
func LoadCatalog(path string) ([]domain.ItemProfile, error) {
	var items []domain.ItemProfile
	err := readRows(path, catalogColumns, func(row map[string]string, line int) error {
		id, err := uuid.Parse(row["id"])
		if err != nil {
			return fmt.Errorf("line %d: invalid item id %q: %w", line, row["id"], err)
		}
		unitCost, err := decimal.NewFromString(row["unit_cost"])
		if err != nil {
			return fmt.Errorf("line %d: invalid unit cost %q: %w", line, row["unit_cost"], err)
		}
		leadTime, err := strconv.Atoi(row["lead_time_days"])
		if err != nil {
			return fmt.Errorf("line %d: invalid lead time %q: %w", line, row["lead_time_days"], err)
		}
		minStock, err := strconv.Atoi(row["minimum_stock"])
		if err != nil {
			return fmt.Errorf("line %d: invalid minimum stock %q: %w", line, row["minimum_stock"], err)
		}
		maxStock, err := strconv.Atoi(row["maximum_stock"])
		if err != nil {
			return fmt.Errorf("line %d: invalid maximum stock %q: %w", line, row["maximum_stock"], err)
		}
		reorderPoint, err := strconv.Atoi(row["reorder_point"])
		if err != nil {
			return fmt.Errorf("line %d: invalid reorder point %q: %w", line, row["reorder_point"], err)
		}

		items = append(items, domain.ItemProfile{
			ID:           id,
			SKU:          row["sku"],
			Name:         row["name"],
			Category:     row["category"],
			UnitCost:     domain.NewMoney(unitCost, row["currency"]),
			LeadTimeDays: leadTime,
			MinimumStock: minStock,
			MaximumStock: maxStock,
			ReorderPoint: reorderPoint,
		})
		return nil
	})
	return items, err
}

// LoadMovements reads stock-movement records from a CSV file.
// Timestamps are RFC 3339.
func LoadMovements(path string) ([]domain.MovementRecord, error) {
	var movements []domain.MovementRecord
	err := readRows(path, movementColumns, func(row map[string]string, line int) error {
		id, err := uuid.Parse(row["id"])
		if err != nil {
			return fmt.Errorf("line %d: invalid movement id %q: %w", line, row["id"], err)
		}
		itemID, err := uuid.Parse(row["item_id"])
		if err != nil {
			return fmt.Errorf("line %d: invalid item id %q: %w", line, row["item_id"], err)
		}
		locationID, err := uuid.Parse(row["location_id"])
		if err != nil {
			return fmt.Errorf("line %d: invalid location id %q: %w", line, row["location_id"], err)
		}
		quantity, err := strconv.Atoi(row["quantity"])
		if err != nil {
			return fmt.Errorf("line %d: invalid quantity %q: %w", line, row["quantity"], err)
		}
		timestamp, err := time.Parse(time.RFC3339, row["timestamp"])
		if err != nil {
			return fmt.Errorf("line %d: invalid timestamp %q: %w", line, row["timestamp"], err)
		}

		movements = append(movements, domain.MovementRecord{
			ID:         id,
			ItemID:     itemID,
			LocationID: locationID,
			Kind:       domain.MovementKind(row["kind"]),
			Quantity:   quantity,
			Timestamp:  timestamp,
		})
		return nil
	})
	return movements, err
}

// LoadSnapshots reads live stock snapshots from a CSV file.
func LoadSnapshots(path string) ([]domain.StockSnapshot, error) {
	var snapshots []domain.StockSnapshot
	err := readRows(path, snapshotColumns, func(row map[string]string, line int) error {
		itemID, err := uuid.Parse(row["item_id"])
		if err != nil {
			return fmt.Errorf("line %d: invalid item id %q: %w", line, row["item_id"], err)
		}
		locationID, err := uuid.Parse(row["location_id"])
		if err != nil {
			return fmt.Errorf("line %d: invalid location id %q: %w", line, row["location_id"], err)
		}
		onHand, err := strconv.Atoi(row["on_hand"])
		if err != nil {
			return fmt.Errorf("line %d: invalid on-hand quantity %q: %w", line, row["on_hand"], err)
		}
		available, err := strconv.Atoi(row["available"])
		if err != nil {
			return fmt.Errorf("line %d: invalid available quantity %q: %w", line, row["available"], err)
		}
		asOf, err := time.Parse(time.RFC3339, row["as_of"])
		if err != nil {
			return fmt.Errorf("line %d: invalid as-of timestamp %q: %w", line, row["as_of"], err)
		}

		snapshots = append(snapshots, domain.StockSnapshot{
			ItemID:     itemID,
			LocationID: locationID,
			OnHand:     onHand,
			Available:  available,
			AsOf:       asOf,
		})
		return nil
	})
	return snapshots, err
}

// readRows opens a CSV file, maps header columns to indices, and calls
// fn once per data row with a column-name view of the row.
func readRows(path string, required []string, fn func(row map[string]string, line int) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header of %s: %w", path, err)
	}

	colMap := make(map[string]int, len(header))
	for i, col := range header {
		colMap[col] = i
	}
	for _, col := range required {
		if _, ok := colMap[col]; !ok {
			return fmt.Errorf("%s: missing required column %q", path, col)
		}
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s line %d: %w", path, line, err)
		}

		row := make(map[string]string, len(required))
		for _, col := range required {
			idx := colMap[col]
			if idx < len(record) {
				row[col] = record[idx]
			}
		}
		if err := fn(row, line); err != nil {
			return err
		}
	}
}
