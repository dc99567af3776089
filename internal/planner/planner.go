// internal/planner/planner.go
package planner

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andresuchdata/replenish-go/internal/domain"
	"github.com/andresuchdata/replenish-go/internal/forecast"
	"github.com/andresuchdata/replenish-go/internal/policy"
	"github.com/andresuchdata/replenish-go/internal/series"
)

// Config holds the planning parameters applied to every item.
type Config struct {
	HorizonDays         int
	ServiceLevel        float64
	LeadTimeVariability float64
	OrderingCost        decimal.Decimal
	HoldingRate         float64
	Method              forecast.Method
	WorkerCount         int
}

// DefaultConfig returns the standard planning parameters: a 90-day
// horizon at 95% service level with exponential smoothing.
func DefaultConfig() Config {
	return Config{
		HorizonDays:         90,
		ServiceLevel:        0.95,
		LeadTimeVariability: 0.2,
		OrderingCost:        decimal.NewFromInt(50),
		HoldingRate:         policy.DefaultHoldingRate,
		Method:              forecast.Exponential(0.3, 0),
		WorkerCount:         4,
	}
}

// Input is one read-only snapshot of the catalog and movement history.
// The planner never mutates it; the caller owns synchronization if the
// snapshot can change concurrently.
type Input struct {
	Items     []domain.ItemProfile
	Movements []domain.MovementRecord
	Snapshots []domain.StockSnapshot
}

// Result carries the ranked recommendations plus the per-item failures
// that were excluded from the ranking.
type Result struct {
	Recommendations []domain.Recommendation
	Failures        []domain.ItemFailure
}

// Planner derives ranked reorder recommendations from a catalog and
// movement snapshot. All state is per-call; a Planner is safe for
// concurrent use.
type Planner struct {
	cfg Config
}

// New creates a planner. Zero-value config fields fall back to
// DefaultConfig.
func New(cfg Config) *Planner {
	def := DefaultConfig()
	if cfg.HorizonDays < 1 {
		cfg.HorizonDays = def.HorizonDays
	}
	if cfg.ServiceLevel == 0 {
		cfg.ServiceLevel = def.ServiceLevel
	}
	if cfg.LeadTimeVariability == 0 {
		cfg.LeadTimeVariability = def.LeadTimeVariability
	}
	if cfg.OrderingCost.IsZero() {
		cfg.OrderingCost = def.OrderingCost
	}
	// A zero Method reads as a moving average with window 0, which no
	// caller can mean; treat it as unset.
	if cfg.Method.Kind == forecast.KindMovingAverage && cfg.Method.Window < 1 {
		cfg.Method = def.Method
	}
	if cfg.HoldingRate <= 0 {
		cfg.HoldingRate = def.HoldingRate
	}
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = def.WorkerCount
	}
	return &Planner{cfg: cfg}
}

// Plan evaluates every catalog item and returns recommendations for
// those at or below their reorder point, ranked by urgency. A single
// item's failure is recorded and skipped; a malformed catalog aborts
// the batch. Cancellation is honored between items: on a cancelled
// context the recommendations computed so far are returned alongside
// ctx.Err().
func (p *Planner) Plan(ctx context.Context, in Input) (*Result, error) {
	if err := validateCatalog(in.Items); err != nil {
		return nil, err
	}

	// Each worker writes only to its own index, so no lock guards the
	// result arenas.
	recs := make([]*domain.Recommendation, len(in.Items))
	fails := make([]*domain.ItemFailure, len(in.Items))

	jobs := make(chan int, len(in.Items))
	var wg sync.WaitGroup

	for w := 0; w < p.cfg.WorkerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				rec, err := p.planItem(in, in.Items[idx])
				if err != nil {
					fails[idx] = &domain.ItemFailure{ItemID: in.Items[idx].ID, Err: err}
					continue
				}
				recs[idx] = rec
			}
		}()
	}

	var cancelled error
dispatch:
	for i := range in.Items {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	result := &Result{}
	for i := range in.Items {
		if recs[i] != nil {
			result.Recommendations = append(result.Recommendations, *recs[i])
		}
		if fails[i] != nil {
			result.Failures = append(result.Failures, *fails[i])
		}
	}

	sort.SliceStable(result.Recommendations, func(i, j int) bool {
		a, b := result.Recommendations[i], result.Recommendations[j]
		if a.Urgency != b.Urgency {
			return a.Urgency > b.Urgency
		}
		return a.ItemID.String() < b.ItemID.String()
	})

	return result, cancelled
}

// planItem computes one item's recommendation, or nil when the item is
// above its reorder point.
func (p *Planner) planItem(in Input, item domain.ItemProfile) (*domain.Recommendation, error) {
	currentStock := series.OnHand(in.Snapshots, in.Movements, item.ID)
	if !item.NeedsReorder(currentStock) {
		return nil, nil
	}

	weekly := series.WeeklyDemand(in.Movements, item.ID)

	fc, err := forecast.Project(item.ID, weekly, p.cfg.HorizonDays, p.cfg.Method)
	if err != nil {
		return nil, err
	}

	safetyStock, err := policy.SafetyStock(
		policy.StdDev(weekly),
		float64(item.LeadTimeDays),
		p.cfg.LeadTimeVariability,
		p.cfg.ServiceLevel,
	)
	if err != nil {
		return nil, err
	}

	orderQty, err := policy.EconomicOrderQuantity(
		fc.AnnualDemand, p.cfg.OrderingCost, item.UnitCost, p.cfg.HoldingRate)
	if err != nil {
		return nil, err
	}

	return &domain.Recommendation{
		ItemID:              item.ID,
		CurrentStock:        currentStock,
		ReorderPoint:        item.ReorderPoint,
		RecommendedQuantity: orderQty,
		SafetyStock:         safetyStock,
		Forecast:            fc,
		Urgency:             Urgency(currentStock, item.ReorderPoint, item.MinimumStock),
	}, nil
}

// validateCatalog rejects structurally broken catalogs before any
// per-item work starts.
func validateCatalog(items []domain.ItemProfile) error {
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if item.ID == uuid.Nil {
			return domain.Validationf("catalog item %q has a nil id", item.SKU)
		}
		if _, dup := seen[item.ID]; dup {
			return domain.Validationf("catalog item id %s appears more than once", item.ID)
		}
		seen[item.ID] = struct{}{}
		if item.MinimumStock > item.MaximumStock {
			return domain.Validationf("item %s: minimum stock %d exceeds maximum %d",
				item.ID, item.MinimumStock, item.MaximumStock)
		}
		if item.LeadTimeDays < 0 {
			return domain.Validationf("item %s: negative lead time %d", item.ID, item.LeadTimeDays)
		}
	}
	return nil
}
