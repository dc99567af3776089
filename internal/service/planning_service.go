// internal/service/planning_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/andresuchdata/replenish-go/internal/abc"
	"github.com/andresuchdata/replenish-go/internal/domain"
	"github.com/andresuchdata/replenish-go/internal/forecast"
	"github.com/andresuchdata/replenish-go/internal/planner"
)

// PlanningService is the call surface the external system uses:
// forecast one item, plan replenishment across the catalog, classify
// the catalog by value, or produce a combined report.
type PlanningService struct {
	planner *planner.Planner
	cfg     planner.Config
}

func NewPlanningService(cfg planner.Config) *PlanningService {
	return &PlanningService{planner: planner.New(cfg), cfg: cfg}
}

// Forecast projects demand for one item's weekly series over the
// given horizon using the service's configured method.
func (s *PlanningService) Forecast(itemID uuid.UUID, weeklyDemand []int, horizonDays int) (domain.Forecast, error) {
	return forecast.Project(itemID, weeklyDemand, horizonDays, s.cfg.Method)
}

// PlanReplenishment runs the batch planner over one snapshot.
func (s *PlanningService) PlanReplenishment(ctx context.Context, in planner.Input) (*planner.Result, error) {
	started := time.Now()
	result, err := s.planner.Plan(ctx, in)
	if err != nil && result == nil {
		return nil, err
	}

	log.Info().
		Int("items", len(in.Items)).
		Int("recommendations", len(result.Recommendations)).
		Int("failures", len(result.Failures)).
		Dur("elapsed", time.Since(started)).
		Msg("replenishment plan computed")

	for _, f := range result.Failures {
		log.Warn().Str("item_id", f.ItemID.String()).Err(f.Err).Msg("item skipped during planning")
	}

	return result, err
}

// ClassifyValue runs ABC analysis over one snapshot.
func (s *PlanningService) ClassifyValue(items []domain.ItemProfile, movements []domain.MovementRecord) (*abc.Result, error) {
	return abc.Classify(items, movements)
}

// Report bundles one snapshot's plan and classification.
type Report struct {
	Plan           *planner.Result
	Classification *abc.Result
	GeneratedAt    time.Time
}

// GenerateReport computes the replenishment plan and the value
// classification of one snapshot concurrently. The two computations
// are independent reads of the same immutable input.
func (s *PlanningService) GenerateReport(ctx context.Context, in planner.Input) (*Report, error) {
	report := &Report{GeneratedAt: time.Now().UTC()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := s.PlanReplenishment(ctx, in)
		if err != nil {
			return err
		}
		report.Plan = result
		return nil
	})
	g.Go(func() error {
		result, err := s.ClassifyValue(in.Items, in.Movements)
		if err != nil {
			return err
		}
		report.Classification = result
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}
