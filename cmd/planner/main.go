package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/replenish-go/internal/config"
	"github.com/andresuchdata/replenish-go/internal/domain"
	"github.com/andresuchdata/replenish-go/internal/forecast"
	"github.com/andresuchdata/replenish-go/internal/ingest"
	"github.com/andresuchdata/replenish-go/internal/planner"
	"github.com/andresuchdata/replenish-go/internal/service"
	"github.com/andresuchdata/replenish-go/pkg/logger"
)

func newCatalogFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "catalog",
		Usage:    "Path to the item catalog CSV file",
		Required: true,
		EnvVars:  []string{"CATALOG_FILE"},
	}
}

func newMovementsFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "movements",
		Usage:    "Path to the stock movement log CSV file",
		Required: true,
		EnvVars:  []string{"MOVEMENTS_FILE"},
	}
}

func newSnapshotsFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "snapshots",
		Usage:   "Path to the stock snapshot CSV file (optional)",
		EnvVars: []string{"SNAPSHOTS_FILE"},
	}
}

func main() {
	cfg := config.Load()
	logger.SetLevel(cfg.App.LogLevel)

	app := &cli.App{
		Name:  "planner",
		Usage: "Demand forecasting and replenishment planning",
		Commands: []*cli.Command{
			{
				Name:  "plan",
				Usage: "Generate ranked reorder recommendations",
				Flags: []cli.Flag{
					newCatalogFlag(),
					newMovementsFlag(),
					newSnapshotsFlag(),
					&cli.IntFlag{
						Name:    "horizon",
						Usage:   "Forecast horizon in days",
						Value:   cfg.Plan.HorizonDays,
						EnvVars: []string{"PLAN_HORIZON_DAYS"},
					},
					&cli.Float64Flag{
						Name:    "service-level",
						Usage:   "Target service level for safety stock",
						Value:   cfg.Plan.ServiceLevel,
						EnvVars: []string{"PLAN_SERVICE_LEVEL"},
					},
				},
				Action: runPlan,
			},
			{
				Name:   "classify",
				Usage:  "Rank catalog items into ABC value classes",
				Flags:  []cli.Flag{newCatalogFlag(), newMovementsFlag()},
				Action: runClassify,
			},
			{
				Name:  "report",
				Usage: "Generate a combined replenishment and value report",
				Flags: []cli.Flag{
					newCatalogFlag(),
					newMovementsFlag(),
					newSnapshotsFlag(),
				},
				Action: runReport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("planner failed")
	}
}

func plannerConfig(c *cli.Context) planner.Config {
	cfg := config.Load()

	pc := planner.DefaultConfig()
	pc.HorizonDays = cfg.Plan.HorizonDays
	pc.ServiceLevel = cfg.Plan.ServiceLevel
	pc.LeadTimeVariability = cfg.Plan.LeadTimeVariability
	pc.OrderingCost = decimal.NewFromFloat(cfg.Plan.OrderingCost)
	pc.HoldingRate = cfg.Plan.HoldingRate
	pc.Method = forecast.Exponential(cfg.Plan.SmoothingAlpha, cfg.Plan.SmoothingBeta)
	pc.WorkerCount = cfg.Plan.WorkerCount

	if c.IsSet("horizon") {
		pc.HorizonDays = c.Int("horizon")
	}
	if c.IsSet("service-level") {
		pc.ServiceLevel = c.Float64("service-level")
	}
	return pc
}

func loadInput(c *cli.Context) (planner.Input, error) {
	items, err := ingest.LoadCatalog(c.String("catalog"))
	if err != nil {
		return planner.Input{}, fmt.Errorf("failed to load catalog: %w", err)
	}

	movements, err := ingest.LoadMovements(c.String("movements"))
	if err != nil {
		return planner.Input{}, fmt.Errorf("failed to load movements: %w", err)
	}

	var snapshots []domain.StockSnapshot
	if path := c.String("snapshots"); path != "" {
		snapshots, err = ingest.LoadSnapshots(path)
		if err != nil {
			return planner.Input{}, fmt.Errorf("failed to load snapshots: %w", err)
		}
	}

	return planner.Input{Items: items, Movements: movements, Snapshots: snapshots}, nil
}

func runPlan(c *cli.Context) error {
	in, err := loadInput(c)
	if err != nil {
		return err
	}

	svc := service.NewPlanningService(plannerConfig(c))
	result, err := svc.PlanReplenishment(c.Context, in)
	if err != nil {
		return err
	}

	printRecommendations(in.Items, result)
	return nil
}

func runClassify(c *cli.Context) error {
	items, err := ingest.LoadCatalog(c.String("catalog"))
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	movements, err := ingest.LoadMovements(c.String("movements"))
	if err != nil {
		return fmt.Errorf("failed to load movements: %w", err)
	}

	svc := service.NewPlanningService(plannerConfig(c))
	result, err := svc.ClassifyValue(items, movements)
	if err != nil {
		return err
	}

	printClassification(result.Summaries, result.TotalValue)
	return nil
}

func runReport(c *cli.Context) error {
	in, err := loadInput(c)
	if err != nil {
		return err
	}

	svc := service.NewPlanningService(plannerConfig(c))
	report, err := svc.GenerateReport(c.Context, in)
	if err != nil {
		return err
	}

	fmt.Printf("Replenishment report generated at %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	printRecommendations(in.Items, report.Plan)
	fmt.Println()
	printClassification(report.Classification.Summaries, report.Classification.TotalValue)
	return nil
}

func printRecommendations(items []domain.ItemProfile, result *planner.Result) {
	skuByID := make(map[string]string, len(items))
	for _, item := range items {
		skuByID[item.ID.String()] = item.SKU
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SKU\tSTOCK\tREORDER AT\tORDER QTY\tSAFETY\tPREDICTED\tURGENCY")
	for _, rec := range result.Recommendations {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%.2f\n",
			skuByID[rec.ItemID.String()],
			rec.CurrentStock,
			rec.ReorderPoint,
			rec.RecommendedQuantity,
			rec.SafetyStock,
			rec.Forecast.PredictedDemand,
			rec.Urgency,
		)
	}
	w.Flush()

	for _, failure := range result.Failures {
		fmt.Printf("skipped %s: %v\n", skuByID[failure.ItemID.String()], failure.Err)
	}
	fmt.Printf("%d recommendation(s), %d failure(s)\n", len(result.Recommendations), len(result.Failures))
}

func printClassification(summaries map[domain.ValueClass]domain.CategorySummary, total domain.Money) {
	classes := make([]domain.ValueClass, 0, len(summaries))
	for class := range summaries {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CLASS\tITEMS\t% ITEMS\tVALUE\t% VALUE\tSERVICE LEVEL\tREVIEW EVERY")
	for _, class := range classes {
		s := summaries[class]
		fmt.Fprintf(w, "%s\t%d\t%.1f%%\t%s %s\t%.1f%%\t%.2f\t%dd\n",
			s.Class,
			s.ItemCount,
			s.PercentageOfItems,
			s.ValueContribution.Amount.StringFixed(2),
			s.ValueContribution.Currency,
			s.PercentageOfValue,
			s.RecommendedServiceLevel,
			s.ReviewFrequencyDays,
		)
	}
	w.Flush()
	fmt.Printf("total annual value: %s %s\n", total.Amount.StringFixed(2), total.Currency)
}
