package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"salescli/internal/analytics"
	"salescli/internal/archive"
	"salescli/internal/config"
	"salescli/internal/dataset"
	"salescli/internal/exporter"
	"salescli/internal/files"
	"salescli/internal/infrastructure"
	"salescli/internal/pipeline"
	"salescli/pkg/contracts"
)

func main() {
	if err := run(); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	dataDir := flag.String("data", "", "input directory holding archives and dataset files (defaults to config paths.data_dir)")
	outDir := flag.String("out", "", "output directory for report artifacts (defaults to config paths.reports_dir)")
	configFile := flag.String("config", "", "YAML config file path (defaults to config.yaml / configs/config.yaml if present)")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.VersionString())
		return nil
	}

	cfg, err := config.LoadFrom(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if *dataDir != "" {
		cfg.Paths.DataDir = *dataDir
	}
	if *outDir != "" {
		cfg.Paths.ReportsDir = *outDir
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	if _, err := infrastructure.InitializeLogger(cfg.Logging); err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithRunID(context.Background(), uuid.NewString())
	logger := infrastructure.LoggerFromContext(ctx)

	logger.InfoContext(ctx, "starting sales analytics run",
		slog.String("data_dir", cfg.Paths.DataDir),
		slog.String("reports_dir", cfg.Paths.ReportsDir))

	// Stage 1: expand archives in place
	expander := archive.NewExpander(logger)
	expanded, err := expander.ExpandAll(ctx, cfg.Paths.DataDir)
	if err != nil {
		return fmt.Errorf("expand archives: %w", err)
	}
	for _, name := range expanded {
		fmt.Printf("Extracted: %s\n", name)
	}

	// Stage 2: locate the four dataset files
	discovery := files.NewDiscovery(cfg.Paths.DataDir)
	paths, err := discovery.LocateDatasets(".")
	if err != nil {
		return fmt.Errorf("locate datasets: %w", err)
	}
	logger.InfoContext(ctx, "datasets located",
		slog.String("orders", paths.Orders),
		slog.String("order_items", paths.OrderItems),
		slog.String("products", paths.Products),
		slog.String("customers", paths.Customers))

	// Stage 3: load datasets
	loader := dataset.NewLoader(logger)

	orders, err := loader.LoadOrders(ctx, paths.Orders)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	items, err := loader.LoadOrderItems(ctx, paths.OrderItems)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	products, err := loader.LoadProducts(ctx, paths.Products)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	customers, err := loader.LoadCustomers(ctx, paths.Customers)
	if err != nil {
		return fmt.Errorf("load customers: %w", err)
	}

	fmt.Printf("Dataset shapes: orders=%d items=%d products=%d customers=%d\n",
		len(orders), len(items), len(products), len(customers))

	// Stage 4: merge
	merged, mergeStats := pipeline.Merge(orders, items, products, customers)
	logger.InfoContext(ctx, "datasets merged", slog.Any("stats", mergeStats))
	fmt.Printf("Merged dataset: %d rows\n", len(merged))

	// Stage 5: clean
	cleaned, cleanStats := pipeline.Clean(merged, pipeline.DeliveredStatus)
	logger.InfoContext(ctx, "records cleaned", slog.Any("stats", cleanStats))

	// Stage 6: metrics
	analyzer := analytics.NewAnalyzer(logger, analytics.DefaultConfig())
	report, err := analyzer.Analyze(ctx, cleaned)
	if err != nil {
		return fmt.Errorf("compute aggregates: %w", err)
	}

	// Stage 7: report artifacts
	writer := exporter.NewWriter(logger, cfg.Paths.ReportsDir)
	if err := writer.WriteTextReport(os.Stdout, report, mergeStats, cleanStats, cleaned); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}
	if err := writer.WriteAggregateCSVs(ctx, report); err != nil {
		return fmt.Errorf("write aggregate CSVs: %w", err)
	}
	if err := writer.WriteWorkbook(ctx, report); err != nil {
		return fmt.Errorf("write summary workbook: %w", err)
	}
	logger.InfoContext(ctx, "report artifacts written",
		slog.String("monthly_csv", cfg.GetReportPath(exporter.MonthlySalesCSV)),
		slog.String("categories_csv", cfg.GetReportPath(exporter.TopCategoriesCSV)),
		slog.String("states_csv", cfg.GetReportPath(exporter.TopStatesCSV)),
		slog.String("workbook", cfg.GetReportPath(exporter.SummaryWorkbook)))
	chartPath, err := writer.WriteTrendChart(ctx, report)
	if err != nil {
		return fmt.Errorf("write trend chart: %w", err)
	}
	fmt.Printf("Chart written to %s\n", chartPath)

	logger.InfoContext(ctx, "run complete",
		slog.Float64("grand_total", report.GrandTotal),
		slog.Int("records", report.RecordCount))

	return nil
}
