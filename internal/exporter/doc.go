// Package exporter renders the computed sales aggregates into the run's
// output artifacts.
//
// This package contains four output surfaces:
//
// Text report: the human-readable console summary with the grand total,
// monthly series, rankings, drop statistics and a record preview.
//
// Aggregate CSVs: one CSV file per aggregate, written with a UTF-8 BOM for
// Excel compatibility.
//
// Summary workbook: a single Excel file with one sheet per aggregate.
//
// Trend chart: the "Monthly Sales Trend" line chart rendered to an HTML
// artifact; rendering never blocks on a viewer.
//
// Example usage:
//
//	writer := exporter.NewWriter(logger, "reports")
//
//	err := writer.WriteAggregateCSVs(ctx, report)
//	path, err := writer.WriteTrendChart(ctx, report)
package exporter
