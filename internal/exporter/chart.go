package exporter

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"salescli/internal/analytics"
	apperrors "salescli/internal/errors"
)

// TrendChartHTML is the chart artifact filename.
const TrendChartHTML = "monthly_sales_trend.html"

// WriteTrendChart renders the monthly sales line chart to an HTML artifact
// and returns its path. Rendering is file-based and never blocks on a
// viewer.
func (w *Writer) WriteTrendChart(ctx context.Context, report *analytics.Report) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Monthly Sales Trend"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Month"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Sales"}),
	)

	months := make([]string, 0, len(report.Monthly))
	points := make([]opts.LineData, 0, len(report.Monthly))
	for _, point := range report.Monthly {
		months = append(months, strconv.Itoa(point.Month))
		points = append(points, opts.LineData{Value: point.Total})
	}

	line.SetXAxis(months).AddSeries("Sales", points)

	fullPath := filepath.Join(w.outDir, TrendChartHTML)
	file, err := os.Create(fullPath)
	if err != nil {
		return "", apperrors.NewStorageError("failed to create chart file", err).
			WithContext("path", fullPath)
	}
	defer file.Close()

	if err := line.Render(file); err != nil {
		return "", apperrors.NewStorageError("failed to render trend chart", err).
			WithContext("path", fullPath)
	}

	w.logger.InfoContext(ctx, "trend chart written",
		slog.String("path", fullPath),
		slog.Int("points", len(report.Monthly)))

	return fullPath, nil
}
