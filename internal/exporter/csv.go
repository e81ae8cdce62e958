package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"salescli/internal/analytics"
	apperrors "salescli/internal/errors"
)

// Artifact filenames inside the reports directory.
const (
	MonthlySalesCSV  = "monthly_sales.csv"
	TopCategoriesCSV = "top_categories.csv"
	TopStatesCSV     = "top_states.csv"
)

// Writer renders report artifacts into an output directory.
type Writer struct {
	logger *slog.Logger
	outDir string
}

// NewWriter creates a new artifact writer rooted at outDir
func NewWriter(logger *slog.Logger, outDir string) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger, outDir: outDir}
}

// WriteAggregateCSVs writes one CSV file per aggregate into the output
// directory.
func (w *Writer) WriteAggregateCSVs(ctx context.Context, report *analytics.Report) error {
	monthly := make([][]string, 0, len(report.Monthly))
	for _, point := range report.Monthly {
		monthly = append(monthly, []string{
			strconv.Itoa(point.Month),
			formatAmount(point.Total),
		})
	}
	if err := w.writeCSV(MonthlySalesCSV, []string{"Month", "Sales"}, monthly); err != nil {
		return err
	}

	if err := w.writeCSV(TopCategoriesCSV, []string{"Category", "Sales"}, groupRows(report.TopCategories)); err != nil {
		return err
	}

	if err := w.writeCSV(TopStatesCSV, []string{"State", "Sales"}, groupRows(report.TopStates)); err != nil {
		return err
	}

	w.logger.InfoContext(ctx, "aggregate CSVs written",
		slog.String("dir", w.outDir),
		slog.Int("monthly_rows", len(report.Monthly)),
		slog.Int("category_rows", len(report.TopCategories)),
		slog.Int("state_rows", len(report.TopStates)))

	return nil
}

// writeCSV writes a CSV file with a UTF-8 BOM prefix so Excel recognizes the
// encoding.
func (w *Writer) writeCSV(name string, headers []string, records [][]string) error {
	fullPath := filepath.Join(w.outDir, name)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create output directory", err).
			WithContext("path", fullPath)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return apperrors.NewStorageError("failed to create CSV file", err).
			WithContext("path", fullPath)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return apperrors.NewStorageError("failed to write BOM", err).
			WithContext("path", fullPath)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return apperrors.NewStorageError("failed to write CSV header row", err).
			WithContext("path", fullPath)
	}

	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to write CSV record %d", i), err).
				WithContext("path", fullPath)
		}
	}

	writer.Flush()
	return writer.Error()
}

// groupRows converts ranked group totals into CSV rows.
func groupRows(groups []analytics.GroupTotal) [][]string {
	rows := make([][]string, 0, len(groups))
	for _, group := range groups {
		rows = append(rows, []string{group.Name, formatAmount(group.Total)})
	}
	return rows
}

// formatAmount renders a monetary total with 2 decimal places.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
