package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"salescli/internal/analytics"
	apperrors "salescli/internal/errors"
)

// SummaryWorkbook is the Excel artifact filename.
const SummaryWorkbook = "sales_summary.xlsx"

// WriteWorkbook writes the Excel summary workbook: one sheet per aggregate
// plus the grand total on the first sheet.
func (w *Writer) WriteWorkbook(ctx context.Context, report *analytics.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"

	// The default sheet becomes the summary sheet
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return apperrors.NewStorageError("failed to rename summary sheet", err)
	}
	if err := setRows(f, summarySheet, [][]interface{}{
		{"Metric", "Value"},
		{"Total Revenue", report.GrandTotal},
		{"Records", report.RecordCount},
	}); err != nil {
		return err
	}

	monthlyRows := [][]interface{}{{"Month", "Sales"}}
	for _, point := range report.Monthly {
		monthlyRows = append(monthlyRows, []interface{}{point.Month, point.Total})
	}
	if err := addSheet(f, "Monthly Sales", monthlyRows); err != nil {
		return err
	}

	if err := addSheet(f, "Top Categories", groupSheetRows("Category", report.TopCategories)); err != nil {
		return err
	}
	if err := addSheet(f, "Top States", groupSheetRows("State", report.TopStates)); err != nil {
		return err
	}

	fullPath := filepath.Join(w.outDir, SummaryWorkbook)
	if err := f.SaveAs(fullPath); err != nil {
		return apperrors.NewStorageError("failed to save summary workbook", err).
			WithContext("path", fullPath)
	}

	w.logger.InfoContext(ctx, "summary workbook written",
		slog.String("path", fullPath))

	return nil
}

// addSheet creates a sheet and fills it with rows.
func addSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to create sheet %s", name), err)
	}
	return setRows(f, name, rows)
}

// setRows writes rows into a sheet starting at A1.
func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return apperrors.NewStorageError("failed to compute cell name", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return apperrors.NewStorageError(fmt.Sprintf("failed to write cell %s!%s", sheet, cell), err)
			}
		}
	}
	return nil
}

// groupSheetRows converts ranked group totals into workbook rows.
func groupSheetRows(keyHeader string, groups []analytics.GroupTotal) [][]interface{} {
	rows := [][]interface{}{{keyHeader, "Sales"}}
	for _, group := range groups {
		rows = append(rows, []interface{}{group.Name, group.Total})
	}
	return rows
}
