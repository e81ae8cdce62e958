package exporter

import (
	"fmt"
	"io"

	"salescli/internal/analytics"
	"salescli/internal/pipeline"
	"salescli/pkg/contracts/domain"
)

// previewRows is how many merged records the text report previews.
const previewRows = 5

// WriteTextReport prints the human-readable run summary: grand total, the
// monthly series, both rankings, the join and filter drop counts, and a
// short record preview.
func (w *Writer) WriteTextReport(out io.Writer, report *analytics.Report, mergeStats pipeline.MergeStats, cleanStats pipeline.CleanStats, records []domain.SalesRecord) error {
	p := func(format string, args ...interface{}) error {
		_, err := fmt.Fprintf(out, format, args...)
		return err
	}

	if err := p("Total Revenue: %.2f\n", report.GrandTotal); err != nil {
		return err
	}

	if err := p("\nMonthly Sales:\n"); err != nil {
		return err
	}
	for _, point := range report.Monthly {
		if err := p("  %2d  %12.2f\n", point.Month, point.Total); err != nil {
			return err
		}
	}

	if err := p("\nTop %d Categories:\n", len(report.TopCategories)); err != nil {
		return err
	}
	for _, group := range report.TopCategories {
		if err := p("  %-40s %12.2f\n", group.Name, group.Total); err != nil {
			return err
		}
	}

	if err := p("\nTop %d States:\n", len(report.TopStates)); err != nil {
		return err
	}
	for _, group := range report.TopStates {
		if err := p("  %-40s %12.2f\n", group.Name, group.Total); err != nil {
			return err
		}
	}

	if err := p("\nRows dropped by joins: %d (missing order: %d, missing product: %d, missing customer: %d)\n",
		mergeStats.Dropped(), mergeStats.DroppedMissingOrder,
		mergeStats.DroppedMissingProduct, mergeStats.DroppedMissingCustomer); err != nil {
		return err
	}
	if err := p("Rows dropped by status filter: %d (kept %d of %d, null timestamps: %d)\n",
		cleanStats.DroppedStatus, cleanStats.Kept, cleanStats.In, cleanStats.NullTimestamps); err != nil {
		return err
	}

	if len(records) == 0 {
		return nil
	}

	if err := p("\nPreview:\n"); err != nil {
		return err
	}
	for i, record := range records {
		if i >= previewRows {
			break
		}
		sales := "null"
		if record.Sales.Valid {
			sales = fmt.Sprintf("%.2f", record.Sales.Value)
		}
		if err := p("  %s  %-30s %-4s %s\n", record.OrderID, record.CategoryName, record.State, sales); err != nil {
			return err
		}
	}

	return nil
}
