package analytics

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"salescli/pkg/contracts/domain"
)

// Analyzer derives the sales metric and computes the aggregate views of a
// cleaned record set.
type Analyzer struct {
	logger *slog.Logger
	topN   int
}

// Config holds configuration options for the Analyzer.
type Config struct {
	TopN int // Number of entries kept in the category and state rankings
}

// DefaultConfig returns a default configuration for typical use cases.
func DefaultConfig() Config {
	return Config{TopN: 10}
}

// NewAnalyzer creates a new analyzer with the given configuration.
func NewAnalyzer(logger *slog.Logger, config Config) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if config.TopN <= 0 {
		config.TopN = 10
	}
	return &Analyzer{logger: logger, topN: config.TopN}
}

// MonthlyPoint is one point of the monthly sales series.
type MonthlyPoint struct {
	Month int     `json:"month"` // 1-12
	Total float64 `json:"total"`
}

// GroupTotal is one entry of a ranked aggregation (category or state).
type GroupTotal struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// Report holds every aggregate the pipeline computes.
type Report struct {
	GrandTotal    float64        `json:"grand_total"` // rounded to 2 decimals
	Monthly       []MonthlyPoint `json:"monthly_sales"`
	TopCategories []GroupTotal   `json:"top_categories"`
	TopStates     []GroupTotal   `json:"top_states"`
	RecordCount   int            `json:"record_count"`
}

// Analyze derives sales and month on each record and aggregates them three
// ways. Records with a null price or freight carry a null sales value and
// are skipped by every sum; records with a null timestamp are skipped by the
// monthly series only. The input slice is mutated in place with the derived
// columns.
func (a *Analyzer) Analyze(ctx context.Context, records []domain.SalesRecord) (*Report, error) {
	a.logger.InfoContext(ctx, "computing sales aggregates",
		slog.Int("record_count", len(records)))

	monthly := make(map[int]float64)
	byCategory := make(map[string]float64)
	byState := make(map[string]float64)
	var grandTotal float64

	for i := range records {
		record := &records[i]
		record.Sales = record.Price.Add(record.FreightValue)
		if record.TimeValid {
			record.Month = int(record.PurchaseTime.Month())
		}

		if !record.Sales.Valid {
			continue
		}
		grandTotal += record.Sales.Value

		if record.Month != 0 {
			monthly[record.Month] += record.Sales.Value
		}
		// Empty group keys fall out of the rankings, matching null-key
		// groupby semantics.
		if record.CategoryName != "" {
			byCategory[record.CategoryName] += record.Sales.Value
		}
		if record.State != "" {
			byState[record.State] += record.Sales.Value
		}
	}

	report := &Report{
		GrandTotal:    round2(grandTotal),
		Monthly:       monthlySeries(monthly),
		TopCategories: topGroups(byCategory, a.topN),
		TopStates:     topGroups(byState, a.topN),
		RecordCount:   len(records),
	}

	a.logger.InfoContext(ctx, "sales aggregates computed",
		slog.Float64("grand_total", report.GrandTotal),
		slog.Int("months", len(report.Monthly)),
		slog.Int("categories", len(report.TopCategories)),
		slog.Int("states", len(report.TopStates)))

	return report, nil
}

// monthlySeries converts the month totals map to a series ascending by month.
func monthlySeries(totals map[int]float64) []MonthlyPoint {
	series := make([]MonthlyPoint, 0, len(totals))
	for month, total := range totals {
		series = append(series, MonthlyPoint{Month: month, Total: total})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Month < series[j].Month
	})

	return series
}

// topGroups ranks group totals descending by total with ties broken by name
// ascending, truncated to n entries. The secondary key makes truncation
// deterministic.
func topGroups(totals map[string]float64, n int) []GroupTotal {
	groups := make([]GroupTotal, 0, len(totals))
	for name, total := range totals {
		groups = append(groups, GroupTotal{Name: name, Total: total})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Total != groups[j].Total {
			return groups[i].Total > groups[j].Total
		}
		return groups[i].Name < groups[j].Name
	})

	if len(groups) > n {
		groups = groups[:n]
	}

	return groups
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
