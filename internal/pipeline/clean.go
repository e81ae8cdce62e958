package pipeline

import (
	"log/slog"
	"time"

	"salescli/pkg/contracts/domain"
)

// DeliveredStatus is the only order status that survives cleaning.
const DeliveredStatus = "delivered"

// timestampLayouts are tried in order when parsing purchase timestamps.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// CleanStats counts the effect of the cleaning stage.
type CleanStats struct {
	In             int `json:"in"`
	Kept           int `json:"kept"`
	DroppedStatus  int `json:"dropped_status"`
	NullTimestamps int `json:"null_timestamps"`
}

// Clean converts the purchase timestamp of each record from text to a
// structured time and filters to rows whose status equals status. Timestamp
// parse failures produce a null time on the row instead of aborting; the row
// still survives if its status matches.
func Clean(records []domain.SalesRecord, status string) ([]domain.SalesRecord, CleanStats) {
	stats := CleanStats{In: len(records)}
	cleaned := make([]domain.SalesRecord, 0, len(records))

	for _, record := range records {
		record.PurchaseTime, record.TimeValid = parseTimestamp(record.PurchaseTimestamp)
		if !record.TimeValid {
			stats.NullTimestamps++
		}

		if record.Status != status {
			stats.DroppedStatus++
			continue
		}

		cleaned = append(cleaned, record)
	}

	stats.Kept = len(cleaned)
	return cleaned, stats
}

// parseTimestamp parses a purchase timestamp permissively.
func parseTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}

// LogValue lets CleanStats render as a structured log group.
func (s CleanStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("in", s.In),
		slog.Int("kept", s.Kept),
		slog.Int("dropped_status", s.DroppedStatus),
		slog.Int("null_timestamps", s.NullTimestamps),
	)
}
