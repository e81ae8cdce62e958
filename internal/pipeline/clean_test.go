package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/pkg/contracts/domain"
)

func TestClean_StatusFilter(t *testing.T) {
	records := []domain.SalesRecord{
		{OrderID: "o1", Status: "delivered", PurchaseTimestamp: "2017-10-02 10:56:33"},
		{OrderID: "o2", Status: "shipped", PurchaseTimestamp: "2017-11-18 19:28:06"},
		{OrderID: "o3", Status: "delivered", PurchaseTimestamp: "2018-02-13 21:18:39"},
		{OrderID: "o4", Status: "", PurchaseTimestamp: "2018-03-01 08:00:00"},
	}

	cleaned, stats := Clean(records, DeliveredStatus)

	require.Len(t, cleaned, 2)
	for _, record := range cleaned {
		assert.Equal(t, DeliveredStatus, record.Status)
	}

	assert.Equal(t, 4, stats.In)
	assert.Equal(t, 2, stats.Kept)
	assert.Equal(t, 2, stats.DroppedStatus)
}

func TestClean_TimestampParsing(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantValid bool
		wantMonth time.Month
	}{
		{"datetime", "2017-10-02 10:56:33", true, time.October},
		{"rfc3339", "2018-07-24T20:41:37Z", true, time.July},
		{"date only", "2018-02-13", true, time.February},
		{"garbage", "not-a-date", false, 0},
		{"empty", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []domain.SalesRecord{{Status: DeliveredStatus, PurchaseTimestamp: tt.raw}}
			cleaned, stats := Clean(records, DeliveredStatus)

			// A bad timestamp never drops the row, it nulls the time
			require.Len(t, cleaned, 1)
			assert.Equal(t, tt.wantValid, cleaned[0].TimeValid)
			if tt.wantValid {
				assert.Equal(t, tt.wantMonth, cleaned[0].PurchaseTime.Month())
				assert.Zero(t, stats.NullTimestamps)
			} else {
				assert.Equal(t, 1, stats.NullTimestamps)
			}
		})
	}
}

func TestClean_Empty(t *testing.T) {
	cleaned, stats := Clean(nil, DeliveredStatus)
	assert.Empty(t, cleaned)
	assert.Zero(t, stats.In)
	assert.Zero(t, stats.Kept)
}

func TestClean_DoesNotMutateInput(t *testing.T) {
	records := []domain.SalesRecord{
		{OrderID: "o1", Status: DeliveredStatus, PurchaseTimestamp: "2017-10-02 10:56:33"},
	}

	cleaned, _ := Clean(records, DeliveredStatus)

	require.Len(t, cleaned, 1)
	assert.True(t, cleaned[0].TimeValid)
	assert.False(t, records[0].TimeValid, "input slice should stay untouched")
}
