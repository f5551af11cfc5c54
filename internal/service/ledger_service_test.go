package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-analytics/internal/domain"
	"github.com/spec-kit/helpdesk-analytics/internal/events"
)

func TestLedgerRecordAssignsServerTimestamp(t *testing.T) {
	downloads := &fixtureDownloadRepo{nextAt: refTime}
	ledger := NewLedgerService(downloads, nil, zap.NewNop())

	err := ledger.Record(context.Background(), events.ReportGeneratedPayload{
		ReportID:   domain.ReportRevenueAnalysis,
		ReportName: "Revenue Analysis",
		UserID:     "u1",
		Parameters: map[string]any{"start": "2024-01-01"},
	})

	require.NoError(t, err)
	require.Len(t, downloads.records, 1)
	assert.Equal(t, refTime, downloads.records[0].DownloadedAt)
	assert.Equal(t, "u1", downloads.records[0].UserID)
}

func TestLedgerRecentNewestFirst(t *testing.T) {
	downloads := &fixtureDownloadRepo{nextAt: refTime}
	ledger := NewLedgerService(downloads, nil, zap.NewNop())

	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, ledger.Record(context.Background(), events.ReportGeneratedPayload{
			ReportID:   domain.ReportSLAPerformance,
			ReportName: name,
			UserID:     "u1",
		}))
	}
	// Another user's download must not leak in.
	require.NoError(t, ledger.Record(context.Background(), events.ReportGeneratedPayload{
		ReportID:   domain.ReportSLAPerformance,
		ReportName: "other",
		UserID:     "u2",
	}))

	records, err := ledger.Recent(context.Background(), "u1", 2)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "third", records[0].ReportName)
	assert.Equal(t, "second", records[1].ReportName)
	assert.True(t, records[0].DownloadedAt.After(records[1].DownloadedAt))
}

func TestLedgerRecentDefaultsLimit(t *testing.T) {
	downloads := &fixtureDownloadRepo{nextAt: refTime}
	ledger := NewLedgerService(downloads, nil, zap.NewNop())

	records, err := ledger.Recent(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLedgerHandlerRecordsPublishedEvent(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	downloads := &fixtureDownloadRepo{nextAt: refTime}
	ledger := NewLedgerService(downloads, dispatcher, zap.NewNop())
	ledger.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:        "evt-1",
		Type:      events.EventReportGenerated,
		Timestamp: refTime,
		Payload: events.ReportGeneratedPayload{
			ReportID:   domain.ReportCustomerActivity,
			ReportName: "Customer Activity Report",
			UserID:     "u9",
		},
	})

	require.NoError(t, err)
	require.Len(t, downloads.records, 1)
	assert.Equal(t, "u9", downloads.records[0].UserID)
	assert.Equal(t, time.Minute, downloads.nextAt.Sub(refTime))
}
