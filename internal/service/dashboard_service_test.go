package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-analytics/internal/analytics"
	"github.com/spec-kit/helpdesk-analytics/internal/domain"
	"github.com/spec-kit/helpdesk-analytics/internal/observability"
)

func newTestDashboardService(tickets *fixtureTicketRepo, timelines *fixtureTimelineRepo) *DashboardService {
	return NewDashboardService(DashboardDependencies{
		TicketRepo:   tickets,
		TimelineRepo: timelines,
		Metrics:      observability.NewMetrics(),
		Logger:       zap.NewNop(),
	})
}

func TestDashboardMetricsEmptySnapshot(t *testing.T) {
	svc := newTestDashboardService(&fixtureTicketRepo{}, &fixtureTimelineRepo{})

	snapshot, err := svc.Metrics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.MetricsSnapshot{}, snapshot)
}

func TestDashboardMetricsFetchesTimelinePerTicket(t *testing.T) {
	created := refTime
	responded := refTime.Add(2 * time.Hour)
	tickets := &fixtureTicketRepo{tickets: []domain.Ticket{
		{ID: "t1", CompanyID: "c1", Status: domain.TicketStatusOpen, CreatedAt: timePtr(created), UpdatedAt: timePtr(created)},
		{ID: "t2", CompanyID: "c1", Status: domain.TicketStatusOpen, CreatedAt: timePtr(created), UpdatedAt: timePtr(created)},
	}}
	timelines := &fixtureTimelineRepo{entries: map[string][]domain.TimelineEntry{
		"t1": {
			{TicketID: "t1", Type: domain.TimelineEntryCreated, CreatedAt: timePtr(created)},
			{TicketID: "t1", Type: domain.TimelineEntryAssigned, CreatedAt: timePtr(responded)},
		},
	}}
	svc := newTestDashboardService(tickets, timelines)

	snapshot, err := svc.Metrics(context.Background())

	require.NoError(t, err)
	assert.Len(t, timelines.fetchedID, 2)
	assert.Equal(t, 2.0, snapshot.FirstResponseTimeHours)
}

func TestDashboardMetricsFetchFailureAborts(t *testing.T) {
	tickets := &fixtureTicketRepo{tickets: []domain.Ticket{{ID: "t1", Status: domain.TicketStatusOpen}}}
	timelines := &fixtureTimelineRepo{err: errStoreDown}
	svc := newTestDashboardService(tickets, timelines)

	_, err := svc.Metrics(context.Background())
	require.ErrorIs(t, err, errStoreDown)
}

func TestDashboardMetricsCancelledContextFailsOutright(t *testing.T) {
	tickets := &fixtureTicketRepo{tickets: []domain.Ticket{{ID: "t1", Status: domain.TicketStatusOpen}}}
	svc := newTestDashboardService(tickets, &fixtureTimelineRepo{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Metrics(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDashboardTrends(t *testing.T) {
	tickets := &fixtureTicketRepo{tickets: []domain.Ticket{
		{ID: "a", Status: domain.TicketStatusResolved, CreatedAt: timePtr(refTime)},
		{ID: "b", Status: domain.TicketStatusOpen, CreatedAt: timePtr(refTime.AddDate(0, -1, 0))},
	}}
	svc := newTestDashboardService(tickets, &fixtureTimelineRepo{})

	trends, err := svc.Trends(context.Background(), analytics.GranularityMonth, 6)

	require.NoError(t, err)
	require.Len(t, trends, 2)
	assert.Equal(t, "2024-05", trends[0].PeriodKey)
	assert.Equal(t, "2024-06", trends[1].PeriodKey)
}

func TestDashboardCategoriesEmpty(t *testing.T) {
	svc := newTestDashboardService(&fixtureTicketRepo{}, &fixtureTimelineRepo{})

	buckets, err := svc.Categories(context.Background())

	require.NoError(t, err)
	assert.Empty(t, buckets)
}
