package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-analytics/internal/domain"
)

func ts(t time.Time) *time.Time { return &t }

var baseTime = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func resolvedTicket(id string, created time.Time, resolutionHours float64, deadline *time.Time) domain.Ticket {
	updated := created.Add(time.Duration(resolutionHours * float64(time.Hour)))
	return domain.Ticket{
		ID:          id,
		CompanyID:   "acme",
		Status:      domain.TicketStatusResolved,
		Priority:    domain.TicketPriorityMedium,
		CreatedAt:   ts(created),
		UpdatedAt:   ts(updated),
		SLADeadline: deadline,
	}
}

func TestSummarizeEmptySnapshot(t *testing.T) {
	got := Summarize(nil, nil)
	assert.Equal(t, domain.MetricsSnapshot{}, got)
}

func TestSummarizeSingleResolvedTicket(t *testing.T) {
	// One resolved ticket: created T, updated T+5h, deadline T+8h.
	ticket := resolvedTicket("t1", baseTime, 5, ts(baseTime.Add(8*time.Hour)))

	got := Summarize([]domain.Ticket{ticket}, nil)

	assert.Equal(t, 1, got.TotalTickets)
	assert.Equal(t, 0, got.OpenTickets)
	assert.Equal(t, 1, got.ResolvedTickets)
	assert.Equal(t, 100.0, got.ResolutionRate)
	assert.Equal(t, 5.0, got.AvgResolutionTimeHours)
	assert.Equal(t, 100.0, got.SLACompliance)
	assert.Equal(t, 1, got.ActiveCustomers)
}

func TestSummarizeOpenIncludesPendingAndInProgress(t *testing.T) {
	tickets := []domain.Ticket{
		{ID: "a", Status: domain.TicketStatusOpen, CompanyID: "c1"},
		{ID: "b", Status: domain.TicketStatusInProgress, CompanyID: "c2"},
		{ID: "c", Status: domain.TicketStatusPending, CompanyID: "c1"},
		resolvedTicket("d", baseTime, 2, nil),
	}

	got := Summarize(tickets, nil)

	assert.Equal(t, 4, got.TotalTickets)
	assert.Equal(t, 3, got.OpenTickets)
	assert.Equal(t, 1, got.ResolvedTickets)
	assert.Equal(t, 25.0, got.ResolutionRate)
	assert.Equal(t, 3, got.ActiveCustomers) // c1, c2, acme
}

func TestAvgResolutionHoursSkipsMalformed(t *testing.T) {
	tickets := []domain.Ticket{
		resolvedTicket("ok", baseTime, 4, nil),
		{ID: "no-times", Status: domain.TicketStatusResolved},
		{ID: "open", Status: domain.TicketStatusOpen, CreatedAt: ts(baseTime), UpdatedAt: ts(baseTime.Add(time.Hour))},
	}
	assert.Equal(t, 4.0, AvgResolutionHours(tickets))
}

func TestAvgResolutionHoursRounding(t *testing.T) {
	tickets := []domain.Ticket{
		resolvedTicket("a", baseTime, 1, nil),
		resolvedTicket("b", baseTime, 2.5, nil),
	}
	// (1 + 2.5) / 2 = 1.75 -> 1.8
	assert.Equal(t, 1.8, AvgResolutionHours(tickets))
}

func TestSLACompliance(t *testing.T) {
	tests := []struct {
		name    string
		tickets []domain.Ticket
		want    float64
	}{
		{"NoTickets", nil, 0},
		{"NoDeadlines", []domain.Ticket{resolvedTicket("a", baseTime, 5, nil)}, 0},
		{
			"AllCompliant",
			[]domain.Ticket{resolvedTicket("a", baseTime, 5, ts(baseTime.Add(8*time.Hour)))},
			100,
		},
		{
			"ExactlyOnDeadline",
			[]domain.Ticket{resolvedTicket("a", baseTime, 8, ts(baseTime.Add(8*time.Hour)))},
			100,
		},
		{
			"HalfBreached",
			[]domain.Ticket{
				resolvedTicket("a", baseTime, 5, ts(baseTime.Add(8*time.Hour))),
				resolvedTicket("b", baseTime, 10, ts(baseTime.Add(8*time.Hour))),
			},
			50,
		},
		{
			"UnresolvedExcluded",
			[]domain.Ticket{{
				ID: "open", Status: domain.TicketStatusOpen,
				CreatedAt: ts(baseTime), SLADeadline: ts(baseTime.Add(time.Hour)),
			}},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SLACompliance(tt.tickets)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestFirstResponseHours(t *testing.T) {
	tickets := []domain.Ticket{{ID: "t1"}, {ID: "t2"}, {ID: "t3"}}
	timelines := map[string][]domain.TimelineEntry{
		"t1": {
			{TicketID: "t1", Type: domain.TimelineEntryCreated, CreatedAt: ts(baseTime)},
			{TicketID: "t1", Type: domain.TimelineEntryNoteAdded, CreatedAt: ts(baseTime.Add(time.Hour))},
			{TicketID: "t1", Type: domain.TimelineEntryAssigned, CreatedAt: ts(baseTime.Add(2 * time.Hour))},
			{TicketID: "t1", Type: domain.TimelineEntryStatusChanged, CreatedAt: ts(baseTime.Add(6 * time.Hour))},
		},
		// No response events: excluded.
		"t2": {
			{TicketID: "t2", Type: domain.TimelineEntryCreated, CreatedAt: ts(baseTime)},
			{TicketID: "t2", Type: domain.TimelineEntryNoteAdded, CreatedAt: ts(baseTime.Add(time.Hour))},
		},
		"t3": {
			{TicketID: "t3", Type: domain.TimelineEntryCreated, CreatedAt: ts(baseTime)},
			{TicketID: "t3", Type: domain.TimelineEntryStatusChanged, CreatedAt: ts(baseTime.Add(4 * time.Hour))},
		},
	}

	// t1 responds after 2h (first assigned wins over later status change),
	// t3 after 4h; average 3h.
	assert.Equal(t, 3.0, FirstResponseHours(tickets, timelines))
}

func TestFirstResponseHoursNoQualifyingTickets(t *testing.T) {
	tickets := []domain.Ticket{{ID: "t1"}}
	require.Equal(t, 0.0, FirstResponseHours(tickets, nil))
}

func TestFirstResponseHoursIgnoresNonPositiveDelta(t *testing.T) {
	tickets := []domain.Ticket{{ID: "t1"}}
	timelines := map[string][]domain.TimelineEntry{
		"t1": {
			{TicketID: "t1", Type: domain.TimelineEntryStatusChanged, CreatedAt: ts(baseTime)},
			{TicketID: "t1", Type: domain.TimelineEntryCreated, CreatedAt: ts(baseTime.Add(time.Hour))},
		},
	}
	assert.Equal(t, 0.0, FirstResponseHours(tickets, timelines))
}
