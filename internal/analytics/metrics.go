package analytics

import (
	"math"
	"time"

	"github.com/spec-kit/helpdesk-analytics/internal/domain"
)

// round1 rounds to one decimal place; all exported rates and hour
// averages pass through it.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Summarize computes the live dashboard snapshot over a ticket snapshot.
// timelines maps ticket id to its activity entries in ascending time
// order; it feeds the first-response average only. Records with missing
// or unparseable timestamps are skipped per metric, never per snapshot.
func Summarize(tickets []domain.Ticket, timelines map[string][]domain.TimelineEntry) domain.MetricsSnapshot {
	total := len(tickets)
	resolved := 0
	open := 0
	companies := make(map[string]struct{})
	for _, t := range tickets {
		if t.Resolved() {
			resolved++
		} else {
			open++
		}
		if t.CompanyID != "" {
			companies[t.CompanyID] = struct{}{}
		}
	}

	rate := 0.0
	if total > 0 {
		rate = round1(float64(resolved) / float64(total) * 100)
	}

	return domain.MetricsSnapshot{
		TotalTickets:           total,
		OpenTickets:            open,
		ResolvedTickets:        resolved,
		ResolutionRate:         rate,
		AvgResolutionTimeHours: AvgResolutionHours(tickets),
		ActiveCustomers:        len(companies),
		FirstResponseTimeHours: FirstResponseHours(tickets, timelines),
		SLACompliance:          SLACompliance(tickets),
	}
}

// AvgResolutionHours averages updatedAt-createdAt over resolved tickets
// where both instants are present. Returns 0 when none qualify.
func AvgResolutionHours(tickets []domain.Ticket) float64 {
	var sum float64
	var n int
	for _, t := range tickets {
		if !t.Resolved() || t.CreatedAt == nil || t.UpdatedAt == nil {
			continue
		}
		sum += t.UpdatedAt.Sub(*t.CreatedAt).Hours()
		n++
	}
	if n == 0 {
		return 0
	}
	return round1(sum / float64(n))
}

// FirstResponseHours averages, across tickets, the delta between the
// first "created" timeline entry and the first subsequent status change
// or assignment. Tickets lacking either event, or with a non-positive
// delta, do not contribute. Returns 0 when none qualify.
func FirstResponseHours(tickets []domain.Ticket, timelines map[string][]domain.TimelineEntry) float64 {
	var sum float64
	var n int
	for _, t := range tickets {
		entries := timelines[t.ID]
		var createdAt, respondedAt *time.Time
		for i := range entries {
			e := entries[i]
			if e.CreatedAt == nil {
				continue
			}
			switch e.Type {
			case domain.TimelineEntryCreated:
				if createdAt == nil {
					createdAt = e.CreatedAt
				}
			case domain.TimelineEntryStatusChanged, domain.TimelineEntryAssigned:
				if respondedAt == nil {
					respondedAt = e.CreatedAt
				}
			}
		}
		if createdAt == nil || respondedAt == nil {
			continue
		}
		delta := respondedAt.Sub(*createdAt).Hours()
		if delta <= 0 {
			continue
		}
		sum += delta
		n++
	}
	if n == 0 {
		return 0
	}
	return round1(sum / float64(n))
}

// SLACompliance returns the percentage of resolved tickets, among those
// carrying both an SLA deadline and a resolution instant, that resolved
// at or before the deadline. Returns 0 when none qualify.
func SLACompliance(tickets []domain.Ticket) float64 {
	var qualifying, compliant int
	for _, t := range tickets {
		if !t.Resolved() || t.SLADeadline == nil || t.UpdatedAt == nil {
			continue
		}
		qualifying++
		if !t.UpdatedAt.After(*t.SLADeadline) {
			compliant++
		}
	}
	if qualifying == 0 {
		return 0
	}
	return round1(float64(compliant) / float64(qualifying) * 100)
}
