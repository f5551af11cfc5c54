package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusPending    TicketStatus = "pending"
	TicketStatusResolved   TicketStatus = "resolved"
)

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// Priorities lists the authoritative priority vocabulary in severity order.
func Priorities() []TicketPriority {
	return []TicketPriority{TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical}
}

// Ticket is the read-only snapshot of a service ticket consumed by the
// aggregation engine. Timestamps are optional: source records may carry
// missing or unparseable values, and a nil instant means the ticket is
// excluded from time-bound calculations.
type Ticket struct {
	ID          string
	CompanyID   string
	Title       string
	Category    string
	Priority    TicketPriority
	Status      TicketStatus
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
	SLADeadline *time.Time
}

// Resolved reports whether the ticket has reached the resolved state.
func (t Ticket) Resolved() bool {
	return t.Status == TicketStatusResolved
}
