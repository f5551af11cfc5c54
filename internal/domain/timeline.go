package domain

import "time"

// TimelineEntryType enumerates ticket activity events.
type TimelineEntryType string

const (
	TimelineEntryCreated       TimelineEntryType = "created"
	TimelineEntryStatusChanged TimelineEntryType = "status_changed"
	TimelineEntryAssigned      TimelineEntryType = "assigned"
	TimelineEntryNoteAdded     TimelineEntryType = "note_added"
)

// TimelineEntry is one append-only activity record for a ticket,
// read in ascending time order.
type TimelineEntry struct {
	TicketID  string
	Type      TimelineEntryType
	CreatedAt *time.Time
}
