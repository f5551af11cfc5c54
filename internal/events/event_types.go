package events

import (
	"time"

	"github.com/spec-kit/helpdesk-analytics/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	// EventReportGenerated fires after a report document has been
	// produced and handed to the caller.
	EventReportGenerated EventType = "report_generated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ReportGeneratedPayload carries the audit attributes of one report
// retrieval. Recording it must never affect report delivery.
type ReportGeneratedPayload struct {
	ReportID   domain.ReportID `json:"report_id"`
	ReportName string          `json:"report_name"`
	UserID     string          `json:"user_id"`
	Parameters map[string]any  `json:"parameters,omitempty"`
}
