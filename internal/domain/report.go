package domain

import "time"

// ReportID identifies one of the report kinds.
type ReportID string

const (
	ReportMonthlySummary   ReportID = "monthly-summary"
	ReportCustomerActivity ReportID = "customer-activity"
	ReportSLAPerformance   ReportID = "sla-performance"
	ReportRevenueAnalysis  ReportID = "revenue-analysis"
)

// ReportDocument bundles one generated report instance. Data and Summary
// are deterministic for a fixed input snapshot and parameters; only ID
// and GeneratedAt vary between calls.
type ReportDocument struct {
	ID          string      `json:"id"`
	ReportID    ReportID    `json:"report_id"`
	Title       string      `json:"title"`
	GeneratedAt time.Time   `json:"generated_at"`
	Data        interface{} `json:"data"`
	Summary     interface{} `json:"summary"`
}

// DownloadRecord is one append-only audit entry for a report retrieval.
// DownloadedAt is assigned by the store, never by the caller.
type DownloadRecord struct {
	ID           string
	ReportID     ReportID
	ReportName   string
	UserID       string
	Parameters   map[string]any
	DownloadedAt time.Time
}
