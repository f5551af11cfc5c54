package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-analytics/internal/domain"
)

// ReportResponse wraps a generated report document.
type ReportResponse struct {
	ID          string          `json:"id"`
	ReportID    domain.ReportID `json:"report_id"`
	Title       string          `json:"title"`
	GeneratedAt time.Time       `json:"generated_at"`
	Data        interface{}     `json:"data"`
	Summary     interface{}     `json:"summary"`
}

// NewReportResponse maps a document to its wire shape.
func NewReportResponse(doc *domain.ReportDocument) ReportResponse {
	return ReportResponse{
		ID:          doc.ID,
		ReportID:    doc.ReportID,
		Title:       doc.Title,
		GeneratedAt: doc.GeneratedAt,
		Data:        doc.Data,
		Summary:     doc.Summary,
	}
}

// DownloadEntry represents one ledger record.
type DownloadEntry struct {
	ID           string          `json:"id"`
	ReportID     domain.ReportID `json:"report_id"`
	ReportName   string          `json:"report_name"`
	Parameters   map[string]any  `json:"parameters,omitempty"`
	DownloadedAt time.Time       `json:"downloaded_at"`
}

// NewDownloadEntry maps a ledger record to its wire shape.
func NewDownloadEntry(record domain.DownloadRecord) DownloadEntry {
	return DownloadEntry{
		ID:           record.ID,
		ReportID:     record.ReportID,
		ReportName:   record.ReportName,
		Parameters:   record.Parameters,
		DownloadedAt: record.DownloadedAt,
	}
}
