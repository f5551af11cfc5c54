package domain

import "time"

// InvoiceStatus enumerates payment states.
type InvoiceStatus string

const (
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// Invoice is the read-only billing snapshot consumed by revenue reports.
// Amount is currency-agnostic; formatting happens at the report boundary.
type Invoice struct {
	ID         string
	CustomerID string
	Amount     float64
	Status     InvoiceStatus
	IssueDate  *time.Time
	DueDate    *time.Time
}
