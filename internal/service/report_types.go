package service

import (
	"time"

	"github.com/spec-kit/helpdesk-analytics/internal/domain"
)

// MonthlySummaryData breaks the month's tickets down by category and
// priority.
type MonthlySummaryData struct {
	TotalTickets int            `json:"total_tickets"`
	ByCategory   map[string]int `json:"by_category"`
	ByPriority   map[string]int `json:"by_priority"`
}

// MonthlySummaryTotals aggregates the month's resolution performance.
type MonthlySummaryTotals struct {
	TotalTickets       int     `json:"total_tickets"`
	ResolvedTickets    int     `json:"resolved_tickets"`
	ResolutionRate     float64 `json:"resolution_rate"`
	AvgResolutionHours float64 `json:"avg_resolution_hours"`
}

// CustomerActivityRow is one customer's ticket activity.
type CustomerActivityRow struct {
	CustomerID         string  `json:"customer_id"`
	CustomerName       string  `json:"customer_name"`
	TotalTickets       int     `json:"total_tickets"`
	OpenTickets        int     `json:"open_tickets"`
	ResolvedTickets    int     `json:"resolved_tickets"`
	AvgResolutionHours float64 `json:"avg_resolution_hours"`
}

// CustomerActivityTotals is the report-wide roll-up.
type CustomerActivityTotals struct {
	TotalCustomers        int     `json:"total_customers"`
	TotalTickets          int     `json:"total_tickets"`
	AvgTicketsPerCustomer float64 `json:"avg_tickets_per_customer"`
}

// PriorityCompliance tallies SLA outcomes for one priority.
type PriorityCompliance struct {
	Total     int `json:"total"`
	Compliant int `json:"compliant"`
	Breached  int `json:"breached"`
}

// SLABreach details one missed deadline. The full list is retained;
// truncation is a presentation concern.
type SLABreach struct {
	TicketID        string                `json:"ticket_id"`
	Title           string                `json:"title"`
	Priority        domain.TicketPriority `json:"priority"`
	SLADeadline     time.Time             `json:"sla_deadline"`
	ResolvedAt      time.Time             `json:"resolved_at"`
	BreachTimeHours float64               `json:"breach_time_hours"`
}

// SLAPerformanceData carries the per-priority breakdown and breach list.
type SLAPerformanceData struct {
	ByPriority map[domain.TicketPriority]PriorityCompliance `json:"by_priority"`
	Breaches   []SLABreach                                  `json:"breaches"`
}

// SLAPerformanceTotals aggregates global compliance.
type SLAPerformanceTotals struct {
	CompliantCount     int     `json:"compliant_count"`
	BreachedCount      int     `json:"breached_count"`
	ComplianceRate     float64 `json:"compliance_rate"`
	AvgResolutionHours float64 `json:"avg_resolution_hours"`
	AvgSLAWindowHours  float64 `json:"avg_sla_window_hours"`
}

// CustomerRevenueRow is one customer's revenue in the analysed range.
type CustomerRevenueRow struct {
	CustomerID   string  `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	Total        float64 `json:"total"`
	Paid         float64 `json:"paid"`
	Pending      float64 `json:"pending"`
}

// MonthlyRevenueRow is one month of the revenue trend. Revenue only
// accumulates paid invoices.
type MonthlyRevenueRow struct {
	Month        string  `json:"month"`
	InvoiceCount int     `json:"invoice_count"`
	Revenue      float64 `json:"revenue"`
}

// RevenueAnalysisData carries the customer breakdown and monthly trend.
type RevenueAnalysisData struct {
	ByCustomer   []CustomerRevenueRow `json:"by_customer"`
	MonthlyTrend []MonthlyRevenueRow  `json:"monthly_trend"`
}

// RevenueAnalysisTotals is the currency-formatted summary boundary.
// All internal accumulation stays numeric; formatting happens only here.
type RevenueAnalysisTotals struct {
	TotalRevenue   string `json:"total_revenue"`
	PaidRevenue    string `json:"paid_revenue"`
	PendingRevenue string `json:"pending_revenue"`
	OverdueRevenue string `json:"overdue_revenue"`
	InvoiceCount   int    `json:"invoice_count"`
}
