package domain

// MetricsSnapshot is the live dashboard aggregate. It is recomputed on
// demand from a ticket snapshot and never persisted.
type MetricsSnapshot struct {
	TotalTickets           int     `json:"total_tickets"`
	OpenTickets            int     `json:"open_tickets"`
	ResolvedTickets        int     `json:"resolved_tickets"`
	ResolutionRate         float64 `json:"resolution_rate"`
	AvgResolutionTimeHours float64 `json:"avg_resolution_time_hours"`
	ActiveCustomers        int     `json:"active_customers"`
	FirstResponseTimeHours float64 `json:"first_response_time_hours"`
	SLACompliance          float64 `json:"sla_compliance"`
}

// TrendBucket counts tickets for one calendar period. PeriodKey sorts
// lexicographically in chronological order.
type TrendBucket struct {
	PeriodKey string `json:"period"`
	Created   int    `json:"created"`
	Resolved  int    `json:"resolved"`
}

// CategoryBucket is one slice of the category distribution.
type CategoryBucket struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}
