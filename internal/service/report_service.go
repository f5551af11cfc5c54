package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/helpdesk-analytics/internal/analytics"
	"github.com/spec-kit/helpdesk-analytics/internal/domain"
	"github.com/spec-kit/helpdesk-analytics/internal/events"
	"github.com/spec-kit/helpdesk-analytics/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-analytics/pkg/util/errorutil"
)

// ReportService generates the four report documents. Each generator is a
// pure derivation of its input snapshot: identical snapshot and
// parameters yield identical Data and Summary, only the document id and
// GeneratedAt vary. A generated report is published to the dispatcher so
// the download ledger can record it without ever blocking delivery.
type ReportService struct {
	tickets        repository.TicketRepository
	invoices       repository.InvoiceRepository
	customers      repository.CustomerRepository
	dispatcher     events.Dispatcher
	logger         *zap.Logger
	currencySymbol string
	now            func() time.Time
	newID          func() string
}

// ReportDependencies bundles collaborators for the report service.
type ReportDependencies struct {
	TicketRepo     repository.TicketRepository
	InvoiceRepo    repository.InvoiceRepository
	CustomerRepo   repository.CustomerRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
	CurrencySymbol string
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	symbol := deps.CurrencySymbol
	if symbol == "" {
		symbol = "$"
	}
	return &ReportService{
		tickets:        deps.TicketRepo,
		invoices:       deps.InvoiceRepo,
		customers:      deps.CustomerRepo,
		dispatcher:     deps.Dispatcher,
		logger:         deps.Logger,
		currencySymbol: symbol,
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

// MonthlyTicketSummary reports on tickets created in the given calendar
// month. The month is validated before any data is read.
func (s *ReportService) MonthlyTicketSummary(ctx context.Context, userID string, year, month int) (*domain.ReportDocument, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.NewValidationError("month must be between 1 and 12", map[string]any{"month": month})
	}
	if year <= 0 {
		return nil, apperrors.NewValidationError("year must be positive", map[string]any{"year": year})
	}

	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var scoped []domain.Ticket
	for _, t := range tickets {
		if t.CreatedAt == nil {
			continue
		}
		if t.CreatedAt.Year() == year && int(t.CreatedAt.Month()) == month {
			scoped = append(scoped, t)
		}
	}

	byCategory := make(map[string]int)
	byPriority := make(map[string]int)
	resolved := 0
	for _, t := range scoped {
		byCategory[analytics.CategoryLabel(t.Category)]++
		byPriority[string(t.Priority)]++
		if t.Resolved() {
			resolved++
		}
	}

	rate := 0.0
	if len(scoped) > 0 {
		rate = round1(float64(resolved) / float64(len(scoped)) * 100)
	}

	doc := s.newDocument(
		domain.ReportMonthlySummary,
		fmt.Sprintf("Monthly Ticket Summary - %s %d", time.Month(month).String(), year),
		MonthlySummaryData{
			TotalTickets: len(scoped),
			ByCategory:   byCategory,
			ByPriority:   byPriority,
		},
		MonthlySummaryTotals{
			TotalTickets:       len(scoped),
			ResolvedTickets:    resolved,
			ResolutionRate:     rate,
			AvgResolutionHours: analytics.AvgResolutionHours(scoped),
		},
	)
	s.publishGenerated(ctx, doc, userID, map[string]any{
		"year":  strconv.Itoa(year),
		"month": strconv.Itoa(month),
	})
	return doc, nil
}

// CustomerActivity reports per-customer ticket activity. When customerID
// is non-empty the report is restricted to that customer.
func (s *ReportService) CustomerActivity(ctx context.Context, userID, customerID string) (*domain.ReportDocument, error) {
	var (
		tickets   []domain.Ticket
		customers []domain.Customer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if customerID != "" {
			tickets, err = s.tickets.ListByCompany(gctx, customerID)
		} else {
			tickets, err = s.tickets.ListAll(gctx)
		}
		return err
	})
	g.Go(func() (err error) {
		customers, err = s.customers.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}

	byCustomer := make(map[string][]domain.Ticket)
	for _, t := range tickets {
		if t.CompanyID == "" {
			continue
		}
		byCustomer[t.CompanyID] = append(byCustomer[t.CompanyID], t)
	}

	rows := make([]CustomerActivityRow, 0, len(byCustomer))
	for id, scoped := range byCustomer {
		open, resolved := 0, 0
		for _, t := range scoped {
			if t.Resolved() {
				resolved++
			} else {
				open++
			}
		}
		rows = append(rows, CustomerActivityRow{
			CustomerID:         id,
			CustomerName:       names[id],
			TotalTickets:       len(scoped),
			OpenTickets:        open,
			ResolvedTickets:    resolved,
			AvgResolutionHours: analytics.AvgResolutionHours(scoped),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalTickets != rows[j].TotalTickets {
			return rows[i].TotalTickets > rows[j].TotalTickets
		}
		return rows[i].CustomerID < rows[j].CustomerID
	})

	avgPerCustomer := 0.0
	if len(rows) > 0 {
		avgPerCustomer = round1(float64(len(tickets)) / float64(len(rows)))
	}

	params := map[string]any{}
	if customerID != "" {
		params["customer_id"] = customerID
	}
	doc := s.newDocument(
		domain.ReportCustomerActivity,
		"Customer Activity Report",
		rows,
		CustomerActivityTotals{
			TotalCustomers:        len(rows),
			TotalTickets:          len(tickets),
			AvgTicketsPerCustomer: avgPerCustomer,
		},
	)
	s.publishGenerated(ctx, doc, userID, params)
	return doc, nil
}

// SLAPerformance reports compliance over resolved tickets that carry
// both a deadline and a resolution instant.
func (s *ReportService) SLAPerformance(ctx context.Context, userID string) (*domain.ReportDocument, error) {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byPriority := make(map[domain.TicketPriority]PriorityCompliance, 4)
	for _, p := range domain.Priorities() {
		byPriority[p] = PriorityCompliance{}
	}

	var (
		breaches                      []SLABreach
		compliant, breached           int
		resolutionSum, windowSum      float64
		resolutionCount, qualifyCount int
	)
	for _, t := range tickets {
		if !t.Resolved() || t.SLADeadline == nil || t.UpdatedAt == nil {
			continue
		}
		qualifyCount++
		entry := byPriority[t.Priority]
		entry.Total++

		if t.UpdatedAt.After(*t.SLADeadline) {
			breached++
			entry.Breached++
			breaches = append(breaches, SLABreach{
				TicketID:        t.ID,
				Title:           t.Title,
				Priority:        t.Priority,
				SLADeadline:     *t.SLADeadline,
				ResolvedAt:      *t.UpdatedAt,
				BreachTimeHours: round1(t.UpdatedAt.Sub(*t.SLADeadline).Hours()),
			})
		} else {
			compliant++
			entry.Compliant++
		}
		byPriority[t.Priority] = entry

		if t.CreatedAt != nil {
			resolutionSum += t.UpdatedAt.Sub(*t.CreatedAt).Hours()
			windowSum += t.SLADeadline.Sub(*t.CreatedAt).Hours()
			resolutionCount++
		}
	}

	rate := 0.0
	if qualifyCount > 0 {
		rate = round1(float64(compliant) / float64(qualifyCount) * 100)
	}
	avgResolution, avgWindow := 0.0, 0.0
	if resolutionCount > 0 {
		avgResolution = round1(resolutionSum / float64(resolutionCount))
		avgWindow = round1(windowSum / float64(resolutionCount))
	}

	sort.SliceStable(breaches, func(i, j int) bool {
		if !breaches[i].SLADeadline.Equal(breaches[j].SLADeadline) {
			return breaches[i].SLADeadline.Before(breaches[j].SLADeadline)
		}
		return breaches[i].TicketID < breaches[j].TicketID
	})

	doc := s.newDocument(
		domain.ReportSLAPerformance,
		"SLA Performance Report",
		SLAPerformanceData{ByPriority: byPriority, Breaches: breaches},
		SLAPerformanceTotals{
			CompliantCount:     compliant,
			BreachedCount:      breached,
			ComplianceRate:     rate,
			AvgResolutionHours: avgResolution,
			AvgSLAWindowHours:  avgWindow,
		},
	)
	s.publishGenerated(ctx, doc, userID, nil)
	return doc, nil
}

// RevenueAnalysis reports revenue over invoices issued in [start, end]
// inclusive. The range is validated before any data is read.
func (s *ReportService) RevenueAnalysis(ctx context.Context, userID string, start, end time.Time) (*domain.ReportDocument, error) {
	if start.After(end) {
		return nil, apperrors.NewValidationError("start date must not be after end date", map[string]any{
			"start": start.Format(time.RFC3339),
			"end":   end.Format(time.RFC3339),
		})
	}

	var (
		invoices  []domain.Invoice
		customers []domain.Customer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		invoices, err = s.invoices.ListIssuedBetween(gctx, start, end)
		return err
	})
	g.Go(func() (err error) {
		customers, err = s.customers.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}

	var total, paid, pending, overdue float64
	perCustomer := make(map[string]*CustomerRevenueRow)
	perMonth := make(map[string]*MonthlyRevenueRow)
	for _, inv := range invoices {
		total += inv.Amount
		switch inv.Status {
		case domain.InvoiceStatusPaid:
			paid += inv.Amount
		case domain.InvoiceStatusPending:
			pending += inv.Amount
		case domain.InvoiceStatusOverdue:
			overdue += inv.Amount
		}

		row, ok := perCustomer[inv.CustomerID]
		if !ok {
			row = &CustomerRevenueRow{CustomerID: inv.CustomerID, CustomerName: names[inv.CustomerID]}
			perCustomer[inv.CustomerID] = row
		}
		row.Total += inv.Amount
		switch inv.Status {
		case domain.InvoiceStatusPaid:
			row.Paid += inv.Amount
		case domain.InvoiceStatusPending:
			row.Pending += inv.Amount
		}

		if inv.IssueDate != nil {
			key := inv.IssueDate.Format("2006-01")
			month, ok := perMonth[key]
			if !ok {
				month = &MonthlyRevenueRow{Month: key}
				perMonth[key] = month
			}
			month.InvoiceCount++
			if inv.Status == domain.InvoiceStatusPaid {
				month.Revenue += inv.Amount
			}
		}
	}

	byCustomer := make([]CustomerRevenueRow, 0, len(perCustomer))
	for _, row := range perCustomer {
		byCustomer = append(byCustomer, *row)
	}
	sort.SliceStable(byCustomer, func(i, j int) bool {
		if byCustomer[i].Total != byCustomer[j].Total {
			return byCustomer[i].Total > byCustomer[j].Total
		}
		return byCustomer[i].CustomerID < byCustomer[j].CustomerID
	})

	monthly := make([]MonthlyRevenueRow, 0, len(perMonth))
	for _, row := range perMonth {
		monthly = append(monthly, *row)
	}
	sort.Slice(monthly, func(i, j int) bool { return monthly[i].Month < monthly[j].Month })

	doc := s.newDocument(
		domain.ReportRevenueAnalysis,
		fmt.Sprintf("Revenue Analysis %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02")),
		RevenueAnalysisData{ByCustomer: byCustomer, MonthlyTrend: monthly},
		RevenueAnalysisTotals{
			TotalRevenue:   formatCurrency(s.currencySymbol, total),
			PaidRevenue:    formatCurrency(s.currencySymbol, paid),
			PendingRevenue: formatCurrency(s.currencySymbol, pending),
			OverdueRevenue: formatCurrency(s.currencySymbol, overdue),
			InvoiceCount:   len(invoices),
		},
	)
	s.publishGenerated(ctx, doc, userID, map[string]any{
		"start": start.Format("2006-01-02"),
		"end":   end.Format("2006-01-02"),
	})
	return doc, nil
}

func (s *ReportService) newDocument(id domain.ReportID, title string, data, summary interface{}) *domain.ReportDocument {
	return &domain.ReportDocument{
		ID:          s.newID(),
		ReportID:    id,
		Title:       title,
		GeneratedAt: s.now().UTC(),
		Data:        data,
		Summary:     summary,
	}
}

// publishGenerated hands the download record to the dispatcher. The
// document has already been produced; nothing here may fail the call.
func (s *ReportService) publishGenerated(ctx context.Context, doc *domain.ReportDocument, userID string, params map[string]any) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        s.newID(),
		Type:      events.EventReportGenerated,
		Timestamp: doc.GeneratedAt,
		Payload: events.ReportGeneratedPayload{
			ReportID:   doc.ReportID,
			ReportName: doc.Title,
			UserID:     userID,
			Parameters: params,
		},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish report_generated event", zap.Error(err))
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
