package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/spec-kit/helpdesk-analytics/internal/domain"
)

var errStoreDown = errors.New("store unreachable")

type fixtureTicketRepo struct {
	tickets []domain.Ticket
	err     error
}

func (f *fixtureTicketRepo) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.tickets, nil
}

func (f *fixtureTicketRepo) ListByCompany(ctx context.Context, companyID string) ([]domain.Ticket, error) {
	if f.err != nil {
		return nil, f.err
	}
	var scoped []domain.Ticket
	for _, t := range f.tickets {
		if t.CompanyID == companyID {
			scoped = append(scoped, t)
		}
	}
	return scoped, nil
}

type fixtureTimelineRepo struct {
	mu        sync.Mutex
	entries   map[string][]domain.TimelineEntry
	err       error
	fetchedID []string
}

func (f *fixtureTimelineRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.TimelineEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.fetchedID = append(f.fetchedID, ticketID)
	f.mu.Unlock()
	return f.entries[ticketID], nil
}

type fixtureInvoiceRepo struct {
	invoices []domain.Invoice
	err      error
}

func (f *fixtureInvoiceRepo) ListIssuedBetween(ctx context.Context, start, end time.Time) ([]domain.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	var scoped []domain.Invoice
	for _, inv := range f.invoices {
		if inv.IssueDate == nil {
			continue
		}
		if inv.IssueDate.Before(start) || inv.IssueDate.After(end) {
			continue
		}
		scoped = append(scoped, inv)
	}
	return scoped, nil
}

type fixtureCustomerRepo struct {
	customers []domain.Customer
	err       error
}

func (f *fixtureCustomerRepo) ListAll(ctx context.Context) ([]domain.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.customers, nil
}

type fixtureDownloadRepo struct {
	mu      sync.Mutex
	records []domain.DownloadRecord
	err     error
	nextAt  time.Time
}

func (f *fixtureDownloadRepo) Append(ctx context.Context, record *domain.DownloadRecord) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	record.DownloadedAt = f.nextAt
	f.nextAt = f.nextAt.Add(time.Minute)
	f.records = append(f.records, *record)
	return nil
}

func (f *fixtureDownloadRepo) Recent(ctx context.Context, userID string, limit int) ([]domain.DownloadRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var scoped []domain.DownloadRecord
	for _, r := range f.records {
		if r.UserID == userID {
			scoped = append(scoped, r)
		}
	}
	return scoped, nil
}

func timePtr(t time.Time) *time.Time { return &t }
