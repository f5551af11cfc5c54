package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-analytics/internal/domain"
	"github.com/spec-kit/helpdesk-analytics/internal/events"
	"github.com/spec-kit/helpdesk-analytics/internal/repository"
)

// LedgerService maintains the append-only report download audit trail.
// Recording rides the event dispatcher so a ledger failure can never
// roll back an already-delivered report.
type LedgerService struct {
	downloads  repository.DownloadRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewLedgerService creates the service.
func NewLedgerService(downloads repository.DownloadRepository, dispatcher events.Dispatcher, logger *zap.Logger) *LedgerService {
	return &LedgerService{downloads: downloads, dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (s *LedgerService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventReportGenerated, s.handleReportGenerated)
}

func (s *LedgerService) handleReportGenerated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ReportGeneratedPayload)
	if !ok {
		s.logger.Warn("unexpected payload for report_generated event", zap.Any("payload", event.Payload))
		return nil
	}
	if err := s.Record(ctx, payload); err != nil {
		// Surfaced in logs only: report delivery already succeeded.
		s.logger.Error("failed to record report download",
			zap.String("report_id", string(payload.ReportID)),
			zap.String("user_id", payload.UserID),
			zap.Error(err))
		return err
	}
	return nil
}

// Record appends one download record with a store-assigned timestamp.
func (s *LedgerService) Record(ctx context.Context, payload events.ReportGeneratedPayload) error {
	record := &domain.DownloadRecord{
		ReportID:   payload.ReportID,
		ReportName: payload.ReportName,
		UserID:     payload.UserID,
		Parameters: payload.Parameters,
	}
	return s.downloads.Append(ctx, record)
}

// Recent returns the limit most recent downloads for a user, newest
// first. Ordering is re-asserted here so the contract holds regardless
// of the backing store.
func (s *LedgerService) Recent(ctx context.Context, userID string, limit int) ([]domain.DownloadRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	records, err := s.downloads.Recent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].DownloadedAt.After(records[j].DownloadedAt)
	})
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
