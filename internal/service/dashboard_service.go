package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/helpdesk-analytics/internal/analytics"
	"github.com/spec-kit/helpdesk-analytics/internal/domain"
	"github.com/spec-kit/helpdesk-analytics/internal/observability"
	"github.com/spec-kit/helpdesk-analytics/internal/persistence"
	"github.com/spec-kit/helpdesk-analytics/internal/repository"
)

const (
	metricsCacheKey = "dashboard:metrics"

	// timelineFetchConcurrency bounds the per-ticket timeline fan-out;
	// one fetch per ticket is the dominant cost of the summary.
	timelineFetchConcurrency = 8
)

// DashboardService computes live dashboard aggregates from immutable
// snapshots. Every call re-derives from the stores; there is no shared
// mutable state between invocations.
type DashboardService struct {
	tickets   repository.TicketRepository
	timelines repository.TimelineRepository
	cache     *persistence.Redis
	cacheTTL  time.Duration
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// DashboardDependencies bundles collaborators for the dashboard service.
type DashboardDependencies struct {
	TicketRepo   repository.TicketRepository
	TimelineRepo repository.TimelineRepository
	Cache        *persistence.Redis
	CacheTTL     time.Duration
	Metrics      *observability.Metrics
	Logger       *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	return &DashboardService{
		tickets:   deps.TicketRepo,
		timelines: deps.TimelineRepo,
		cache:     deps.Cache,
		cacheTTL:  deps.CacheTTL,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
	}
}

// Metrics returns the dashboard snapshot, served from cache when fresh.
// Cache failures degrade to recomputation and are never surfaced.
func (s *DashboardService) Metrics(ctx context.Context) (domain.MetricsSnapshot, error) {
	if cached, ok := s.cachedSnapshot(ctx); ok {
		return cached, nil
	}

	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return domain.MetricsSnapshot{}, err
	}
	timelines, err := s.fetchTimelines(ctx, tickets)
	if err != nil {
		return domain.MetricsSnapshot{}, err
	}

	s.countExclusions(tickets)
	snapshot := analytics.Summarize(tickets, timelines)
	s.storeSnapshot(ctx, snapshot)
	return snapshot, nil
}

// Trends returns the ticket volume trend series.
func (s *DashboardService) Trends(ctx context.Context, granularity analytics.Granularity, count int) ([]domain.TrendBucket, error) {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Trends(tickets, granularity, count), nil
}

// Categories returns the category distribution.
func (s *DashboardService) Categories(ctx context.Context) ([]domain.CategoryBucket, error) {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.CategoryDistribution(tickets), nil
}

// fetchTimelines fans out one timeline read per ticket with bounded
// concurrency. Any fetch failure or a cancelled context aborts the whole
// computation; a partial map never escapes.
func (s *DashboardService) fetchTimelines(ctx context.Context, tickets []domain.Ticket) (map[string][]domain.TimelineEntry, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(timelineFetchConcurrency)

	var mu sync.Mutex
	timelines := make(map[string][]domain.TimelineEntry, len(tickets))
	for _, ticket := range tickets {
		id := ticket.ID
		g.Go(func() error {
			entries, err := s.timelines.ListByTicket(ctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			timelines[id] = entries
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return timelines, nil
}

func (s *DashboardService) countExclusions(tickets []domain.Ticket) {
	if s.metrics == nil {
		return
	}
	excluded := 0
	for _, t := range tickets {
		if t.CreatedAt == nil || t.UpdatedAt == nil {
			excluded++
		}
	}
	if excluded > 0 {
		s.metrics.RecordExcluded("tickets", excluded)
	}
}

func (s *DashboardService) cachedSnapshot(ctx context.Context) (domain.MetricsSnapshot, bool) {
	if s.cache == nil || s.cache.Client == nil || s.cacheTTL <= 0 {
		return domain.MetricsSnapshot{}, false
	}
	raw, err := s.cache.Client.Get(ctx, metricsCacheKey).Bytes()
	if err != nil {
		return domain.MetricsSnapshot{}, false
	}
	var snapshot domain.MetricsSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return domain.MetricsSnapshot{}, false
	}
	return snapshot, true
}

func (s *DashboardService) storeSnapshot(ctx context.Context, snapshot domain.MetricsSnapshot) {
	if s.cache == nil || s.cache.Client == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, metricsCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("dashboard cache write failed", zap.Error(err))
	}
}
