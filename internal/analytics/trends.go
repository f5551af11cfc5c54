package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/spec-kit/helpdesk-analytics/internal/domain"
)

// Granularity selects the calendar period used for trend bucketing.
type Granularity string

const (
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Valid reports whether the granularity is a known value.
func (g Granularity) Valid() bool {
	return g == GranularityWeek || g == GranularityMonth
}

// Trends buckets tickets into calendar periods by creation time and
// returns the most recent count buckets in ascending period order.
//
// A ticket always increments the created counter of its creation-period
// bucket. A resolved ticket additionally increments the resolved counter
// of that same creation-period bucket: resolved counts are cohort
// semantics ("created in period X and since resolved"), not "resolved
// during period X". Tickets without a usable creation instant are
// excluded entirely.
func Trends(tickets []domain.Ticket, granularity Granularity, count int) []domain.TrendBucket {
	if count <= 0 {
		return []domain.TrendBucket{}
	}
	buckets := make(map[string]*domain.TrendBucket)
	for _, t := range tickets {
		if t.CreatedAt == nil {
			continue
		}
		key := PeriodKey(*t.CreatedAt, granularity)
		b, ok := buckets[key]
		if !ok {
			b = &domain.TrendBucket{PeriodKey: key}
			buckets[key] = b
		}
		b.Created++
		if t.Resolved() {
			b.Resolved++
		}
	}

	out := make([]domain.TrendBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PeriodKey < out[j].PeriodKey })
	if len(out) > count {
		out = out[len(out)-count:]
	}
	return out
}

// PeriodKey renders the bucket key for an instant. Month keys are
// "YYYY-MM". Week keys are "YYYY-Wnn" with nn derived from day-of-year
// in fixed seven-day slices; this is a simplification, not ISO-8601
// week numbering.
func PeriodKey(t time.Time, granularity Granularity) string {
	if granularity == GranularityWeek {
		week := (t.YearDay()-1)/7 + 1
		return fmt.Sprintf("%04d-W%02d", t.Year(), week)
	}
	return t.Format("2006-01")
}
