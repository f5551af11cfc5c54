package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/helpdesk-analytics/internal/domain"
)

func ticketWithCategory(id, category string) domain.Ticket {
	return domain.Ticket{ID: id, Category: category, Status: domain.TicketStatusOpen}
}

func TestCategoryDistributionEmpty(t *testing.T) {
	assert.Equal(t, []domain.CategoryBucket{}, CategoryDistribution(nil))
}

func TestCategoryDistributionFirstSeenTieBreak(t *testing.T) {
	tickets := []domain.Ticket{
		ticketWithCategory("a", "telephony"),
		ticketWithCategory("b", "cctv"),
	}

	got := CategoryDistribution(tickets)

	assert.Equal(t, []domain.CategoryBucket{
		{Category: "Telephony", Count: 1, Percentage: 50.0},
		{Category: "CCTV", Count: 1, Percentage: 50.0},
	}, got)
}

func TestCategoryDistributionSortsByCountDesc(t *testing.T) {
	tickets := []domain.Ticket{
		ticketWithCategory("a", "network"),
		ticketWithCategory("b", "cctv"),
		ticketWithCategory("c", "cctv"),
		ticketWithCategory("d", "cctv"),
		ticketWithCategory("e", "network"),
		ticketWithCategory("f", ""),
	}

	got := CategoryDistribution(tickets)

	assert.Equal(t, "CCTV", got[0].Category)
	assert.Equal(t, 3, got[0].Count)
	assert.Equal(t, "Network", got[1].Category)
	assert.Equal(t, "Uncategorized", got[2].Category)
	assert.Equal(t, 50.0, got[0].Percentage)
}

func TestCategoryDistributionUnknownKeyCapitalized(t *testing.T) {
	got := CategoryDistribution([]domain.Ticket{ticketWithCategory("a", "plumbing")})
	assert.Equal(t, "Plumbing", got[0].Category)
	assert.Equal(t, 100.0, got[0].Percentage)
}

func TestCategoryDistributionPercentagesRoughlySum(t *testing.T) {
	tickets := []domain.Ticket{
		ticketWithCategory("a", "cctv"),
		ticketWithCategory("b", "network"),
		ticketWithCategory("c", "telephony"),
	}

	got := CategoryDistribution(tickets)

	var sum float64
	for _, b := range got {
		sum += b.Percentage
	}
	// Independent rounding: tolerance is 0.1 per bucket, no renormalization.
	assert.LessOrEqual(t, math.Abs(sum-100), 0.1*float64(len(got)))
}
