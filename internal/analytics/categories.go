package analytics

import (
	"sort"
	"strings"

	"github.com/spec-kit/helpdesk-analytics/internal/domain"
)

const uncategorizedKey = "uncategorized"

// categoryLabels maps known category keys to display labels. Unknown
// non-empty keys fall back to verbatim capitalization.
var categoryLabels = map[string]string{
	"telephony":      "Telephony",
	"cctv":           "CCTV",
	"network":        "Network",
	"access_control": "Access Control",
	"alarm":          "Alarm Systems",
	"maintenance":    "Maintenance",
	"other":          "Other",
	uncategorizedKey: "Uncategorized",
}

// CategoryDistribution counts tickets per category and returns buckets
// sorted by count descending; ties keep first-seen category order.
// Percentages are rounded to one decimal independently, so the column
// may sum to 99.9 or 100.1. An empty snapshot yields an empty slice.
func CategoryDistribution(tickets []domain.Ticket) []domain.CategoryBucket {
	total := len(tickets)
	if total == 0 {
		return []domain.CategoryBucket{}
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0
	for _, t := range tickets {
		key := strings.TrimSpace(t.Category)
		if key == "" {
			key = uncategorizedKey
		}
		if _, ok := counts[key]; !ok {
			firstSeen[key] = order
			order++
		}
		counts[key]++
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return firstSeen[keys[i]] < firstSeen[keys[j]]
	})

	out := make([]domain.CategoryBucket, 0, len(keys))
	for _, key := range keys {
		out = append(out, domain.CategoryBucket{
			Category:   CategoryLabel(key),
			Count:      counts[key],
			Percentage: round1(float64(counts[key]) / float64(total) * 100),
		})
	}
	return out
}

// CategoryLabel resolves the display label for a category key.
func CategoryLabel(key string) string {
	if key == "" {
		key = uncategorizedKey
	}
	if label, ok := categoryLabels[strings.ToLower(key)]; ok {
		return label
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
