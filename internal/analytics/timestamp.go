package analytics

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// timeLayouts are tried in order for string inputs. RFC3339Nano-first
// covers the ISO-8601 shapes the upstream stores emit.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// TimeSource is the store-native timestamp shape: any value that can
// surface itself as a time.Time.
type TimeSource interface {
	AsTime() time.Time
}

// Normalize converts a heterogeneous timestamp value into a comparable
// instant. Supported shapes: time.Time and *time.Time, pgtype.Timestamptz,
// ISO-8601 strings, epoch milliseconds (int64/float64/json.Number) and any
// TimeSource. It returns ok=false for nil, blank, invalid or unparseable
// input; callers must exclude such records from time-bound calculations
// rather than substitute a default instant.
func Normalize(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return Normalize(*v)
	case pgtype.Timestamptz:
		if !v.Valid {
			return time.Time{}, false
		}
		return Normalize(v.Time)
	case pgtype.Timestamp:
		if !v.Valid {
			return time.Time{}, false
		}
		return Normalize(v.Time)
	case TimeSource:
		return Normalize(v.AsTime())
	case string:
		return parseString(v)
	case int64:
		return fromMillis(v)
	case int:
		return fromMillis(int64(v))
	case float64:
		return fromMillis(int64(v))
	case json.Number:
		if ms, err := v.Int64(); err == nil {
			return fromMillis(ms)
		}
		return parseString(v.String())
	default:
		return time.Time{}, false
	}
}

func parseString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func fromMillis(ms int64) (time.Time, bool) {
	if ms <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}
