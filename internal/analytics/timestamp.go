package analytics

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Numeric epoch values below this threshold are treated as seconds and
// scaled to milliseconds; values at or above it are already milliseconds.
const epochMillisThreshold = 1_000_000_000_000

// Layouts tried for string timestamps, most specific first.
var stringLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeTimestamp converts the mixed timestamp encodings found in
// imported documents to epoch milliseconds. It accepts BSON datetimes,
// time.Time values, {seconds, nanoseconds} documents, numeric epochs in
// seconds or milliseconds, and parseable date strings. Anything else, and
// anything that resolves to a non-positive instant, reports ok=false so the
// caller can drop the record from aggregation. It never fails.
func NormalizeTimestamp(value any) (millis int64, ok bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case time.Time:
		if v.IsZero() {
			return 0, false
		}
		return v.UnixMilli(), true
	case primitive.DateTime:
		return checked(int64(v))
	case primitive.Timestamp:
		return checked(int64(v.T) * 1000)
	case primitive.D:
		return normalizeSecondsDoc(v.Map())
	case primitive.M:
		return normalizeSecondsDoc(v)
	case map[string]any:
		return normalizeSecondsDoc(v)
	case string:
		return normalizeString(v)
	default:
		if f, isNum := asFloat(value); isNum {
			return checked(scaleEpoch(f))
		}
		return 0, false
	}
}

// normalizeSecondsDoc handles the {seconds, nanoseconds} shape left behind
// by the previous backend's timestamp objects.
func normalizeSecondsDoc(doc map[string]any) (int64, bool) {
	secRaw, exists := doc["seconds"]
	if !exists {
		return 0, false
	}
	sec, isNum := asFloat(secRaw)
	if !isNum {
		return 0, false
	}
	var nanos float64
	if nsRaw, hasNanos := doc["nanoseconds"]; hasNanos {
		nanos, _ = asFloat(nsRaw)
	}
	return checked(int64(sec)*1000 + int64(nanos)/1_000_000)
}

func normalizeString(value string) (int64, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}
	if numeric, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return checked(scaleEpoch(numeric))
	}
	for _, layout := range stringLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return checked(parsed.UnixMilli())
		}
	}
	return 0, false
}

func scaleEpoch(value float64) int64 {
	if value < epochMillisThreshold {
		return int64(value * 1000)
	}
	return int64(value)
}

func checked(millis int64) (int64, bool) {
	if millis <= 0 {
		return 0, false
	}
	return millis, true
}

func asFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
