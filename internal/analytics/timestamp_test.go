package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeTimestamp_NumericEpochs(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   int64
		wantOK bool
	}{
		{"epoch millis int64", int64(1700000000000), 1700000000000, true},
		{"epoch seconds int64 scaled up", int64(1700000000), 1700000000000, true},
		{"epoch seconds float64", float64(1700000000), 1700000000000, true},
		{"epoch seconds int", 1700000000, 1700000000000, true},
		{"zero", int64(0), 0, false},
		{"negative", int64(-5), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeTimestamp(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeTimestamp_SecondsAndMillisAgree(t *testing.T) {
	asMillis, okMillis := NormalizeTimestamp(int64(1700000000000))
	asSeconds, okSeconds := NormalizeTimestamp(int64(1700000000))
	assert.True(t, okMillis)
	assert.True(t, okSeconds)
	assert.Equal(t, asMillis, asSeconds)
}

func TestNormalizeTimestamp_SecondsDocuments(t *testing.T) {
	want := int64(1700000000000) + 500

	got, ok := NormalizeTimestamp(map[string]any{"seconds": int64(1700000000), "nanoseconds": int64(500_000_000)})
	assert.True(t, ok)
	assert.Equal(t, want, got)

	got, ok = NormalizeTimestamp(primitive.M{"seconds": float64(1700000000), "nanoseconds": float64(500_000_000)})
	assert.True(t, ok)
	assert.Equal(t, want, got)

	got, ok = NormalizeTimestamp(primitive.D{{Key: "seconds", Value: int64(1700000000)}})
	assert.True(t, ok)
	assert.Equal(t, int64(1700000000000), got)

	_, ok = NormalizeTimestamp(map[string]any{"nanoseconds": int64(12)})
	assert.False(t, ok)

	_, ok = NormalizeTimestamp(map[string]any{"seconds": "not a number"})
	assert.False(t, ok)
}

func TestNormalizeTimestamp_BSONAndTime(t *testing.T) {
	instant := time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)

	got, ok := NormalizeTimestamp(instant)
	assert.True(t, ok)
	assert.Equal(t, instant.UnixMilli(), got)

	got, ok = NormalizeTimestamp(primitive.NewDateTimeFromTime(instant))
	assert.True(t, ok)
	assert.Equal(t, instant.UnixMilli(), got)

	_, ok = NormalizeTimestamp(time.Time{})
	assert.False(t, ok)
}

func TestNormalizeTimestamp_Strings(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		wantOK bool
	}{
		{"rfc3339", "2024-03-15T09:30:00Z", true},
		{"date only", "2024-03-15", true},
		{"space separated", "2024-03-15 09:30:00", true},
		{"numeric seconds", "1700000000", true},
		{"numeric millis", "1700000000000", true},
		{"empty", "", false},
		{"blank", "   ", false},
		{"garbage", "not-a-date", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := NormalizeTimestamp(tt.value)
			assert.Equal(t, tt.wantOK, ok)
		})
	}

	got, ok := NormalizeTimestamp("1700000000")
	assert.True(t, ok)
	assert.Equal(t, int64(1700000000000), got)
}

func TestNormalizeTimestamp_UnsupportedValues(t *testing.T) {
	for _, value := range []any{nil, true, []int{1}, struct{}{}} {
		_, ok := NormalizeTimestamp(value)
		assert.False(t, ok, "value %#v should not resolve", value)
	}
}
