package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stampedRecord struct {
	at    any
	class string
}

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestDailyBuckets(t *testing.T) {
	buckets := DailyBuckets(testNow, 7)

	assert.Len(t, buckets, 7)
	assert.Equal(t, "2024-03-09", buckets[0].Key)
	assert.Equal(t, "2024-03-15", buckets[6].Key)
	for _, b := range buckets {
		assert.Equal(t, 24*time.Hour, b.End.Sub(b.Start))
	}
}

func TestMonthlyBuckets(t *testing.T) {
	buckets := MonthlyBuckets(testNow)

	assert.Len(t, buckets, 12)
	assert.Equal(t, "2023-04", buckets[0].Key)
	assert.Equal(t, "2024-03", buckets[11].Key)
}

func TestYearlyBuckets(t *testing.T) {
	buckets := YearlyBuckets(testNow)

	assert.Len(t, buckets, 5)
	assert.Equal(t, "2020", buckets[0].Key)
	assert.Equal(t, "2024", buckets[4].Key)
}

func TestBucketizeByDay_SplitsIntoSeries(t *testing.T) {
	records := []stampedRecord{
		{at: testNow.UnixMilli(), class: "video"},
		{at: testNow.UnixMilli(), class: "video"},
		{at: testNow.UnixMilli(), class: "final"},
		{at: testNow.AddDate(0, 0, -2).UnixMilli(), class: "video"},
	}

	categories, series := BucketizeByDay(records, 7, testNow,
		[]string{"video", "final"},
		func(r stampedRecord) any { return r.at },
		func(r stampedRecord) string { return r.class },
	)

	assert.Len(t, categories, 7)
	assert.Len(t, series, 2)
	assert.Equal(t, "video", series[0].Name)
	assert.Equal(t, "final", series[1].Name)
	assert.Equal(t, []int{0, 0, 0, 0, 1, 0, 2}, series[0].Data)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 1}, series[1].Data)
}

func TestBucketizeByDay_DropsOutOfRangeAndUnresolvable(t *testing.T) {
	records := []stampedRecord{
		{at: testNow.AddDate(0, 0, -30).UnixMilli(), class: "video"}, // too old
		{at: testNow.AddDate(0, 0, 3).UnixMilli(), class: "video"},   // in the future
		{at: nil, class: "video"},
		{at: "garbage", class: "video"},
		{at: testNow.UnixMilli(), class: "unknown-class"},
	}

	_, series := BucketizeByDay(records, 7, testNow,
		[]string{"video"},
		func(r stampedRecord) any { return r.at },
		func(r stampedRecord) string { return r.class },
	)

	// Dropped records are never clipped into the edge buckets.
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0}, series[0].Data)
}

func TestBucketizeByDay_EmptyInputKeepsAllBuckets(t *testing.T) {
	categories, series := BucketizeByDay(nil, 7, testNow,
		[]string{"video", "final"},
		func(r stampedRecord) any { return r.at },
		func(r stampedRecord) string { return r.class },
	)

	assert.Len(t, categories, 7)
	for _, s := range series {
		assert.Len(t, s.Data, 7)
	}
}

func TestBucketizeByMonth(t *testing.T) {
	records := []stampedRecord{
		{at: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{at: time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{at: time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{at: time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC).UnixMilli()}, // before the window
	}

	categories, data := BucketizeByMonth(records, testNow, "New users",
		func(r stampedRecord) any { return r.at },
	)

	assert.Len(t, categories, 12)
	assert.Len(t, data, 12)
	assert.Equal(t, "2024-02", categories[10])
	assert.Equal(t, 2, data[10])
	assert.Equal(t, 1, data[11])
}

func TestBucketizeByYear(t *testing.T) {
	records := []stampedRecord{
		{at: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{at: time.Date(2021, time.July, 1, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{at: time.Date(2021, time.August, 1, 0, 0, 0, 0, time.UTC).UnixMilli()},
	}

	categories, data := BucketizeByYear(records, testNow, "New users",
		func(r stampedRecord) any { return r.at },
	)

	assert.Equal(t, []string{"2020", "2021", "2022", "2023", "2024"}, categories)
	assert.Equal(t, []int{0, 2, 0, 0, 1}, data)
}
