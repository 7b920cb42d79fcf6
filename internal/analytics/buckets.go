package analytics

import (
	"fmt"
	"time"
)

// Bucket is a fixed time interval used to group timestamped records for
// charting. Start is inclusive, End exclusive.
type Bucket struct {
	Key   string
	Label string
	Start time.Time
	End   time.Time
}

// Series is one named line of counts aligned with the bucket categories.
type Series struct {
	Name string `json:"name"`
	Data []int  `json:"data"`
}

// DailyBuckets builds `days` contiguous calendar-day buckets ending at the
// day containing `now`, inclusive, in ascending order. Keys are YYYY-MM-DD
// in now's location.
func DailyBuckets(now time.Time, days int) []Bucket {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	buckets := make([]Bucket, 0, days)
	for i := days - 1; i >= 0; i-- {
		start := today.AddDate(0, 0, -i)
		end := start.AddDate(0, 0, 1)
		key := start.Format("2006-01-02")
		buckets = append(buckets, Bucket{Key: key, Label: key, Start: start, End: end})
	}
	return buckets
}

// MonthlyBuckets builds 12 calendar-month buckets ending at the month
// containing `now`. Keys are YYYY-MM.
func MonthlyBuckets(now time.Time) []Bucket {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -11, 0)
	buckets := make([]Bucket, 0, 12)
	for i := 0; i < 12; i++ {
		start := first.AddDate(0, i, 0)
		end := start.AddDate(0, 1, 0)
		key := fmt.Sprintf("%04d-%02d", start.Year(), int(start.Month()))
		buckets = append(buckets, Bucket{Key: key, Label: key, Start: start, End: end})
	}
	return buckets
}

// YearlyBuckets builds 5 calendar-year buckets ending at the year containing
// `now`. Keys are YYYY.
func YearlyBuckets(now time.Time) []Bucket {
	startYear := now.Year() - 4
	buckets := make([]Bucket, 0, 5)
	for i := 0; i < 5; i++ {
		year := startYear + i
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(1, 0, 0)
		key := fmt.Sprintf("%04d", year)
		buckets = append(buckets, Bucket{Key: key, Label: key, Start: start, End: end})
	}
	return buckets
}

// BucketizeByDay counts records into `days` day buckets ending at the day
// containing `now`, split into one series per name in seriesNames. Every
// bucket appears in the output even when empty, so each series carries
// exactly `days` values. A record lands in at most one bucket (by its
// calendar day in now's location) and at most one series (by classify).
// Records with no resolvable timestamp, a day outside the range, or a class
// not listed in seriesNames are dropped silently; they are never an error.
func BucketizeByDay[T any](records []T, days int, now time.Time, seriesNames []string, timestampOf func(T) any, classify func(T) string) ([]string, []Series) {
	buckets := DailyBuckets(now, days)
	return countInto(buckets, now.Location(), records, seriesNames, timestampOf, classify)
}

// BucketizeByMonth counts records into the 12 monthly buckets ending at the
// current month, with the same gap-free guarantee as BucketizeByDay.
func BucketizeByMonth[T any](records []T, now time.Time, seriesName string, timestampOf func(T) any) ([]string, []int) {
	categories, series := countInto(MonthlyBuckets(now), now.Location(), records, []string{seriesName}, timestampOf, func(T) string { return seriesName })
	return categories, series[0].Data
}

// BucketizeByYear counts records into the 5 yearly buckets ending at the
// current year.
func BucketizeByYear[T any](records []T, now time.Time, seriesName string, timestampOf func(T) any) ([]string, []int) {
	categories, series := countInto(YearlyBuckets(now), now.Location(), records, []string{seriesName}, timestampOf, func(T) string { return seriesName })
	return categories, series[0].Data
}

func countInto[T any](buckets []Bucket, loc *time.Location, records []T, seriesNames []string, timestampOf func(T) any, classify func(T) string) ([]string, []Series) {
	counts := make(map[string][]int, len(seriesNames))
	for _, name := range seriesNames {
		counts[name] = make([]int, len(buckets))
	}

	for _, record := range records {
		millis, ok := NormalizeTimestamp(timestampOf(record))
		if !ok {
			continue
		}
		instant := time.UnixMilli(millis).In(loc)
		idx := bucketIndex(buckets, instant)
		if idx < 0 {
			continue
		}
		if data, known := counts[classify(record)]; known {
			data[idx]++
		}
	}

	categories := make([]string, len(buckets))
	for i, b := range buckets {
		categories[i] = b.Label
	}
	series := make([]Series, len(seriesNames))
	for i, name := range seriesNames {
		series[i] = Series{Name: name, Data: counts[name]}
	}
	return categories, series
}

// bucketIndex returns the index of the bucket whose [Start, End) interval
// contains the instant, or -1. Out-of-range records are dropped, never
// clipped into the first or last bucket.
func bucketIndex(buckets []Bucket, instant time.Time) int {
	for i, b := range buckets {
		if !instant.Before(b.Start) && instant.Before(b.End) {
			return i
		}
	}
	return -1
}
