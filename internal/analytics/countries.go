package analytics

import (
	"sort"
	"strings"
	"time"

	"madrasa/course-admin/internal/domain"
)

// CountryCount is one row of the geographic activity chart.
type CountryCount struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TallyByCountry groups users by country code, counting only users whose
// most recent activity (last login when present, otherwise creation) falls
// within [now-window, now]. Users lacking both timestamps or lacking a
// country code are excluded. Codes are uppercased before grouping. The
// result is sorted by count descending; ties keep the scan order of the
// input, which is the only tie-break guarantee made.
func TallyByCountry(users []domain.User, window time.Duration, now time.Time) []CountryCount {
	cutoff := now.Add(-window).UnixMilli()
	nowMillis := now.UnixMilli()

	index := make(map[string]int)
	var tallies []CountryCount
	for _, user := range users {
		activity, ok := NormalizeTimestamp(user.LastLoginAt)
		if !ok {
			activity, ok = NormalizeTimestamp(user.CreatedAt)
		}
		if !ok || activity < cutoff || activity > nowMillis {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(user.CountryCode))
		if code == "" {
			continue
		}
		if i, seen := index[code]; seen {
			tallies[i].Count++
			continue
		}
		index[code] = len(tallies)
		tallies = append(tallies, CountryCount{
			Code:  code,
			Name:  strings.TrimSpace(user.CountryName),
			Count: 1,
		})
	}

	sort.SliceStable(tallies, func(i, j int) bool {
		return tallies[i].Count > tallies[j].Count
	})
	return tallies
}
