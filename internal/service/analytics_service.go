package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"madrasa/course-admin/internal/analytics"
	"madrasa/course-admin/internal/domain"
	"madrasa/course-admin/internal/repository"
)

// Activity windows for the country chart.
const (
	windowWeek  = 7 * 24 * time.Hour
	windowMonth = 30 * 24 * time.Hour
	windowYear  = 365 * 24 * time.Hour
)

// AttemptsReport is the quiz-attempts chart payload.
type AttemptsReport struct {
	Categories    []string           `json:"categories"`
	Series        []analytics.Series `json:"series"`
	PeriodTotal   int                `json:"periodTotal"`
	TotalAttempts int                `json:"totalAttempts"`
}

// SignupsReport is the new-users chart payload.
type SignupsReport struct {
	Categories  []string           `json:"categories"`
	Series      []analytics.Series `json:"series"`
	TotalUsers  int                `json:"totalUsers"`
	PeriodTotal int                `json:"periodTotal"`
}

// CountriesReport is the geographic activity payload.
type CountriesReport struct {
	Countries  []analytics.CountryCount `json:"countries"`
	TotalUsers int                      `json:"totalUsers"`
}

// AnalyticsService builds the dashboard charts from full collection scans.
// Malformed individual records never fail a report; they are dropped by the
// aggregation. Only a failed scan propagates.
type AnalyticsService interface {
	QuizAttempts(ctx context.Context, rangeParam string) (*AttemptsReport, error)
	UserSignups(ctx context.Context, rangeParam string) (*SignupsReport, error)
	Countries(ctx context.Context, rangeParam string) (*CountriesReport, error)
}

// analyticsService implements the AnalyticsService interface.
type analyticsService struct {
	userRepo    repository.UserRepository
	attemptRepo repository.AttemptRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewAnalyticsService creates a new instance of analyticsService.
func NewAnalyticsService(userRepo repository.UserRepository, attemptRepo repository.AttemptRepository, logger *zap.Logger) AnalyticsService {
	return &analyticsService{
		userRepo:    userRepo,
		attemptRepo: attemptRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// QuizAttempts buckets the attempt log into 7 or 30 daily buckets ending
// today, split into video and final series. Unknown ranges default to 7d,
// matching the dashboard's default tab.
func (s *analyticsService) QuizAttempts(ctx context.Context, rangeParam string) (*AttemptsReport, error) {
	days := 7
	if rangeParam == "30d" {
		days = 30
	}

	attempts, err := s.attemptRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	categories, series := analytics.BucketizeByDay(attempts, days, s.now(),
		[]string{domain.AttemptTypeVideo, domain.AttemptTypeFinal},
		func(a domain.QuizAttempt) any { return a.Timestamp },
		func(a domain.QuizAttempt) string {
			if strings.TrimSpace(a.Type) == domain.AttemptTypeFinal {
				return domain.AttemptTypeFinal
			}
			return domain.AttemptTypeVideo
		},
	)

	report := &AttemptsReport{
		Categories:    categories,
		Series:        series,
		TotalAttempts: len(attempts),
	}
	for _, line := range series {
		for _, value := range line.Data {
			report.PeriodTotal += value
		}
	}
	return report, nil
}

// UserSignups buckets user creation into 12 monthly or 5 yearly buckets. A
// user document without a creation timestamp falls back to the user's
// earliest quiz attempt; users with neither are dropped.
func (s *analyticsService) UserSignups(ctx context.Context, rangeParam string) (*SignupsReport, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	attempts, err := s.attemptRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	earliestAttempt := make(map[string]int64)
	for _, attempt := range attempts {
		userID := strings.TrimSpace(attempt.UserID)
		if userID == "" {
			continue
		}
		millis, ok := analytics.NormalizeTimestamp(attempt.Timestamp)
		if !ok {
			continue
		}
		if existing, seen := earliestAttempt[userID]; !seen || millis < existing {
			earliestAttempt[userID] = millis
		}
	}

	signupOf := func(user domain.User) any {
		if _, ok := analytics.NormalizeTimestamp(user.CreatedAt); ok {
			return user.CreatedAt
		}
		if fallback, ok := earliestAttempt[user.ID]; ok {
			return fallback
		}
		return nil
	}

	var (
		categories []string
		data       []int
	)
	if rangeParam == "yearly" {
		categories, data = analytics.BucketizeByYear(users, s.now(), "New users", signupOf)
	} else {
		categories, data = analytics.BucketizeByMonth(users, s.now(), "New users", signupOf)
	}

	report := &SignupsReport{
		Categories: categories,
		Series:     []analytics.Series{{Name: "New users", Data: data}},
		TotalUsers: len(users),
	}
	for _, value := range data {
		report.PeriodTotal += value
	}
	return report, nil
}

// Countries tallies recently active users per country. The window is 7, 30
// or 365 days; unknown ranges default to the month window.
func (s *analyticsService) Countries(ctx context.Context, rangeParam string) (*CountriesReport, error) {
	window := windowMonth
	switch rangeParam {
	case "week":
		window = windowWeek
	case "year":
		window = windowYear
	}

	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	countries := analytics.TallyByCountry(users, window, s.now())
	if countries == nil {
		countries = []analytics.CountryCount{}
	}
	report := &CountriesReport{Countries: countries}
	for _, country := range countries {
		report.TotalUsers += country.Count
	}
	return report, nil
}
