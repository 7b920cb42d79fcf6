package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"madrasa/course-admin/internal/domain"
	"madrasa/course-admin/internal/repository"
)

// UserSummary is a learner row joined with their derived attempt counts.
type UserSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	Email        string `json:"email"`
	VideoQuizzes int    `json:"videoQuizzes"`
	FinalQuizzes int    `json:"finalQuizzes"`
}

// UserService exposes learner listings for the admin panel.
type UserService interface {
	ListUsers(ctx context.Context) ([]UserSummary, error)
}

// userService implements the UserService interface.
type userService struct {
	userRepo    repository.UserRepository
	attemptRepo repository.AttemptRepository
	logger      *zap.Logger
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository, attemptRepo repository.AttemptRepository, logger *zap.Logger) UserService {
	return &userService{
		userRepo:    userRepo,
		attemptRepo: attemptRepo,
		logger:      logger,
	}
}

type attemptCounts struct {
	video int
	final int
}

// ListUsers joins each user with their quiz attempt counts. Counts are
// computed from the attempt log on every call; they are never stored on the
// user document.
func (s *userService) ListUsers(ctx context.Context) ([]UserSummary, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	attempts, err := s.attemptRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	countsByUser := make(map[string]attemptCounts)
	for _, attempt := range attempts {
		userID := strings.TrimSpace(attempt.UserID)
		if userID == "" {
			continue
		}
		counts := countsByUser[userID]
		if strings.TrimSpace(attempt.Type) == domain.AttemptTypeFinal {
			counts.final++
		} else {
			counts.video++
		}
		countsByUser[userID] = counts
	}

	summaries := make([]UserSummary, len(users))
	for i, user := range users {
		counts := countsByUser[user.ID]
		summaries[i] = UserSummary{
			ID:           user.ID,
			Name:         user.Name,
			Surname:      user.Surname,
			Email:        user.Email,
			VideoQuizzes: counts.video,
			FinalQuizzes: counts.final,
		}
	}
	return summaries, nil
}
