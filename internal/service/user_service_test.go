package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"madrasa/course-admin/internal/domain"
)

func TestUserService_ListUsers(t *testing.T) {
	userRepo := &mockUserRepository{users: []domain.User{
		{ID: "u1", Name: "أحمد", Email: "ahmed@example.com"},
		{ID: "u2", Name: "سارة"},
	}}
	attemptRepo := &mockAttemptRepository{attempts: []domain.QuizAttempt{
		{UserID: "u1", Type: domain.AttemptTypeVideo},
		{UserID: "u1", Type: domain.AttemptTypeVideo},
		{UserID: "u1", Type: domain.AttemptTypeFinal},
		{UserID: "u2", Type: ""},              // untyped attempts count as video
		{UserID: "", Type: "video"},           // orphaned attempt ignored
		{UserID: "u-gone", Type: "final"},     // attempt for a deleted user
	}}

	svc := NewUserService(userRepo, attemptRepo, zap.NewNop())
	summaries, err := svc.ListUsers(context.Background())

	assert.NoError(t, err)
	assert.Len(t, summaries, 2)
	assert.Equal(t, 2, summaries[0].VideoQuizzes)
	assert.Equal(t, 1, summaries[0].FinalQuizzes)
	assert.Equal(t, 1, summaries[1].VideoQuizzes)
	assert.Equal(t, 0, summaries[1].FinalQuizzes)
}

func TestUserService_ListUsers_NoAttempts(t *testing.T) {
	userRepo := &mockUserRepository{users: []domain.User{{ID: "u1"}}}
	svc := NewUserService(userRepo, &mockAttemptRepository{}, zap.NewNop())

	summaries, err := svc.ListUsers(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, summaries[0].VideoQuizzes)
	assert.Equal(t, 0, summaries[0].FinalQuizzes)
}

func TestUserService_ListUsers_RepoError(t *testing.T) {
	boom := errors.New("scan failed")
	svc := NewUserService(&mockUserRepository{err: boom}, &mockAttemptRepository{}, zap.NewNop())

	_, err := svc.ListUsers(context.Background())

	assert.ErrorIs(t, err, boom)
}
