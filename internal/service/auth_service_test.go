package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"madrasa/course-admin/internal/domain"
)

const testSecret = "test-secret"

func TestAuthService_Register(t *testing.T) {
	adminRepo := &mockAdminRepository{}
	svc := NewAuthService(adminRepo, testSecret, time.Hour)

	admin, err := svc.Register(context.Background(), "Admin", "admin@example.com", "password123")

	assert.NoError(t, err)
	assert.False(t, admin.ID.IsZero())
	assert.Equal(t, "admin@example.com", admin.Email)
	// The hash must verify and must not be the raw password.
	assert.NotEqual(t, "password123", admin.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("password123")))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	adminRepo := &mockAdminRepository{admin: &domain.Admin{ID: primitive.NewObjectID(), Email: "admin@example.com"}}
	svc := NewAuthService(adminRepo, testSecret, time.Hour)

	_, err := svc.Register(context.Background(), "Admin", "admin@example.com", "password123")

	assert.ErrorIs(t, err, ErrAdminAlreadyExists)
}

func TestAuthService_Register_EmptyFields(t *testing.T) {
	svc := NewAuthService(&mockAdminRepository{}, testSecret, time.Hour)

	_, err := svc.Register(context.Background(), "", "admin@example.com", "password123")

	assert.Error(t, err)
}

func TestAuthService_Login(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	admin := &domain.Admin{ID: primitive.NewObjectID(), Email: "admin@example.com", PasswordHash: string(hash)}
	svc := NewAuthService(&mockAdminRepository{admin: admin}, testSecret, time.Hour)

	token, loggedIn, err := svc.Login(context.Background(), "admin@example.com", "password123")

	assert.NoError(t, err)
	assert.Equal(t, admin.ID, loggedIn.ID)

	// The token must verify with the same secret and carry the admin id.
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, admin.ID.Hex(), claims["uid"])
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	admin := &domain.Admin{ID: primitive.NewObjectID(), Email: "admin@example.com", PasswordHash: string(hash)}
	svc := NewAuthService(&mockAdminRepository{admin: admin}, testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "admin@example.com", "wrong")

	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(&mockAdminRepository{}, testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "password123")

	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestNewAuthService_PanicsOnEmptySecret(t *testing.T) {
	assert.Panics(t, func() {
		NewAuthService(&mockAdminRepository{}, "", time.Hour)
	})
}
