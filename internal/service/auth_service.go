package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"madrasa/course-admin/internal/domain"
	"madrasa/course-admin/internal/repository"
)

// --- Error Definitions ---
var (
	ErrAdminAlreadyExists   = errors.New("admin with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// AuthService authenticates control-panel operators.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.Admin, error)
	Login(ctx context.Context, email, password string) (token string, admin *domain.Admin, err error)
}

// authService implements the AuthService interface.
type authService struct {
	adminRepo     repository.AdminRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(adminRepo repository.AdminRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 1
	}
	return &authService{
		adminRepo:     adminRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register creates a new admin account. Only reachable by an already
// authenticated admin; there is no open signup.
func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.Admin, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email and password cannot be empty")
	}

	_, err := s.adminRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrAdminAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	admin := &domain.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	adminID, err := s.adminRepo.Create(ctx, admin)
	if err != nil {
		return nil, err
	}
	admin.ID = adminID
	return admin, nil
}

// Login verifies the credentials and issues an HS256 JWT.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Admin, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(admin)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}
	return token, admin, nil
}

// generateJWT creates the signed token carrying the admin id.
func (s *authService) generateJWT(admin *domain.Admin) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid": admin.ID.Hex(),
		"iat": now.Unix(),
		"exp": now.Add(s.jwtExpiration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
