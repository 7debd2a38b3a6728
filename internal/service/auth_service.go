package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campus-it/lab-support/internal/auth"
	"github.com/campus-it/lab-support/internal/config"
	"github.com/campus-it/lab-support/internal/domain"
	"github.com/campus-it/lab-support/internal/repository"
	apperrors "github.com/campus-it/lab-support/pkg/util/errorutil"
)

// AuthService coordinates login and account lookups.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login verifies credentials and returns the public user plus a bearer
// token. Unknown id and wrong password produce the same generic error so the
// response does not leak which one was wrong.
func (s *AuthService) Login(ctx context.Context, userID, password string) (*domain.User, string, time.Time, error) {
	invalid := apperrors.NewUnauthorized("invalid user id or password")

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, invalid
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, invalid
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	public := user.Public()
	return &public, token, exp, nil
}

// ChangePassword rehashes and stores a new password for the user.
func (s *AuthService) ChangePassword(ctx context.Context, userID, password string) error {
	if userID == "" || password == "" {
		return apperrors.NewValidationError("user_id, password required", nil)
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// Users lists all accounts with public fields only.
func (s *AuthService) Users(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return publicUsers(users), nil
}

// TechnicalMembers lists technical staff with public fields only.
func (s *AuthService) TechnicalMembers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListByRole(ctx, domain.RoleTechnicalMember)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(users) == 0 {
		return nil, apperrors.NewNotFound("technical members", nil)
	}
	return publicUsers(users), nil
}

// UserByID returns one account's public fields.
func (s *AuthService) UserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}
	public := user.Public()
	return &public, nil
}

func publicUsers(users []domain.User) []domain.User {
	result := make([]domain.User, 0, len(users))
	for i := range users {
		result = append(result, users[i].Public())
	}
	return result
}
