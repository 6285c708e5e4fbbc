package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ZeynepCam13/OnlineDestek/internal/auth"
	"github.com/ZeynepCam13/OnlineDestek/internal/config"
	"github.com/ZeynepCam13/OnlineDestek/internal/domain"
	"github.com/ZeynepCam13/OnlineDestek/internal/repository"
	"github.com/ZeynepCam13/OnlineDestek/internal/session"
	apperrors "github.com/ZeynepCam13/OnlineDestek/pkg/util"
)

const minPasswordLength = 6

// RegisterInput carries the registration payload.
type RegisterInput struct {
	FullName string
	Email    string
	Phone    string
	Username string
	Password string
}

// AuthService coordinates registration, login and session flows.
type AuthService struct {
	users      repository.UserRepository
	sessions   session.Manager
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Sessions session.Manager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.Sessions,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new user account and returns its id. Duplicate
// usernames and emails surface from the store's unique constraints rather
// than a pre-check, so concurrent registrations cannot race past each other.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (int64, error) {
	if input.FullName == "" || input.Email == "" || input.Phone == "" ||
		input.Username == "" || input.Password == "" {
		return 0, apperrors.NewValidationError("all fields are required")
	}
	if len(input.Password) < minPasswordLength {
		return 0, apperrors.NewValidationError("password must be at least 6 characters")
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return 0, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		FullName:     input.FullName,
		Email:        input.Email,
		Phone:        input.Phone,
		Username:     input.Username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return 0, apperrors.NewConflict("username or email already exists")
		}
		return 0, apperrors.NewInternalError(err)
	}
	return user.ID, nil
}

// Login verifies credentials and establishes a session. The failure message
// is identical for an unknown username and a wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.NewAuthenticationError("invalid username or password")
		}
		return nil, "", apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", apperrors.NewAuthenticationError("invalid username or password")
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}
	return user, token, nil
}

// Logout destroys the session. It is idempotent for an already-absent
// session; only a collaborator failure is an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, token); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Profile loads the account behind the session's user id.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthenticated("login required")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}
