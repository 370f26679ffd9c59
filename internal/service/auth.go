package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
)

// AuthRepository defines the persistence operations required by the
// authentication service.
type AuthRepository interface {
	// GetUserByEmail fetches the user record for the given email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// RegisterUser creates a new user record.
	RegisterUser(ctx context.Context, id, email string, passwordHash []byte) error
	// CreateSession stores a session token for the user.
	CreateSession(ctx context.Context, token, userID string, expiresAt time.Time) error
	// GetSessionOwner resolves a valid session token to its user id.
	GetSessionOwner(ctx context.Context, token string) (string, error)
	// DeleteSession removes a session token.
	DeleteSession(ctx context.Context, token string) error
}

// AuthService implements login, logout and session resolution.
type AuthService struct {
	repo       AuthRepository
	sessionTTL time.Duration
}

// NewAuthService constructs an AuthService. sessionTTL bounds how long issued
// tokens stay valid.
func NewAuthService(repo AuthRepository, sessionTTL time.Duration) *AuthService {
	return &AuthService{repo: repo, sessionTTL: sessionTTL}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, email, password string) error {
	if email == "" {
		return models.NewValidationError("email", "must not be empty")
	}
	if password == "" {
		return models.NewValidationError("password", "must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.RegisterUser(ctx, uuid.NewString(), email, hash)
}

// Login checks the credentials and issues a session token. Unknown emails and
// wrong passwords both return models.ErrNotFound.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", models.ErrNotFound
	}

	token := uuid.NewString()
	if err := s.repo.CreateSession(ctx, token, user.ID, time.Now().Add(s.sessionTTL)); err != nil {
		return "", err
	}
	return token, nil
}

// Logout invalidates a session token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repo.DeleteSession(ctx, token)
}

// Resolve maps a session token to the owner id. Missing, unknown or expired
// tokens resolve to the empty owner; callers treat that as unauthenticated,
// not as an error.
func (s *AuthService) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", nil
	}
	owner, err := s.repo.GetSessionOwner(ctx, token)
	if errors.Is(err, models.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return owner, nil
}
