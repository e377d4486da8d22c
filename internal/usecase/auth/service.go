// Package auth registers users, issues bearer tokens and locks out
// usernames after repeated failed logins.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kailas-cloud/careersetu/internal/domain"
	"github.com/kailas-cloud/careersetu/internal/domain/account"
	"github.com/kailas-cloud/careersetu/internal/metrics"
)

// Config holds authentication settings.
type Config struct {
	Secret            string
	TokenTTL          time.Duration
	BcryptCost        int
	MaxFailedLogins   int
	MinPasswordLength int
}

// Service implements signup, login and token authentication.
type Service struct {
	users    Users
	attempts Attempts
	tokens   tokens
	cfg      Config
	logger   *zap.Logger
}

// New creates the auth service. The secret must not be empty.
func New(users Users, attempts Attempts, cfg Config, logger *zap.Logger) (*Service, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		users:    users,
		attempts: attempts,
		tokens:   tokens{secret: []byte(cfg.Secret), ttl: cfg.TokenTTL, now: time.Now},
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Signup registers a user and returns a token for them.
func (s *Service) Signup(ctx context.Context, username, email, password string) (Token, error) {
	if err := account.ValidateSignup(username, email, password, s.cfg.MinPasswordLength); err != nil {
		return Token{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return Token{}, domain.NewValidation("password", "is too long")
		}
		return Token{}, fmt.Errorf("hash password: %w", err)
	}

	u := account.User{
		ID:           uuid.NewString(),
		Username:     account.NormalizeUsername(username),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return Token{}, err
	}

	s.logger.Info("User registered", zap.String("user_id", u.ID), zap.String("username", u.Username))
	return s.tokens.issue(u.ID, u.Username)
}

// Login checks credentials. After MaxFailedLogins failures within the
// lockout window every attempt fails with domain.ErrTooManyAttempts.
func (s *Service) Login(ctx context.Context, username, password string) (Token, error) {
	name := account.NormalizeUsername(username)

	n, err := s.attempts.Count(ctx, name)
	if err != nil {
		return Token{}, fmt.Errorf("count failed logins: %w", err)
	}
	if s.cfg.MaxFailedLogins > 0 && n >= int64(s.cfg.MaxFailedLogins) {
		return Token{}, domain.ErrTooManyAttempts
	}

	u, err := s.users.GetByUsername(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Token{}, s.fail(ctx, name)
		}
		return Token{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Token{}, s.fail(ctx, name)
	}

	if err := s.attempts.Reset(ctx, name); err != nil {
		s.logger.Warn("Failed to reset login failures", zap.String("username", name), zap.Error(err))
	}
	return s.tokens.issue(u.ID, u.Username)
}

// fail records a failed login and returns the error reported to the caller.
func (s *Service) fail(ctx context.Context, username string) error {
	metrics.FailedLoginsTotal.Inc()
	n, err := s.attempts.Fail(ctx, username)
	if err != nil {
		s.logger.Warn("Failed to record login failure", zap.String("username", username), zap.Error(err))
		return domain.ErrUnauthorized
	}
	if s.cfg.MaxFailedLogins > 0 && n == int64(s.cfg.MaxFailedLogins) {
		s.logger.Warn("Username locked out", zap.String("username", username), zap.Int64("failures", n))
	}
	return domain.ErrUnauthorized
}

// Authenticate resolves a bearer token to its user. The user is loaded from
// the store on every call.
func (s *Service) Authenticate(ctx context.Context, raw string) (account.User, error) {
	claims, err := s.tokens.parse(raw)
	if err != nil {
		return account.User{}, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	u, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return account.User{}, domain.ErrUnauthorized
		}
		return account.User{}, err
	}
	return u, nil
}
