// Package service authenticates portal users and manages their sessions.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"vedo/internal/auth/models"
	"vedo/internal/auth/store"
	"vedo/internal/sentinel"
	id "vedo/pkg/domain"
	dErrors "vedo/pkg/domain-errors"
)

// Service handles login and account lookup.
type Service struct {
	users  store.UserStore
	tokens *TokenService
	logger *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(users store.UserStore, tokens *TokenService, opts ...Option) *Service {
	s := &Service{users: users, tokens: tokens}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login authenticates by email and password and returns a signed access
// token. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", dErrors.New(dErrors.CodeValidation, "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, "", invalidCredentials()
		}
		return nil, "", dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load user")
	}

	if !user.CheckPassword(password) {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "failed login attempt", "email", email)
		}
		return nil, "", invalidCredentials()
	}

	token, err := s.tokens.IssueToken(user, time.Now().UTC())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Me returns the account for an authenticated user ID.
func (s *Service) Me(ctx context.Context, userID id.UserID) (*models.User, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user ID required")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load user")
	}
	return user, nil
}

// Verifier exposes token verification for the HTTP middleware.
func (s *Service) Verifier() *TokenService {
	return s.tokens
}

func invalidCredentials() error {
	return dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
}
