package services

import (
	"context"
	"time"

	"studyspace-client/internal/adapters/remote"
	"studyspace-client/internal/adapters/storage"
	"studyspace-client/internal/core/domain"
	"studyspace-client/internal/pkg/jwt"

	"go.uber.org/zap"
)

// SessionService owns login, registration and session teardown
type SessionService struct {
	api   remote.AuthAPI
	store storage.SessionStore
	log   *zap.Logger
}

// NewSessionService creates a new session service
func NewSessionService(api remote.AuthAPI, store storage.SessionStore, log *zap.Logger) *SessionService {
	return &SessionService{
		api:   api,
		store: store,
		log:   log,
	}
}

// Login authenticates and populates the session atomically on success.
// Empty fields are rejected before any network call.
func (s *SessionService) Login(ctx context.Context, identifier, password string) (domain.Session, error) {
	if identifier == "" || password == "" {
		return domain.Session{}, domain.ErrMissingCredentials
	}

	result, err := s.api.Login(ctx, identifier, password)
	if err != nil {
		return domain.Session{}, err
	}

	session := domain.Session{
		Username: result.Username,
		FullName: result.FullName,
		Token:    result.Token,
	}
	if err := s.store.Write(session); err != nil {
		return domain.Session{}, err
	}

	s.log.Info("logged in", zap.String("username", session.Username))
	return session, nil
}

// Register creates an account. The password confirmation check runs client
// side; everything else is the server's call. A nil return tells the caller
// to navigate back to the login entry point.
func (s *SessionService) Register(ctx context.Context, input remote.RegisterInput) error {
	if input.Password != input.ConfirmPassword {
		return domain.ErrPasswordMismatch
	}

	return s.api.Register(ctx, input)
}

// Logout clears the session synchronously and unconditionally. Local only,
// so it works with the service unreachable.
func (s *SessionService) Logout() error {
	err := s.store.Clear()
	if err == nil {
		s.log.Info("logged out")
	}
	return err
}

// Current returns the stored session, zero when logged out
func (s *SessionService) Current() (domain.Session, error) {
	return s.store.Read()
}

// TokenExpired reports whether the stored token's expiry has passed. Tokens
// without a readable expiry count as expired; the server re-checks anyway.
func (s *SessionService) TokenExpired(now time.Time) bool {
	session, err := s.store.Read()
	if err != nil || session.Token == "" {
		return true
	}
	expiry, err := jwt.PeekExpiry(session.Token)
	if err != nil || expiry.IsZero() {
		return true
	}
	return now.After(expiry)
}
