package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shophub/storefront/internal/core/domain"
	"github.com/shophub/storefront/internal/core/ports"
)

// SessionStore owns the authenticated session for the life of the process.
// It is the only writer; the guard and the catalog loader read through
// ports.SessionReader.
type SessionStore struct {
	gateway ports.AuthGateway
	log     zerolog.Logger

	mu      sync.RWMutex
	session *domain.Session
}

func NewSessionStore(gateway ports.AuthGateway, log zerolog.Logger) *SessionStore {
	return &SessionStore{gateway: gateway, log: log}
}

// SignIn authenticates against the remote service and holds the returned
// session. On any failure the held session is left as it was.
func (s *SessionStore) SignIn(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	reply, err := s.gateway.SignIn(ctx, creds)
	if err != nil {
		s.log.Warn().Err(err).Str("op", "signin").Msg("remote sign-in failed")
		return nil, domain.NewAuthError("", err)
	}
	if !reply.Success {
		s.log.Warn().Str("op", "signin").Str("message", reply.Message).Msg("sign-in rejected")
		return nil, domain.NewAuthError(reply.Message, nil)
	}
	if len(reply.User) == 0 || string(reply.User) == "null" {
		return nil, domain.NewAuthError("sign-in response did not include a user", nil)
	}

	session, err := domain.NewSession(reply.User)
	if err != nil {
		s.log.Warn().Err(err).Str("op", "signin").Msg("unreadable session user")
		return nil, domain.NewAuthError("", err)
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	s.log.Info().Str("op", "signin").Bool("has_token", session.Token != "").Msg("session established")
	return session, nil
}

// SignUp creates a remote account and returns the service's message. It never
// establishes a session.
func (s *SessionStore) SignUp(ctx context.Context, profile domain.Profile) (string, error) {
	reply, err := s.gateway.SignUp(ctx, profile)
	if err != nil {
		s.log.Warn().Err(err).Str("op", "signup").Msg("remote sign-up failed")
		return "", domain.NewAuthError("", err)
	}
	if !reply.Success {
		s.log.Warn().Str("op", "signup").Str("message", reply.Message).Msg("sign-up rejected")
		return "", domain.NewAuthError(reply.Message, nil)
	}
	s.log.Info().Str("op", "signup").Msg("account created")
	return reply.Message, nil
}

// IsAuthenticated reports whether a session is currently held.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil
}

// Current returns the held session, if any.
func (s *SessionStore) Current() (*domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, s.session != nil
}

// SignOut drops the held session. Calling it without a session is a no-op.
func (s *SessionStore) SignOut() {
	s.mu.Lock()
	had := s.session != nil
	s.session = nil
	s.mu.Unlock()

	if had {
		s.log.Info().Str("op", "signout").Msg("session cleared")
	}
}

// IsAuthError reports whether err is an AuthError and returns it.
func IsAuthError(err error) (*domain.AuthError, bool) {
	var ae *domain.AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
