package session

import (
	"context"
	"errors"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/token"
)

var ErrNoToken = errors.New("no token received")

// API is the slice of the upstream client the auth flows need.
type API interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, name, email, password string) error
}

// Service runs the auth flows. It writes only the bearer token to the
// store; everything else is re-derived from it.
type Service struct {
	api    API
	tokens *token.Store
}

func NewService(api API, tokens *token.Store) *Service {
	return &Service{api: api, tokens: tokens}
}

// Current re-derives the session from the stored token.
func (s *Service) Current() *domain.Session {
	return Derive(s.tokens.Get())
}

func (s *Service) Login(ctx context.Context, email, password string) error {
	tok, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if tok == "" {
		return ErrNoToken
	}
	s.tokens.Set(tok)
	return nil
}

func (s *Service) Register(ctx context.Context, name, email, password string) error {
	return s.api.Register(ctx, name, email, password)
}

// AcceptOAuthToken stores the token handed back on the OAuth callback
// route as a URL parameter.
func (s *Service) AcceptOAuthToken(tok string) error {
	if tok == "" {
		return ErrNoToken
	}
	s.tokens.Set(tok)
	return nil
}

// Logout clears the persisted token; the next derivation is anonymous.
func (s *Service) Logout() {
	s.tokens.Clear()
}
