// Package cart keeps the shopper's in-memory cart in step with the
// server's durable one. Mutations are server-first except quantity
// updates, which apply optimistically and fall back to a full resync
// whenever the server disagrees.
package cart

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/session"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/token"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/upstream"
)

const lifecycleFetchTimeout = 5 * time.Second

// API is the slice of the upstream client the synchronizer needs.
type API interface {
	Cart(ctx context.Context) ([]domain.CartLine, error)
	AddToCart(ctx context.Context, productID int64, quantity int) error
	UpdateCartQuantity(ctx context.Context, cartID int64, quantity int) error
	RemoveFromCart(ctx context.Context, cartID int64) error
}

type SessionSource func() *domain.Session

type Synchronizer struct {
	mu      sync.Mutex
	api     API
	session SessionSource
	lines   []domain.CartLine
}

func NewSynchronizer(api API, sessions SessionSource) *Synchronizer {
	return &Synchronizer{api: api, session: sessions}
}

// CoupleTo ties the cart's lifetime to the persisted token: logout clears
// the local list with zero network calls, login triggers a fetch. Cart
// state never survives an identity change.
func (s *Synchronizer) CoupleTo(tokens *token.Store) {
	tokens.Subscribe(func(tok string) {
		if session.Derive(tok) == nil {
			s.Reset()
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), lifecycleFetchTimeout)
		defer cancel()
		if err := s.Fetch(ctx); err != nil {
			log.Printf("cart fetch after login failed: %v", err)
		}
	})
}

// Fetch replaces the local list with the server's cart. An anonymous
// session or an authorization failure resolves to an empty cart rather
// than an error; any other failure also empties the list but is reported.
func (s *Synchronizer) Fetch(ctx context.Context) error {
	if s.session() == nil {
		s.replace(nil)
		return nil
	}

	lines, err := s.api.Cart(ctx)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			s.replace(nil)
			return nil
		}
		log.Printf("cart fetch failed: %v", err)
		s.replace(nil)
		return err
	}

	s.replace(lines)
	return nil
}

// Add sends the mutation and re-derives the whole cart from the server on
// success. Local state is untouched on failure.
func (s *Synchronizer) Add(ctx context.Context, productID int64, quantity int) error {
	if err := s.api.AddToCart(ctx, productID, quantity); err != nil {
		return err
	}
	return s.Fetch(ctx)
}

func (s *Synchronizer) Remove(ctx context.Context, cartID int64) error {
	if err := s.api.RemoveFromCart(ctx, cartID); err != nil {
		return err
	}
	return s.Fetch(ctx)
}

// UpdateQuantity rewrites the line locally before the server call
// resolves. If the call fails the speculative state is discarded by a
// full resync; there is no partial rollback.
func (s *Synchronizer) UpdateQuantity(ctx context.Context, cartID int64, quantity int) error {
	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].CartID == cartID {
			s.lines[i].Quantity = quantity
			s.lines[i].TotalPrice = float64(quantity) * s.lines[i].UnitPrice
		}
	}
	s.mu.Unlock()

	if err := s.api.UpdateCartQuantity(ctx, cartID, quantity); err != nil {
		if ferr := s.Fetch(ctx); ferr != nil {
			log.Printf("cart resync after failed update: %v", ferr)
		}
		return err
	}
	return nil
}

// Reset empties the local list without touching the server.
func (s *Synchronizer) Reset() {
	s.replace(nil)
}

func (s *Synchronizer) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total is a pure fold over the current lines, recomputed per call.
func (s *Synchronizer) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, l := range s.lines {
		total += l.TotalPrice
	}
	return total
}

func (s *Synchronizer) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

func (s *Synchronizer) replace(lines []domain.CartLine) {
	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()
}
