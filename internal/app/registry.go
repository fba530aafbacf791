package app

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/session"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/upstream"
)

// Registry hands out one App per shopper, keyed by the subject derived
// from the bearer token. Anonymous requests share a single instance
// whose state is always empty.
type Registry struct {
	mu   sync.Mutex
	base *upstream.Client
	apps map[string]*entry
	idle time.Duration
}

type entry struct {
	app      *App
	lastSeen time.Time
}

func NewRegistry(base *upstream.Client, idle time.Duration) *Registry {
	return &Registry{
		base: base,
		apps: make(map[string]*entry),
		idle: idle,
	}
}

// For resolves the App for a bearer token, creating it on first sight.
// The token is pushed into the instance only when it changed, so a
// repeat request does not retrigger the login lifecycle.
func (r *Registry) For(tok string) *App {
	key := ""
	if s := session.Derive(tok); s != nil {
		key = s.Subject
	}

	r.mu.Lock()
	e, ok := r.apps[key]
	if !ok {
		e = &entry{app: New(r.base)}
		r.apps[key] = e
	}
	e.lastSeen = time.Now()
	r.mu.Unlock()

	if key != "" && e.app.Tokens.Get() != tok {
		e.app.Tokens.Set(tok)
	}
	return e.app
}

// Prune drops instances idle longer than the registry's window and
// reports how many were removed.
func (r *Registry) Prune(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int
	for key, e := range r.apps {
		if now.Sub(e.lastSeen) > r.idle {
			delete(r.apps, key)
			removed++
		}
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.apps)
}

// Run prunes on a ticker until the context is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Prune(time.Now()); n > 0 {
				log.Printf("pruned %d idle shopper instances", n)
			}
		}
	}
}
