// Package token holds the persisted bearer token, the one shared mutable
// resource in the storefront. It is read on every session derivation and
// written only at login, OAuth callback and logout.
package token

import "sync"

type Store struct {
	mu    sync.RWMutex
	token string
	subs  []func(token string)
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) Set(token string) {
	s.mu.Lock()
	s.token = token
	subs := make([]func(string), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(token)
	}
}

func (s *Store) Clear() {
	s.Set("")
}

// Subscribe registers fn to run synchronously after every token change.
// Subscribers must not call back into the store.
func (s *Store) Subscribe(fn func(token string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
