// Package app assembles one storefront instance per shopper: a token
// store, the auth flows, a cart synchronizer coupled to the token
// lifecycle, and a checkout orchestrator, all sharing one upstream
// client scoped to that shopper's token.
package app

import (
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/cart"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/checkout"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/session"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/token"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/upstream"
)

type App struct {
	Tokens   *token.Store
	API      *upstream.Client
	Auth     *session.Service
	Cart     *cart.Synchronizer
	Checkout *checkout.Orchestrator
}

// New wires a shopper's instance around a shared base client. The
// scoped client reads the shopper's token on every request, so a login
// or logout takes effect immediately across all components.
func New(base *upstream.Client) *App {
	tokens := token.NewStore()
	api := base.Scoped(tokens.Get)

	auth := session.NewService(api, tokens)
	crt := cart.NewSynchronizer(api, auth.Current)
	crt.CoupleTo(tokens)

	return &App{
		Tokens:   tokens,
		API:      api,
		Auth:     auth,
		Cart:     crt,
		Checkout: checkout.NewOrchestrator(api, crt, auth.Current),
	}
}

// Session is the current derived identity, recomputed from the token.
func (a *App) Session() *domain.Session {
	return a.Auth.Current()
}
