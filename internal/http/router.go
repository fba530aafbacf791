// Package http is the storefront's HTTP surface: a thin BFF over the
// per-shopper instances and the cached catalog.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/app"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/catalog"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
)

func NewRouter(reg *app.Registry, cat *catalog.Service, requestTimeout time.Duration) *chi.Mux {
	authHandler := NewAuthHandler(reg)
	productHandler := NewProductHandler(cat)
	cartHandler := NewCartHandler()
	checkoutHandler := NewCheckoutHandler()
	ordersHandler := NewOrdersHandler()
	chatHandler := NewChatHandler()

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(AppMiddleware(reg))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/register", authHandler.Register)
		r.Get("/oauth/callback", authHandler.OAuthCallback)
		r.Post("/logout", authHandler.Logout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/session", authHandler.Session)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/category/{category}", productHandler.ByCategory)

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(domain.RoleAdmin))
				r.Get("/admin", productHandler.AdminList)
				r.Post("/", productHandler.Create)
				r.Put("/{id}", productHandler.Update)
				r.Delete("/{id}", productHandler.Delete)
			})

			r.Get("/{id}", productHandler.Get)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Post("/add", cartHandler.Add)
			r.Put("/{cartId}", cartHandler.UpdateQuantity)
			r.Delete("/{cartId}", cartHandler.Remove)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/checkout", checkoutHandler.SubmitCOD)
			r.Get("/", ordersHandler.List)
			r.Get("/{id}/invoice", ordersHandler.Invoice)

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(domain.RoleAdmin))
				r.Get("/all", ordersHandler.AllOrders)
				r.Put("/{id}/status", ordersHandler.UpdateStatus)
			})
		})

		r.Route("/payment", func(r chi.Router) {
			r.Post("/create-order", checkoutHandler.CreatePaymentOrder)
			r.Post("/verify-payment", checkoutHandler.VerifyPayment)
			r.Post("/cancel", checkoutHandler.CancelPayment)
		})

		r.Get("/checkout/state", checkoutHandler.State)
		r.Post("/chat", chatHandler.Chat)
	})

	return r
}
