package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/app"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/guard"
)

type ctxKey int

const (
	ctxKeyApp ctxKey = iota
	ctxKeyToken
	ctxKeyRequestID
)

// RequestIDMiddleware tags each request with a unique id, honoring one
// supplied by the caller.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), ctxKeyRequestID, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AppMiddleware resolves the shopper instance for the request's bearer
// token and stashes it, plus the raw token, in the context.
func AppMiddleware(reg *app.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearerToken(r)
			ctx := context.WithValue(r.Context(), ctxKeyApp, reg.For(tok))
			ctx = context.WithValue(ctx, ctxKeyToken, tok)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// accessDeniedDTO is the blocking deny view: the reason plus the single
// escape action back to the public home.
type accessDeniedDTO struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Home  string `json:"home"`
}

// RequireRole gates a route subtree on the role derived from the
// request's session. A deny is surfaced with the reason, never a
// silent redirect.
func RequireRole(required domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := guard.Authorize(appFromContext(r.Context()).Session(), required)
			if !d.Allowed {
				respondJSON(w, http.StatusForbidden, accessDeniedDTO{
					Error: d.Reason,
					Code:  "access_denied",
					Home:  "/",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func appFromContext(ctx context.Context) *app.App {
	a, _ := ctx.Value(ctxKeyApp).(*app.App)
	return a
}

func tokenFromContext(ctx context.Context) string {
	t, _ := ctx.Value(ctxKeyToken).(string)
	return t
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}
