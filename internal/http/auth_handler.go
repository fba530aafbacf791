package http

import (
	"encoding/json"
	"net/http"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/app"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
)

// AuthHandler runs the auth flows. Login and the OAuth callback resolve
// the shopper instance through the registry once a token exists; the
// anonymous instance is never written to.
type AuthHandler struct {
	reg *app.Registry
}

func NewAuthHandler(reg *app.Registry) *AuthHandler {
	return &AuthHandler{reg: reg}
}

type loginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequestDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponseDTO struct {
	Email string      `json:"email,omitempty"`
	Role  domain.Role `json:"role"`
	Token string      `json:"token,omitempty"`
}

func sessionResponse(s *domain.Session, token string) sessionResponseDTO {
	if s == nil {
		return sessionResponseDTO{Role: domain.RolePublic}
	}
	return sessionResponseDTO{Email: s.Subject, Role: s.Role, Token: token}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	tok, err := appFromContext(r.Context()).API.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	if tok == "" {
		respondError(w, http.StatusBadGateway, "upstream_error", "no token received")
		return
	}

	shopper := h.reg.For(tok)
	respondJSON(w, http.StatusOK, sessionResponse(shopper.Session(), tok))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	a := appFromContext(r.Context())
	if err := a.Auth.Register(r.Context(), req.Name, req.Email, req.Password); err != nil {
		handleUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
}

// OAuthCallback accepts the token the OAuth flow hands back as a URL
// parameter and answers with the derived session.
func (h *AuthHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	tok := r.URL.Query().Get("token")
	if tok == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "no token received")
		return
	}

	shopper := h.reg.For(tok)
	respondJSON(w, http.StatusOK, sessionResponse(shopper.Session(), tok))
}

// Logout clears the shopper's token; the coupled cart empties without a
// network call.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	appFromContext(r.Context()).Auth.Logout()
	w.WriteHeader(http.StatusNoContent)
}

// Session re-derives the identity from the request's token. Anonymous
// requests get the PUBLIC role rather than an error.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	a := appFromContext(r.Context())
	respondJSON(w, http.StatusOK, sessionResponse(a.Session(), ""))
}
