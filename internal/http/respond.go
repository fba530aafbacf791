package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/checkout"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/upstream"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// handleUpstreamError maps a failed upstream call to an HTTP response.
// Server-reported messages pass through verbatim; transport failures
// collapse to a bad gateway.
func handleUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		code := "upstream_error"
		if errors.Is(err, upstream.ErrUnauthorized) {
			code = "unauthorized"
		}
		respondError(w, apiErr.Status, code, apiErr.Message)
		return
	}
	respondError(w, http.StatusBadGateway, "upstream_unavailable", "upstream service unavailable")
}

// handleCheckoutError distinguishes the orchestrator's guard errors
// from upstream failures.
func handleCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, checkout.ErrCartEmpty):
		respondError(w, http.StatusBadRequest, "cart_empty", err.Error())
	case errors.Is(err, checkout.ErrCheckoutInFlight):
		respondError(w, http.StatusConflict, "checkout_in_flight", err.Error())
	case errors.Is(err, checkout.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "illegal_transition", err.Error())
	default:
		handleUpstreamError(w, err)
	}
}
