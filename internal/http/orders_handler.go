package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
)

type OrdersHandler struct{}

func NewOrdersHandler() *OrdersHandler {
	return &OrdersHandler{}
}

func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := appFromContext(r.Context()).API.Orders(r.Context())
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// Invoice streams the upstream's invoice document through untouched,
// content type included.
func (h *OrdersHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a positive integer")
		return
	}

	data, contentType, err := appFromContext(r.Context()).API.Invoice(r.Context(), id)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// AllOrders lists orders across all customers. Reached only through the
// admin guard.
func (h *OrdersHandler) AllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := appFromContext(r.Context()).API.AllOrders(r.Context())
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

type updateStatusDTO struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a positive integer")
		return
	}

	var req updateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if !req.Status.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_status", "unknown order status")
		return
	}

	order, err := appFromContext(r.Context()).API.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}
