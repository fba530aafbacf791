package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/app"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
)

type CartHandler struct{}

func NewCartHandler() *CartHandler {
	return &CartHandler{}
}

type cartResponseDTO struct {
	Items     []domain.CartLine `json:"items"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"itemCount"`
}

func cartResponse(a *app.App) cartResponseDTO {
	return cartResponseDTO{
		Items:     a.Cart.Lines(),
		Total:     a.Cart.Total(),
		ItemCount: a.Cart.ItemCount(),
	}
}

// Get answers an anonymous shopper with an empty cart rather than an
// error; only real failures surface.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	a := appFromContext(r.Context())
	if err := a.Cart.Fetch(r.Context()); err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartResponse(a))
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	a := appFromContext(r.Context())
	if a.Session() == nil {
		respondError(w, http.StatusForbidden, "access_denied", "Only logged-in users can modify the cart.")
		return
	}

	q := r.URL.Query()
	productID, err := strconv.ParseInt(q.Get("productId"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId must be a positive integer")
		return
	}
	quantity, err := strconv.Atoi(q.Get("quantity"))
	if err != nil || quantity <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be a positive integer")
		return
	}

	if err := a.Cart.Add(r.Context(), productID, quantity); err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cartResponse(a))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	a := appFromContext(r.Context())
	if a.Session() == nil {
		respondError(w, http.StatusForbidden, "access_denied", "Only logged-in users can modify the cart.")
		return
	}

	cartID, err := strconv.ParseInt(chi.URLParam(r, "cartId"), 10, 64)
	if err != nil || cartID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_cart_id", "cartId must be a positive integer")
		return
	}
	quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil || quantity <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be a positive integer")
		return
	}

	if err := a.Cart.UpdateQuantity(r.Context(), cartID, quantity); err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartResponse(a))
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	a := appFromContext(r.Context())
	if a.Session() == nil {
		respondError(w, http.StatusForbidden, "access_denied", "Only logged-in users can modify the cart.")
		return
	}

	cartID, err := strconv.ParseInt(chi.URLParam(r, "cartId"), 10, 64)
	if err != nil || cartID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_cart_id", "cartId must be a positive integer")
		return
	}

	if err := a.Cart.Remove(r.Context(), cartID); err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartResponse(a))
}
