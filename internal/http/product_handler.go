package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/catalog"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/upstream"
)

type ProductHandler struct {
	catalog *catalog.Service
}

func NewProductHandler(c *catalog.Service) *ProductHandler {
	return &ProductHandler{catalog: c}
}

func listParams(r *http.Request) upstream.ListParams {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	return upstream.ListParams{
		Page:   page,
		Size:   size,
		Search: q.Get("search"),
		Sort:   q.Get("sort"),
	}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.List(r.Context(), listParams(r))
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a positive integer")
		return
	}

	product, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// Admin operations run with the caller's token so the upstream can do
// its own authorization on top of the route guard.

func (h *ProductHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	ctx := upstream.WithToken(r.Context(), tokenFromContext(r.Context()))
	page, err := h.catalog.AdminList(ctx, listParams(r))
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	ctx := upstream.WithToken(r.Context(), tokenFromContext(r.Context()))
	created, err := h.catalog.Create(ctx, product)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a positive integer")
		return
	}

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	ctx := upstream.WithToken(r.Context(), tokenFromContext(r.Context()))
	updated, err := h.catalog.Update(ctx, id, product)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a positive integer")
		return
	}

	ctx := upstream.WithToken(r.Context(), tokenFromContext(r.Context()))
	if err := h.catalog.Delete(ctx, id); err != nil {
		handleUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
