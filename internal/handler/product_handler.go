package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductHandler handles storefront catalogue HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// parseSearchOptions reads the shared listing query parameters. Malformed
// numbers fall back to defaults rather than failing the request.
func parseSearchOptions(r *http.Request, defaultPageSize int) service.SearchOptions {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(q.Get("limit"))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	return service.SearchOptions{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Page:     page,
		PageSize: pageSize,
	}
}

// List handles GET /api/products requests. The storefront only ever sees
// available products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := parseSearchOptions(r, 12)
	available := true
	opts.Availability = &available

	page, err := h.service.Search(r.Context(), opts)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*service.CatalogPage
	}{Success: true, CatalogPage: page})
}

// Get handles GET /api/products/{id} requests.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.service.GetDetail(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		Product *service.ProductDetail `json:"product"`
	}{Success: true, Product: detail})
}
