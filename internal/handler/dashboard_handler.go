package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// maxImageUploadBytes caps product image uploads at 5 MiB.
const maxImageUploadBytes = 5 << 20

// DashboardHandler handles the authenticated management API.
type DashboardHandler struct {
	products  service.ProductService
	visitors  service.VisitorService
	purchases service.PurchaseService
	logger    zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(
	products service.ProductService,
	visitors service.VisitorService,
	purchases service.PurchaseService,
	logger zerolog.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		products:  products,
		visitors:  visitors,
		purchases: purchases,
		logger:    logger.With().Str("handler", "dashboard").Logger(),
	}
}

// ListProducts handles GET /api/dashboard/products requests. Unlike the
// storefront listing it includes unavailable products and stock stats.
func (h *DashboardHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	opts := parseSearchOptions(r, 10)

	if raw := r.URL.Query().Get("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, model.NewDomainError(model.ErrCodeValidationFailed, "available must be a boolean"), h.logger)
			return
		}
		opts.Availability = &available
	}

	page, err := h.products.Search(r.Context(), opts)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	stats, err := h.products.Stats(r.Context())
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool                `json:"success"`
		Stats   *model.ProductStats `json:"stats"`
		*service.CatalogPage
	}{Success: true, Stats: stats, CatalogPage: page})
}

// CreateProduct handles POST /api/dashboard/products requests.
func (h *DashboardHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.ProductRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	product, err := h.products.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Success bool           `json:"success"`
		Message string         `json:"message"`
		Product *model.Product `json:"product"`
	}{Success: true, Message: "Product created", Product: product})
}

// UpdateProduct handles PUT /api/dashboard/products/{id} requests.
func (h *DashboardHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.ProductRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	product, err := h.products.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool           `json:"success"`
		Message string         `json:"message"`
		Product *model.Product `json:"product"`
	}{Success: true, Message: "Product updated", Product: product})
}

// PatchProduct handles PATCH /api/dashboard/products/{id} requests and
// reports which fields changed.
func (h *DashboardHandler) PatchProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch model.ProductPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, err, h.logger)
		return
	}

	fields, err := h.products.Patch(r.Context(), id, patch)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success       bool     `json:"success"`
		Message       string   `json:"message"`
		UpdatedFields []string `json:"updated_fields"`
	}{Success: true, Message: "Product updated", UpdatedFields: fields})
}

// DeleteProduct handles DELETE /api/dashboard/products/{id} requests.
func (h *DashboardHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	name, err := h.products.Delete(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Success: true,
		Message: fmt.Sprintf("Product %q deleted", name),
	})
}

// ToggleAvailability handles POST /api/dashboard/products/{id}/availability requests.
func (h *DashboardHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	available, err := h.products.ToggleAvailability(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success     bool   `json:"success"`
		Message     string `json:"message"`
		IsAvailable bool   `json:"isAvailable"`
	}{Success: true, Message: "Availability updated", IsAvailable: available})
}

// UploadImage handles POST /api/dashboard/products/{id}/image multipart requests.
func (h *DashboardHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadBytes)
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		respondError(w, model.NewDomainError(model.ErrCodeValidationFailed, "Invalid multipart payload"), h.logger)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, model.NewDomainError(model.ErrCodeMissingField, "image file is required"), h.logger)
		return
	}
	defer file.Close()

	url, err := h.products.AttachImage(r.Context(), id, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success  bool   `json:"success"`
		Message  string `json:"message"`
		ImageURL string `json:"imageUrl"`
	}{Success: true, Message: "Image uploaded", ImageURL: url})
}

// Visitors handles GET /api/dashboard/visitors requests.
func (h *DashboardHandler) Visitors(w http.ResponseWriter, r *http.Request) {
	stats, err := h.visitors.Stats(r.Context())
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool                `json:"success"`
		Stats   *model.VisitorStats `json:"stats"`
	}{Success: true, Stats: stats})
}

// Purchases handles GET /api/dashboard/purchases requests.
func (h *DashboardHandler) Purchases(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	purchases, err := h.purchases.ListRecent(r.Context(), limit)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	if purchases == nil {
		purchases = []model.Purchase{}
	}

	writeJSON(w, http.StatusOK, struct {
		Success   bool             `json:"success"`
		Purchases []model.Purchase `json:"purchases"`
	}{Success: true, Purchases: purchases})
}
