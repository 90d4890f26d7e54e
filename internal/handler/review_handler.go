package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ReviewHandler handles product and site review HTTP requests.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("handler", "review").Logger(),
	}
}

// CreateProductReview handles POST /api/products/{id}/reviews requests.
func (h *ReviewHandler) CreateProductReview(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	var req model.ReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	review, err := h.service.AddProductReview(r.Context(), productID, &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Success bool          `json:"success"`
		Message string        `json:"message"`
		Review  *model.Review `json:"review"`
	}{Success: true, Message: "Review submitted", Review: review})
}

// ListProductReviews handles GET /api/products/{id}/reviews requests.
func (h *ReviewHandler) ListProductReviews(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	reviews, err := h.service.ListProductReviews(r.Context(), productID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	if reviews == nil {
		reviews = []model.Review{}
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool           `json:"success"`
		Reviews []model.Review `json:"reviews"`
	}{Success: true, Reviews: reviews})
}

// CreateSiteReview handles POST /api/site-reviews requests.
func (h *ReviewHandler) CreateSiteReview(w http.ResponseWriter, r *http.Request) {
	var req model.ReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	review, err := h.service.AddSiteReview(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Review  *model.SiteReview `json:"review"`
	}{Success: true, Message: "Review submitted", Review: review})
}

// ListSiteReviews handles GET /api/site-reviews requests.
func (h *ReviewHandler) ListSiteReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListSiteReviews(r.Context())
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	if reviews == nil {
		reviews = []model.SiteReview{}
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool               `json:"success"`
		Reviews []model.SiteReview `json:"reviews"`
	}{Success: true, Reviews: reviews})
}
