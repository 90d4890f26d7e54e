package handler

import (
	"net/http"

	"storefront/internal/cart"
	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/session"

	"github.com/rs/zerolog"
)

// CartHandler handles session cart HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// cartMutationRequest is the payload shared by the cart mutation endpoints.
type cartMutationRequest struct {
	ProductID        string `json:"product_id"`
	Quantity         int    `json:"quantity"`
	OverrideQuantity bool   `json:"override_quantity"`
}

// cartResponse is the summary returned by every cart endpoint. The price is
// serialised as a fixed two-decimal string, never a float.
type cartResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	CartTotalItems int    `json:"cart_total_items"`
	CartTotalPrice string `json:"cart_total_price"`
}

func newCartResponse(message string, totals *service.CartTotals) cartResponse {
	return cartResponse{
		Success:        true,
		Message:        message,
		CartTotalItems: totals.TotalItems,
		CartTotalPrice: totals.TotalPrice.StringFixed(2),
	}
}

// requestSession pulls the session injected by the session middleware.
func (h *CartHandler) requestSession(w http.ResponseWriter, r *http.Request) *session.Session {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		writeFailure(w, http.StatusInternalServerError, "Session unavailable", h.logger)
	}
	return sess
}

// Add handles POST /api/cart/add requests.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	sess := h.requestSession(w, r)
	if sess == nil {
		return
	}

	var req cartMutationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}
	if req.ProductID == "" {
		respondError(w, model.NewDomainError(model.ErrCodeMissingField, "product_id is required"), h.logger)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	totals, err := h.service.Add(r.Context(), sess, req.ProductID, req.Quantity, req.OverrideQuantity)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newCartResponse("Product added to cart", totals))
}

// Remove handles POST /api/cart/remove requests.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	sess := h.requestSession(w, r)
	if sess == nil {
		return
	}

	var req cartMutationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}
	if req.ProductID == "" {
		respondError(w, model.NewDomainError(model.ErrCodeMissingField, "product_id is required"), h.logger)
		return
	}

	totals, err := h.service.Remove(r.Context(), sess, req.ProductID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newCartResponse("Product removed from cart", totals))
}

// Update handles POST /api/cart/update requests. A quantity of zero or less
// removes the line.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess := h.requestSession(w, r)
	if sess == nil {
		return
	}

	var req cartMutationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}
	if req.ProductID == "" {
		respondError(w, model.NewDomainError(model.ErrCodeMissingField, "product_id is required"), h.logger)
		return
	}

	totals, err := h.service.UpdateQuantity(r.Context(), sess, req.ProductID, req.Quantity)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newCartResponse("Cart updated", totals))
}

// Info handles GET /api/cart/info requests, returning just the totals for
// the header badge.
func (h *CartHandler) Info(w http.ResponseWriter, r *http.Request) {
	sess := h.requestSession(w, r)
	if sess == nil {
		return
	}

	view, err := h.service.View(r.Context(), sess)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success        bool        `json:"success"`
		Message        string      `json:"message"`
		CartItems      []cart.Item `json:"cart_items"`
		CartTotalItems int         `json:"cart_total_items"`
		CartTotalPrice string      `json:"cart_total_price"`
	}{
		Success:        true,
		Message:        "Cart info",
		CartItems:      view.Items,
		CartTotalItems: view.TotalItems,
		CartTotalPrice: view.TotalPrice.StringFixed(2),
	})
}

// View handles GET /api/cart requests, returning the full cart with resolved
// products.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	sess := h.requestSession(w, r)
	if sess == nil {
		return
	}

	view, err := h.service.View(r.Context(), sess)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success        bool        `json:"success"`
		CartItems      []cart.Item `json:"cart_items"`
		CartTotalItems int         `json:"cart_total_items"`
		CartTotalPrice string      `json:"cart_total_price"`
	}{
		Success:        true,
		CartItems:      view.Items,
		CartTotalItems: view.TotalItems,
		CartTotalPrice: view.TotalPrice.StringFixed(2),
	})
}
