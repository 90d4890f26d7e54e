package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionHandler handles login and logout, which drive cart reconciliation.
type SessionHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(service service.CartService, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		logger:  logger.With().Str("handler", "session").Logger(),
	}
}

// loginRequest is the login payload. Identity verification is delegated to an
// upstream auth provider; this endpoint binds an already-verified user ID to
// the session.
type loginRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

// Login handles POST /api/session/login requests.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		writeFailure(w, http.StatusInternalServerError, "Session unavailable", h.logger)
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}
	if req.UserID == uuid.Nil {
		respondError(w, model.NewDomainError(model.ErrCodeMissingField, "user_id is required"), h.logger)
		return
	}

	if err := h.service.Login(r.Context(), sess, req.UserID); err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Success: true, Message: "Logged in"})
}

// Logout handles POST /api/session/logout requests.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		writeFailure(w, http.StatusInternalServerError, "Session unavailable", h.logger)
		return
	}

	if err := h.service.Logout(r.Context(), sess); err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Success: true, Message: "Logged out"})
}
