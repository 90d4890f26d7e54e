package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// StatusResponse is the uniform success/failure envelope across the API.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeFailure writes an error payload with the given status code and message.
func writeFailure(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, StatusResponse{Success: false, Message: message})
}

// statusForCode maps a domain error code onto an HTTP status. The mapping is
// deterministic: not-found codes are 404, client mistakes are 400, auth
// failures are 401/403, everything else is a 500.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeProductNotFound, model.ErrCodeReviewNotFound, model.ErrCodeCartNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidJSON, model.ErrCodeMissingField, model.ErrCodeInvalidQuantity,
		model.ErrCodeInvalidRating, model.ErrCodeValidationFailed:
		return http.StatusBadRequest
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError translates a service error into an HTTP response. Domain
// errors surface their message; anything else becomes an opaque 500 so
// internals never leak to clients.
func respondError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeFailure(w, statusForCode(domainErr.Code), domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("internal error")
	writeJSON(w, http.StatusInternalServerError, StatusResponse{
		Success: false,
		Message: "Internal server error",
	})
}

// decodeJSON decodes a request body, returning a domain error on malformed
// payloads so respondError maps it to a 400.
func decodeJSON(r *http.Request, dest interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "Invalid JSON payload")
	}
	return nil
}
