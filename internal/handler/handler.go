package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Ziad-Belal/strike-api/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeJSON writes a JSON response with the given status code. An encode
// failure is logged; the status line is already on the wire at that point.
func writeJSON(w http.ResponseWriter, status int, data interface{}, logger zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Int("status", status).Msg("failed to encode response body")
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message}, logger)
}

// writeDomainError maps a domain error to an HTTP response. Unknown errors
// become an opaque 500.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		writeError(w, http.StatusInternalServerError, "internal server error", logger)
		return
	}

	status := http.StatusBadRequest
	switch domainErr.Code {
	case model.ErrCodeNotAuthenticated:
		status = http.StatusUnauthorized
	case model.ErrCodeForbidden:
		status = http.StatusForbidden
	case model.ErrCodePromoNotFound, model.ErrCodeProductNotFound:
		status = http.StatusNotFound
	case model.ErrCodeInsufficientStock, model.ErrCodePromoUsageLimit, model.ErrCodePromoExpired:
		status = http.StatusConflict
	case model.ErrCodeCheckoutInProgress:
		status = http.StatusTooManyRequests
	case model.ErrCodeInternalError:
		status = http.StatusInternalServerError
	}

	logger.Warn().
		Str("code", domainErr.Code).
		Int("status", status).
		Msg(domainErr.Message)

	writeJSON(w, status, ErrorResponse{Error: domainErr.Message, Code: domainErr.Code}, logger)
}
