package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Ziad-Belal/strike-api/internal/auth"
	"github.com/Ziad-Belal/strike-api/internal/model"
	"github.com/Ziad-Belal/strike-api/internal/service"

	"github.com/rs/zerolog"
)

// ProfileHandler handles customer profile HTTP requests.
type ProfileHandler struct {
	service service.ProfileService
	logger  zerolog.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(service service.ProfileService, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger.With().Str("handler", "profile").Logger(),
	}
}

// Get handles GET /api/profile requests for the authenticated user.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())
	if identity == nil {
		writeDomainError(w, model.ErrNotAuthenticated, h.logger)
		return
	}

	prof, err := h.service.Get(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve profile", h.logger)
		return
	}

	if prof == nil {
		writeError(w, http.StatusNotFound, "profile not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, prof, h.logger)
}

// Save handles PUT /api/profile requests for the authenticated user.
func (h *ProfileHandler) Save(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())
	if identity == nil {
		writeDomainError(w, model.ErrNotAuthenticated, h.logger)
		return
	}

	var prof model.CustomerProfile
	if err := json.NewDecoder(r.Body).Decode(&prof); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	// The profile always belongs to the caller; the role cannot be set here.
	prof.UserID = identity.UserID
	prof.Role = ""

	if err := h.service.Save(r.Context(), &prof); err != nil {
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			writeDomainError(w, err, h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to save profile", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, prof, h.logger)
}
