package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Ziad-Belal/strike-api/internal/model"
	"github.com/Ziad-Belal/strike-api/internal/promo"
	"github.com/Ziad-Belal/strike-api/internal/repository"

	"github.com/rs/zerolog"
)

// PromoHandler handles promo code HTTP requests.
type PromoHandler struct {
	evaluator promo.Evaluator
	repo      repository.PromoRepository
	logger    zerolog.Logger
}

// NewPromoHandler creates a new promo handler.
func NewPromoHandler(evaluator promo.Evaluator, repo repository.PromoRepository, logger zerolog.Logger) *PromoHandler {
	return &PromoHandler{
		evaluator: evaluator,
		repo:      repo,
		logger:    logger.With().Str("handler", "promo").Logger(),
	}
}

// Apply handles POST /api/promos/apply requests: a preview of the discount a
// code would yield on a subtotal. Nothing is persisted; usage is counted only
// at checkout.
func (h *PromoHandler) Apply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req struct {
		Code     string  `json:"code"`
		Subtotal float64 `json:"subtotal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "promo code is required", h.logger)
		return
	}

	applied, discount, err := h.evaluator.Apply(r.Context(), req.Code, req.Subtotal)
	if err != nil {
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			writeDomainError(w, err, h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to apply promo code", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"code":     applied.Code,
		"discount": discount,
	}, h.logger)
}

// Create handles POST /api/promos requests (admin only, enforced by
// middleware).
func (h *PromoHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var p model.PromoCode
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if p.Code == "" {
		writeError(w, http.StatusBadRequest, "promo code is required", h.logger)
		return
	}
	if p.DiscountType != model.DiscountPercentage && p.DiscountType != model.DiscountFixed {
		writeError(w, http.StatusBadRequest, "discount type must be percentage or fixed", h.logger)
		return
	}
	if p.DiscountValue <= 0 {
		writeError(w, http.StatusBadRequest, "discount value must be greater than zero", h.logger)
		return
	}

	p.Code = model.NormalizePromoCode(p.Code)
	p.CurrentUsages = 0

	if err := h.repo.Upsert(r.Context(), &p); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create promo code", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, p, h.logger)
}
