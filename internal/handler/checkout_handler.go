package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Ziad-Belal/strike-api/internal/cart"
	"github.com/Ziad-Belal/strike-api/internal/checkout"
	"github.com/Ziad-Belal/strike-api/internal/model"

	"github.com/rs/zerolog"
)

// Checkouter runs one checkout attempt for the identity on the context.
type Checkouter interface {
	Checkout(ctx context.Context, store *cart.Store, promoCode string) (*checkout.Result, error)
}

// CheckoutHandler handles POST /api/checkout requests.
type CheckoutHandler struct {
	orchestrator Checkouter
	carts        *cart.Manager
	logger       zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(orchestrator Checkouter, carts *cart.Manager, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		orchestrator: orchestrator,
		carts:        carts,
		logger:       logger.With().Str("handler", "checkout").Logger(),
	}
}

// Checkout handles POST /api/checkout requests. The identity comes from the
// auth middleware; the cart from the device header.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	deviceID := r.Header.Get(DeviceIDHeader)
	if deviceID == "" {
		writeError(w, http.StatusBadRequest, "X-Device-ID header is required", h.logger)
		return
	}

	var req struct {
		PromoCode string `json:"promoCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	store := h.carts.Session(r.Context(), deviceID)

	result, err := h.orchestrator.Checkout(r.Context(), store, req.PromoCode)
	if err != nil {
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			writeDomainError(w, err, h.logger)
			return
		}
		// Placement endpoint failures surface their message when available.
		writeError(w, http.StatusBadGateway, "there was an issue placing your order", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, result, h.logger)
}
