package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Ziad-Belal/strike-api/internal/cart"
	"github.com/Ziad-Belal/strike-api/internal/model"
	"github.com/Ziad-Belal/strike-api/internal/service"

	"github.com/rs/zerolog"
)

// DeviceIDHeader identifies the browsing session owning a cart. Carts are
// keyed by device, not by account, so guests can shop before logging in.
const DeviceIDHeader = "X-Device-ID"

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	carts    *cart.Manager
	products service.ProductService
	logger   zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts *cart.Manager, products service.ProductService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		carts:    carts,
		products: products,
		logger:   logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	store, ok := h.session(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, store.Items(), h.logger)
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID int64  `json:"productId"`
		Size      string `json:"size"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve product", h.logger)
		return
	}
	if product == nil {
		writeDomainError(w, model.ErrProductNotFound, h.logger)
		return
	}

	if err := store.AddItem(r.Context(), product, req.Size, req.Quantity); err != nil {
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			writeDomainError(w, err, h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to add item", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, store.Items(), h.logger)
}

// RemoveItem handles DELETE /api/cart/items requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID int64  `json:"productId"`
		Size      string `json:"size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := store.RemoveItem(r.Context(), req.ProductID, req.Size); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove item", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, store.Items(), h.logger)
}

// session resolves the cart store for the request's device ID.
func (h *CartHandler) session(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	deviceID := r.Header.Get(DeviceIDHeader)
	if deviceID == "" {
		writeError(w, http.StatusBadRequest, "X-Device-ID header is required", h.logger)
		return nil, false
	}
	return h.carts.Session(r.Context(), deviceID), true
}
