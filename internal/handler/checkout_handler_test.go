package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ziad-Belal/strike-api/internal/cart"
	"github.com/Ziad-Belal/strike-api/internal/checkout"
	"github.com/Ziad-Belal/strike-api/internal/model"
	"github.com/Ziad-Belal/strike-api/internal/pricing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCheckouter is a mock implementation of Checkouter.
type MockCheckouter struct {
	mock.Mock
}

func (m *MockCheckouter) Checkout(ctx context.Context, store *cart.Store, promoCode string) (*checkout.Result, error) {
	args := m.Called(ctx, store, promoCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Result), args.Error(1)
}

func newCheckoutHandler(t *testing.T) (*CheckoutHandler, *MockCheckouter) {
	t.Helper()
	orch := new(MockCheckouter)
	carts := cart.NewManager(newMemSnapshotter(), zerolog.Nop())
	return NewCheckoutHandler(orch, carts, zerolog.Nop()), orch
}

func checkoutRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewBufferString(body))
	req.Header.Set(DeviceIDHeader, "device-1")
	return req
}

func TestCheckoutHandler_Success(t *testing.T) {
	h, orch := newCheckoutHandler(t)
	orderID := uuid.New()

	orch.On("Checkout", mock.Anything, mock.AnythingOfType("*cart.Store"), "SAVE10").
		Return(&checkout.Result{
			OrderID: orderID,
			Quote:   pricing.Quote{Subtotal: 50, Discount: 10, Shipping: 60, Total: 100},
		}, nil)

	rec := httptest.NewRecorder()
	h.Checkout(rec, checkoutRequest(`{"promoCode":"SAVE10"}`))

	require.Equal(t, http.StatusCreated, rec.Code)

	var result checkout.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, orderID, result.OrderID)
	assert.Equal(t, 100.0, result.Quote.Total)
}

func TestCheckoutHandler_EmptyBodyAllowed(t *testing.T) {
	h, orch := newCheckoutHandler(t)

	orch.On("Checkout", mock.Anything, mock.Anything, "").
		Return(&checkout.Result{OrderID: uuid.New()}, nil)

	rec := httptest.NewRecorder()
	h.Checkout(rec, checkoutRequest(""))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCheckoutHandler_RequiresDeviceHeader(t *testing.T) {
	h, _ := newCheckoutHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
	rec := httptest.NewRecorder()
	h.Checkout(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutHandler_DomainErrorsMapped(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"empty cart", model.ErrEmptyCart, http.StatusBadRequest},
		{"not authenticated", model.ErrNotAuthenticated, http.StatusUnauthorized},
		{"insufficient stock", model.ErrInsufficientStock, http.StatusConflict},
		{"in progress", model.ErrCheckoutInProgress, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, orch := newCheckoutHandler(t)
			orch.On("Checkout", mock.Anything, mock.Anything, "").Return(nil, tt.err)

			rec := httptest.NewRecorder()
			h.Checkout(rec, checkoutRequest(`{}`))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCheckoutHandler_UnknownErrorIsBadGateway(t *testing.T) {
	h, orch := newCheckoutHandler(t)
	orch.On("Checkout", mock.Anything, mock.Anything, "").
		Return(nil, assert.AnError)

	rec := httptest.NewRecorder()
	h.Checkout(rec, checkoutRequest(`{}`))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "there was an issue placing your order", decodeError(t, rec).Error)
}

func TestCheckoutHandler_MethodNotAllowed(t *testing.T) {
	h, _ := newCheckoutHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/checkout", nil)
	req.Header.Set(DeviceIDHeader, "device-1")
	rec := httptest.NewRecorder()
	h.Checkout(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
