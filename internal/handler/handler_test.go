package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ziad-Belal/strike-api/internal/cart"
	"github.com/Ziad-Belal/strike-api/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memSnapshotter keeps cart snapshots in memory for handler tests.
type memSnapshotter struct {
	items map[string][]model.CartLineItem
}

func newMemSnapshotter() *memSnapshotter {
	return &memSnapshotter{items: make(map[string][]model.CartLineItem)}
}

func (m *memSnapshotter) Load(ctx context.Context, deviceID string) ([]model.CartLineItem, error) {
	return m.items[deviceID], nil
}

func (m *memSnapshotter) Save(ctx context.Context, deviceID string, items []model.CartLineItem) error {
	m.items[deviceID] = items
	return nil
}

func (m *memSnapshotter) Delete(ctx context.Context, deviceID string) error {
	delete(m.items, deviceID)
	return nil
}

var _ cart.Snapshotter = (*memSnapshotter)(nil)

// MockProductService is a mock implementation of service.ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetAll(ctx context.Context, category string, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, category, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) SetStock(ctx context.Context, id int64, stock int) error {
	args := m.Called(ctx, id, stock)
	return args.Error(0)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWriteDomainError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not authenticated", model.ErrNotAuthenticated, http.StatusUnauthorized},
		{"promo not found", model.ErrPromoNotFound, http.StatusNotFound},
		{"product not found", model.ErrProductNotFound, http.StatusNotFound},
		{"insufficient stock", model.ErrInsufficientStock, http.StatusConflict},
		{"promo expired", model.ErrPromoExpired, http.StatusConflict},
		{"promo usage limit", model.ErrPromoUsageLimit, http.StatusConflict},
		{"checkout in progress", model.ErrCheckoutInProgress, http.StatusTooManyRequests},
		{"size required", model.ErrSizeRequired, http.StatusBadRequest},
		{"empty cart", model.ErrEmptyCart, http.StatusBadRequest},
		{"incomplete profile", model.ErrIncompleteProfile, http.StatusBadRequest},
		{"non-domain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeDomainError(rec, tt.err, zerolog.Nop())
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestWriteDomainError_MessagePassedThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	writeDomainError(rec, model.ErrSizeRequired, zerolog.Nop())

	resp := decodeError(t, rec)
	assert.Equal(t, "Please select a size first", resp.Error)
	assert.NotEmpty(t, resp.Code)
}

func TestWriteJSON_EncodeFailureLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, make(chan int), logger)

	assert.Equal(t, http.StatusOK, rec.Code, "status line is already committed")
	assert.Contains(t, buf.String(), "failed to encode response body")
}
