package handler

import (
	"bytes"
	"encoding/json"
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

func newCartHandler(t *testing.T) (*CartHandler, *MockProductService) {
	t.Helper()
	products := new(MockProductService)
	carts := cart.NewManager(newMemSnapshotter(), zerolog.Nop())
	return NewCartHandler(carts, products, zerolog.Nop()), products
}

func cartRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(DeviceIDHeader, "device-1")
	return req
}

func TestCartHandler_RequiresDeviceHeader(t *testing.T) {
	h, _ := newCartHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error, "X-Device-ID")
}

func TestCartHandler_AddItem(t *testing.T) {
	h, products := newCartHandler(t)
	products.On("GetByID", mock.Anything, int64(1)).Return(&model.Product{
		ID:    1,
		Name:  "Tee",
		Price: 25,
		Sizes: []string{"M", "L"},
		Stock: 10,
	}, nil)

	req := cartRequest(http.MethodPost, "/api/cart/items", map[string]interface{}{
		"productId": 1,
		"size":      "M",
		"quantity":  2,
	})
	rec := httptest.NewRecorder()
	h.AddItem(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var items []model.CartLineItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "M", items[0].Size)
}

func TestCartHandler_AddItem_DefaultsQuantityToOne(t *testing.T) {
	h, products := newCartHandler(t)
	products.On("GetByID", mock.Anything, int64(2)).Return(&model.Product{
		ID:    2,
		Name:  "Cap",
		Price: 15,
		Stock: 5,
	}, nil)

	req := cartRequest(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": 2})
	rec := httptest.NewRecorder()
	h.AddItem(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var items []model.CartLineItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCartHandler_AddItem_SizeRequired(t *testing.T) {
	h, products := newCartHandler(t)
	products.On("GetByID", mock.Anything, int64(1)).Return(&model.Product{
		ID:    1,
		Name:  "Tee",
		Price: 25,
		Sizes: []string{"M", "L"},
	}, nil)

	req := cartRequest(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": 1})
	rec := httptest.NewRecorder()
	h.AddItem(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please select a size first", decodeError(t, rec).Error)
}

func TestCartHandler_AddItem_UnknownProduct(t *testing.T) {
	h, products := newCartHandler(t)
	products.On("GetByID", mock.Anything, int64(999)).Return(nil, nil)

	req := cartRequest(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": 999})
	rec := httptest.NewRecorder()
	h.AddItem(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHandler_RemoveItem(t *testing.T) {
	h, products := newCartHandler(t)
	products.On("GetByID", mock.Anything, int64(1)).Return(&model.Product{
		ID:    1,
		Name:  "Tee",
		Price: 25,
		Sizes: []string{"M"},
	}, nil)

	addReq := cartRequest(http.MethodPost, "/api/cart/items", map[string]interface{}{
		"productId": 1,
		"size":      "M",
	})
	h.AddItem(httptest.NewRecorder(), addReq)

	req := cartRequest(http.MethodDelete, "/api/cart/items", map[string]interface{}{
		"productId": 1,
		"size":      "M",
	})
	rec := httptest.NewRecorder()
	h.RemoveItem(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var items []model.CartLineItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Empty(t, items)
}

func TestCartHandler_Get(t *testing.T) {
	h, products := newCartHandler(t)
	products.On("GetByID", mock.Anything, int64(1)).Return(&model.Product{
		ID:    1,
		Name:  "Tee",
		Price: 25,
	}, nil)

	addReq := cartRequest(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": 1})
	h.AddItem(httptest.NewRecorder(), addReq)

	req := cartRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var items []model.CartLineItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 1)
}
