package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ziad-Belal/strike-api/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductHandler_GetAll(t *testing.T) {
	products := new(MockProductService)
	products.On("GetAll", mock.Anything, "shirts", 10, 5).Return([]model.Product{
		{ID: 1, Name: "Tee", Price: 25},
	}, nil)

	h := NewProductHandler(products, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/products?category=shirts&limit=10&offset=5", nil)
	rec := httptest.NewRecorder()
	h.GetAll(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Tee", got[0].Name)
}

func TestProductHandler_GetAll_EmptyListNotNull(t *testing.T) {
	products := new(MockProductService)
	products.On("GetAll", mock.Anything, "", 0, 0).Return(nil, nil)

	h := NewProductHandler(products, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	h.GetAll(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestProductHandler_GetAll_InvalidLimit(t *testing.T) {
	h := NewProductHandler(new(MockProductService), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/products?limit=abc", nil)
	rec := httptest.NewRecorder()
	h.GetAll(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_GetByID(t *testing.T) {
	products := new(MockProductService)
	products.On("GetByID", mock.Anything, int64(42)).Return(&model.Product{
		ID: 42, Name: "Tee", Price: 25,
	}, nil)
	products.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)

	h := NewProductHandler(products, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.GetByID(rec, httptest.NewRequest(http.MethodGet, "/api/products/42", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.GetByID(rec, httptest.NewRequest(http.MethodGet, "/api/products/99", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.GetByID(rec, httptest.NewRequest(http.MethodGet, "/api/products/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_Create(t *testing.T) {
	products := new(MockProductService)
	products.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).
		Return(&model.Product{ID: 7, Name: "Tee", Price: 25, Stock: 10}, nil)

	h := NewProductHandler(products, zerolog.Nop())

	body, _ := json.Marshal(model.Product{Name: "Tee", Price: 25, Stock: 10})
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(7), created.ID)
}

func TestProductHandler_Create_ValidationError(t *testing.T) {
	products := new(MockProductService)
	products.On("Create", mock.Anything, mock.Anything).
		Return(nil, model.NewDomainError(model.ErrCodeMissingField, "Product name is required"))

	h := NewProductHandler(products, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(`{"price":25}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_SetStock(t *testing.T) {
	products := new(MockProductService)
	products.On("SetStock", mock.Anything, int64(42), 7).Return(nil)

	h := NewProductHandler(products, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPut, "/api/products/42/stock", bytes.NewBufferString(`{"stock":7}`))
	rec := httptest.NewRecorder()
	h.SetStock(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	products.AssertExpectations(t)
}

func TestProductHandler_SetStock_InvalidID(t *testing.T) {
	h := NewProductHandler(new(MockProductService), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPut, "/api/products/abc/stock", bytes.NewBufferString(`{"stock":7}`))
	rec := httptest.NewRecorder()
	h.SetStock(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
