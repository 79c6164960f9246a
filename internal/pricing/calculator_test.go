package pricing

import (
	"testing"

	"github.com/Ziad-Belal/strike-api/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCalculator_Subtotal(t *testing.T) {
	calc := NewCalculator(60, "EGP")

	tests := []struct {
		name     string
		items    []model.CartLineItem
		expected float64
	}{
		{
			name:     "empty cart",
			items:    nil,
			expected: 0,
		},
		{
			name: "single item",
			items: []model.CartLineItem{
				{ProductID: 1, Name: "Tee", UnitPrice: 25, Quantity: 1},
			},
			expected: 25,
		},
		{
			name: "multiple items with quantities",
			items: []model.CartLineItem{
				{ProductID: 1, Name: "Tee", UnitPrice: 25, Quantity: 2},
				{ProductID: 2, Name: "Hoodie", UnitPrice: 35, Quantity: 1},
			},
			expected: 85,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calc.Subtotal(tt.items))
		})
	}
}

func TestCalculator_Quote(t *testing.T) {
	calc := NewCalculator(60, "EGP")

	items := []model.CartLineItem{
		{ProductID: 1, Name: "Tee", UnitPrice: 25, Quantity: 2},
	}

	tests := []struct {
		name     string
		items    []model.CartLineItem
		discount float64
		expected Quote
	}{
		{
			name:     "no discount",
			items:    items,
			discount: 0,
			expected: Quote{Subtotal: 50, Discount: 0, Shipping: 60, Total: 110},
		},
		{
			name:     "percentage style discount",
			items:    items,
			discount: 10,
			expected: Quote{Subtotal: 50, Discount: 10, Shipping: 60, Total: 100},
		},
		{
			name:     "discount exceeding subtotal floors at shipping",
			items:    items,
			discount: 80,
			expected: Quote{Subtotal: 50, Discount: 80, Shipping: 60, Total: 60},
		},
		{
			name:     "empty cart has no shipping",
			items:    nil,
			discount: 0,
			expected: Quote{Subtotal: 0, Discount: 0, Shipping: 0, Total: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calc.Quote(tt.items, tt.discount))
		})
	}
}

func TestCalculator_QuoteIsIdempotent(t *testing.T) {
	calc := NewCalculator(60, "EGP")
	items := []model.CartLineItem{
		{ProductID: 1, Name: "Tee", UnitPrice: 19.99, Quantity: 3},
	}

	first := calc.Quote(items, 5)
	second := calc.Quote(items, 5)
	assert.Equal(t, first, second)
}

func TestCalculator_FormatAmount(t *testing.T) {
	calc := NewCalculator(60, "EGP")
	assert.Equal(t, "EGP 160.00", calc.FormatAmount(160))
	assert.Equal(t, "EGP 19.99", calc.FormatAmount(19.99))
}
