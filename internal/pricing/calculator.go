// Package pricing derives order totals from cart contents. The calculator is
// a pure function over its inputs: no I/O, idempotent, order-independent.
package pricing

import (
	"fmt"

	"github.com/Ziad-Belal/strike-api/internal/model"
)

// Quote is the price breakdown for a cart with an optional discount applied.
type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Shipping float64 `json:"shippingCost"`
	Total    float64 `json:"total"`
}

// Calculator computes order totals using a flat shipping rate and a single
// configured currency.
type Calculator struct {
	flatShipping float64
	currency     string
}

// NewCalculator creates a calculator with the given flat shipping rate and
// currency code.
func NewCalculator(flatShipping float64, currency string) *Calculator {
	return &Calculator{
		flatShipping: flatShipping,
		currency:     currency,
	}
}

// Subtotal sums unit price times quantity over all line items.
func (c *Calculator) Subtotal(items []model.CartLineItem) float64 {
	var subtotal float64
	for _, it := range items {
		subtotal += it.LineTotal()
	}
	return subtotal
}

// Quote computes the full breakdown. Shipping is zero for an empty cart,
// otherwise the flat rate. The discounted subtotal is floored at zero so a
// large fixed discount never produces a negative total.
func (c *Calculator) Quote(items []model.CartLineItem, discount float64) Quote {
	subtotal := c.Subtotal(items)

	var shipping float64
	if len(items) > 0 {
		shipping = c.flatShipping
	}

	discounted := subtotal - discount
	if discounted < 0 {
		discounted = 0
	}

	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Total:    discounted + shipping,
	}
}

// Currency returns the configured currency code.
func (c *Calculator) Currency() string {
	return c.currency
}

// FormatAmount renders an amount with the configured currency code, e.g.
// "EGP 160.00".
func (c *Calculator) FormatAmount(amount float64) string {
	return fmt.Sprintf("%s %.2f", c.currency, amount)
}
