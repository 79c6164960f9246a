package model

import (
	"time"

	"github.com/google/uuid"
)

// Order represents a persisted order header.
type Order struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     string    `json:"userId" db:"user_id"`
	PromoCode  *string   `json:"promoCode,omitempty" db:"promo_code"`
	Subtotal   float64   `json:"subtotal" db:"subtotal"`
	Discount   float64   `json:"discount" db:"discount_amount"`
	Shipping   float64   `json:"shippingCost" db:"shipping_cost"`
	TotalPrice float64   `json:"totalPrice" db:"total_price"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a line item in a persisted order.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID int64     `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Size      string    `json:"size,omitempty" db:"size"`
	Quantity  int       `json:"quantity" db:"quantity"`
	UnitPrice float64   `json:"unitPrice" db:"unit_price"`
}

// UserInfo is the contact snapshot attached to an order request.
type UserInfo struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// OrderRequest is the payload handed to order placement. It is a snapshot of
// the cart, totals and contact data, immutable once built for a checkout
// attempt.
type OrderRequest struct {
	UserID    string         `json:"-"`
	Items     []CartLineItem `json:"items"`
	Subtotal  float64        `json:"subtotal"`
	Shipping  float64        `json:"shippingCost"`
	Discount  float64        `json:"discount"`
	PromoCode *string        `json:"promoCode,omitempty"`
	Total     float64        `json:"total"`
	UserInfo  UserInfo       `json:"userInfo"`
}

// PlacedOrder is the result of a successful order placement.
type PlacedOrder struct {
	OrderID uuid.UUID `json:"orderId"`
	Total   float64   `json:"total"`
}

// OrderResponse represents the response payload for an order lookup.
type OrderResponse struct {
	ID         uuid.UUID   `json:"id"`
	UserID     string      `json:"userId"`
	Subtotal   float64     `json:"subtotal"`
	Discount   float64     `json:"discount"`
	Shipping   float64     `json:"shippingCost"`
	TotalPrice float64     `json:"totalPrice"`
	PromoCode  *string     `json:"promoCode,omitempty"`
	Items      []OrderItem `json:"items"`
}
