package model

import "time"

// Product represents an item in the store catalogue.
type Product struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Category  string    `json:"category" db:"category"`
	Sizes     []string  `json:"sizes,omitempty" db:"sizes"`
	Stock     int       `json:"stock" db:"stock"`
	ImageURL  string    `json:"imageUrl,omitempty" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// HasSizes reports whether the product declares selectable sizes.
// Adding such a product to the cart requires a size selection.
func (p *Product) HasSizes() bool {
	return len(p.Sizes) > 0
}
