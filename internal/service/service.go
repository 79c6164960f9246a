package service

import (
	"context"

	"github.com/Ziad-Belal/strike-api/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for product management.
type ProductService interface {
	// GetAll retrieves products with pagination, optionally filtered by
	// category.
	GetAll(ctx context.Context, category string, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create adds a product to the catalogue and returns it with its ID set.
	Create(ctx context.Context, product *model.Product) (*model.Product, error)

	// SetStock sets the absolute stock level of a product.
	SetStock(ctx context.Context, id int64, stock int) error
}

// OrderService is the order-placement endpoint: it durably records an order
// and adjusts stock, and looks orders up afterwards.
type OrderService interface {
	// PlaceOrder persists the order header, its line items and the per-item
	// stock decrements in a single transaction.
	PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.PlacedOrder, error)

	// GetByID retrieves an order by its ID with all items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)
}

// ProfileService defines operations for customer profile management.
type ProfileService interface {
	// Get retrieves the profile for a user. Returns nil when absent.
	Get(ctx context.Context, userID string) (*model.CustomerProfile, error)

	// Save validates and stores the profile for a user. The phone is
	// normalised to digits-only before storage.
	Save(ctx context.Context, profile *model.CustomerProfile) error
}
