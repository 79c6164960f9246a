package repository

import (
	"context"

	"github.com/Ziad-Belal/strike-api/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves products with pagination support, optionally filtered
	// by category.
	GetAll(ctx context.Context, category string, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create inserts a new product and returns its assigned ID.
	Create(ctx context.Context, product *model.Product) (int64, error)

	// UpdateStock sets the absolute stock level of a product.
	UpdateStock(ctx context.Context, id int64, stock int) error

	// DecrementStock atomically decrements product stock within the provided
	// transaction. It fails with model.ErrInsufficientStock when the current
	// stock is lower than qty, so concurrent checkouts cannot oversell.
	DecrementStock(ctx context.Context, tx pgx.Tx, id int64, qty int) error
}

// PromoRepository defines the interface for promo code data access operations.
type PromoRepository interface {
	// GetByCode retrieves a promo code using case-insensitive matching.
	// Returns nil when absent.
	GetByCode(ctx context.Context, code string) (*model.PromoCode, error)

	// Upsert inserts a promo code or replaces its definition, preserving the
	// usage counter of an existing row.
	Upsert(ctx context.Context, promo *model.PromoCode) error

	// IncrementUsage bumps the usage counter of a promo code by one.
	// The counter is never decremented.
	IncrementUsage(ctx context.Context, code string) error
}

// ProfileRepository defines the interface for customer profile data access.
type ProfileRepository interface {
	// GetByUserID retrieves the profile for a user. Returns nil when absent.
	GetByUserID(ctx context.Context, userID string) (*model.CustomerProfile, error)

	// Upsert creates or updates the profile for a user.
	Upsert(ctx context.Context, profile *model.CustomerProfile) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order header within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)
}
