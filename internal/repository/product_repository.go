package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ziad-Belal/strike-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// GetAll retrieves products with pagination, optionally filtered by category.
func (r *productRepository) GetAll(ctx context.Context, category string, limit, offset int) ([]model.Product, error) {
	query := `
		SELECT id, name, price, category, sizes, stock, image_url, created_at
		FROM products
		WHERE ($1 = '' OR category = $1)
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, category, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Str("category", category).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Sizes, &p.Stock, &p.ImageURL, &p.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID. Returns nil when absent.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `
		SELECT id, name, price, category, sizes, stock, image_url, created_at
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Category, &p.Sizes, &p.Stock, &p.ImageURL, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Create inserts a new product and returns its assigned ID.
func (r *productRepository) Create(ctx context.Context, product *model.Product) (int64, error) {
	query := `
		INSERT INTO products (name, price, category, sizes, stock, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		product.Name,
		product.Price,
		product.Category,
		product.Sizes,
		product.Stock,
		product.ImageURL,
		product.CreatedAt,
	).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return 0, fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Int64("product_id", id).Str("name", product.Name).Msg("product created")

	return id, nil
}

// UpdateStock sets the absolute stock level of a product.
func (r *productRepository) UpdateStock(ctx context.Context, id int64, stock int) error {
	query := `UPDATE products SET stock = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, stock)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update stock")
		return fmt.Errorf("failed to update stock: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// DecrementStock atomically decrements product stock within a transaction.
// The stock guard in the WHERE clause makes the decrement conditional, so two
// concurrent checkouts of the same product cannot drive stock negative.
func (r *productRepository) DecrementStock(ctx context.Context, tx pgx.Tx, id int64, qty int) error {
	query := `
		UPDATE products
		SET stock = stock - $2
		WHERE id = $1 AND stock >= $2
	`

	tag, err := tx.Exec(ctx, query, id, qty)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Int("qty", qty).Msg("failed to decrement stock")
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Either the product is gone or stock < qty. Distinguish for the caller.
		exists, err := r.exists(ctx, tx, id)
		if err != nil {
			return err
		}
		if !exists {
			return model.ErrProductNotFound
		}
		r.logger.Warn().Int64("product_id", id).Int("qty", qty).Msg("insufficient stock for decrement")
		return model.ErrInsufficientStock
	}

	return nil
}

func (r *productRepository) exists(ctx context.Context, tx pgx.Tx, id int64) (bool, error) {
	var found bool
	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return found, nil
}
