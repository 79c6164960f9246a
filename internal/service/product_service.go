package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Ziad-Belal/strike-api/internal/model"
	"github.com/Ziad-Belal/strike-api/internal/repository"

	"github.com/rs/zerolog"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// productService implements ProductService.
type productService struct {
	repo   repository.ProductRepository
	logger zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		repo:   repo,
		logger: logger.With().Str("service", "product").Logger(),
	}
}

// GetAll retrieves products with pagination, optionally filtered by category.
func (s *productService) GetAll(ctx context.Context, category string, limit, offset int) ([]model.Product, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.repo.GetAll(ctx, category, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// Create adds a product to the catalogue.
func (s *productService) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if product.Name == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Product name is required")
	}
	if product.Price <= 0 {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Product price must be greater than zero")
	}
	if product.Stock < 0 {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Product stock cannot be negative")
	}

	product.CreatedAt = time.Now()

	id, err := s.repo.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	product.ID = id

	s.logger.Info().
		Int64("product_id", id).
		Str("name", product.Name).
		Msg("product created")

	return product, nil
}

// SetStock sets the absolute stock level of a product.
func (s *productService) SetStock(ctx context.Context, id int64, stock int) error {
	if stock < 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "Stock cannot be negative")
	}

	if err := s.repo.UpdateStock(ctx, id, stock); err != nil {
		return err
	}

	s.logger.Info().Int64("product_id", id).Int("stock", stock).Msg("stock updated")

	return nil
}
