package promo

import (
	"context"

	"github.com/Ziad-Belal/strike-api/internal/model"
)

// Evaluator defines the interface for promo code evaluation.
type Evaluator interface {
	// Apply validates a promo code against a subtotal and returns the promo
	// together with the discount amount it yields. It fails with
	// model.ErrPromoNotFound, model.ErrPromoExpired or
	// model.ErrPromoUsageLimit. An inactive code is reported as not found.
	Apply(ctx context.Context, code string, subtotal float64) (*model.PromoCode, float64, error)
}

// Importer defines the interface for bulk promo code import.
type Importer interface {
	// Import reads a promo definition file and upserts every row. It returns
	// the number of codes imported.
	Import(ctx context.Context, path string) (int, error)
}

// Loader defines the interface for reading gzipped promo definition files.
type Loader interface {
	// Load reads a gzipped CSV promo file and returns the parsed codes.
	Load(ctx context.Context, path string) ([]model.PromoCode, error)
}
