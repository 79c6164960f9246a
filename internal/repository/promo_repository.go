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

// promoRepository implements the PromoRepository interface using PostgreSQL.
type promoRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPromoRepository creates a new PostgreSQL-backed promo repository.
func NewPromoRepository(pool *pgxpool.Pool, logger zerolog.Logger) PromoRepository {
	return &promoRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "promo").Logger(),
	}
}

// GetByCode retrieves a promo code using case-insensitive matching.
func (r *promoRepository) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	query := `
		SELECT code, discount_type, discount_value, max_usages, current_usages, expires_at, is_active
		FROM promo_codes
		WHERE LOWER(code) = LOWER($1)
	`

	var p model.PromoCode
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&p.Code,
		&p.DiscountType,
		&p.DiscountValue,
		&p.MaxUsages,
		&p.CurrentUsages,
		&p.ExpiresAt,
		&p.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("code", code).Msg("promo code not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query promo code")
		return nil, fmt.Errorf("failed to query promo code: %w", err)
	}

	return &p, nil
}

// Upsert inserts a promo code or replaces its definition. The usage counter
// of an existing row is preserved.
func (r *promoRepository) Upsert(ctx context.Context, promo *model.PromoCode) error {
	query := `
		INSERT INTO promo_codes (code, discount_type, discount_value, max_usages, current_usages, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (code) DO UPDATE SET
			discount_type = EXCLUDED.discount_type,
			discount_value = EXCLUDED.discount_value,
			max_usages = EXCLUDED.max_usages,
			expires_at = EXCLUDED.expires_at,
			is_active = EXCLUDED.is_active
	`

	_, err := r.pool.Exec(ctx, query,
		model.NormalizePromoCode(promo.Code),
		promo.DiscountType,
		promo.DiscountValue,
		promo.MaxUsages,
		promo.CurrentUsages,
		promo.ExpiresAt,
		promo.Active,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("code", promo.Code).Msg("failed to upsert promo code")
		return fmt.Errorf("failed to upsert promo code: %w", err)
	}

	r.logger.Debug().Str("code", promo.Code).Msg("promo code upserted")

	return nil
}

// IncrementUsage bumps the usage counter of a promo code by one.
func (r *promoRepository) IncrementUsage(ctx context.Context, code string) error {
	query := `
		UPDATE promo_codes
		SET current_usages = current_usages + 1
		WHERE LOWER(code) = LOWER($1)
	`

	tag, err := r.pool.Exec(ctx, query, code)
	if err != nil {
		r.logger.Error().Err(err).Str("code", code).Msg("failed to increment promo usage")
		return fmt.Errorf("failed to increment promo usage: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrPromoNotFound
	}

	return nil
}
