package promo

import (
	"context"
	"fmt"
	"time"

	"github.com/Ziad-Belal/strike-api/internal/model"
	"github.com/Ziad-Belal/strike-api/internal/repository"

	"github.com/rs/zerolog"
)

// evaluator implements Evaluator against the promo repository.
type evaluator struct {
	repo   repository.PromoRepository
	now    func() time.Time
	logger zerolog.Logger
}

// NewEvaluator creates a new promo evaluator.
func NewEvaluator(repo repository.PromoRepository, logger zerolog.Logger) Evaluator {
	return &evaluator{
		repo:   repo,
		now:    time.Now,
		logger: logger.With().Str("component", "promo-evaluator").Logger(),
	}
}

// Apply validates a promo code against a subtotal and computes its discount.
func (e *evaluator) Apply(ctx context.Context, code string, subtotal float64) (*model.PromoCode, float64, error) {
	promo, err := e.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to look up promo code: %w", err)
	}

	// Inactive codes are indistinguishable from absent ones.
	if promo == nil || !promo.Active {
		e.logger.Debug().Str("code", code).Msg("promo code not found or inactive")
		return nil, 0, model.ErrPromoNotFound
	}

	if promo.Expired(e.now()) {
		e.logger.Debug().
			Str("code", promo.Code).
			Time("expires_at", *promo.ExpiresAt).
			Msg("promo code expired")
		return nil, 0, model.ErrPromoExpired
	}

	if promo.UsageExhausted() {
		e.logger.Debug().
			Str("code", promo.Code).
			Int("current_usages", promo.CurrentUsages).
			Int("max_usages", *promo.MaxUsages).
			Msg("promo code usage limit reached")
		return nil, 0, model.ErrPromoUsageLimit
	}

	discount := computeDiscount(promo, subtotal)

	e.logger.Debug().
		Str("code", promo.Code).
		Str("type", promo.DiscountType).
		Float64("discount", discount).
		Msg("promo code applied")

	return promo, discount, nil
}

// computeDiscount derives the discount amount for a valid promo.
// A fixed discount is capped at the subtotal so it never discounts below zero.
func computeDiscount(promo *model.PromoCode, subtotal float64) float64 {
	switch promo.DiscountType {
	case model.DiscountPercentage:
		return subtotal * promo.DiscountValue / 100
	case model.DiscountFixed:
		if promo.DiscountValue > subtotal {
			return subtotal
		}
		return promo.DiscountValue
	default:
		return 0
	}
}
