package model

import (
	"strings"
	"time"
)

// Discount types supported by promo codes.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// PromoCode is a discount token with type, value, usage cap and expiration.
// Codes are unique case-insensitively.
type PromoCode struct {
	Code          string     `json:"code" db:"code"`
	DiscountType  string     `json:"discountType" db:"discount_type"`
	DiscountValue float64    `json:"discountValue" db:"discount_value"`
	MaxUsages     *int       `json:"maxUsages,omitempty" db:"max_usages"`
	CurrentUsages int        `json:"currentUsages" db:"current_usages"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty" db:"expires_at"`
	Active        bool       `json:"active" db:"is_active"`
}

// Expired reports whether the promo's expiration date has passed.
func (p *PromoCode) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && p.ExpiresAt.Before(now)
}

// UsageExhausted reports whether the usage cap has been reached.
func (p *PromoCode) UsageExhausted() bool {
	return p.MaxUsages != nil && p.CurrentUsages >= *p.MaxUsages
}

// NormalizePromoCode canonicalises a promo code for case-insensitive lookup.
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
