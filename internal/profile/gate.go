// Package profile validates that an account carries shippable contact data
// before checkout is allowed to touch persistence.
package profile

import (
	"strings"

	"github.com/Ziad-Belal/strike-api/internal/model"

	"github.com/rs/zerolog"
)

const (
	minPhoneDigits = 6
	maxPhoneDigits = 15
)

// Gate is the pre-checkout profile validation.
type Gate struct {
	logger zerolog.Logger
}

// NewGate creates a new profile gate.
func NewGate(logger zerolog.Logger) *Gate {
	return &Gate{
		logger: logger.With().Str("component", "profile-gate").Logger(),
	}
}

// EnsureCheckoutEligible verifies that the profile has a full name, a valid
// phone and a delivery address. It fails with model.ErrIncompleteProfile and
// never writes anything.
func (g *Gate) EnsureCheckoutEligible(profile *model.CustomerProfile) error {
	if profile == nil {
		g.logger.Debug().Msg("no profile on record")
		return model.ErrIncompleteProfile
	}

	if strings.TrimSpace(profile.FullName) == "" {
		g.logger.Debug().Str("user_id", profile.UserID).Msg("profile missing full name")
		return model.ErrIncompleteProfile
	}

	phone := NormalizePhone(profile.Phone)
	if len(phone) < minPhoneDigits || len(phone) > maxPhoneDigits {
		g.logger.Debug().
			Str("user_id", profile.UserID).
			Int("digits", len(phone)).
			Msg("profile phone invalid")
		return model.ErrIncompleteProfile
	}

	if strings.TrimSpace(profile.Address) == "" {
		g.logger.Debug().Str("user_id", profile.UserID).Msg("profile missing address")
		return model.ErrIncompleteProfile
	}

	return nil
}

// NormalizePhone strips every non-digit character. Stored phones are
// digits-only.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
