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

// profileRepository implements the ProfileRepository interface using PostgreSQL.
type profileRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProfileRepository creates a new PostgreSQL-backed profile repository.
func NewProfileRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProfileRepository {
	return &profileRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "profile").Logger(),
	}
}

// GetByUserID retrieves the profile for a user. Returns nil when absent.
func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*model.CustomerProfile, error) {
	query := `
		SELECT user_id, full_name, phone, address, role
		FROM profiles
		WHERE user_id = $1
	`

	var p model.CustomerProfile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.FullName,
		&p.Phone,
		&p.Address,
		&p.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("user_id", userID).Msg("profile not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query profile")
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	return &p, nil
}

// Upsert creates or updates the profile for a user.
func (r *profileRepository) Upsert(ctx context.Context, profile *model.CustomerProfile) error {
	query := `
		INSERT INTO profiles (user_id, full_name, phone, address, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address
	`

	_, err := r.pool.Exec(ctx, query,
		profile.UserID,
		profile.FullName,
		profile.Phone,
		profile.Address,
		profile.Role,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", profile.UserID).Msg("failed to upsert profile")
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	r.logger.Debug().Str("user_id", profile.UserID).Msg("profile upserted")

	return nil
}
