package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ziad-Belal/strike-api/internal/model"
	"github.com/Ziad-Belal/strike-api/internal/profile"
	"github.com/Ziad-Belal/strike-api/internal/repository"

	"github.com/rs/zerolog"
)

// profileService implements ProfileService.
type profileService struct {
	repo   repository.ProfileRepository
	logger zerolog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(repo repository.ProfileRepository, logger zerolog.Logger) ProfileService {
	return &profileService{
		repo:   repo,
		logger: logger.With().Str("service", "profile").Logger(),
	}
}

// Get retrieves the profile for a user.
func (s *profileService) Get(ctx context.Context, userID string) (*model.CustomerProfile, error) {
	prof, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get profile")
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return prof, nil
}

// Save validates and stores the profile for a user. The phone is normalised
// to digits-only; the role of an existing profile is preserved by the
// repository upsert.
func (s *profileService) Save(ctx context.Context, prof *model.CustomerProfile) error {
	if prof.UserID == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "User ID is required")
	}

	prof.FullName = strings.TrimSpace(prof.FullName)
	prof.Address = strings.TrimSpace(prof.Address)
	prof.Phone = profile.NormalizePhone(prof.Phone)

	if prof.Role == "" {
		prof.Role = model.RoleCustomer
	}

	if err := s.repo.Upsert(ctx, prof); err != nil {
		s.logger.Error().Err(err).Str("user_id", prof.UserID).Msg("failed to save profile")
		return fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Info().Str("user_id", prof.UserID).Msg("profile saved")

	return nil
}
