package seed

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/config"
)

// AdminCreator creates the first administrator when none exists
type AdminCreator interface {
	EnsureDefaultAdmin(ctx context.Context, req dto.CreateAdminRequest) (bool, error)
}

// CreateDefaultAdmin makes sure the store has at least one administrator so
// that the admin-only routes are reachable on a fresh install. Nothing is
// created when no seed password is configured.
func CreateDefaultAdmin(ctx context.Context, admins AdminCreator, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Seed.AdminPassword == "" {
		lgr.Warn().Msg("No seed admin password configured, skipping default admin creation")
		return nil
	}

	created, err := admins.EnsureDefaultAdmin(ctx, dto.CreateAdminRequest{
		Name:     cfg.Seed.AdminName,
		Username: cfg.Seed.AdminUsername,
		Password: cfg.Seed.AdminPassword,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin")
		return err
	}

	if created {
		lgr.Info().Str("username", cfg.Seed.AdminUsername).Msg("Default admin user created successfully")
	} else {
		lgr.Info().Msg("Admin user already exists, skipping creation")
	}
	return nil
}
