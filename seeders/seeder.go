package seeders

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Seeder populates a baseline dataset. Every seeder is idempotent: running
// the whole set twice leaves the database unchanged.
type Seeder interface {
	Name() string
	Seed(ctx context.Context, pool *pgxpool.Pool) error
}

func RunAll(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	all := []Seeder{
		&PermissionsSeeder{},
		&RolesSeeder{},
		&OrganizationSeeder{},
		&SuperAdminSeeder{},
	}

	for _, s := range all {
		logger.Info("running seeder", zap.String("seeder", s.Name()))
		if err := s.Seed(ctx, pool); err != nil {
			return err
		}
	}
	return nil
}
