package seeders

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/internal/authz"
)

type PermissionsSeeder struct{}

func (s *PermissionsSeeder) Name() string { return "permissions" }

func (s *PermissionsSeeder) Seed(ctx context.Context, pool *pgxpool.Pool) error {
	for _, p := range authz.All {
		_, err := pool.Exec(ctx,
			`INSERT INTO permissions (name, display_name, "group")
			 VALUES ($1, $2, $3)
			 ON CONFLICT (name) DO UPDATE
			 SET display_name = EXCLUDED.display_name, "group" = EXCLUDED."group"`,
			p.Name, p.DisplayName, p.Group)
		if err != nil {
			return err
		}
	}
	return nil
}
