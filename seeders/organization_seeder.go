package seeders

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type OrganizationSeeder struct{}

func (s *OrganizationSeeder) Name() string { return "organization" }

func (s *OrganizationSeeder) Seed(ctx context.Context, pool *pgxpool.Pool) error {
	var campusID uint64
	err := pool.QueryRow(ctx,
		`INSERT INTO campuses (name, address)
		 VALUES ('Main Campus', 'Main Street')
		 ON CONFLICT (name) DO UPDATE SET address = EXCLUDED.address
		 RETURNING id`).Scan(&campusID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO offices (campus_id, name, is_active)
		 VALUES ($1, 'IT Office', TRUE)
		 ON CONFLICT (campus_id, name) DO NOTHING`, campusID)
	if err != nil {
		return err
	}

	for _, name := range []string{"Desktop Computer", "Laptop", "Printer", "Projector", "Network Switch"} {
		if _, err := pool.Exec(ctx,
			`INSERT INTO equipment_types (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
			name); err != nil {
			return err
		}
	}
	for _, name := range []string{"ICT Equipment", "Office Equipment", "Laboratory Equipment"} {
		if _, err := pool.Exec(ctx,
			`INSERT INTO equipment_categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
			name); err != nil {
			return err
		}
	}
	return nil
}
