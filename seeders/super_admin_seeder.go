package seeders

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"inventory-system/internal/authz"
)

type SuperAdminSeeder struct{}

func (s *SuperAdminSeeder) Name() string { return "super-admin" }

// Seed creates the initial super-admin account. The password comes from
// SEED_ADMIN_PASSWORD; an existing account is left untouched.
func (s *SuperAdminSeeder) Seed(ctx context.Context, pool *pgxpool.Pool) error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@inventory.local"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "change-me-now"
	}

	var exists bool
	if err := pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var officeID uint64
	if err := pool.QueryRow(ctx,
		"SELECT id FROM offices ORDER BY id LIMIT 1").Scan(&officeID); err != nil {
		return err
	}

	var userID uint64
	err = pool.QueryRow(ctx,
		`INSERT INTO users (first_name, last_name, email, password, office_id, is_active, is_admin)
		 VALUES ('System', 'Administrator', $1, $2, $3, TRUE, TRUE)
		 RETURNING id`,
		email, string(hashed), officeID).Scan(&userID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_id)
		 SELECT $1, id FROM roles WHERE name = $2`,
		userID, authz.RoleSuperAdmin)
	return err
}
