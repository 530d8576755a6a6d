package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/internal/entities"
)

type PermissionRepositoryInterface interface {
	GetPermissions(ctx context.Context) ([]entities.Permission, error)
	GetEffectivePermissionNames(ctx context.Context, userID uint64) ([]string, error)
	UpsertOverride(ctx context.Context, userID, permissionID uint64, isActive bool) error
	DeleteOverride(ctx context.Context, userID, permissionID uint64) error
}

type PermissionRepository struct {
	storage *pgxpool.Pool
}

func NewPermissionRepository(storage *pgxpool.Pool) PermissionRepositoryInterface {
	return &PermissionRepository{storage: storage}
}

func (r *PermissionRepository) GetPermissions(ctx context.Context) ([]entities.Permission, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, name, display_name, "group", description, created_at, updated_at
		 FROM permissions ORDER BY "group", name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms []entities.Permission
	for rows.Next() {
		var p entities.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.DisplayName, &p.Group,
			&p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

// GetEffectivePermissionNames resolves the user's permission set in one
// query: role grants, plus active overrides, minus inactive overrides.
// Override precedence is absolute in both directions.
func (r *PermissionRepository) GetEffectivePermissionNames(ctx context.Context, userID uint64) ([]string, error) {
	query := `
		SELECT DISTINCT p.name
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		JOIN user_roles ur ON ur.role_id = rp.role_id
		WHERE ur.user_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM user_permission_overrides o
			WHERE o.user_id = $1 AND o.permission_id = p.id AND o.is_active = FALSE
		  )
		UNION
		SELECT p.name
		FROM permissions p
		JOIN user_permission_overrides o ON o.permission_id = p.id
		WHERE o.user_id = $1 AND o.is_active = TRUE
		ORDER BY 1`

	rows, err := r.storage.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *PermissionRepository) UpsertOverride(ctx context.Context, userID, permissionID uint64, isActive bool) error {
	_, err := r.storage.Exec(ctx,
		`INSERT INTO user_permission_overrides (user_id, permission_id, is_active)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, permission_id) DO UPDATE SET is_active = EXCLUDED.is_active`,
		userID, permissionID, isActive)
	return err
}

func (r *PermissionRepository) DeleteOverride(ctx context.Context, userID, permissionID uint64) error {
	_, err := r.storage.Exec(ctx,
		"DELETE FROM user_permission_overrides WHERE user_id = $1 AND permission_id = $2",
		userID, permissionID)
	return err
}
