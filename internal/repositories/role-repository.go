package repositories

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"
)

type RoleRepositoryInterface interface {
	GetRoles(ctx context.Context, includeSuperAdmin bool) ([]entities.Role, error)
	FindRole(ctx context.Context, id uint64) (entities.Role, error)
	FindRoleByName(ctx context.Context, name string) (entities.Role, error)
	CreateRole(ctx context.Context, role entities.Role) (uint64, error)
	UpdateRole(ctx context.Context, id uint64, updates map[string]interface{}) error
	GetRolePermissionNames(ctx context.Context, roleID uint64) ([]string, error)
	ReplaceRolePermissions(ctx context.Context, roleID uint64, permissionIDs []uint64) error
}

type RoleRepository struct {
	storage *pgxpool.Pool
}

func NewRoleRepository(storage *pgxpool.Pool) RoleRepositoryInterface {
	return &RoleRepository{storage: storage}
}

// GetRoles hides the super-admin role from callers that may not assign it.
func (r *RoleRepository) GetRoles(ctx context.Context, includeSuperAdmin bool) ([]entities.Role, error) {
	builder := sq.Select("id", "name", "display_name", "description", "created_at", "updated_at").
		From("roles").
		OrderBy("id").
		PlaceholderFormat(sq.Dollar)
	if !includeSuperAdmin {
		builder = builder.Where(sq.NotEq{"name": "super-admin"})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []entities.Role
	for rows.Next() {
		var role entities.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.DisplayName,
			&role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *RoleRepository) FindRole(ctx context.Context, id uint64) (entities.Role, error) {
	return r.findRoleBy(ctx, sq.Eq{"id": id})
}

func (r *RoleRepository) FindRoleByName(ctx context.Context, name string) (entities.Role, error) {
	return r.findRoleBy(ctx, sq.Eq{"name": name})
}

func (r *RoleRepository) findRoleBy(ctx context.Context, cond sq.Eq) (entities.Role, error) {
	query, args, err := sq.Select("id", "name", "display_name", "description", "created_at", "updated_at").
		From("roles").
		Where(cond).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return entities.Role{}, err
	}

	var role entities.Role
	err = r.storage.QueryRow(ctx, query, args...).Scan(
		&role.ID, &role.Name, &role.DisplayName, &role.Description,
		&role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.Role{}, apperrors.ErrNotFound
		}
		return entities.Role{}, err
	}
	return role, nil
}

func (r *RoleRepository) CreateRole(ctx context.Context, role entities.Role) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO roles (name, display_name, description)
		 VALUES ($1, $2, $3) RETURNING id`,
		role.Name, role.DisplayName, role.Description,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *RoleRepository) UpdateRole(ctx context.Context, id uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	builder := sq.Update("roles").
		Where(sq.Eq{"id": id}).
		Set("updated_at", sq.Expr("NOW()")).
		PlaceholderFormat(sq.Dollar)
	for col, val := range updates {
		builder = builder.Set(col, val)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RoleRepository) GetRolePermissionNames(ctx context.Context, roleID uint64) ([]string, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT p.name FROM permissions p
		 JOIN role_permissions rp ON rp.permission_id = p.id
		 WHERE rp.role_id = $1
		 ORDER BY p.name`, roleID)
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

// ReplaceRolePermissions swaps the full permission set of a role atomically.
func (r *RoleRepository) ReplaceRolePermissions(ctx context.Context, roleID uint64, permissionIDs []uint64) error {
	return WithTx(ctx, r.storage, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			"DELETE FROM role_permissions WHERE role_id = $1", roleID); err != nil {
			return err
		}
		for _, pid := range permissionIDs {
			if _, err := tx.Exec(ctx,
				"INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)",
				roleID, pid); err != nil {
				return err
			}
		}
		return nil
	})
}
