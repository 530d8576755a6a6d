package repositories

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/internal/authz"
	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

var userColumns = []string{
	"id", "first_name", "last_name", "email", "password", "office_id",
	"is_active", "is_admin", "photo_url", "created_at", "updated_at",
}

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter types.Filter, scope authz.Scope) ([]dto.UserDTO, uint64, error)
	FindUser(ctx context.Context, id uint64) (entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (entities.User, error)
	CreateUser(ctx context.Context, u entities.User, roleID uint64) (uint64, error)
	UpdateUser(ctx context.Context, id uint64, updates map[string]interface{}) error
	GetUserRoleNames(ctx context.Context, userID uint64) ([]string, error)
	ReplaceUserRole(ctx context.Context, userID, roleID uint64) error
	GetUserIDsByRole(ctx context.Context, roleID uint64) ([]uint64, error)
	GetOverridesForUser(ctx context.Context, userID uint64) ([]entities.PermissionOverride, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

func (r *UserRepository) GetUsers(ctx context.Context, filter types.Filter, scope authz.Scope) ([]dto.UserDTO, uint64, error) {
	params := Params{
		WithPg: filter.WithPagination,
		Table:  "users",
		Alias:  "u",
		Columns: `u.id AS id, u.first_name AS first_name, u.last_name AS last_name,
			u.email AS email, u.is_active AS is_active, u.is_admin AS is_admin,
			u.photo_url AS photo_url, u.created_at AS created_at,
			o.id AS office_id, o.name AS office_name`,
		Relations: []Join{
			{Table: "offices", Alias: "o", OnLeft: "u.office_id", OnRight: "o.id"},
		},
		Filter:               filter.Filter,
		Limit:                uint64(filter.Limit),
		Offset:               uint64(filter.Offset),
		Search:               filter.Search,
		SortBy:               filter.Sort,
		AllowedFilterColumns: []string{"u.is_active", "u.office_id"},
		AllowedSearchColumns: []string{"u.first_name", "u.last_name", "u.email"},
		AllowedSortColumns:   []string{"u.id", "u.last_name", "u.email", "u.created_at"},
		Scope:                scope,
		ScopeColumn:          "u.office_id",
	}

	rows, total, err := FetchDataAndCount(ctx, r.storage, params)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.UserDTO, 0, len(rows))
	for _, row := range rows {
		userID := asUint64(row["id"])
		roles, err := r.GetUserRoleNames(ctx, userID)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, dto.UserDTO{
			ID:        userID,
			FirstName: asString(row["first_name"]),
			LastName:  asString(row["last_name"]),
			Email:     asString(row["email"]),
			Office: dto.ShortOfficeDTO{
				ID:   asUint64(row["office_id"]),
				Name: asString(row["office_name"]),
			},
			IsActive:  asBool(row["is_active"]),
			IsAdmin:   asBool(row["is_admin"]),
			PhotoURL:  asStringPtr(row["photo_url"]),
			Roles:     roles,
			CreatedAt: asTimeString(row["created_at"], time.RFC3339),
		})
	}
	return result, total, nil
}

func (r *UserRepository) FindUser(ctx context.Context, id uint64) (entities.User, error) {
	return r.findUserBy(ctx, sq.Eq{"id": id})
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (entities.User, error) {
	return r.findUserBy(ctx, sq.Eq{"email": email})
}

func (r *UserRepository) findUserBy(ctx context.Context, cond sq.Eq) (entities.User, error) {
	query, args, err := sq.Select(userColumns...).
		From("users").
		Where(cond).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return entities.User{}, err
	}

	var u entities.User
	err = r.storage.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password, &u.OfficeID,
		&u.IsActive, &u.IsAdmin, &u.PhotoURL, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.User{}, apperrors.ErrNotFound
		}
		return entities.User{}, err
	}
	return u, nil
}

// CreateUser inserts the user row together with its initial role in one
// transaction so no account ever exists without a role.
func (r *UserRepository) CreateUser(ctx context.Context, u entities.User, roleID uint64) (uint64, error) {
	var id uint64
	err := WithTx(ctx, r.storage, func(tx pgx.Tx) error {
		query, args, err := sq.Insert("users").
			Columns("first_name", "last_name", "email", "password", "office_id",
				"is_active", "is_admin", "photo_url").
			Values(u.FirstName, u.LastName, u.Email, u.Password, u.OfficeID,
				u.IsActive, u.IsAdmin, u.PhotoURL).
			Suffix("RETURNING id").
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			"INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)", id, roleID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, id uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	builder := sq.Update("users").
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

func (r *UserRepository) GetUserRoleNames(ctx context.Context, userID uint64) ([]string, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT r.name FROM roles r
		 JOIN user_roles ur ON ur.role_id = r.id
		 WHERE ur.user_id = $1
		 ORDER BY r.name`, userID)
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

func (r *UserRepository) ReplaceUserRole(ctx context.Context, userID, roleID uint64) error {
	return WithTx(ctx, r.storage, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM user_roles WHERE user_id = $1", userID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			"INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)", userID, roleID)
		return err
	})
}

func (r *UserRepository) GetUserIDsByRole(ctx context.Context, roleID uint64) ([]uint64, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT user_id FROM user_roles WHERE role_id = $1", roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *UserRepository) GetOverridesForUser(ctx context.Context, userID uint64) ([]entities.PermissionOverride, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT o.user_id, o.permission_id, p.name, o.is_active
		 FROM user_permission_overrides o
		 JOIN permissions p ON p.id = o.permission_id
		 WHERE o.user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overrides []entities.PermissionOverride
	for rows.Next() {
		var o entities.PermissionOverride
		if err := rows.Scan(&o.UserID, &o.PermissionID, &o.Name, &o.IsActive); err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}
