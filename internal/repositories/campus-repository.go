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

type CampusRepositoryInterface interface {
	GetCampuses(ctx context.Context) ([]entities.Campus, error)
	FindCampus(ctx context.Context, id uint64) (entities.Campus, error)
	CreateCampus(ctx context.Context, campus entities.Campus) (uint64, error)
	UpdateCampus(ctx context.Context, id uint64, updates map[string]interface{}) error
	DeleteCampus(ctx context.Context, id uint64) error
}

type CampusRepository struct {
	storage *pgxpool.Pool
}

func NewCampusRepository(storage *pgxpool.Pool) CampusRepositoryInterface {
	return &CampusRepository{storage: storage}
}

func (r *CampusRepository) GetCampuses(ctx context.Context) ([]entities.Campus, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT id, name, address, created_at, updated_at FROM campuses ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campuses []entities.Campus
	for rows.Next() {
		var c entities.Campus
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		campuses = append(campuses, c)
	}
	return campuses, rows.Err()
}

func (r *CampusRepository) FindCampus(ctx context.Context, id uint64) (entities.Campus, error) {
	var c entities.Campus
	err := r.storage.QueryRow(ctx,
		"SELECT id, name, address, created_at, updated_at FROM campuses WHERE id = $1", id,
	).Scan(&c.ID, &c.Name, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.Campus{}, apperrors.ErrNotFound
		}
		return entities.Campus{}, err
	}
	return c, nil
}

func (r *CampusRepository) CreateCampus(ctx context.Context, campus entities.Campus) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		"INSERT INTO campuses (name, address) VALUES ($1, $2) RETURNING id",
		campus.Name, campus.Address,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *CampusRepository) UpdateCampus(ctx context.Context, id uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	builder := sq.Update("campuses").
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

func (r *CampusRepository) DeleteCampus(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, "DELETE FROM campuses WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
