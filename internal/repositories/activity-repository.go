package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/pkg/types"
)

type ActivityRepositoryInterface interface {
	GetActivities(ctx context.Context, filter types.Filter) ([]dto.ActivityDTO, uint64, error)
	CreateActivity(ctx context.Context, a entities.Activity) error
}

type ActivityRepository struct {
	storage *pgxpool.Pool
}

func NewActivityRepository(storage *pgxpool.Pool) ActivityRepositoryInterface {
	return &ActivityRepository{storage: storage}
}

func (r *ActivityRepository) GetActivities(ctx context.Context, filter types.Filter) ([]dto.ActivityDTO, uint64, error) {
	params := Params{
		WithPg: filter.WithPagination,
		Table:  "activities",
		Alias:  "a",
		Columns: `a.id AS id, a.user_id AS user_id, a.category AS category,
			a.action AS action, a.description AS description,
			a.metadata AS metadata, a.created_at AS created_at`,
		Filter:               filter.Filter,
		Limit:                uint64(filter.Limit),
		Offset:               uint64(filter.Offset),
		Search:               filter.Search,
		SortBy:               filter.Sort,
		AllowedFilterColumns: []string{"a.category", "a.user_id", "a.action"},
		AllowedSearchColumns: []string{"a.description", "a.action"},
		AllowedSortColumns:   []string{"a.id", "a.created_at"},
	}
	if len(params.SortBy) == 0 {
		params.SortBy = map[string]string{"a.created_at": "desc"}
	}

	rows, total, err := FetchDataAndCount(ctx, r.storage, params)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.ActivityDTO, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.ActivityDTO{
			ID:          asUint64(row["id"]),
			UserID:      asUint64Ptr(row["user_id"]),
			Category:    asString(row["category"]),
			Action:      asString(row["action"]),
			Description: asString(row["description"]),
			Metadata:    asRawJSON(row["metadata"]),
			CreatedAt:   asTimeString(row["created_at"], time.RFC3339),
		})
	}
	return result, total, nil
}

func (r *ActivityRepository) CreateActivity(ctx context.Context, a entities.Activity) error {
	_, err := r.storage.Exec(ctx,
		`INSERT INTO activities (user_id, category, action, description, metadata)
		 VALUES ($1, $2, $3, $4, $5)`,
		a.UserID, a.Category, a.Action, a.Description, a.Metadata)
	return err
}
