package repositories

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

type EquipmentHistoryRepositoryInterface interface {
	GetHistories(ctx context.Context, equipmentID uint64, filter types.Filter) ([]dto.EquipmentHistoryDTO, uint64, error)
	FindHistory(ctx context.Context, id uint64) (entities.EquipmentHistory, error)
	LatestJoNumber(ctx context.Context, prefix string) (string, error)
	JoNumberExists(ctx context.Context, joNumber string) (bool, error)
	LatestHistoryDate(ctx context.Context, equipmentID uint64) (*time.Time, error)
	LatestHistoryExcept(ctx context.Context, equipmentID, exceptID uint64) (*entities.EquipmentHistory, error)
	CreateHistory(ctx context.Context, q Querier, h entities.EquipmentHistory) (uint64, error)
	UpdateHistory(ctx context.Context, q Querier, id uint64, updates map[string]interface{}) error
}

type EquipmentHistoryRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentHistoryRepository(storage *pgxpool.Pool) EquipmentHistoryRepositoryInterface {
	return &EquipmentHistoryRepository{storage: storage}
}

func (r *EquipmentHistoryRepository) GetHistories(ctx context.Context, equipmentID uint64, filter types.Filter) ([]dto.EquipmentHistoryDTO, uint64, error) {
	params := Params{
		WithPg: filter.WithPagination,
		Table:  "equipment_histories",
		Alias:  "h",
		Columns: `h.id AS id, h.equipment_id AS equipment_id, h.jo_number AS jo_number,
			h.date AS date, h.action_taken AS action_taken, h.remarks AS remarks,
			h.equipment_status AS equipment_status,
			h.responsible_person AS responsible_person,
			h.created_at AS created_at,
			u.first_name AS assigned_first_name, u.last_name AS assigned_last_name`,
		Relations: []Join{
			{Table: "users", Alias: "u", OnLeft: "h.assigned_by_id", OnRight: "u.id"},
		},
		Where:  map[string]interface{}{"h.equipment_id": equipmentID},
		Limit:  uint64(filter.Limit),
		Offset: uint64(filter.Offset),
		Search: filter.Search,
		SortBy: filter.Sort,
		AllowedSearchColumns: []string{
			"h.jo_number", "h.action_taken", "h.responsible_person",
		},
		AllowedSortColumns: []string{"h.date", "h.jo_number", "h.created_at"},
	}
	if len(params.SortBy) == 0 {
		params.SortBy = map[string]string{"h.date": "desc"}
	}

	rows, total, err := FetchDataAndCount(ctx, r.storage, params)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.EquipmentHistoryDTO, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.EquipmentHistoryDTO{
			ID:                asUint64(row["id"]),
			EquipmentID:       asUint64(row["equipment_id"]),
			JoNumber:          asString(row["jo_number"]),
			Date:              asTimeString(row["date"], "2006-01-02"),
			ActionTaken:       asString(row["action_taken"]),
			Remarks:           asStringPtr(row["remarks"]),
			EquipmentStatus:   asString(row["equipment_status"]),
			ResponsiblePerson: asString(row["responsible_person"]),
			AssignedBy:        asString(row["assigned_first_name"]) + " " + asString(row["assigned_last_name"]),
			CreatedAt:         asTimeString(row["created_at"], time.RFC3339),
		})
	}
	return result, total, nil
}

func (r *EquipmentHistoryRepository) FindHistory(ctx context.Context, id uint64) (entities.EquipmentHistory, error) {
	query := `SELECT id, equipment_id, jo_number, date, action_taken, remarks,
		equipment_status, responsible_person, assigned_by_id, created_at
		FROM equipment_histories WHERE id = $1`

	var h entities.EquipmentHistory
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&h.ID, &h.EquipmentID, &h.JoNumber, &h.Date, &h.ActionTaken,
		&h.Remarks, &h.EquipmentStatus, &h.ResponsiblePerson,
		&h.AssignedByID, &h.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.EquipmentHistory{}, apperrors.ErrNotFound
		}
		return entities.EquipmentHistory{}, err
	}
	return h, nil
}

// LatestJoNumber returns the lexicographically greatest jo_number with the
// given prefix. Zero-padded sequences make lexicographic and numeric order
// agree, so ORDER BY jo_number DESC yields the highest allocated number.
func (r *EquipmentHistoryRepository) LatestJoNumber(ctx context.Context, prefix string) (string, error) {
	query := `SELECT jo_number FROM equipment_histories
		WHERE jo_number LIKE $1 || '%'
		ORDER BY jo_number DESC LIMIT 1`

	var joNumber string
	err := r.storage.QueryRow(ctx, query, prefix).Scan(&joNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return joNumber, nil
}

func (r *EquipmentHistoryRepository) JoNumberExists(ctx context.Context, joNumber string) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM equipment_histories WHERE jo_number = $1)",
		joNumber,
	).Scan(&exists)
	return exists, err
}

func (r *EquipmentHistoryRepository) LatestHistoryDate(ctx context.Context, equipmentID uint64) (*time.Time, error) {
	var latest *time.Time
	err := r.storage.QueryRow(ctx,
		"SELECT MAX(date) FROM equipment_histories WHERE equipment_id = $1",
		equipmentID,
	).Scan(&latest)
	if err != nil {
		return nil, err
	}
	return latest, nil
}

// LatestHistoryExcept returns the latest-dated entry for the equipment
// ignoring the given one. Edits use it so a date change is judged against the
// other entries, not against the edited row's own stored date.
func (r *EquipmentHistoryRepository) LatestHistoryExcept(ctx context.Context, equipmentID, exceptID uint64) (*entities.EquipmentHistory, error) {
	query := `SELECT id, equipment_id, jo_number, date, action_taken, remarks,
		equipment_status, responsible_person, assigned_by_id, created_at
		FROM equipment_histories
		WHERE equipment_id = $1 AND id <> $2
		ORDER BY date DESC, id DESC LIMIT 1`

	var h entities.EquipmentHistory
	err := r.storage.QueryRow(ctx, query, equipmentID, exceptID).Scan(
		&h.ID, &h.EquipmentID, &h.JoNumber, &h.Date, &h.ActionTaken,
		&h.Remarks, &h.EquipmentStatus, &h.ResponsiblePerson,
		&h.AssignedByID, &h.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

func (r *EquipmentHistoryRepository) CreateHistory(ctx context.Context, q Querier, h entities.EquipmentHistory) (uint64, error) {
	query, args, err := sq.Insert("equipment_histories").
		Columns("equipment_id", "jo_number", "date", "action_taken", "remarks",
			"equipment_status", "responsible_person", "assigned_by_id").
		Values(h.EquipmentID, h.JoNumber, h.Date, h.ActionTaken, h.Remarks,
			h.EquipmentStatus, h.ResponsiblePerson, h.AssignedByID).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id uint64
	if err := q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *EquipmentHistoryRepository) UpdateHistory(ctx context.Context, q Querier, id uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	builder := sq.Update("equipment_histories").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar)
	for col, val := range updates {
		builder = builder.Set(col, val)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
