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

type OfficeRepositoryInterface interface {
	GetOffices(ctx context.Context, filter types.Filter, scope authz.Scope) ([]dto.OfficeDTO, uint64, error)
	FindOffice(ctx context.Context, id uint64) (entities.Office, error)
	CreateOffice(ctx context.Context, office entities.Office) (uint64, error)
	UpdateOffice(ctx context.Context, id uint64, updates map[string]interface{}) error
	DeleteOffice(ctx context.Context, id uint64) error
	CountReferences(ctx context.Context, id uint64) (uint64, error)
}

type OfficeRepository struct {
	storage *pgxpool.Pool
}

func NewOfficeRepository(storage *pgxpool.Pool) OfficeRepositoryInterface {
	return &OfficeRepository{storage: storage}
}

func (r *OfficeRepository) GetOffices(ctx context.Context, filter types.Filter, scope authz.Scope) ([]dto.OfficeDTO, uint64, error) {
	params := Params{
		WithPg: filter.WithPagination,
		Table:  "offices",
		Alias:  "o",
		Columns: `o.id AS id, o.name AS name, o.is_active AS is_active,
			o.contact_person AS contact_person, o.contact_number AS contact_number,
			o.email AS email, o.created_at AS created_at,
			c.id AS campus_id, c.name AS campus_name`,
		Relations: []Join{
			{Table: "campuses", Alias: "c", OnLeft: "o.campus_id", OnRight: "c.id"},
		},
		Filter:               filter.Filter,
		Limit:                uint64(filter.Limit),
		Offset:               uint64(filter.Offset),
		Search:               filter.Search,
		SortBy:               filter.Sort,
		AllowedFilterColumns: []string{"o.is_active", "o.campus_id"},
		AllowedSearchColumns: []string{"o.name", "c.name"},
		AllowedSortColumns:   []string{"o.id", "o.name", "c.name"},
		Scope:                scope,
		ScopeColumn:          "o.id",
	}

	rows, total, err := FetchDataAndCount(ctx, r.storage, params)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.OfficeDTO, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.OfficeDTO{
			ID:       asUint64(row["id"]),
			Name:     asString(row["name"]),
			IsActive: asBool(row["is_active"]),
			Campus: dto.ShortCampusDTO{
				ID:   asUint64(row["campus_id"]),
				Name: asString(row["campus_name"]),
			},
			ContactPerson: asStringPtr(row["contact_person"]),
			ContactNumber: asStringPtr(row["contact_number"]),
			Email:         asStringPtr(row["email"]),
			CreatedAt:     asTimeString(row["created_at"], time.RFC3339),
		})
	}
	return result, total, nil
}

func (r *OfficeRepository) FindOffice(ctx context.Context, id uint64) (entities.Office, error) {
	var o entities.Office
	err := r.storage.QueryRow(ctx,
		`SELECT id, campus_id, name, is_active, contact_person, contact_number,
			email, created_at, updated_at
		 FROM offices WHERE id = $1`, id).Scan(
		&o.ID, &o.CampusID, &o.Name, &o.IsActive, &o.ContactPerson,
		&o.ContactNumber, &o.Email, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.Office{}, apperrors.ErrNotFound
		}
		return entities.Office{}, err
	}
	return o, nil
}

func (r *OfficeRepository) CreateOffice(ctx context.Context, office entities.Office) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO offices (campus_id, name, is_active, contact_person, contact_number, email)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		office.CampusID, office.Name, office.IsActive,
		office.ContactPerson, office.ContactNumber, office.Email,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *OfficeRepository) UpdateOffice(ctx context.Context, id uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	builder := sq.Update("offices").
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

func (r *OfficeRepository) DeleteOffice(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, "DELETE FROM offices WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountReferences counts equipments and users still pointing at the office.
// A non-zero count blocks deletion.
func (r *OfficeRepository) CountReferences(ctx context.Context, id uint64) (uint64, error) {
	var total uint64
	err := r.storage.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM equipments WHERE office_id = $1)
		      + (SELECT COUNT(*) FROM users WHERE office_id = $1)`, id).Scan(&total)
	return total, err
}
