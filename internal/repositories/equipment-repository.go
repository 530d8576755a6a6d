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

var equipmentColumns = []string{
	"id", "brand", "model_number", "serial_number", "equipment_type_id",
	"category_id", "office_id", "description", "purchase_date",
	"cost_of_purchase", "status", "condition", "qr_code",
	"qr_code_image_path", "created_at", "updated_at",
}

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter, scope authz.Scope) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64, scope authz.Scope) (entities.Equipment, error)
	FindEquipmentDetail(ctx context.Context, id uint64, scope authz.Scope) (dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, e entities.Equipment) (uint64, error)
	UpdateEquipment(ctx context.Context, id uint64, updates map[string]interface{}) error
	UpdateStatus(ctx context.Context, q Querier, id uint64, status, condition string) error
	SetQRCode(ctx context.Context, id uint64, token string) error
	SetQRImagePath(ctx context.Context, id uint64, path string) error
	DeleteEquipment(ctx context.Context, id uint64) error
	GetEquipmentsByIDs(ctx context.Context, ids []uint64, scope authz.Scope) ([]entities.Equipment, error)
	GetEquipmentsByOffice(ctx context.Context, officeID uint64) ([]entities.Equipment, error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter, scope authz.Scope) ([]dto.EquipmentDTO, uint64, error) {
	params := Params{
		WithPg: filter.WithPagination,
		Table:  "equipments",
		Alias:  "e",
		Columns: `e.id AS id, e.brand AS brand, e.model_number AS model_number,
			e.serial_number AS serial_number, e.description AS description,
			e.purchase_date AS purchase_date, e.cost_of_purchase AS cost_of_purchase,
			e.status AS status, e.condition AS condition, e.qr_code AS qr_code,
			e.qr_code_image_path AS qr_code_image_path,
			e.created_at AS created_at, e.updated_at AS updated_at,
			o.id AS office_id, o.name AS office_name,
			et.id AS type_id, et.name AS type_name,
			c.id AS cat_id, c.name AS cat_name`,
		Relations: []Join{
			{Table: "offices", Alias: "o", OnLeft: "e.office_id", OnRight: "o.id"},
			{Table: "equipment_types", Alias: "et", OnLeft: "e.equipment_type_id", OnRight: "et.id"},
			{Table: "equipment_categories", Alias: "c", OnLeft: "e.category_id", OnRight: "c.id", JoinType: "LEFT"},
		},
		Filter: filter.Filter,
		Limit:  uint64(filter.Limit),
		Offset: uint64(filter.Offset),
		Search: filter.Search,
		SortBy: filter.Sort,
		AllowedFilterColumns: []string{
			"e.status", "e.condition", "e.office_id", "e.equipment_type_id", "e.category_id",
		},
		AllowedSearchColumns: []string{
			"e.brand", "e.model_number", "e.serial_number", "o.name",
		},
		AllowedSortColumns: []string{
			"e.id", "e.brand", "e.created_at", "e.status", "o.name",
		},
		Scope:       scope,
		ScopeColumn: "e.office_id",
	}

	rows, total, err := FetchDataAndCount(ctx, r.storage, params)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.EquipmentDTO, 0, len(rows))
	for _, row := range rows {
		result = append(result, mapEquipmentRow(row))
	}
	return result, total, nil
}

func mapEquipmentRow(row map[string]interface{}) dto.EquipmentDTO {
	return dto.EquipmentDTO{
		ID:              asUint64(row["id"]),
		Brand:           asString(row["brand"]),
		ModelNumber:     asString(row["model_number"]),
		SerialNumber:    asString(row["serial_number"]),
		Description:     asStringPtr(row["description"]),
		PurchaseDate:    asDateStringPtr(row["purchase_date"]),
		CostOfPurchase:  asFloat64Ptr(row["cost_of_purchase"]),
		Status:          asString(row["status"]),
		Condition:       asString(row["condition"]),
		QRCode:          asStringPtr(row["qr_code"]),
		QRCodeImagePath: asStringPtr(row["qr_code_image_path"]),
		EquipmentType: dto.ShortEquipmentTypeDTO{
			ID:   asUint64(row["type_id"]),
			Name: asString(row["type_name"]),
		},
		Category: dto.ShortCategoryDTO{
			ID:   asUint64Ptr(row["cat_id"]),
			Name: asStringPtr(row["cat_name"]),
		},
		Office: dto.ShortOfficeDTO{
			ID:   asUint64(row["office_id"]),
			Name: asString(row["office_name"]),
		},
		CreatedAt: asTimeString(row["created_at"], time.RFC3339),
		UpdatedAt: asTimeString(row["updated_at"], time.RFC3339),
	}
}

func scanEquipment(row pgx.Row) (entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(
		&e.ID, &e.Brand, &e.ModelNumber, &e.SerialNumber, &e.EquipmentTypeID,
		&e.CategoryID, &e.OfficeID, &e.Description, &e.PurchaseDate,
		&e.CostOfPurchase, &e.Status, &e.Condition, &e.QRCode,
		&e.QRCodeImagePath, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// FindEquipment applies the visibility scope in the query itself: an
// out-of-scope id behaves exactly like a missing one.
func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64, scope authz.Scope) (entities.Equipment, error) {
	builder := sq.Select(equipmentColumns...).
		From("equipments").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar)
	if scope.OfficeID != nil {
		builder = builder.Where(sq.Eq{"office_id": *scope.OfficeID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return entities.Equipment{}, err
	}

	e, err := scanEquipment(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.Equipment{}, apperrors.ErrNotFound
		}
		return entities.Equipment{}, err
	}
	return e, nil
}

func (r *EquipmentRepository) FindEquipmentDetail(ctx context.Context, id uint64, scope authz.Scope) (dto.EquipmentDTO, error) {
	filter := types.Filter{
		Filter: map[string]interface{}{"e.id": id},
	}
	list, _, err := r.getEquipmentsByWhere(ctx, filter, scope)
	if err != nil {
		return dto.EquipmentDTO{}, err
	}
	if len(list) == 0 {
		return dto.EquipmentDTO{}, apperrors.ErrNotFound
	}
	return list[0], nil
}

func (r *EquipmentRepository) getEquipmentsByWhere(ctx context.Context, filter types.Filter, scope authz.Scope) ([]dto.EquipmentDTO, uint64, error) {
	// Reuse the list query; the id lands in Where so the allow-list does not
	// have to include it.
	f := filter
	f.WithPagination = false
	saved := f.Filter
	f.Filter = nil

	params := Params{
		Table: "equipments",
		Alias: "e",
		Columns: `e.id AS id, e.brand AS brand, e.model_number AS model_number,
			e.serial_number AS serial_number, e.description AS description,
			e.purchase_date AS purchase_date, e.cost_of_purchase AS cost_of_purchase,
			e.status AS status, e.condition AS condition, e.qr_code AS qr_code,
			e.qr_code_image_path AS qr_code_image_path,
			e.created_at AS created_at, e.updated_at AS updated_at,
			o.id AS office_id, o.name AS office_name,
			et.id AS type_id, et.name AS type_name,
			c.id AS cat_id, c.name AS cat_name`,
		Relations: []Join{
			{Table: "offices", Alias: "o", OnLeft: "e.office_id", OnRight: "o.id"},
			{Table: "equipment_types", Alias: "et", OnLeft: "e.equipment_type_id", OnRight: "et.id"},
			{Table: "equipment_categories", Alias: "c", OnLeft: "e.category_id", OnRight: "c.id", JoinType: "LEFT"},
		},
		Where:       saved,
		Scope:       scope,
		ScopeColumn: "e.office_id",
	}

	rows, total, err := FetchDataAndCount(ctx, r.storage, params)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.EquipmentDTO, 0, len(rows))
	for _, row := range rows {
		result = append(result, mapEquipmentRow(row))
	}
	return result, total, nil
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, e entities.Equipment) (uint64, error) {
	query, args, err := sq.Insert("equipments").
		Columns("brand", "model_number", "serial_number", "equipment_type_id",
			"category_id", "office_id", "description", "purchase_date",
			"cost_of_purchase", "status", "condition", "qr_code").
		Values(e.Brand, e.ModelNumber, e.SerialNumber, e.EquipmentTypeID,
			e.CategoryID, e.OfficeID, e.Description, e.PurchaseDate,
			e.CostOfPurchase, e.Status, e.Condition, e.QRCode).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, id uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	builder := sq.Update("equipments").
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

// UpdateStatus takes a Querier so the history workflow can run it inside the
// same transaction as the history insert.
func (r *EquipmentRepository) UpdateStatus(ctx context.Context, q Querier, id uint64, status, condition string) error {
	query, args, err := sq.Update("equipments").
		Set("status", status).
		Set("condition", condition).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
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

func (r *EquipmentRepository) SetQRCode(ctx context.Context, id uint64, token string) error {
	return r.UpdateEquipment(ctx, id, map[string]interface{}{"qr_code": token})
}

func (r *EquipmentRepository) SetQRImagePath(ctx context.Context, id uint64, path string) error {
	return r.UpdateEquipment(ctx, id, map[string]interface{}{"qr_code_image_path": path})
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, "DELETE FROM equipments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) GetEquipmentsByIDs(ctx context.Context, ids []uint64, scope authz.Scope) ([]entities.Equipment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	builder := sq.Select(equipmentColumns...).
		From("equipments").
		Where(sq.Eq{"id": ids}).
		PlaceholderFormat(sq.Dollar)
	if scope.OfficeID != nil {
		builder = builder.Where(sq.Eq{"office_id": *scope.OfficeID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryEquipments(ctx, query, args)
}

func (r *EquipmentRepository) GetEquipmentsByOffice(ctx context.Context, officeID uint64) ([]entities.Equipment, error) {
	query, args, err := sq.Select(equipmentColumns...).
		From("equipments").
		Where(sq.Eq{"office_id": officeID}).
		OrderBy("id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryEquipments(ctx, query, args)
}

func (r *EquipmentRepository) queryEquipments(ctx context.Context, query string, args []interface{}) ([]entities.Equipment, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []entities.Equipment
	for rows.Next() {
		var e entities.Equipment
		if err := rows.Scan(
			&e.ID, &e.Brand, &e.ModelNumber, &e.SerialNumber, &e.EquipmentTypeID,
			&e.CategoryID, &e.OfficeID, &e.Description, &e.PurchaseDate,
			&e.CostOfPurchase, &e.Status, &e.Condition, &e.QRCode,
			&e.QRCodeImagePath, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
