package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/internal/entities"
)

type EquipmentTypeRepositoryInterface interface {
	GetEquipmentTypes(ctx context.Context) ([]entities.EquipmentType, error)
	GetEquipmentCategories(ctx context.Context) ([]entities.EquipmentCategory, error)
	CreateEquipmentType(ctx context.Context, name string) (uint64, error)
	CreateEquipmentCategory(ctx context.Context, name string) (uint64, error)
}

type EquipmentTypeRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentTypeRepository(storage *pgxpool.Pool) EquipmentTypeRepositoryInterface {
	return &EquipmentTypeRepository{storage: storage}
}

func (r *EquipmentTypeRepository) GetEquipmentTypes(ctx context.Context) ([]entities.EquipmentType, error) {
	rows, err := r.storage.Query(ctx, "SELECT id, name FROM equipment_types ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []entities.EquipmentType
	for rows.Next() {
		var t entities.EquipmentType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (r *EquipmentTypeRepository) GetEquipmentCategories(ctx context.Context) ([]entities.EquipmentCategory, error) {
	rows, err := r.storage.Query(ctx, "SELECT id, name FROM equipment_categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []entities.EquipmentCategory
	for rows.Next() {
		var c entities.EquipmentCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *EquipmentTypeRepository) CreateEquipmentType(ctx context.Context, name string) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		"INSERT INTO equipment_types (name) VALUES ($1) RETURNING id", name).Scan(&id)
	return id, err
}

func (r *EquipmentTypeRepository) CreateEquipmentCategory(ctx context.Context, name string) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		"INSERT INTO equipment_categories (name) VALUES ($1) RETURNING id", name).Scan(&id)
	return id, err
}
