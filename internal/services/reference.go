package services

import (
	"context"

	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
)

// ReferenceService serves the small lookup tables behind the equipment form.
type ReferenceServiceInterface interface {
	GetEquipmentTypes(ctx context.Context) ([]entities.EquipmentType, error)
	GetEquipmentCategories(ctx context.Context) ([]entities.EquipmentCategory, error)
	CreateEquipmentType(ctx context.Context, name string) (uint64, error)
	CreateEquipmentCategory(ctx context.Context, name string) (uint64, error)
}

type ReferenceService struct {
	typeRepo repositories.EquipmentTypeRepositoryInterface
}

func NewReferenceService(typeRepo repositories.EquipmentTypeRepositoryInterface) ReferenceServiceInterface {
	return &ReferenceService{typeRepo: typeRepo}
}

func (s *ReferenceService) GetEquipmentTypes(ctx context.Context) ([]entities.EquipmentType, error) {
	return s.typeRepo.GetEquipmentTypes(ctx)
}

func (s *ReferenceService) GetEquipmentCategories(ctx context.Context) ([]entities.EquipmentCategory, error) {
	return s.typeRepo.GetEquipmentCategories(ctx)
}

func (s *ReferenceService) CreateEquipmentType(ctx context.Context, name string) (uint64, error) {
	return s.typeRepo.CreateEquipmentType(ctx, name)
}

func (s *ReferenceService) CreateEquipmentCategory(ctx context.Context, name string) (uint64, error) {
	return s.typeRepo.CreateEquipmentCategory(ctx, name)
}
