package services

import (
	"context"

	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
)

type PermissionServiceInterface interface {
	GetPermissions(ctx context.Context) ([]entities.Permission, error)
}

type PermissionService struct {
	permissionRepo repositories.PermissionRepositoryInterface
}

func NewPermissionService(permissionRepo repositories.PermissionRepositoryInterface) PermissionServiceInterface {
	return &PermissionService{permissionRepo: permissionRepo}
}

func (s *PermissionService) GetPermissions(ctx context.Context) ([]entities.Permission, error) {
	return s.permissionRepo.GetPermissions(ctx)
}
