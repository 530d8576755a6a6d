package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/events"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/eventbus"
)

type RoleServiceInterface interface {
	GetRoles(ctx context.Context, actor *authz.Actor) ([]entities.Role, error)
	GetRole(ctx context.Context, id uint64) (entities.Role, []string, error)
	CreateRole(ctx context.Context, actor *authz.Actor, payload dto.CreateRoleDTO) (uint64, error)
	UpdateRole(ctx context.Context, actor *authz.Actor, id uint64, payload dto.UpdateRoleDTO) error
	ReplaceRolePermissions(ctx context.Context, actor *authz.Actor, roleID uint64, permissionIDs []uint64) error
}

type RoleService struct {
	roleRepo repositories.RoleRepositoryInterface
	userRepo repositories.UserRepositoryInterface
	bus      *eventbus.Bus
	activity ActivityServiceInterface
	logger   *zap.Logger
}

func NewRoleService(
	roleRepo repositories.RoleRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	bus *eventbus.Bus,
	activity ActivityServiceInterface,
	logger *zap.Logger,
) RoleServiceInterface {
	return &RoleService{
		roleRepo: roleRepo,
		userRepo: userRepo,
		bus:      bus,
		activity: activity,
		logger:   logger,
	}
}

func (s *RoleService) GetRoles(ctx context.Context, actor *authz.Actor) ([]entities.Role, error) {
	return s.roleRepo.GetRoles(ctx, actor.HasRole(authz.RoleSuperAdmin))
}

func (s *RoleService) GetRole(ctx context.Context, id uint64) (entities.Role, []string, error) {
	role, err := s.roleRepo.FindRole(ctx, id)
	if err != nil {
		return entities.Role{}, nil, err
	}
	permissions, err := s.roleRepo.GetRolePermissionNames(ctx, id)
	if err != nil {
		return entities.Role{}, nil, err
	}
	return role, permissions, nil
}

func (s *RoleService) CreateRole(ctx context.Context, actor *authz.Actor, payload dto.CreateRoleDTO) (uint64, error) {
	id, err := s.roleRepo.CreateRole(ctx, entities.Role{
		Name:        payload.Name,
		DisplayName: payload.DisplayName,
		Description: payload.Description,
	})
	if err != nil {
		if isUniqueViolation(err, "roles_name_key") {
			return 0, apperrors.NewValidationError(map[string]string{
				"name": "a role with this name already exists",
			})
		}
		return 0, err
	}

	s.activity.Log(ctx, &actor.User.ID, entities.ActivityCategoryAccounts,
		"role.created", fmt.Sprintf("created role %s", payload.Name),
		map[string]interface{}{"role_id": id})
	return id, nil
}

func (s *RoleService) UpdateRole(ctx context.Context, actor *authz.Actor, id uint64, payload dto.UpdateRoleDTO) error {
	role, err := s.roleRepo.FindRole(ctx, id)
	if err != nil {
		return err
	}
	if role.Name == authz.RoleSuperAdmin && !actor.HasRole(authz.RoleSuperAdmin) {
		return apperrors.NewForbiddenError("only a super-admin may edit the super-admin role")
	}

	updates := make(map[string]interface{})
	if payload.DisplayName != nil {
		updates["display_name"] = *payload.DisplayName
	}
	if payload.Description != nil {
		updates["description"] = *payload.Description
	}
	if err := s.roleRepo.UpdateRole(ctx, id, updates); err != nil {
		return err
	}

	s.activity.Log(ctx, &actor.User.ID, entities.ActivityCategoryAccounts,
		"role.updated", fmt.Sprintf("updated role %s", role.Name),
		map[string]interface{}{"role_id": id})
	return nil
}

// ReplaceRolePermissions swaps a role's permission set and then revokes the
// sessions of every holder, one by one, so nobody keeps acting on grants the
// role no longer carries.
func (s *RoleService) ReplaceRolePermissions(ctx context.Context, actor *authz.Actor, roleID uint64, permissionIDs []uint64) error {
	role, err := s.roleRepo.FindRole(ctx, roleID)
	if err != nil {
		return err
	}
	if role.Name == authz.RoleSuperAdmin && !actor.HasRole(authz.RoleSuperAdmin) {
		return apperrors.NewForbiddenError("only a super-admin may edit the super-admin role")
	}

	if err := s.roleRepo.ReplaceRolePermissions(ctx, roleID, permissionIDs); err != nil {
		return err
	}

	holders, err := s.userRepo.GetUserIDsByRole(ctx, roleID)
	if err != nil {
		return err
	}
	for _, userID := range holders {
		if err := s.bus.Dispatch(ctx, events.UserPrivilegeChanged{UserID: userID}); err != nil {
			return err
		}
	}

	s.activity.Log(ctx, &actor.User.ID, entities.ActivityCategoryAccounts,
		"role.permissions_replaced",
		fmt.Sprintf("replaced permissions of role %s (%d holders notified)", role.Name, len(holders)),
		map[string]interface{}{"role_id": roleID, "permission_count": len(permissionIDs)})
	return nil
}
