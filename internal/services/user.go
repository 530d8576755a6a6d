package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"inventory-system/internal/authz"
	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/events"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/eventbus"
	"inventory-system/pkg/types"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, actor *authz.Actor, filter types.Filter) ([]dto.UserDTO, uint64, error)
	GetUser(ctx context.Context, actor *authz.Actor, id uint64) (entities.User, []string, error)
	CreateUser(ctx context.Context, actor *authz.Actor, payload dto.CreateUserDTO) (uint64, error)
	UpdateUser(ctx context.Context, actor *authz.Actor, id uint64, payload dto.UpdateUserDTO) error
	AssignRole(ctx context.Context, actor *authz.Actor, userID, roleID uint64) error
	GetOverrides(ctx context.Context, userID uint64) ([]entities.PermissionOverride, error)
	SetOverride(ctx context.Context, actor *authz.Actor, userID uint64, payload dto.SetOverrideDTO) error
	RemoveOverride(ctx context.Context, actor *authz.Actor, userID, permissionID uint64) error
}

// UserService manages accounts and the per-user permission overrides. Every
// mutation that can change an effective permission set dispatches
// UserPrivilegeChanged synchronously, so stale sessions are dead before the
// response goes out.
type UserService struct {
	userRepo       repositories.UserRepositoryInterface
	roleRepo       repositories.RoleRepositoryInterface
	permissionRepo repositories.PermissionRepositoryInterface
	bus            *eventbus.Bus
	activity       ActivityServiceInterface
	logger         *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	roleRepo repositories.RoleRepositoryInterface,
	permissionRepo repositories.PermissionRepositoryInterface,
	bus *eventbus.Bus,
	activity ActivityServiceInterface,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		bus:            bus,
		activity:       activity,
		logger:         logger,
	}
}

func (s *UserService) GetUsers(ctx context.Context, actor *authz.Actor, filter types.Filter) ([]dto.UserDTO, uint64, error) {
	scope := authz.ScopeForActor(actor)
	return s.userRepo.GetUsers(ctx, filter, scope)
}

func (s *UserService) GetUser(ctx context.Context, actor *authz.Actor, id uint64) (entities.User, []string, error) {
	user, err := s.userRepo.FindUser(ctx, id)
	if err != nil {
		return entities.User{}, nil, err
	}
	// An account outside the actor's scope reads as missing.
	scope := authz.ScopeForActor(actor)
	if scope.OfficeID != nil && user.OfficeID != *scope.OfficeID {
		return entities.User{}, nil, apperrors.ErrNotFound
	}
	roles, err := s.userRepo.GetUserRoleNames(ctx, id)
	if err != nil {
		return entities.User{}, nil, err
	}
	return user, roles, nil
}

// guardRoleAssignment blocks privilege escalation. The super-admin role and
// super-admin accounts are touchable only by a super-admin; the admin role
// and admin-holding accounts only by an admin. A users.edit grant alone never
// reaches past these checks.
func (s *UserService) guardRoleAssignment(ctx context.Context, actor *authz.Actor, targetUserID uint64, role entities.Role) error {
	if role.Name == authz.RoleSuperAdmin && !actor.HasRole(authz.RoleSuperAdmin) {
		return apperrors.NewForbiddenError("only a super-admin may assign the super-admin role")
	}
	if role.Name == authz.RoleAdmin && !actor.IsAdmin() {
		return apperrors.NewForbiddenError("only an admin may assign the admin role")
	}
	if targetUserID == 0 {
		return nil
	}
	targetRoles, err := s.userRepo.GetUserRoleNames(ctx, targetUserID)
	if err != nil {
		return err
	}
	for _, name := range targetRoles {
		if name == authz.RoleSuperAdmin && !actor.HasRole(authz.RoleSuperAdmin) {
			return apperrors.NewForbiddenError("only a super-admin may modify a super-admin account")
		}
		if name == authz.RoleAdmin && !actor.IsAdmin() {
			return apperrors.NewForbiddenError("only an admin may modify an admin account")
		}
	}
	return nil
}

func (s *UserService) CreateUser(ctx context.Context, actor *authz.Actor, payload dto.CreateUserDTO) (uint64, error) {
	role, err := s.roleRepo.FindRole(ctx, payload.RoleID)
	if err != nil {
		return 0, err
	}
	if err := s.guardRoleAssignment(ctx, actor, 0, role); err != nil {
		return 0, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	user := entities.User{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Password:  string(hashed),
		OfficeID:  payload.OfficeID,
		IsActive:  true,
		IsAdmin:   role.Name == authz.RoleAdmin || role.Name == authz.RoleSuperAdmin,
	}

	id, err := s.userRepo.CreateUser(ctx, user, payload.RoleID)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return 0, apperrors.NewValidationError(map[string]string{
				"email": "an account with this email already exists",
			})
		}
		return 0, err
	}

	s.activity.Log(ctx, &actor.User.ID, entities.ActivityCategoryAccounts,
		"user.created",
		fmt.Sprintf("created account %s %s (%s)", payload.FirstName, payload.LastName, payload.Email),
		map[string]interface{}{"user_id": id, "role": role.Name})
	return id, nil
}

func (s *UserService) UpdateUser(ctx context.Context, actor *authz.Actor, id uint64, payload dto.UpdateUserDTO) error {
	if err := s.guardRoleAssignment(ctx, actor, id, entities.Role{}); err != nil {
		return err
	}

	updates := make(map[string]interface{})
	if payload.FirstName.Valid {
		updates["first_name"] = payload.FirstName.String
	}
	if payload.LastName.Valid {
		updates["last_name"] = payload.LastName.String
	}
	if payload.Email.Valid {
		updates["email"] = payload.Email.String
	}
	if payload.OfficeID.Valid {
		updates["office_id"] = payload.OfficeID.Uint64
	}
	deactivated := false
	if payload.IsActive.Valid {
		if id == actor.User.ID && !payload.IsActive.Bool {
			return apperrors.NewForbiddenError("you cannot deactivate your own account")
		}
		updates["is_active"] = payload.IsActive.Bool
		deactivated = !payload.IsActive.Bool
	}

	if err := s.userRepo.UpdateUser(ctx, id, updates); err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return apperrors.NewValidationError(map[string]string{
				"email": "an account with this email already exists",
			})
		}
		return err
	}

	if deactivated {
		if err := s.bus.Dispatch(ctx, events.UserPrivilegeChanged{UserID: id}); err != nil {
			return err
		}
	}

	s.activity.Log(ctx, &actor.User.ID, entities.ActivityCategoryAccounts,
		"user.updated", fmt.Sprintf("updated account %d", id),
		map[string]interface{}{"user_id": id})
	return nil
}

func (s *UserService) AssignRole(ctx context.Context, actor *authz.Actor, userID, roleID uint64) error {
	if userID == actor.User.ID {
		return apperrors.NewForbiddenError("you cannot change your own role")
	}

	role, err := s.roleRepo.FindRole(ctx, roleID)
	if err != nil {
		return err
	}
	if err := s.guardRoleAssignment(ctx, actor, userID, role); err != nil {
		return err
	}
	if _, err := s.userRepo.FindUser(ctx, userID); err != nil {
		return err
	}

	if err := s.userRepo.ReplaceUserRole(ctx, userID, roleID); err != nil {
		return err
	}

	isAdmin := role.Name == authz.RoleAdmin || role.Name == authz.RoleSuperAdmin
	if err := s.userRepo.UpdateUser(ctx, userID, map[string]interface{}{"is_admin": isAdmin}); err != nil {
		return err
	}

	if err := s.bus.Dispatch(ctx, events.UserPrivilegeChanged{UserID: userID}); err != nil {
		return err
	}

	s.activity.Log(ctx, &actor.User.ID, entities.ActivityCategoryAccounts,
		"user.role_assigned",
		fmt.Sprintf("assigned role %s to user %d", role.Name, userID),
		map[string]interface{}{"user_id": userID, "role": role.Name})
	return nil
}

func (s *UserService) GetOverrides(ctx context.Context, userID uint64) ([]entities.PermissionOverride, error) {
	if _, err := s.userRepo.FindUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.userRepo.GetOverridesForUser(ctx, userID)
}

func (s *UserService) SetOverride(ctx context.Context, actor *authz.Actor, userID uint64, payload dto.SetOverrideDTO) error {
	if userID == actor.User.ID {
		return apperrors.NewForbiddenError("you cannot change your own permissions")
	}
	if err := s.guardRoleAssignment(ctx, actor, userID, entities.Role{}); err != nil {
		return err
	}
	if _, err := s.userRepo.FindUser(ctx, userID); err != nil {
		return err
	}

	if err := s.permissionRepo.UpsertOverride(ctx, userID, payload.PermissionID, *payload.IsActive); err != nil {
		return err
	}
	if err := s.bus.Dispatch(ctx, events.UserPrivilegeChanged{UserID: userID}); err != nil {
		return err
	}

	verb := "revoked"
	if *payload.IsActive {
		verb = "granted"
	}
	s.activity.Log(ctx, &actor.User.ID, entities.ActivityCategoryAccounts,
		"user.override_set",
		fmt.Sprintf("%s permission %d for user %d", verb, payload.PermissionID, userID),
		map[string]interface{}{"user_id": userID, "permission_id": payload.PermissionID, "is_active": *payload.IsActive})
	return nil
}

func (s *UserService) RemoveOverride(ctx context.Context, actor *authz.Actor, userID, permissionID uint64) error {
	if err := s.guardRoleAssignment(ctx, actor, userID, entities.Role{}); err != nil {
		return err
	}
	if err := s.permissionRepo.DeleteOverride(ctx, userID, permissionID); err != nil {
		return err
	}
	if err := s.bus.Dispatch(ctx, events.UserPrivilegeChanged{UserID: userID}); err != nil {
		return err
	}

	s.activity.Log(ctx, &actor.User.ID, entities.ActivityCategoryAccounts,
		"user.override_removed",
		fmt.Sprintf("removed permission override %d for user %d", permissionID, userID),
		map[string]interface{}{"user_id": userID, "permission_id": permissionID})
	return nil
}
