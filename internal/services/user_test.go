package services

import (
	"context"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/events"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/eventbus"
	"inventory-system/pkg/types"
)

func superAdminActor(userID uint64) *authz.Actor {
	return &authz.Actor{
		User:        &entities.User{ID: userID, OfficeID: 1, IsAdmin: true},
		Roles:       []string{authz.RoleSuperAdmin},
		Permissions: map[string]bool{},
	}
}

// newRecordingBus returns a bus whose synchronous dispatches of
// UserPrivilegeChanged are captured in order.
func newRecordingBus() (*eventbus.Bus, *[]uint64) {
	bus := eventbus.New(zap.NewNop())
	fired := &[]uint64{}
	bus.Subscribe(events.UserPrivilegeChangedName, func(ctx context.Context, e eventbus.Event) error {
		*fired = append(*fired, e.(events.UserPrivilegeChanged).UserID)
		return nil
	})
	return bus, fired
}

func newUserService(userRepo *fakeUserRepo, roleRepo *fakeRoleRepo) (UserServiceInterface, *fakeUserRepo, *[]uint64) {
	bus, fired := newRecordingBus()
	svc := NewUserService(userRepo, roleRepo, &fakePermissionRepo{}, bus, &fakeActivity{}, zap.NewNop())
	return svc, userRepo, fired
}

func rolesFixture() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[uint64]entities.Role{
		1: {ID: 1, Name: authz.RoleSuperAdmin},
		2: {ID: 2, Name: authz.RoleAdmin},
		3: {ID: 3, Name: authz.RoleStaff},
	}}
}

func TestAssignRoleGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("staff actor cannot assign the admin role", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		userRepo.users[2] = entities.User{ID: 2, OfficeID: 3}
		userRepo.roleNames[2] = []string{authz.RoleStaff}
		svc, repo, fired := newUserService(userRepo, rolesFixture())

		err := svc.AssignRole(ctx, staffActor(1, 3), 2, 2)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Empty(t, repo.replacedRoles)
		assert.Empty(t, *fired)
	})

	t.Run("admin actor cannot assign the super-admin role", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		userRepo.users[2] = entities.User{ID: 2, OfficeID: 3}
		svc, repo, _ := newUserService(userRepo, rolesFixture())

		err := svc.AssignRole(ctx, adminActor(1), 2, 1)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Empty(t, repo.replacedRoles)
	})

	t.Run("nobody changes their own role", func(t *testing.T) {
		svc, repo, _ := newUserService(newFakeUserRepo(), rolesFixture())

		err := svc.AssignRole(ctx, superAdminActor(1), 1, 3)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Empty(t, repo.replacedRoles)
	})

	t.Run("admin actor assigns admin and the holder's sessions die before return", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		userRepo.users[2] = entities.User{ID: 2, OfficeID: 3}
		userRepo.roleNames[2] = []string{authz.RoleStaff}
		svc, repo, fired := newUserService(userRepo, rolesFixture())

		err := svc.AssignRole(ctx, adminActor(1), 2, 2)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), repo.replacedRoles[2])
		assert.Equal(t, true, repo.updates["is_admin"])
		assert.Equal(t, []uint64{2}, *fired)
	})
}

func TestUpdateUserGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("staff actor cannot edit an admin-holding account", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		userRepo.users[2] = entities.User{ID: 2, OfficeID: 3, IsAdmin: true}
		userRepo.roleNames[2] = []string{authz.RoleAdmin}
		svc, repo, _ := newUserService(userRepo, rolesFixture())

		err := svc.UpdateUser(ctx, staffActor(1, 3), 2, dto.UpdateUserDTO{FirstName: null.StringFrom("Renamed")})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Nil(t, repo.updates)
	})

	t.Run("admin actor cannot edit a super-admin account", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		userRepo.users[2] = entities.User{ID: 2, OfficeID: 3, IsAdmin: true}
		userRepo.roleNames[2] = []string{authz.RoleSuperAdmin}
		svc, repo, _ := newUserService(userRepo, rolesFixture())

		err := svc.UpdateUser(ctx, adminActor(1), 2, dto.UpdateUserDTO{FirstName: null.StringFrom("Renamed")})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Nil(t, repo.updates)
	})

	t.Run("self-deactivation is refused", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		userRepo.users[1] = entities.User{ID: 1, OfficeID: 1}
		svc, _, _ := newUserService(userRepo, rolesFixture())

		err := svc.UpdateUser(ctx, adminActor(1), 1, dto.UpdateUserDTO{IsActive: null.BoolFrom(false)})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("deactivation revokes the target's sessions synchronously", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		userRepo.users[2] = entities.User{ID: 2, OfficeID: 3}
		userRepo.roleNames[2] = []string{authz.RoleStaff}
		svc, _, fired := newUserService(userRepo, rolesFixture())

		err := svc.UpdateUser(ctx, adminActor(1), 2, dto.UpdateUserDTO{IsActive: null.BoolFrom(false)})
		require.NoError(t, err)
		assert.Equal(t, []uint64{2}, *fired)
	})
}

func TestOverrideGuards(t *testing.T) {
	ctx := context.Background()
	active := true

	t.Run("nobody changes their own permissions", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		userRepo.users[1] = entities.User{ID: 1, OfficeID: 1}
		svc, _, fired := newUserService(userRepo, rolesFixture())

		err := svc.SetOverride(ctx, adminActor(1), 1, dto.SetOverrideDTO{PermissionID: 4, IsActive: &active})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Empty(t, *fired)
	})

	t.Run("staff actor cannot override an admin's permissions", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		userRepo.users[2] = entities.User{ID: 2, OfficeID: 3, IsAdmin: true}
		userRepo.roleNames[2] = []string{authz.RoleAdmin}
		svc, _, fired := newUserService(userRepo, rolesFixture())

		err := svc.SetOverride(ctx, staffActor(1, 3), 2, dto.SetOverrideDTO{PermissionID: 4, IsActive: &active})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Empty(t, *fired)
	})

	t.Run("an override change revokes sessions synchronously", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		userRepo.users[2] = entities.User{ID: 2, OfficeID: 3}
		userRepo.roleNames[2] = []string{authz.RoleStaff}
		svc, _, fired := newUserService(userRepo, rolesFixture())

		err := svc.SetOverride(ctx, adminActor(1), 2, dto.SetOverrideDTO{PermissionID: 4, IsActive: &active})
		require.NoError(t, err)
		assert.Equal(t, []uint64{2}, *fired)

		err = svc.RemoveOverride(ctx, adminActor(1), 2, 4)
		require.NoError(t, err)
		assert.Equal(t, []uint64{2, 2}, *fired)
	})
}

func TestGetUsersScoping(t *testing.T) {
	ctx := context.Background()

	t.Run("staff list carries the office scope", func(t *testing.T) {
		svc, repo, _ := newUserService(newFakeUserRepo(), rolesFixture())

		_, _, err := svc.GetUsers(ctx, staffActor(1, 5), types.Filter{})
		require.NoError(t, err)
		require.NotNil(t, repo.listScope.OfficeID)
		assert.Equal(t, uint64(5), *repo.listScope.OfficeID)
	})

	t.Run("admin list is unscoped", func(t *testing.T) {
		svc, repo, _ := newUserService(newFakeUserRepo(), rolesFixture())

		_, _, err := svc.GetUsers(ctx, adminActor(1), types.Filter{})
		require.NoError(t, err)
		assert.Nil(t, repo.listScope.OfficeID)
	})

	t.Run("staff cannot read an account from another office", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		userRepo.users[2] = entities.User{ID: 2, OfficeID: 9}
		svc, _, _ := newUserService(userRepo, rolesFixture())

		_, _, err := svc.GetUser(ctx, staffActor(1, 5), 2)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		userRepo.users[3] = entities.User{ID: 3, OfficeID: 5}
		user, _, err := svc.GetUser(ctx, staffActor(1, 5), 3)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), user.ID)
	})
}
