package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/dto"
	apperrors "inventory-system/pkg/errors"
)

func newRoleService(roleRepo *fakeRoleRepo, userRepo *fakeUserRepo) (RoleServiceInterface, *[]uint64) {
	bus, fired := newRecordingBus()
	svc := NewRoleService(roleRepo, userRepo, bus, &fakeActivity{}, zap.NewNop())
	return svc, fired
}

func TestReplaceRolePermissions(t *testing.T) {
	ctx := context.Background()

	t.Run("every holder's sessions die before return", func(t *testing.T) {
		roleRepo := rolesFixture()
		userRepo := newFakeUserRepo()
		userRepo.holders = []uint64{4, 5, 6}
		svc, fired := newRoleService(roleRepo, userRepo)

		err := svc.ReplaceRolePermissions(ctx, adminActor(1), 3, []uint64{10, 11})
		require.NoError(t, err)
		assert.Equal(t, []uint64{10, 11}, roleRepo.replacedWith)
		assert.Equal(t, []uint64{4, 5, 6}, *fired)
	})

	t.Run("only a super-admin touches the super-admin role", func(t *testing.T) {
		roleRepo := rolesFixture()
		svc, fired := newRoleService(roleRepo, newFakeUserRepo())

		err := svc.ReplaceRolePermissions(ctx, adminActor(1), 1, []uint64{10})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Empty(t, roleRepo.replacedWith)
		assert.Empty(t, *fired)
	})
}

func TestUpdateRoleGuards(t *testing.T) {
	ctx := context.Background()
	name := "Renamed"

	t.Run("admin cannot edit the super-admin role", func(t *testing.T) {
		svc, _ := newRoleService(rolesFixture(), newFakeUserRepo())

		err := svc.UpdateRole(ctx, adminActor(1), 1, dto.UpdateRoleDTO{DisplayName: &name})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("super-admin edits the super-admin role", func(t *testing.T) {
		svc, _ := newRoleService(rolesFixture(), newFakeUserRepo())

		err := svc.UpdateRole(ctx, superAdminActor(1), 1, dto.UpdateRoleDTO{DisplayName: &name})
		assert.NoError(t, err)
	})
}

func TestGetRolesVisibility(t *testing.T) {
	ctx := context.Background()

	t.Run("super-admin role is hidden from admins", func(t *testing.T) {
		svc, _ := newRoleService(rolesFixture(), newFakeUserRepo())

		roles, err := svc.GetRoles(ctx, adminActor(1))
		require.NoError(t, err)
		for _, r := range roles {
			assert.NotEqual(t, authz.RoleSuperAdmin, r.Name)
		}
		assert.Len(t, roles, 2)
	})

	t.Run("super-admin sees every role", func(t *testing.T) {
		svc, _ := newRoleService(rolesFixture(), newFakeUserRepo())

		roles, err := svc.GetRoles(ctx, superAdminActor(1))
		require.NoError(t, err)
		assert.Len(t, roles, 3)
	})
}
