package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-system/internal/entities"
)

func TestResolveEffective(t *testing.T) {
	rolePerms := []string{EquipmentView, EquipmentEdit, HistoryView}

	t.Run("no overrides defers to the role", func(t *testing.T) {
		effective := ResolveEffective(rolePerms, nil)

		assert.True(t, effective[EquipmentView])
		assert.True(t, effective[EquipmentEdit])
		assert.False(t, effective[EquipmentDelete])
	})

	t.Run("active override grants beyond the role", func(t *testing.T) {
		effective := ResolveEffective(rolePerms, []entities.PermissionOverride{
			{Name: EquipmentDelete, IsActive: true},
		})

		assert.True(t, effective[EquipmentDelete])
		assert.True(t, effective[EquipmentView])
	})

	t.Run("inactive override revokes a role grant", func(t *testing.T) {
		effective := ResolveEffective(rolePerms, []entities.PermissionOverride{
			{Name: EquipmentEdit, IsActive: false},
		})

		assert.False(t, effective[EquipmentEdit])
		assert.True(t, effective[EquipmentView])
	})

	t.Run("inactive override on a permission the role never granted is a no-op", func(t *testing.T) {
		effective := ResolveEffective(rolePerms, []entities.PermissionOverride{
			{Name: UsersDelete, IsActive: false},
		})

		assert.False(t, effective[UsersDelete])
		assert.Len(t, effective, len(rolePerms))
	})
}

func TestActorCan(t *testing.T) {
	actor := &Actor{Permissions: map[string]bool{EquipmentView: true}}

	assert.True(t, actor.Can(EquipmentView))
	assert.False(t, actor.Can(EquipmentDelete))

	var nilActor *Actor
	assert.False(t, nilActor.Can(EquipmentView))
	assert.False(t, (&Actor{}).Can(EquipmentView))
}

func TestScopeForActor(t *testing.T) {
	t.Run("staff are scoped to their own office", func(t *testing.T) {
		actor := &Actor{
			User:  &entities.User{ID: 1, OfficeID: 5},
			Roles: []string{RoleStaff},
		}

		scope := ScopeForActor(actor)
		require.NotNil(t, scope.OfficeID)
		assert.Equal(t, uint64(5), *scope.OfficeID)
	})

	t.Run("admins are unscoped", func(t *testing.T) {
		actor := &Actor{
			User:  &entities.User{ID: 1, OfficeID: 5},
			Roles: []string{RoleAdmin},
		}

		assert.Nil(t, ScopeForActor(actor).OfficeID)
	})

	t.Run("admin role wins over a staff role", func(t *testing.T) {
		actor := &Actor{
			User:  &entities.User{ID: 1, OfficeID: 5},
			Roles: []string{RoleStaff, RoleAdmin},
		}

		assert.Nil(t, ScopeForActor(actor).OfficeID)
	})

	t.Run("nil actor is unscoped but can do nothing", func(t *testing.T) {
		assert.Nil(t, ScopeForActor(nil).OfficeID)
	})
}
