package authz

import "inventory-system/internal/entities"

// Actor is the resolved identity a request acts as: the user row, the role
// machine keys it holds, and its effective permission set. Every permission
// check and every scoping decision takes the actor explicitly; nothing in
// this package reads ambient state.
type Actor struct {
	User        *entities.User
	Roles       []string
	Permissions map[string]bool
}

func (a *Actor) HasRole(name string) bool {
	for _, r := range a.Roles {
		if r == name {
			return true
		}
	}
	return false
}

func (a *Actor) IsAdmin() bool {
	return a.HasRole(RoleAdmin) || a.HasRole(RoleSuperAdmin)
}

// Can reports whether the actor holds the named effective permission.
func (a *Actor) Can(permission string) bool {
	if a == nil || a.Permissions == nil {
		return false
	}
	return a.Permissions[permission]
}

// ResolveEffective combines role-granted permission names with per-user
// overrides. Precedence: an active override always grants, an inactive
// override always revokes, absence of an override defers to the role.
func ResolveEffective(rolePermissions []string, overrides []entities.PermissionOverride) map[string]bool {
	effective := make(map[string]bool, len(rolePermissions))
	for _, name := range rolePermissions {
		effective[name] = true
	}
	for _, o := range overrides {
		if o.IsActive {
			effective[o.Name] = true
		} else {
			delete(effective, o.Name)
		}
	}
	return effective
}

// Scope restricts list queries to what the actor may see. A nil OfficeID
// means unscoped.
type Scope struct {
	OfficeID *uint64
}

// ScopeForActor computes the visibility scope: staff actors see only their
// own office, admin and super-admin are unscoped. The filter is applied
// inside repository queries, before any caller-supplied filter, so it cannot
// be bypassed by query parameters.
func ScopeForActor(a *Actor) Scope {
	if a == nil || a.User == nil {
		return Scope{}
	}
	if a.IsAdmin() {
		return Scope{}
	}
	if a.HasRole(RoleStaff) {
		officeID := a.User.OfficeID
		return Scope{OfficeID: &officeID}
	}
	return Scope{}
}
