package events

const UserPrivilegeChangedName = "user.privilege_changed"

// UserPrivilegeChanged fires whenever a user's effective permission set may
// have changed: role reassignment, override mutation, or a role's permission
// set being edited. Listeners revoke sessions and drop cached permissions.
type UserPrivilegeChanged struct {
	UserID uint64
}

func (e UserPrivilegeChanged) Name() string {
	return UserPrivilegeChangedName
}
