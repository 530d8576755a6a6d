package entities

import "inventory-system/pkg/types"

type Permission struct {
	ID          uint64  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	DisplayName string  `json:"display_name" db:"display_name"`
	Group       string  `json:"group" db:"group"`
	Description *string `json:"description,omitempty" db:"description"`

	types.BaseEntity
}

// PermissionOverride is the per-user pivot row. IsActive true grants the
// permission beyond the role; false revokes it even when the role grants it.
type PermissionOverride struct {
	UserID       uint64 `json:"user_id" db:"user_id"`
	PermissionID uint64 `json:"permission_id" db:"permission_id"`
	Name         string `json:"name" db:"name"`
	IsActive     bool   `json:"is_active" db:"is_active"`
}
