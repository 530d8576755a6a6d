package dto

type PermissionDTO struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Group       string  `json:"group"`
	Description *string `json:"description,omitempty"`
}

// SetOverrideDTO grants (is_active true) or revokes (is_active false) a
// permission for a single user, overriding whatever the role says.
type SetOverrideDTO struct {
	PermissionID uint64 `json:"permission_id" validate:"required"`
	IsActive     *bool  `json:"is_active" validate:"required"`
}

type OverrideDTO struct {
	PermissionID uint64 `json:"permission_id"`
	Name         string `json:"name"`
	IsActive     bool   `json:"is_active"`
}
