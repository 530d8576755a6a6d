package dto

type RoleDTO struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type CreateRoleDTO struct {
	Name        string  `json:"name" validate:"required"`
	DisplayName string  `json:"display_name" validate:"required"`
	Description *string `json:"description"`
}

type UpdateRoleDTO struct {
	DisplayName *string `json:"display_name"`
	Description *string `json:"description"`
}

type ReplaceRolePermissionsDTO struct {
	PermissionIDs []uint64 `json:"permission_ids" validate:"required"`
}
