package dto

import "github.com/aarondl/null/v8"

type UserDTO struct {
	ID        uint64         `json:"id"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Email     string         `json:"email"`
	Office    ShortOfficeDTO `json:"office"`
	IsActive  bool           `json:"is_active"`
	IsAdmin   bool           `json:"is_admin"`
	PhotoURL  *string        `json:"photo_url,omitempty"`
	Roles     []string       `json:"roles"`
	CreatedAt string         `json:"created_at"`
}

type CreateUserDTO struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	OfficeID  uint64 `json:"office_id" validate:"required"`
	RoleID    uint64 `json:"role_id" validate:"required"`
}

type UpdateUserDTO struct {
	FirstName null.String `json:"first_name"`
	LastName  null.String `json:"last_name"`
	Email     null.String `json:"email" validate:"omitempty"`
	OfficeID  null.Uint64 `json:"office_id"`
	IsActive  null.Bool   `json:"is_active"`
}

type AssignRoleDTO struct {
	RoleID uint64 `json:"role_id" validate:"required"`
}
