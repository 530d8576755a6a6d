package dto

import "github.com/aarondl/null/v8"

type OfficeDTO struct {
	ID            uint64         `json:"id"`
	Name          string         `json:"name"`
	Campus        ShortCampusDTO `json:"campus"`
	IsActive      bool           `json:"is_active"`
	ContactPerson *string        `json:"contact_person,omitempty"`
	ContactNumber *string        `json:"contact_number,omitempty"`
	Email         *string        `json:"email,omitempty"`
	CreatedAt     string         `json:"created_at"`
}

type CreateOfficeDTO struct {
	Name          string  `json:"name" validate:"required"`
	CampusID      uint64  `json:"campus_id" validate:"required"`
	ContactPerson *string `json:"contact_person"`
	ContactNumber *string `json:"contact_number"`
	Email         *string `json:"email" validate:"omitempty,email"`
}

type UpdateOfficeDTO struct {
	Name          null.String `json:"name"`
	CampusID      null.Uint64 `json:"campus_id"`
	IsActive      null.Bool   `json:"is_active"`
	ContactPerson null.String `json:"contact_person"`
	ContactNumber null.String `json:"contact_number"`
	Email         null.String `json:"email" validate:"omitempty"`
}
