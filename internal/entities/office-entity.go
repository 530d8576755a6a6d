package entities

import "inventory-system/pkg/types"

type Office struct {
	ID            uint64  `json:"id" db:"id"`
	CampusID      uint64  `json:"campus_id" db:"campus_id"`
	Name          string  `json:"name" db:"name"`
	IsActive      bool    `json:"is_active" db:"is_active"`
	ContactPerson *string `json:"contact_person,omitempty" db:"contact_person"`
	ContactNumber *string `json:"contact_number,omitempty" db:"contact_number"`
	Email         *string `json:"email,omitempty" db:"email"`

	types.BaseEntity
}
