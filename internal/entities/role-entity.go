package entities

import "inventory-system/pkg/types"

type Role struct {
	ID          uint64  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	DisplayName string  `json:"display_name" db:"display_name"`
	Description *string `json:"description,omitempty" db:"description"`

	types.BaseEntity
}
