package entities

import "inventory-system/pkg/types"

type Campus struct {
	ID      uint64  `json:"id" db:"id"`
	Name    string  `json:"name" db:"name"`
	Address *string `json:"address,omitempty" db:"address"`

	types.BaseEntity
}
