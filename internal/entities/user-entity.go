package entities

import "inventory-system/pkg/types"

type User struct {
	ID        uint64 `json:"id" db:"id"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Email     string `json:"email" db:"email"`

	Password string `json:"-" db:"password"`

	OfficeID uint64 `json:"office_id" db:"office_id"`
	IsActive bool   `json:"is_active" db:"is_active"`
	IsAdmin  bool   `json:"is_admin" db:"is_admin"`

	PhotoURL *string `json:"photo_url,omitempty" db:"photo_url"`

	types.BaseEntity
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
