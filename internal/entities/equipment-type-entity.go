package entities

type EquipmentType struct {
	ID   uint64 `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type EquipmentCategory struct {
	ID   uint64 `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
