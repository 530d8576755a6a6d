package entities

import "time"

// EquipmentHistory is the append-only per-equipment log of maintenance
// actions. Creating an entry is the only sanctioned way to change equipment
// status outside the edit form.
type EquipmentHistory struct {
	ID                uint64    `json:"id" db:"id"`
	EquipmentID       uint64    `json:"equipment_id" db:"equipment_id"`
	JoNumber          string    `json:"jo_number" db:"jo_number"`
	Date              time.Time `json:"date" db:"date"`
	ActionTaken       string    `json:"action_taken" db:"action_taken"`
	Remarks           *string   `json:"remarks,omitempty" db:"remarks"`
	EquipmentStatus   string    `json:"equipment_status" db:"equipment_status"`
	ResponsiblePerson string    `json:"responsible_person" db:"responsible_person"`
	AssignedByID      uint64    `json:"assigned_by_id" db:"assigned_by_id"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}
