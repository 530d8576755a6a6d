package dto

type EquipmentHistoryDTO struct {
	ID                uint64  `json:"id"`
	EquipmentID       uint64  `json:"equipment_id"`
	JoNumber          string  `json:"jo_number"`
	Date              string  `json:"date"`
	ActionTaken       string  `json:"action_taken"`
	Remarks           *string `json:"remarks,omitempty"`
	EquipmentStatus   string  `json:"equipment_status"`
	ResponsiblePerson string  `json:"responsible_person"`
	AssignedBy        string  `json:"assigned_by"`
	CreatedAt         string  `json:"created_at"`
}

type CreateEquipmentHistoryDTO struct {
	Date              string  `json:"date" validate:"required,date_only"`
	JoNumber          *string `json:"jo_number" validate:"omitempty,jo_number"`
	ActionTaken       string  `json:"action_taken" validate:"required"`
	Remarks           *string `json:"remarks"`
	EquipmentStatus   string  `json:"equipment_status" validate:"required,oneof=serviceable for_repair defective"`
	ResponsiblePerson string  `json:"responsible_person" validate:"required"`

	// Confirmed acknowledges a backdated entry that would land before a
	// later-dated one.
	Confirmed bool `json:"confirmed"`
}

type UpdateEquipmentHistoryDTO struct {
	Date              *string `json:"date" validate:"omitempty,date_only"`
	ActionTaken       *string `json:"action_taken"`
	Remarks           *string `json:"remarks"`
	EquipmentStatus   *string `json:"equipment_status" validate:"omitempty,oneof=serviceable for_repair defective"`
	ResponsiblePerson *string `json:"responsible_person"`
}

type GeneratedJoNumberDTO struct {
	JoNumber string `json:"jo_number"`
}

type BackdateCheckDTO struct {
	Allowed bool    `json:"allowed"`
	Reason  *string `json:"reason,omitempty"`
}
