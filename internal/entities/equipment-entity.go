package entities

import (
	"time"

	"inventory-system/pkg/types"
)

const (
	StatusServiceable = "serviceable"
	StatusForRepair   = "for_repair"
	StatusDefective   = "defective"

	ConditionGood       = "good"
	ConditionNotWorking = "not_working"
)

// ConditionForStatus derives condition from status. Condition is never stored
// independently: every status write recomputes it through this mapping.
func ConditionForStatus(status string) string {
	if status == StatusServiceable {
		return ConditionGood
	}
	return ConditionNotWorking
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusServiceable, StatusForRepair, StatusDefective:
		return true
	}
	return false
}

type Equipment struct {
	ID              uint64     `json:"id" db:"id"`
	Brand           string     `json:"brand" db:"brand"`
	ModelNumber     string     `json:"model_number" db:"model_number"`
	SerialNumber    string     `json:"serial_number" db:"serial_number"`
	EquipmentTypeID uint64     `json:"equipment_type_id" db:"equipment_type_id"`
	CategoryID      *uint64    `json:"category_id,omitempty" db:"category_id"`
	OfficeID        uint64     `json:"office_id" db:"office_id"`
	Description     *string    `json:"description,omitempty" db:"description"`
	PurchaseDate    *time.Time `json:"purchase_date,omitempty" db:"purchase_date"`
	CostOfPurchase  *float64   `json:"cost_of_purchase,omitempty" db:"cost_of_purchase"`
	Status          string     `json:"status" db:"status"`
	Condition       string     `json:"condition" db:"condition"`
	QRCode          *string    `json:"qr_code,omitempty" db:"qr_code"`
	QRCodeImagePath *string    `json:"qr_code_image_path,omitempty" db:"qr_code_image_path"`

	types.BaseEntity
}
