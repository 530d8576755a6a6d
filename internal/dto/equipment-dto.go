package dto

import "github.com/aarondl/null/v8"

type ShortOfficeDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type ShortCampusDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type ShortEquipmentTypeDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type ShortCategoryDTO struct {
	ID   *uint64 `json:"id,omitempty"`
	Name *string `json:"name,omitempty"`
}

type EquipmentDTO struct {
	ID              uint64                `json:"id"`
	Brand           string                `json:"brand"`
	ModelNumber     string                `json:"model_number"`
	SerialNumber    string                `json:"serial_number"`
	Description     *string               `json:"description,omitempty"`
	PurchaseDate    *string               `json:"purchase_date,omitempty"`
	CostOfPurchase  *float64              `json:"cost_of_purchase,omitempty"`
	Status          string                `json:"status"`
	Condition       string                `json:"condition"`
	QRCode          *string               `json:"qr_code,omitempty"`
	QRCodeImagePath *string               `json:"qr_code_image_path,omitempty"`
	EquipmentType   ShortEquipmentTypeDTO `json:"equipment_type"`
	Category        ShortCategoryDTO      `json:"category"`
	Office          ShortOfficeDTO        `json:"office"`
	CreatedAt       string                `json:"created_at"`
	UpdatedAt       string                `json:"updated_at"`
}

type CreateEquipmentDTO struct {
	Brand           string   `json:"brand" validate:"required"`
	ModelNumber     string   `json:"model_number" validate:"required"`
	SerialNumber    string   `json:"serial_number" validate:"required"`
	EquipmentTypeID uint64   `json:"equipment_type_id" validate:"required"`
	CategoryID      *uint64  `json:"category_id"`
	OfficeID        uint64   `json:"office_id" validate:"required"`
	Description     *string  `json:"description"`
	PurchaseDate    *string  `json:"purchase_date" validate:"omitempty,date_only"`
	CostOfPurchase  *float64 `json:"cost_of_purchase"`
	Status          string   `json:"status" validate:"required,oneof=serviceable for_repair defective"`
}

type UpdateEquipmentDTO struct {
	Brand           null.String  `json:"brand"`
	ModelNumber     null.String  `json:"model_number"`
	SerialNumber    null.String  `json:"serial_number"`
	EquipmentTypeID null.Uint64  `json:"equipment_type_id"`
	CategoryID      null.Uint64  `json:"category_id"`
	OfficeID        null.Uint64  `json:"office_id"`
	Description     null.String  `json:"description"`
	PurchaseDate    null.String  `json:"purchase_date" validate:"omitempty"`
	CostOfPurchase  null.Float64 `json:"cost_of_purchase"`
	Status          null.String  `json:"status" validate:"omitempty,oneof=serviceable for_repair defective"`
}
