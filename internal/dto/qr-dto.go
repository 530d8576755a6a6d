package dto

// QRPayloadDTO is the structured payload embedded in a rendered QR image.
// The display fields are denormalized snapshots for offline viewing; scan
// resolution always re-fetches the live record.
type QRPayloadDTO struct {
	ID            uint64 `json:"id"`
	URL           string `json:"url"`
	ModelNumber   string `json:"model_number"`
	SerialNumber  string `json:"serial_number"`
	EquipmentType string `json:"equipment_type"`
	Office        string `json:"office"`
	Status        string `json:"status"`
}

type ResolveScanDTO struct {
	Payload string `json:"payload" validate:"required"`
}

type QRImageDTO struct {
	EquipmentID uint64 `json:"equipment_id"`
	ImagePath   string `json:"image_path"`
}

type QRBatchRequestDTO struct {
	EquipmentIDs []uint64 `json:"equipment_ids"`
	OfficeID     *uint64  `json:"office_id"`
}

type QRBundleDTO struct {
	Equipment EquipmentDTO `json:"equipment"`
	ImagePath string       `json:"image_path"`
	Payload   QRPayloadDTO `json:"payload"`
}
