package dto

type CampusDTO struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Address   *string `json:"address,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type CreateCampusDTO struct {
	Name    string  `json:"name" validate:"required"`
	Address *string `json:"address"`
}

type UpdateCampusDTO struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}
