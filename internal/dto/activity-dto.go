package dto

import "encoding/json"

type ActivityDTO struct {
	ID          uint64          `json:"id"`
	UserID      *uint64         `json:"user_id,omitempty"`
	Category    string          `json:"category"`
	Action      string          `json:"action"`
	Description string          `json:"description"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	CreatedAt   string          `json:"created_at"`
}
