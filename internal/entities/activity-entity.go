package entities

import (
	"encoding/json"
	"time"
)

// Activity categories are explicit enum tags declared by each producer at
// write time, so log viewers never have to classify free text.
const (
	ActivityCategoryAccounts  = "accounts"
	ActivityCategoryEquipment = "equipment"
	ActivityCategoryLogin     = "login"
)

type Activity struct {
	ID          uint64          `json:"id" db:"id"`
	UserID      *uint64         `json:"user_id,omitempty" db:"user_id"`
	Category    string          `json:"category" db:"category"`
	Action      string          `json:"action" db:"action"`
	Description string          `json:"description" db:"description"`
	Metadata    json.RawMessage `json:"metadata,omitempty" db:"metadata"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}
