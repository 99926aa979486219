package models

// Creature mirrors a row of the creatures table. CreatedAt/UpdatedAt are only
// populated on reads that include the timestamp columns.
type Creature struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Habitat     string `json:"habitat"`
	DangerLevel int    `json:"danger_level"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}
