package models

import "time"

// Elimination is a kill claim. It is created unconfirmed by the submission
// guard and transitions once, irreversibly, to confirmed. Method, location
// and witnesses are optional extension fields; the canonical payload is
// signature-only.
type Elimination struct {
	ID              string    `json:"id"`      // Primary key (uuid)
	GameID          string    `json:"game_id"` // FK to games(id)
	EliminatorID    string    `json:"eliminator_id"`
	VictimID        string    `json:"victim_id"`
	Confirmed       bool      `json:"confirmed"`
	Method          string    `json:"method,omitempty"`
	Location        string    `json:"location,omitempty"`
	Witnesses       []string  `json:"witnesses,omitempty"`
	KillerSignature *string   `json:"killer_signature,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
