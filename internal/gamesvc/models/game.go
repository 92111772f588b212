package models

import "time"

// Game lifecycle statuses.
const (
	GameStatusSetup  = "SETUP"
	GameStatusActive = "ACTIVE"
	GameStatusPaused = "PAUSED"
	GameStatusEnded  = "ENDED"
)

type Game struct {
	ID          string     `json:"id"` // Primary key (uuid)
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"start_date,omitempty"` // Set when the game goes ACTIVE
	EndDate     *time.Time `json:"end_date,omitempty"`   // Set by the confirmation engine on ENDED
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GameSummary is a game with its participant and elimination counts,
// used by the organizer game listing.
type GameSummary struct {
	Game
	Participants int `json:"participants"`
	Eliminations int `json:"eliminations"`
}

// ValidGameStatus reports whether s is one of the known lifecycle statuses.
func ValidGameStatus(s string) bool {
	switch s {
	case GameStatusSetup, GameStatusActive, GameStatusPaused, GameStatusEnded:
		return true
	}
	return false
}
