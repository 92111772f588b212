package models

import "time"

// Participant lifecycle statuses.
const (
	ParticipantAlive      = "ALIVE"
	ParticipantEliminated = "ELIMINATED"
	ParticipantWinner     = "WINNER"
)

// Participant is one player inside a game. While a participant is ALIVE in
// an ACTIVE game it holds exactly one outgoing target reference and is the
// target of exactly one other participant (the ring property). TargetID is
// cleared when the participant is eliminated.
type Participant struct {
	ID        string    `json:"id"`      // Primary key (uuid)
	GameID    string    `json:"game_id"` // FK to games(id)
	UserID    string    `json:"user_id"` // FK to users(id)
	Nickname  string    `json:"nickname"`
	Group     string    `json:"group,omitempty"`
	Photo     *string   `json:"photo,omitempty"`
	Status    string    `json:"status"`
	TargetID  *string   `json:"target_id,omitempty"` // Weak same-game reference
	Signature *string   `json:"signature,omitempty"` // Reusable drawn signature
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
