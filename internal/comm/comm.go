package comm

import "time"

// Event types published on the game events subject.
const (
	EventTargetsAssigned      = "targets-assigned"
	EventEliminationSubmitted = "elimination-submitted"
	EventEliminationConfirmed = "elimination-confirmed"
	EventEliminationRejected  = "elimination-rejected"
	EventGameEnded            = "game-ended"
)

// GameEvent is the envelope for everything downstream services (socket
// push, notifications) receive about a game.
type GameEvent struct {
	Type      string    `json:"type"`
	GameID    string    `json:"game_id"`
	Timestamp time.Time `json:"timestamp"`

	// Set for elimination events.
	EliminationID string `json:"elimination_id,omitempty"`
	EliminatorID  string `json:"eliminator_id,omitempty"`
	VictimID      string `json:"victim_id,omitempty"`

	// Set for game-ended events when there is a winner.
	WinnerID string `json:"winner_id,omitempty"`
}
