package service

import "github.com/pastanaga/killer-services/internal/gamesvc/models"

// EventPublisher notifies downstream services (socket push, notifications)
// after a state change has committed. Publishing is best-effort: failures
// are logged by the implementation, never surfaced to the caller.
type EventPublisher interface {
	TargetsAssigned(gameID string)
	EliminationSubmitted(e *models.Elimination)
	EliminationConfirmed(e *models.Elimination)
	EliminationRejected(e *models.Elimination)
	GameEnded(gameID, winnerID string)
}

// NopEvents discards every event. Used when no broker is wired.
type NopEvents struct{}

func (NopEvents) TargetsAssigned(string)                   {}
func (NopEvents) EliminationSubmitted(*models.Elimination) {}
func (NopEvents) EliminationConfirmed(*models.Elimination) {}
func (NopEvents) EliminationRejected(*models.Elimination)  {}
func (NopEvents) GameEnded(string, string)                 {}
