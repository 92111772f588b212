package service

import (
	"context"
	"time"

	"github.com/pastanaga/killer-services/internal/gamesvc/models"
)

// GameStore persists games.
type GameStore interface {
	CreateGame(ctx context.Context, game *models.Game) error
	GetGameByID(ctx context.Context, gameID string) (*models.Game, error)
	ListGames(ctx context.Context) ([]*models.GameSummary, error)
	UpdateGameStatus(ctx context.Context, gameID, status string) error
	StartGame(ctx context.Context, gameID string, startedAt time.Time) error
	EndGame(ctx context.Context, gameID string, endedAt time.Time) error
}

// ParticipantStore persists participants and their ring links. Get methods
// return nil, nil when no row matches, following the store convention.
type ParticipantStore interface {
	CreateParticipant(ctx context.Context, p *models.Participant) error
	GetParticipantByID(ctx context.Context, participantID string) (*models.Participant, error)
	// GetActiveParticipantByUser resolves a user to its ALIVE participant
	// in an ACTIVE game, if any.
	GetActiveParticipantByUser(ctx context.Context, userID string) (*models.Participant, error)
	GetParticipantsByGameID(ctx context.Context, gameID string) ([]*models.Participant, error)
	GetAliveParticipants(ctx context.Context, gameID string) ([]*models.Participant, error)
	CountAliveParticipants(ctx context.Context, gameID string) (int, error)
	SetParticipantTarget(ctx context.Context, participantID string, targetID *string) error
	SetParticipantStatus(ctx context.Context, participantID, status string) error
	UpdateParticipantSignature(ctx context.Context, participantID, signature string) error
}

// EliminationStore persists kill claims.
type EliminationStore interface {
	CreateElimination(ctx context.Context, e *models.Elimination) error
	GetEliminationByID(ctx context.Context, eliminationID string) (*models.Elimination, error)
	GetPendingEliminationByVictim(ctx context.Context, gameID, victimID string) (*models.Elimination, error)
	// ListEliminations returns a game's eliminations, newest first,
	// optionally filtered by confirmed state.
	ListEliminations(ctx context.Context, gameID string, confirmed *bool) ([]*models.Elimination, error)
	MarkEliminationConfirmed(ctx context.Context, eliminationID string) error
	DeleteElimination(ctx context.Context, eliminationID string) error
	// CountConfirmedByGame returns confirmed kill counts per eliminator for
	// one game, in a single pass.
	CountConfirmedByGame(ctx context.Context, gameID string) (map[string]int, error)
	// UpdateConfirmedSignaturesByEliminator rewrites the stored signature on
	// an eliminator's already-confirmed eliminations (cosmetic consistency).
	UpdateConfirmedSignaturesByEliminator(ctx context.Context, eliminatorID, signature string) error
}

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Stores bundles the per-entity stores handed to a transactional closure.
type Stores struct {
	Games        GameStore
	Participants ParticipantStore
	Eliminations EliminationStore
}

// Atomic runs fn inside a critical section scoped to one game: every
// multi-step ring or elimination mutation for a game is serialized against
// all others for the same game, while different games proceed in parallel.
// If fn returns an error nothing it did is visible.
type Atomic interface {
	InGameTx(ctx context.Context, gameID string, fn func(Stores) error) error
}
