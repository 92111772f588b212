package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pastanaga/killer-services/internal/gamesvc/models"
)

type GameService struct {
	games GameStore
	now   func() time.Time
}

func NewGameService(games GameStore) *GameService {
	return &GameService{games: games, now: time.Now}
}

// CreateGame creates a new game in SETUP. StartDate may be set ahead of
// time by the organizer; the ring assignment fills it in otherwise.
func (s *GameService) CreateGame(ctx context.Context, name, description string, startDate *time.Time) (*models.Game, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("game name cannot be empty")
	}

	game := &models.Game{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Status:      models.GameStatusSetup,
		StartDate:   startDate,
	}

	if err := s.games.CreateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

func (s *GameService) GetGame(ctx context.Context, gameID string) (*models.Game, error) {
	game, err := s.games.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, ErrNotFound
	}
	return game, nil
}

// ListGames returns all games with their participant and elimination
// counts, newest first.
func (s *GameService) ListGames(ctx context.Context) ([]*models.GameSummary, error) {
	return s.games.ListGames(ctx)
}

// UpdateStatus applies an organizer-driven lifecycle transition. The
// confirmation engine owns the automatic transition to ENDED; this path
// covers manual pause/resume/end.
func (s *GameService) UpdateStatus(ctx context.Context, gameID, status string) (*models.Game, error) {
	if !models.ValidGameStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	game, err := s.games.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, ErrNotFound
	}

	switch status {
	case models.GameStatusEnded:
		if err := s.games.EndGame(ctx, gameID, s.now()); err != nil {
			return nil, fmt.Errorf("failed to end game: %w", err)
		}
	case models.GameStatusActive:
		if err := s.games.StartGame(ctx, gameID, s.now()); err != nil {
			return nil, fmt.Errorf("failed to activate game: %w", err)
		}
	default:
		if err := s.games.UpdateGameStatus(ctx, gameID, status); err != nil {
			return nil, fmt.Errorf("failed to update game status: %w", err)
		}
	}

	return s.GetGame(ctx, gameID)
}
