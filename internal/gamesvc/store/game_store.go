package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pastanaga/killer-services/internal/gamesvc/models"
)

type GameStore struct {
	db Querier
}

func NewGameStore(db Querier) *GameStore {
	return &GameStore{db: db}
}

func (s *GameStore) CreateGame(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (id, name, description, status, start_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query,
		game.ID,
		game.Name,
		game.Description,
		game.Status,
		game.StartDate,
	).Scan(&game.CreatedAt, &game.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}

func (s *GameStore) GetGameByID(ctx context.Context, gameID string) (*models.Game, error) {
	query := `
		SELECT id, name, description, status, start_date, end_date, created_at, updated_at
		FROM games
		WHERE id = $1
	`

	game := &models.Game{}
	err := s.db.QueryRow(ctx, query, gameID).Scan(
		&game.ID,
		&game.Name,
		&game.Description,
		&game.Status,
		&game.StartDate,
		&game.EndDate,
		&game.CreatedAt,
		&game.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Game not found
		}
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}

	return game, nil
}

// ListGames returns every game with its participant and elimination
// counts, newest first.
func (s *GameStore) ListGames(ctx context.Context) ([]*models.GameSummary, error) {
	query := `
		SELECT g.id, g.name, g.description, g.status, g.start_date, g.end_date,
		       g.created_at, g.updated_at,
		       (SELECT count(*) FROM participants p WHERE p.game_id = g.id),
		       (SELECT count(*) FROM eliminations e WHERE e.game_id = g.id)
		FROM games g
		ORDER BY g.created_at DESC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []*models.GameSummary
	for rows.Next() {
		var g models.GameSummary
		err := rows.Scan(
			&g.ID,
			&g.Name,
			&g.Description,
			&g.Status,
			&g.StartDate,
			&g.EndDate,
			&g.CreatedAt,
			&g.UpdatedAt,
			&g.Participants,
			&g.Eliminations,
		)
		if err != nil {
			return nil, err
		}
		games = append(games, &g)
	}

	return games, rows.Err()
}

func (s *GameStore) UpdateGameStatus(ctx context.Context, gameID, status string) error {
	query := `
		UPDATE games
		SET status = $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query, gameID, status)
	if err != nil {
		return fmt.Errorf("failed to update game status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game %s not found", gameID)
	}

	return nil
}

// StartGame moves a game to ACTIVE, keeping an organizer-set start date if
// one was already there.
func (s *GameStore) StartGame(ctx context.Context, gameID string, startedAt time.Time) error {
	query := `
		UPDATE games
		SET status = $2, start_date = COALESCE(start_date, $3), updated_at = now()
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query, gameID, models.GameStatusActive, startedAt)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game %s not found", gameID)
	}

	return nil
}

func (s *GameStore) EndGame(ctx context.Context, gameID string, endedAt time.Time) error {
	query := `
		UPDATE games
		SET status = $2, end_date = $3, updated_at = now()
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query, gameID, models.GameStatusEnded, endedAt)
	if err != nil {
		return fmt.Errorf("failed to end game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game %s not found", gameID)
	}

	return nil
}
