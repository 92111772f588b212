package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pastanaga/killer-services/internal/gamesvc/models"
	"github.com/pastanaga/killer-services/internal/gamesvc/service"
)

const eliminationColumns = `id, game_id, eliminator_id, victim_id, confirmed, method, location, witnesses, killer_signature, occurred_at, created_at, updated_at`

type EliminationStore struct {
	db Querier
}

func NewEliminationStore(db Querier) *EliminationStore {
	return &EliminationStore{db: db}
}

func scanElimination(row pgx.Row) (*models.Elimination, error) {
	e := &models.Elimination{}
	err := row.Scan(
		&e.ID,
		&e.GameID,
		&e.EliminatorID,
		&e.VictimID,
		&e.Confirmed,
		&e.Method,
		&e.Location,
		&e.Witnesses,
		&e.KillerSignature,
		&e.OccurredAt,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// CreateElimination inserts a claim. The one_pending_claim_per_victim
// partial unique index backstops the guard's serialized check: a violation
// maps to the same domain error the guard raises.
func (s *EliminationStore) CreateElimination(ctx context.Context, e *models.Elimination) error {
	query := `
		INSERT INTO eliminations
			(id, game_id, eliminator_id, victim_id, confirmed, method, location, witnesses, killer_signature, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	witnesses := e.Witnesses
	if witnesses == nil {
		witnesses = []string{}
	}

	err := s.db.QueryRow(ctx, query,
		e.ID,
		e.GameID,
		e.EliminatorID,
		e.VictimID,
		e.Confirmed,
		e.Method,
		e.Location,
		witnesses,
		e.KillerSignature,
		e.OccurredAt,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" &&
			pgErr.ConstraintName == "one_pending_claim_per_victim" {
			return service.ErrVictimPendingClaim
		}
		return fmt.Errorf("failed to create elimination: %w", err)
	}

	return nil
}

func (s *EliminationStore) GetEliminationByID(ctx context.Context, eliminationID string) (*models.Elimination, error) {
	query := `
		SELECT ` + eliminationColumns + `
		FROM eliminations
		WHERE id = $1
	`

	e, err := scanElimination(s.db.QueryRow(ctx, query, eliminationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Elimination not found
		}
		return nil, fmt.Errorf("failed to get elimination by ID: %w", err)
	}

	return e, nil
}

func (s *EliminationStore) GetPendingEliminationByVictim(ctx context.Context, gameID, victimID string) (*models.Elimination, error) {
	query := `
		SELECT ` + eliminationColumns + `
		FROM eliminations
		WHERE game_id = $1 AND victim_id = $2 AND NOT confirmed
		LIMIT 1
	`

	e, err := scanElimination(s.db.QueryRow(ctx, query, gameID, victimID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pending elimination: %w", err)
	}

	return e, nil
}

func (s *EliminationStore) ListEliminations(ctx context.Context, gameID string, confirmed *bool) ([]*models.Elimination, error) {
	query := `
		SELECT ` + eliminationColumns + `
		FROM eliminations
		WHERE game_id = $1 AND ($2::boolean IS NULL OR confirmed = $2)
		ORDER BY occurred_at DESC
	`

	rows, err := s.db.Query(ctx, query, gameID, confirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to list eliminations: %w", err)
	}
	defer rows.Close()

	var eliminations []*models.Elimination
	for rows.Next() {
		e := &models.Elimination{}
		err := rows.Scan(
			&e.ID,
			&e.GameID,
			&e.EliminatorID,
			&e.VictimID,
			&e.Confirmed,
			&e.Method,
			&e.Location,
			&e.Witnesses,
			&e.KillerSignature,
			&e.OccurredAt,
			&e.CreatedAt,
			&e.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		eliminations = append(eliminations, e)
	}

	return eliminations, rows.Err()
}

func (s *EliminationStore) MarkEliminationConfirmed(ctx context.Context, eliminationID string) error {
	query := `
		UPDATE eliminations
		SET confirmed = TRUE, updated_at = now()
		WHERE id = $1 AND NOT confirmed
	`

	tag, err := s.db.Exec(ctx, query, eliminationID)
	if err != nil {
		return fmt.Errorf("failed to confirm elimination: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrAlreadyConfirmed
	}

	return nil
}

func (s *EliminationStore) DeleteElimination(ctx context.Context, eliminationID string) error {
	query := `
		DELETE FROM eliminations
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query, eliminationID)
	if err != nil {
		return fmt.Errorf("failed to delete elimination: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}

	return nil
}

func (s *EliminationStore) CountConfirmedByGame(ctx context.Context, gameID string) (map[string]int, error) {
	query := `
		SELECT eliminator_id, count(*)
		FROM eliminations
		WHERE game_id = $1 AND confirmed
		GROUP BY eliminator_id
	`

	rows, err := s.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to count confirmed eliminations: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var eliminatorID string
		var count int
		if err := rows.Scan(&eliminatorID, &count); err != nil {
			return nil, err
		}
		counts[eliminatorID] = count
	}

	return counts, rows.Err()
}

func (s *EliminationStore) UpdateConfirmedSignaturesByEliminator(ctx context.Context, eliminatorID, signature string) error {
	query := `
		UPDATE eliminations
		SET killer_signature = $2, updated_at = now()
		WHERE eliminator_id = $1 AND confirmed
	`

	if _, err := s.db.Exec(ctx, query, eliminatorID, signature); err != nil {
		return fmt.Errorf("failed to update signatures: %w", err)
	}

	return nil
}
