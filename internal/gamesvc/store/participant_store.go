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

const participantColumns = `id, game_id, user_id, nickname, grp, photo, status, target_id, signature, created_at, updated_at`

type ParticipantStore struct {
	db Querier
}

func NewParticipantStore(db Querier) *ParticipantStore {
	return &ParticipantStore{db: db}
}

func scanParticipant(row pgx.Row) (*models.Participant, error) {
	p := &models.Participant{}
	err := row.Scan(
		&p.ID,
		&p.GameID,
		&p.UserID,
		&p.Nickname,
		&p.Group,
		&p.Photo,
		&p.Status,
		&p.TargetID,
		&p.Signature,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ParticipantStore) CreateParticipant(ctx context.Context, p *models.Participant) error {
	query := `
		INSERT INTO participants (id, game_id, user_id, nickname, grp, photo, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query,
		p.ID,
		p.GameID,
		p.UserID,
		p.Nickname,
		p.Group,
		p.Photo,
		p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "unique_game_user" {
			return service.ErrAlreadyJoined
		}
		return fmt.Errorf("failed to create participant: %w", err)
	}

	return nil
}

func (s *ParticipantStore) GetParticipantByID(ctx context.Context, participantID string) (*models.Participant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE id = $1
	`

	p, err := scanParticipant(s.db.QueryRow(ctx, query, participantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Participant not found
		}
		return nil, fmt.Errorf("failed to get participant by ID: %w", err)
	}

	return p, nil
}

// GetActiveParticipantByUser resolves a user to their ALIVE participant in
// an ACTIVE game.
func (s *ParticipantStore) GetActiveParticipantByUser(ctx context.Context, userID string) (*models.Participant, error) {
	query := `
		SELECT p.id, p.game_id, p.user_id, p.nickname, p.grp, p.photo, p.status,
		       p.target_id, p.signature, p.created_at, p.updated_at
		FROM participants p
		JOIN games g ON g.id = p.game_id
		WHERE p.user_id = $1 AND p.status = $2 AND g.status = $3
		LIMIT 1
	`

	p, err := scanParticipant(s.db.QueryRow(ctx, query, userID,
		models.ParticipantAlive, models.GameStatusActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active participant: %w", err)
	}

	return p, nil
}

func (s *ParticipantStore) GetParticipantsByGameID(ctx context.Context, gameID string) ([]*models.Participant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE game_id = $1
		ORDER BY created_at
	`

	return s.queryParticipants(ctx, query, gameID)
}

func (s *ParticipantStore) GetAliveParticipants(ctx context.Context, gameID string) ([]*models.Participant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE game_id = $1 AND status = $2
		ORDER BY created_at
	`

	return s.queryParticipants(ctx, query, gameID, models.ParticipantAlive)
}

func (s *ParticipantStore) queryParticipants(ctx context.Context, query string, args ...any) ([]*models.Participant, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		p := &models.Participant{}
		err := rows.Scan(
			&p.ID,
			&p.GameID,
			&p.UserID,
			&p.Nickname,
			&p.Group,
			&p.Photo,
			&p.Status,
			&p.TargetID,
			&p.Signature,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}

func (s *ParticipantStore) CountAliveParticipants(ctx context.Context, gameID string) (int, error) {
	query := `
		SELECT count(*)
		FROM participants
		WHERE game_id = $1 AND status = $2
	`

	var count int
	err := s.db.QueryRow(ctx, query, gameID, models.ParticipantAlive).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count alive participants: %w", err)
	}

	return count, nil
}

func (s *ParticipantStore) SetParticipantTarget(ctx context.Context, participantID string, targetID *string) error {
	query := `
		UPDATE participants
		SET target_id = $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query, participantID, targetID)
	if err != nil {
		return fmt.Errorf("failed to set participant target: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("participant %s not found", participantID)
	}

	return nil
}

func (s *ParticipantStore) SetParticipantStatus(ctx context.Context, participantID, status string) error {
	query := `
		UPDATE participants
		SET status = $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query, participantID, status)
	if err != nil {
		return fmt.Errorf("failed to set participant status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("participant %s not found", participantID)
	}

	return nil
}

func (s *ParticipantStore) UpdateParticipantSignature(ctx context.Context, participantID, signature string) error {
	query := `
		UPDATE participants
		SET signature = $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query, participantID, signature)
	if err != nil {
		return fmt.Errorf("failed to update participant signature: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("participant %s not found", participantID)
	}

	return nil
}
