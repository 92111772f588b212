package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pastanaga/killer-services/internal/gamesvc/models"
)

// NewParticipant is one roster entry in an organizer's bulk creation.
type NewParticipant struct {
	UserID   string
	Nickname string
	Group    string
	Photo    *string
}

type ParticipantService struct {
	participants ParticipantStore
	games        GameStore
}

func NewParticipantService(participants ParticipantStore, games GameStore) *ParticipantService {
	return &ParticipantService{participants: participants, games: games}
}

// CreateParticipants adds a roster of ALIVE participants to a game still in
// SETUP. Targets are not assigned here; RingService.AssignTargets does that
// once the roster is complete.
func (s *ParticipantService) CreateParticipants(ctx context.Context, gameID string, roster []NewParticipant) ([]*models.Participant, error) {
	game, err := s.games.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, ErrNotFound
	}
	if game.Status != models.GameStatusSetup {
		return nil, fmt.Errorf("%w: participants can only be added during setup", ErrInvalidStatus)
	}

	created := make([]*models.Participant, 0, len(roster))
	for _, entry := range roster {
		nickname := strings.TrimSpace(entry.Nickname)
		if nickname == "" {
			return created, fmt.Errorf("participant nickname cannot be empty")
		}

		p := &models.Participant{
			ID:       uuid.NewString(),
			GameID:   gameID,
			UserID:   entry.UserID,
			Nickname: nickname,
			Group:    entry.Group,
			Photo:    entry.Photo,
			Status:   models.ParticipantAlive,
		}
		if err := s.participants.CreateParticipant(ctx, p); err != nil {
			return created, fmt.Errorf("failed to create participant %s: %w", nickname, err)
		}
		created = append(created, p)
	}

	return created, nil
}

// GetActive resolves a user to their ALIVE participant in an ACTIVE game.
func (s *ParticipantService) GetActive(ctx context.Context, userID string) (*models.Participant, error) {
	p, err := s.participants.GetActiveParticipantByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve participant: %w", err)
	}
	if p == nil {
		return nil, ErrNotActiveParticipant
	}
	return p, nil
}

// GetTarget returns the caller's current assigned target.
func (s *ParticipantService) GetTarget(ctx context.Context, userID string) (*models.Participant, error) {
	p, err := s.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.TargetID == nil {
		return nil, fmt.Errorf("%w: no target assigned yet", ErrNotFound)
	}

	target, err := s.participants.GetParticipantByID(ctx, *p.TargetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load target: %w", err)
	}
	if target == nil {
		return nil, ErrNotFound
	}
	return target, nil
}

// GetSignature returns the caller's stored reusable signature, which may be
// empty if they have not submitted an elimination yet.
func (s *ParticipantService) GetSignature(ctx context.Context, userID string) (*string, error) {
	p, err := s.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	return p.Signature, nil
}

// ListByGame returns every participant in a game.
func (s *ParticipantService) ListByGame(ctx context.Context, gameID string) ([]*models.Participant, error) {
	return s.participants.GetParticipantsByGameID(ctx, gameID)
}
