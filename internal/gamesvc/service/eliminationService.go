package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pastanaga/killer-services/internal/gamesvc/models"
	log "github.com/sirupsen/logrus"
)

// Actor identifies who is performing an operation. Handlers build it from
// verified token claims; the services never read ambient session state.
type Actor struct {
	UserID string
	Role   string
}

// SubmitRequest is a kill claim from an eliminator. KillerSignature is the
// canonical payload; Method, Location and Witnesses are optional extras.
type SubmitRequest struct {
	EliminatorID    string
	VictimID        string
	KillerSignature string
	Method          string
	Location        string
	Witnesses       []string
}

// SubmitResult reports a recorded pending claim.
type SubmitResult struct {
	EliminationID string `json:"elimination_id"`
	Pending       bool   `json:"pending"`
	Message       string `json:"message"`
}

// ConfirmResult reports a committed confirmation.
type ConfirmResult struct {
	Confirmed bool `json:"confirmed"`
	GameEnded bool `json:"game_ended"`
}

// EliminationService owns the elimination state machine: the submission
// guard, the confirmation engine and pending-claim rejection. All ring and
// status mutations happen here and in RingService, nowhere else.
type EliminationService struct {
	stores Stores
	atomic Atomic
	events EventPublisher
	now    func() time.Time
}

func NewEliminationService(stores Stores, atomic Atomic, events EventPublisher) *EliminationService {
	if events == nil {
		events = NopEvents{}
	}
	return &EliminationService{stores: stores, atomic: atomic, events: events, now: time.Now}
}

// Submit validates a kill claim and records it as a pending elimination.
// The checks and the insert run inside the per-game transaction so two
// hunters cannot race a claim onto the same victim. A successful submission
// never touches the victim's status or the ring; that is deferred entirely
// to Confirm.
func (s *EliminationService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	eliminator, err := s.stores.Participants.GetParticipantByID(ctx, req.EliminatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load eliminator: %w", err)
	}
	if eliminator == nil {
		return nil, ErrNotActiveParticipant
	}

	var elimination *models.Elimination

	err = s.atomic.InGameTx(ctx, eliminator.GameID, func(st Stores) error {
		// Re-read inside the critical section; a confirmation may have
		// advanced the ring since the handler resolved the participant.
		eliminator, err := st.Participants.GetParticipantByID(ctx, req.EliminatorID)
		if err != nil {
			return fmt.Errorf("failed to load eliminator: %w", err)
		}
		if eliminator == nil || eliminator.Status != models.ParticipantAlive {
			return ErrNotActiveParticipant
		}

		game, err := st.Games.GetGameByID(ctx, eliminator.GameID)
		if err != nil {
			return fmt.Errorf("failed to load game: %w", err)
		}
		if game == nil || game.Status != models.GameStatusActive {
			return ErrNotActiveParticipant
		}

		if eliminator.TargetID == nil || *eliminator.TargetID != req.VictimID {
			return ErrWrongTarget
		}

		victim, err := st.Participants.GetParticipantByID(ctx, req.VictimID)
		if err != nil {
			return fmt.Errorf("failed to load victim: %w", err)
		}
		if victim == nil || victim.Status != models.ParticipantAlive {
			return ErrVictimEliminated
		}

		pending, err := st.Eliminations.GetPendingEliminationByVictim(ctx, game.ID, victim.ID)
		if err != nil {
			return fmt.Errorf("failed to check pending claims: %w", err)
		}
		if pending != nil {
			return ErrVictimPendingClaim
		}

		// Keep the eliminator's reusable signature current and propagate
		// it onto their already-confirmed eliminations.
		if req.KillerSignature != "" &&
			(eliminator.Signature == nil || *eliminator.Signature != req.KillerSignature) {
			if err := st.Participants.UpdateParticipantSignature(ctx, eliminator.ID, req.KillerSignature); err != nil {
				return fmt.Errorf("failed to update signature: %w", err)
			}
			if err := st.Eliminations.UpdateConfirmedSignaturesByEliminator(ctx, eliminator.ID, req.KillerSignature); err != nil {
				return fmt.Errorf("failed to propagate signature: %w", err)
			}
		}

		elimination = &models.Elimination{
			ID:           uuid.NewString(),
			GameID:       game.ID,
			EliminatorID: eliminator.ID,
			VictimID:     victim.ID,
			Confirmed:    false,
			Method:       req.Method,
			Location:     req.Location,
			Witnesses:    req.Witnesses,
			OccurredAt:   s.now(),
		}
		if req.KillerSignature != "" {
			elimination.KillerSignature = &req.KillerSignature
		}

		if err := st.Eliminations.CreateElimination(ctx, elimination); err != nil {
			return fmt.Errorf("failed to create elimination: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Infof("pending elimination %s recorded in game %s", elimination.ID, elimination.GameID)
	s.events.EliminationSubmitted(elimination)

	return &SubmitResult{
		EliminationID: elimination.ID,
		Pending:       true,
		Message:       "elimination reported, awaiting confirmation by the victim or an organizer",
	}, nil
}

// Confirm commits a pending elimination as one atomic transition: the claim
// is confirmed, the victim leaves the ring, the eliminator inherits the
// victim's former target, and the game ends if at most one participant
// remains ALIVE. Only the victim's own user or an organizer may confirm.
func (s *EliminationService) Confirm(ctx context.Context, eliminationID string, actor Actor) (*ConfirmResult, error) {
	elimination, err := s.stores.Eliminations.GetEliminationByID(ctx, eliminationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load elimination: %w", err)
	}
	if elimination == nil {
		return nil, ErrNotFound
	}

	var (
		gameEnded bool
		winnerID  string
	)

	err = s.atomic.InGameTx(ctx, elimination.GameID, func(st Stores) error {
		elimination, err := st.Eliminations.GetEliminationByID(ctx, eliminationID)
		if err != nil {
			return fmt.Errorf("failed to load elimination: %w", err)
		}
		if elimination == nil {
			return ErrNotFound
		}
		if elimination.Confirmed {
			return ErrAlreadyConfirmed
		}

		victim, err := st.Participants.GetParticipantByID(ctx, elimination.VictimID)
		if err != nil {
			return fmt.Errorf("failed to load victim: %w", err)
		}
		if victim == nil {
			return ErrNotFound
		}

		if victim.UserID != actor.UserID && !models.IsOrganizerRole(actor.Role) {
			return ErrNotAuthorized
		}

		// Capture the victim's outgoing link before it is cleared; it
		// becomes the eliminator's new target.
		inheritedTarget := victim.TargetID

		if err := st.Eliminations.MarkEliminationConfirmed(ctx, eliminationID); err != nil {
			return fmt.Errorf("failed to confirm elimination: %w", err)
		}
		if err := st.Participants.SetParticipantStatus(ctx, victim.ID, models.ParticipantEliminated); err != nil {
			return fmt.Errorf("failed to eliminate victim: %w", err)
		}
		if err := st.Participants.SetParticipantTarget(ctx, victim.ID, nil); err != nil {
			return fmt.Errorf("failed to clear victim target: %w", err)
		}

		eliminator, err := st.Participants.GetParticipantByID(ctx, elimination.EliminatorID)
		if err != nil {
			return fmt.Errorf("failed to load eliminator: %w", err)
		}
		if eliminator != nil && eliminator.Status == models.ParticipantAlive && inheritedTarget != nil {
			if err := st.Participants.SetParticipantTarget(ctx, eliminator.ID, inheritedTarget); err != nil {
				return fmt.Errorf("failed to relink eliminator: %w", err)
			}
		}

		// Recount rather than maintain a running counter; the recompute
		// self-heals any prior inconsistency.
		remaining, err := st.Participants.CountAliveParticipants(ctx, elimination.GameID)
		if err != nil {
			return fmt.Errorf("failed to count alive participants: %w", err)
		}

		switch {
		case remaining == 1:
			alive, err := st.Participants.GetAliveParticipants(ctx, elimination.GameID)
			if err != nil {
				return fmt.Errorf("failed to load winner: %w", err)
			}
			if len(alive) == 1 {
				winnerID = alive[0].ID
				if err := st.Participants.SetParticipantStatus(ctx, winnerID, models.ParticipantWinner); err != nil {
					return fmt.Errorf("failed to promote winner: %w", err)
				}
			}
			if err := st.Games.EndGame(ctx, elimination.GameID, s.now()); err != nil {
				return fmt.Errorf("failed to end game: %w", err)
			}
			gameEnded = true
		case remaining == 0:
			// Degenerate: should not happen with a maintained ring, but
			// the engine does not assume it cannot.
			if err := st.Games.EndGame(ctx, elimination.GameID, s.now()); err != nil {
				return fmt.Errorf("failed to end game: %w", err)
			}
			gameEnded = true
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// The outer read predates the transaction; publish the committed state.
	elimination.Confirmed = true

	log.Infof("elimination %s confirmed in game %s (game ended: %v)", eliminationID, elimination.GameID, gameEnded)
	s.events.EliminationConfirmed(elimination)
	if gameEnded {
		s.events.GameEnded(elimination.GameID, winnerID)
	}

	return &ConfirmResult{Confirmed: true, GameEnded: gameEnded}, nil
}

// Reject discards a pending claim so the victim can be claimed again. The
// same parties that may confirm may reject. Confirmed eliminations are
// immutable and cannot be rejected.
func (s *EliminationService) Reject(ctx context.Context, eliminationID string, actor Actor) error {
	elimination, err := s.stores.Eliminations.GetEliminationByID(ctx, eliminationID)
	if err != nil {
		return fmt.Errorf("failed to load elimination: %w", err)
	}
	if elimination == nil {
		return ErrNotFound
	}

	err = s.atomic.InGameTx(ctx, elimination.GameID, func(st Stores) error {
		elimination, err := st.Eliminations.GetEliminationByID(ctx, eliminationID)
		if err != nil {
			return fmt.Errorf("failed to load elimination: %w", err)
		}
		if elimination == nil {
			return ErrNotFound
		}
		if elimination.Confirmed {
			return ErrAlreadyConfirmed
		}

		victim, err := st.Participants.GetParticipantByID(ctx, elimination.VictimID)
		if err != nil {
			return fmt.Errorf("failed to load victim: %w", err)
		}
		if victim == nil {
			return ErrNotFound
		}
		if victim.UserID != actor.UserID && !models.IsOrganizerRole(actor.Role) {
			return ErrNotAuthorized
		}

		return st.Eliminations.DeleteElimination(ctx, eliminationID)
	})
	if err != nil {
		return err
	}

	log.Infof("pending elimination %s rejected in game %s", eliminationID, elimination.GameID)
	s.events.EliminationRejected(elimination)

	return nil
}

// List returns a game's eliminations, optionally filtered by confirmed
// state. Pending claims expose their eliminator only to organizers; a
// victim confirms a claim on the word of the signature, not the hunter's
// identity.
func (s *EliminationService) List(ctx context.Context, gameID string, confirmed *bool, actor Actor) ([]*models.Elimination, error) {
	eliminations, err := s.stores.Eliminations.ListEliminations(ctx, gameID, confirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to list eliminations: %w", err)
	}

	if !models.IsOrganizerRole(actor.Role) {
		for _, e := range eliminations {
			if !e.Confirmed {
				e.EliminatorID = ""
			}
		}
	}

	return eliminations, nil
}
