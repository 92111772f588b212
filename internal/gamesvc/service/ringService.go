package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/pastanaga/killer-services/internal/gamesvc/models"
	log "github.com/sirupsen/logrus"
)

// MinParticipants is the smallest ring worth playing; one or two
// participants degenerate immediately.
const MinParticipants = 3

// BuildTargetRing shuffles the participant ids and assigns each one's
// target as the next id in the shuffled order, wrapping the last to the
// first. The result is a single cycle covering every participant: each id
// appears exactly once as a hunter and exactly once as a target, and no
// participant targets itself.
func BuildTargetRing(participantIDs []string) (map[string]string, error) {
	if len(participantIDs) < MinParticipants {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewParticipants, len(participantIDs))
	}

	shuffled := make([]string, len(participantIDs))
	copy(shuffled, participantIDs)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	assignments := make(map[string]string, len(shuffled))
	for i, hunter := range shuffled {
		assignments[hunter] = shuffled[(i+1)%len(shuffled)]
	}

	return assignments, nil
}

// RingService applies target rings to games.
type RingService struct {
	atomic Atomic
	events EventPublisher
	now    func() time.Time
}

func NewRingService(atomic Atomic, events EventPublisher) *RingService {
	if events == nil {
		events = NopEvents{}
	}
	return &RingService{atomic: atomic, events: events, now: time.Now}
}

// AssignTargets builds a fresh target ring over the game's ALIVE
// participants and writes every target link in one per-game transaction.
// A game still in SETUP is started: status goes ACTIVE and the start date
// is recorded. Nothing is written when the ring cannot be built.
func (s *RingService) AssignTargets(ctx context.Context, gameID string) (map[string]string, error) {
	var assignments map[string]string

	err := s.atomic.InGameTx(ctx, gameID, func(st Stores) error {
		game, err := st.Games.GetGameByID(ctx, gameID)
		if err != nil {
			return fmt.Errorf("failed to load game: %w", err)
		}
		if game == nil {
			return ErrNotFound
		}
		if game.Status == models.GameStatusEnded {
			return fmt.Errorf("%w: game has ended", ErrInvalidStatus)
		}

		alive, err := st.Participants.GetAliveParticipants(ctx, gameID)
		if err != nil {
			return fmt.Errorf("failed to load participants: %w", err)
		}

		ids := make([]string, 0, len(alive))
		for _, p := range alive {
			ids = append(ids, p.ID)
		}

		assignments, err = BuildTargetRing(ids)
		if err != nil {
			return err
		}

		for hunter, target := range assignments {
			t := target
			if err := st.Participants.SetParticipantTarget(ctx, hunter, &t); err != nil {
				return fmt.Errorf("failed to assign target: %w", err)
			}
		}

		if game.Status == models.GameStatusSetup {
			if err := st.Games.StartGame(ctx, gameID, s.now()); err != nil {
				return fmt.Errorf("failed to start game: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Infof("assigned %d targets for game %s", len(assignments), gameID)
	s.events.TargetsAssigned(gameID)

	return assignments, nil
}
