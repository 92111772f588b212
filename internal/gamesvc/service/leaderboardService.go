package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pastanaga/killer-services/internal/gamesvc/models"
)

// Scoring weights.
const (
	pointsPerElimination = 100
	winnerBonus          = 500
)

// LeaderboardService derives a game's ranking from committed state. It is
// read-only: always a snapshot, never a mutation.
type LeaderboardService struct {
	stores Stores
	now    func() time.Time
}

func NewLeaderboardService(stores Stores) *LeaderboardService {
	return &LeaderboardService{stores: stores, now: time.Now}
}

// GetLeaderboard scores every participant and returns them ranked.
// score = 100 per confirmed elimination + whole survival hours + 500 if
// WINNER. ALIVE participants survive from game start until now; everyone
// else until they were last updated (their elimination). Ties keep the
// participants' stored order.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, gameID string) ([]*models.LeaderboardEntry, error) {
	game, err := s.stores.Games.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if game == nil {
		return nil, ErrNotFound
	}

	participants, err := s.stores.Participants.GetParticipantsByGameID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}

	kills, err := s.stores.Eliminations.CountConfirmedByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to count eliminations: %w", err)
	}

	startTime := s.now()
	if game.StartDate != nil {
		startTime = *game.StartDate
	}

	entries := make([]*models.LeaderboardEntry, 0, len(participants))
	for _, p := range participants {
		survivedUntil := p.UpdatedAt
		if p.Status == models.ParticipantAlive {
			survivedUntil = s.now()
		}
		survivalHours := int(survivedUntil.Sub(startTime).Hours())
		if survivalHours < 0 {
			survivalHours = 0
		}

		score := kills[p.ID]*pointsPerElimination + survivalHours
		if p.Status == models.ParticipantWinner {
			score += winnerBonus
		}

		entries = append(entries, &models.LeaderboardEntry{
			ParticipantID: p.ID,
			Nickname:      p.Nickname,
			Group:         p.Group,
			Photo:         p.Photo,
			Status:        p.Status,
			Eliminations:  kills[p.ID],
			SurvivalHours: survivalHours,
			Score:         score,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i, e := range entries {
		e.Position = i + 1
	}

	return entries, nil
}
