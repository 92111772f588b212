package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pastanaga/killer-services/internal/gamesvc/models"
)

func TestLeaderboardScoring(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	now := start.Add(10 * time.Hour)

	game := &models.Game{ID: "g1", Name: "test", Status: models.GameStatusActive, StartDate: &start}
	if err := m.CreateGame(ctx, game); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"a", "b", "c"} {
		p := &models.Participant{ID: id, GameID: "g1", UserID: "u-" + id, Nickname: id, Status: models.ParticipantAlive}
		if err := m.CreateParticipant(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	// Two confirmed kills by a.
	for i, victim := range []string{"b", "c"} {
		e := &models.Elimination{
			ID:           "e-" + victim,
			GameID:       "g1",
			EliminatorID: "a",
			VictimID:     victim,
			Confirmed:    true,
			OccurredAt:   start.Add(time.Duration(i+1) * time.Hour),
		}
		if err := m.CreateElimination(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	// b was eliminated 4 hours in.
	m.now = func() time.Time { return start.Add(4 * time.Hour) }
	if err := m.SetParticipantStatus(ctx, "b", models.ParticipantEliminated); err != nil {
		t.Fatal(err)
	}
	m.now = time.Now

	svc := NewLeaderboardService(m.stores())
	svc.now = func() time.Time { return now }

	entries, err := svc.GetLeaderboard(ctx, "g1")
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// a: 2 kills, alive 10 hours -> 2*100 + 10 = 210, first place.
	if entries[0].ParticipantID != "a" {
		t.Fatalf("expected a first, got %s", entries[0].ParticipantID)
	}
	if entries[0].Score != 210 {
		t.Fatalf("expected score 210, got %d", entries[0].Score)
	}
	if entries[0].Eliminations != 2 || entries[0].SurvivalHours != 10 {
		t.Fatalf("unexpected breakdown: %+v", entries[0])
	}
	if entries[0].Position != 1 {
		t.Fatalf("expected position 1, got %d", entries[0].Position)
	}

	// b: no kills, survived 4 hours -> 4.
	var b *models.LeaderboardEntry
	for _, e := range entries {
		if e.ParticipantID == "b" {
			b = e
		}
	}
	if b == nil || b.Score != 4 {
		t.Fatalf("expected b to score 4, got %+v", b)
	}

	for i, e := range entries {
		if e.Position != i+1 {
			t.Fatalf("positions not 1-based sequential: %+v", entries)
		}
		if i > 0 && entries[i-1].Score < e.Score {
			t.Fatal("entries not sorted by descending score")
		}
	}
}

func TestLeaderboardWinnerBonus(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	game := &models.Game{ID: "g1", Name: "test", Status: models.GameStatusEnded, StartDate: &start}
	if err := m.CreateGame(ctx, game); err != nil {
		t.Fatal(err)
	}

	m.now = func() time.Time { return start.Add(2 * time.Hour) }
	winner := &models.Participant{ID: "w", GameID: "g1", UserID: "u-w", Nickname: "w", Status: models.ParticipantWinner}
	if err := m.CreateParticipant(ctx, winner); err != nil {
		t.Fatal(err)
	}
	m.now = time.Now

	svc := NewLeaderboardService(m.stores())

	entries, err := svc.GetLeaderboard(ctx, "g1")
	if err != nil {
		t.Fatal(err)
	}
	// Winner bonus 500 + 2 survival hours (until last update).
	if entries[0].Score != 502 {
		t.Fatalf("expected score 502, got %d", entries[0].Score)
	}
}

func TestLeaderboardTiesKeepStoredOrder(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	game := &models.Game{ID: "g1", Name: "test", Status: models.GameStatusActive, StartDate: &start}
	if err := m.CreateGame(ctx, game); err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"first", "second", "third"} {
		p := &models.Participant{ID: id, GameID: "g1", UserID: "u-" + id, Nickname: id, Status: models.ParticipantAlive}
		if err := m.CreateParticipant(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	svc := NewLeaderboardService(m.stores())
	svc.now = func() time.Time { return start }

	entries, err := svc.GetLeaderboard(ctx, "g1")
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []string{"first", "second", "third"} {
		if entries[i].ParticipantID != want {
			t.Fatalf("tie order not stable: got %s at %d", entries[i].ParticipantID, i)
		}
	}
}

func TestLeaderboardGameNotFound(t *testing.T) {
	svc := NewLeaderboardService(newMemStore().stores())
	if _, err := svc.GetLeaderboard(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
