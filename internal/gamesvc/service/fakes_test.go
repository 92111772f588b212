package service

import (
	"context"
	"sync"
	"time"

	"github.com/pastanaga/killer-services/internal/gamesvc/models"
)

// memStore is an in-memory implementation of the store interfaces and the
// Atomic runner. InGameTx takes a snapshot before running the closure and
// restores it on error, matching the all-or-nothing contract of the real
// per-game transaction.
type memStore struct {
	mu sync.Mutex

	games        map[string]models.Game
	participants map[string]models.Participant
	eliminations map[string]models.Elimination

	partOrder []string
	elimOrder []string

	now func() time.Time
}

func newMemStore() *memStore {
	return &memStore{
		games:        make(map[string]models.Game),
		participants: make(map[string]models.Participant),
		eliminations: make(map[string]models.Elimination),
		now:          time.Now,
	}
}

func (m *memStore) stores() Stores {
	return Stores{Games: m, Participants: m, Eliminations: m}
}

func (m *memStore) InGameTx(ctx context.Context, gameID string, fn func(Stores) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	games := make(map[string]models.Game, len(m.games))
	for k, v := range m.games {
		games[k] = v
	}
	participants := make(map[string]models.Participant, len(m.participants))
	for k, v := range m.participants {
		participants[k] = v
	}
	eliminations := make(map[string]models.Elimination, len(m.eliminations))
	for k, v := range m.eliminations {
		eliminations[k] = v
	}
	partOrder := append([]string(nil), m.partOrder...)
	elimOrder := append([]string(nil), m.elimOrder...)

	if err := fn(m.stores()); err != nil {
		m.games = games
		m.participants = participants
		m.eliminations = eliminations
		m.partOrder = partOrder
		m.elimOrder = elimOrder
		return err
	}

	return nil
}

// GameStore

func (m *memStore) CreateGame(ctx context.Context, game *models.Game) error {
	game.CreatedAt = m.now()
	game.UpdatedAt = game.CreatedAt
	m.games[game.ID] = *game
	return nil
}

func (m *memStore) GetGameByID(ctx context.Context, gameID string) (*models.Game, error) {
	g, ok := m.games[gameID]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (m *memStore) ListGames(ctx context.Context) ([]*models.GameSummary, error) {
	var summaries []*models.GameSummary
	for _, g := range m.games {
		s := &models.GameSummary{Game: g}
		for _, p := range m.participants {
			if p.GameID == g.ID {
				s.Participants++
			}
		}
		for _, e := range m.eliminations {
			if e.GameID == g.ID {
				s.Eliminations++
			}
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

func (m *memStore) UpdateGameStatus(ctx context.Context, gameID, status string) error {
	g := m.games[gameID]
	g.Status = status
	g.UpdatedAt = m.now()
	m.games[gameID] = g
	return nil
}

func (m *memStore) StartGame(ctx context.Context, gameID string, startedAt time.Time) error {
	g := m.games[gameID]
	g.Status = models.GameStatusActive
	if g.StartDate == nil {
		t := startedAt
		g.StartDate = &t
	}
	g.UpdatedAt = m.now()
	m.games[gameID] = g
	return nil
}

func (m *memStore) EndGame(ctx context.Context, gameID string, endedAt time.Time) error {
	g := m.games[gameID]
	g.Status = models.GameStatusEnded
	t := endedAt
	g.EndDate = &t
	g.UpdatedAt = m.now()
	m.games[gameID] = g
	return nil
}

// ParticipantStore

func (m *memStore) CreateParticipant(ctx context.Context, p *models.Participant) error {
	for _, existing := range m.participants {
		if existing.GameID == p.GameID && existing.UserID == p.UserID {
			return ErrAlreadyJoined
		}
	}
	p.CreatedAt = m.now()
	p.UpdatedAt = p.CreatedAt
	m.participants[p.ID] = *p
	m.partOrder = append(m.partOrder, p.ID)
	return nil
}

func (m *memStore) GetParticipantByID(ctx context.Context, participantID string) (*models.Participant, error) {
	p, ok := m.participants[participantID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memStore) GetActiveParticipantByUser(ctx context.Context, userID string) (*models.Participant, error) {
	for _, id := range m.partOrder {
		p := m.participants[id]
		if p.UserID != userID || p.Status != models.ParticipantAlive {
			continue
		}
		if g, ok := m.games[p.GameID]; ok && g.Status == models.GameStatusActive {
			return &p, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetParticipantsByGameID(ctx context.Context, gameID string) ([]*models.Participant, error) {
	var participants []*models.Participant
	for _, id := range m.partOrder {
		p := m.participants[id]
		if p.GameID == gameID {
			participants = append(participants, &p)
		}
	}
	return participants, nil
}

func (m *memStore) GetAliveParticipants(ctx context.Context, gameID string) ([]*models.Participant, error) {
	var alive []*models.Participant
	for _, id := range m.partOrder {
		p := m.participants[id]
		if p.GameID == gameID && p.Status == models.ParticipantAlive {
			alive = append(alive, &p)
		}
	}
	return alive, nil
}

func (m *memStore) CountAliveParticipants(ctx context.Context, gameID string) (int, error) {
	alive, _ := m.GetAliveParticipants(ctx, gameID)
	return len(alive), nil
}

func (m *memStore) SetParticipantTarget(ctx context.Context, participantID string, targetID *string) error {
	p := m.participants[participantID]
	if targetID == nil {
		p.TargetID = nil
	} else {
		t := *targetID
		p.TargetID = &t
	}
	p.UpdatedAt = m.now()
	m.participants[participantID] = p
	return nil
}

func (m *memStore) SetParticipantStatus(ctx context.Context, participantID, status string) error {
	p := m.participants[participantID]
	p.Status = status
	p.UpdatedAt = m.now()
	m.participants[participantID] = p
	return nil
}

func (m *memStore) UpdateParticipantSignature(ctx context.Context, participantID, signature string) error {
	p := m.participants[participantID]
	s := signature
	p.Signature = &s
	p.UpdatedAt = m.now()
	m.participants[participantID] = p
	return nil
}

// EliminationStore

func (m *memStore) CreateElimination(ctx context.Context, e *models.Elimination) error {
	for _, existing := range m.eliminations {
		if existing.GameID == e.GameID && existing.VictimID == e.VictimID && !existing.Confirmed {
			return ErrVictimPendingClaim
		}
	}
	e.CreatedAt = m.now()
	e.UpdatedAt = e.CreatedAt
	m.eliminations[e.ID] = *e
	m.elimOrder = append(m.elimOrder, e.ID)
	return nil
}

func (m *memStore) GetEliminationByID(ctx context.Context, eliminationID string) (*models.Elimination, error) {
	e, ok := m.eliminations[eliminationID]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *memStore) GetPendingEliminationByVictim(ctx context.Context, gameID, victimID string) (*models.Elimination, error) {
	for _, id := range m.elimOrder {
		e := m.eliminations[id]
		if e.GameID == gameID && e.VictimID == victimID && !e.Confirmed {
			return &e, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListEliminations(ctx context.Context, gameID string, confirmed *bool) ([]*models.Elimination, error) {
	var eliminations []*models.Elimination
	for _, id := range m.elimOrder {
		e := m.eliminations[id]
		if e.GameID != gameID {
			continue
		}
		if confirmed != nil && e.Confirmed != *confirmed {
			continue
		}
		eliminations = append(eliminations, &e)
	}
	return eliminations, nil
}

func (m *memStore) MarkEliminationConfirmed(ctx context.Context, eliminationID string) error {
	e, ok := m.eliminations[eliminationID]
	if !ok || e.Confirmed {
		return ErrAlreadyConfirmed
	}
	e.Confirmed = true
	e.UpdatedAt = m.now()
	m.eliminations[eliminationID] = e
	return nil
}

func (m *memStore) DeleteElimination(ctx context.Context, eliminationID string) error {
	if _, ok := m.eliminations[eliminationID]; !ok {
		return ErrNotFound
	}
	delete(m.eliminations, eliminationID)
	for i, id := range m.elimOrder {
		if id == eliminationID {
			m.elimOrder = append(m.elimOrder[:i], m.elimOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memStore) CountConfirmedByGame(ctx context.Context, gameID string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, e := range m.eliminations {
		if e.GameID == gameID && e.Confirmed {
			counts[e.EliminatorID]++
		}
	}
	return counts, nil
}

func (m *memStore) UpdateConfirmedSignaturesByEliminator(ctx context.Context, eliminatorID, signature string) error {
	for id, e := range m.eliminations {
		if e.EliminatorID == eliminatorID && e.Confirmed {
			s := signature
			e.KillerSignature = &s
			e.UpdatedAt = m.now()
			m.eliminations[id] = e
		}
	}
	return nil
}
