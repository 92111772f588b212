package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pastanaga/killer-services/internal/gamesvc/service"
)

// Atomic runs service closures inside a per-game critical section: a
// transaction that first takes an advisory lock keyed by the game id.
// Submissions, confirmations and ring assignment for one game are mutually
// exclusive; different games proceed in parallel. The lock is released when
// the transaction commits or rolls back.
type Atomic struct {
	pool *pgxpool.Pool
}

func NewAtomic(pool *pgxpool.Pool) *Atomic {
	return &Atomic{pool: pool}
}

func (a *Atomic) InGameTx(ctx context.Context, gameID string, fn func(service.Stores) error) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, gameID); err != nil {
		return fmt.Errorf("failed to lock game %s: %w", gameID, err)
	}

	stores := service.Stores{
		Games:        NewGameStore(tx),
		Participants: NewParticipantStore(tx),
		Eliminations: NewEliminationStore(tx),
	}

	if err := fn(stores); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
