package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/lockersys/internal/pkg/logger"
)

// referenceLockKey identifies the session advisory lock shared by every API instance
const referenceLockKey int64 = 0x6c6f636b657273

// ReferenceGuard holds a PostgreSQL advisory lock on a dedicated connection
// while fn runs. fn itself uses other pool connections, so the pool needs
// at least two.
type ReferenceGuard struct {
	db *pgxpool.Pool
}

// NewReferenceGuard creates a guard on the pool
func NewReferenceGuard(db *pgxpool.Pool) *ReferenceGuard {
	return &ReferenceGuard{db: db}
}

func (g *ReferenceGuard) WithReferenceLock(ctx context.Context, fn func(ctx context.Context) error) error {
	conn, err := g.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection for reference lock: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", referenceLockKey); err != nil {
		return fmt.Errorf("failed to take reference lock: %w", err)
	}
	defer func() {
		if _, err := conn.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", referenceLockKey); err != nil {
			logger.Error().Err(err).Msg("Error releasing reference lock, dropping connection")
			// a closed connection is destroyed on release, taking the lock with it
			_ = conn.Conn().Close(context.Background())
		}
	}()

	return fn(ctx)
}
