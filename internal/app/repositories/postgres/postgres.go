// Package postgres implements the repositories on PostgreSQL through pgx and squirrel.
package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/lockersys/internal/app/repositories"
	"github.com/yigit/lockersys/internal/pkg/logger"
)

// NewRepositories creates all repositories on a shared pool
func NewRepositories(db *pgxpool.Pool) *repositories.Repositories {
	return &repositories.Repositories{
		Students: NewStudentRepository(db),
		Lockers:  NewLockerRepository(db),
		Rentals:  NewRentalRepository(db),
		Guard:    NewReferenceGuard(db),
	}
}

type base struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func newBase(db *pgxpool.Pool) base {
	return base{db: db, sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
}

// count runs SELECT COUNT(*) FROM table
func (b base) count(ctx context.Context, table string, where squirrel.Sqlizer) (int64, error) {
	q := b.sb.Select("COUNT(*)").From(table)
	if where != nil {
		q = q.Where(where)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := b.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error counting rows")
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}
	return total, nil
}

// exec runs a statement and reports whether any row was affected
func (b base) exec(ctx context.Context, q squirrel.Sqlizer, what string) (bool, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msgf("Error building %s SQL", what)
		return false, fmt.Errorf("failed to build %s query: %w", what, err)
	}
	tag, err := b.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
