package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/lockersys/internal/app/models"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
	"github.com/yigit/lockersys/internal/pkg/dberrors"
	"github.com/yigit/lockersys/internal/pkg/logger"
)

var lockerColumns = []string{"id", "number", "location", "size", "status", "monthly_price", "created_at", "updated_at"}

// LockerRepository handles locker database operations
type LockerRepository struct {
	base
}

// NewLockerRepository creates a new LockerRepository
func NewLockerRepository(db *pgxpool.Pool) *LockerRepository {
	return &LockerRepository{base: newBase(db)}
}

func scanLocker(row pgx.Row) (*models.Locker, error) {
	l := &models.Locker{}
	err := row.Scan(&l.ID, &l.Number, &l.Location, &l.Size, &l.Status, &l.MonthlyPrice, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

// Create inserts a new locker
func (r *LockerRepository) Create(ctx context.Context, l *models.Locker) error {
	sql, args, err := r.sb.Insert("lockers").
		Columns(lockerColumns...).
		Values(l.ID, l.Number, l.Location, l.Size, l.Status, l.MonthlyPrice, l.CreatedAt, l.UpdatedAt).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create locker SQL")
		return fmt.Errorf("failed to build create locker query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("locker id already exists")
		}
		logger.Error().Err(err).Msg("Error executing create locker query")
		return fmt.Errorf("error creating locker: %w", err)
	}
	return nil
}

// GetByID retrieves a locker by ID
func (r *LockerRepository) GetByID(ctx context.Context, id string) (*models.Locker, error) {
	sql, args, err := r.sb.Select(lockerColumns...).
		From("lockers").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get locker query: %w", err)
	}

	l, err := scanLocker(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLockerNotFound
		}
		logger.Error().Err(err).Str("lockerID", id).Msg("Error scanning locker row")
		return nil, fmt.Errorf("error getting locker by ID: %w", err)
	}
	return l, nil
}

// List returns one page of lockers, newest first, and the total count
func (r *LockerRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.Locker, int64, error) {
	total, err := r.count(ctx, "lockers", nil)
	if err != nil {
		return nil, 0, err
	}

	sql, args, err := r.sb.Select(lockerColumns...).
		From("lockers").
		OrderBy("created_at DESC", "seq DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list lockers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list lockers query")
		return nil, 0, fmt.Errorf("error querying lockers: %w", err)
	}
	defer rows.Close()

	lockers := []*models.Locker{}
	for rows.Next() {
		l, err := scanLocker(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning locker row: %w", err)
		}
		lockers = append(lockers, l)
	}
	return lockers, total, rows.Err()
}

// Update overwrites every mutable column of a locker
func (r *LockerRepository) Update(ctx context.Context, l *models.Locker) error {
	found, err := r.exec(ctx, r.sb.Update("lockers").
		SetMap(map[string]interface{}{
			"number":        l.Number,
			"location":      l.Location,
			"size":          l.Size,
			"status":        l.Status,
			"monthly_price": l.MonthlyPrice,
			"updated_at":    l.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": l.ID}), "update locker")
	if err != nil {
		logger.Error().Err(err).Str("lockerID", l.ID).Msg("Error executing update locker query")
		return fmt.Errorf("error updating locker: %w", err)
	}
	if !found {
		return apperrors.ErrLockerNotFound
	}
	return nil
}

// Delete removes a locker by ID
func (r *LockerRepository) Delete(ctx context.Context, id string) error {
	found, err := r.exec(ctx, r.sb.Delete("lockers").Where(squirrel.Eq{"id": id}), "delete locker")
	if err != nil {
		logger.Error().Err(err).Str("lockerID", id).Msg("Error executing delete locker query")
		return fmt.Errorf("error deleting locker: %w", err)
	}
	if !found {
		return apperrors.ErrLockerNotFound
	}
	return nil
}

// CountByStatus groups lockers by status
func (r *LockerRepository) CountByStatus(ctx context.Context) (map[models.LockerStatus]int64, error) {
	sql, args, err := r.sb.Select("status", "COUNT(*)").From("lockers").GroupBy("status").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build locker status query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting lockers by status")
		return nil, fmt.Errorf("error counting lockers by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.LockerStatus]int64)
	for rows.Next() {
		var status models.LockerStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("error scanning locker status row: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
