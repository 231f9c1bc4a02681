package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/lockersys/internal/app/models"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
	"github.com/yigit/lockersys/internal/pkg/dberrors"
	"github.com/yigit/lockersys/internal/pkg/helpers"
	"github.com/yigit/lockersys/internal/pkg/logger"
)

var rentalColumns = []string{
	"id", "locker_id", "student_id", "start_date", "end_date", "monthly_price",
	"total_amount", "status", "payment_status", "notes", "created_at", "updated_at",
}

// RentalRepository handles rental database operations
type RentalRepository struct {
	base
}

// NewRentalRepository creates a new RentalRepository
func NewRentalRepository(db *pgxpool.Pool) *RentalRepository {
	return &RentalRepository{base: newBase(db)}
}

func scanRental(row pgx.Row) (*models.Rental, error) {
	v := &models.Rental{}
	err := row.Scan(&v.ID, &v.LockerID, &v.StudentID, &v.StartDate, &v.EndDate, &v.MonthlyPrice,
		&v.TotalAmount, &v.Status, &v.PaymentStatus, &v.Notes, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

// Create inserts a new rental
func (r *RentalRepository) Create(ctx context.Context, v *models.Rental) error {
	sql, args, err := r.sb.Insert("rentals").
		Columns(rentalColumns...).
		Values(v.ID, v.LockerID, v.StudentID, v.StartDate, v.EndDate, v.MonthlyPrice,
			v.TotalAmount, v.Status, v.PaymentStatus, helpers.NullIfBlank(v.Notes), v.CreatedAt, v.UpdatedAt).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create rental SQL")
		return fmt.Errorf("failed to build create rental query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("rental id already exists")
		}
		logger.Error().Err(err).Msg("Error executing create rental query")
		return fmt.Errorf("error creating rental: %w", err)
	}
	return nil
}

// GetByID retrieves a rental by ID without joined snapshots
func (r *RentalRepository) GetByID(ctx context.Context, id string) (*models.Rental, error) {
	sql, args, err := r.sb.Select(rentalColumns...).
		From("rentals").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get rental query: %w", err)
	}

	v, err := scanRental(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRentalNotFound
		}
		logger.Error().Err(err).Str("rentalID", id).Msg("Error scanning rental row")
		return nil, fmt.Errorf("error getting rental by ID: %w", err)
	}
	return v, nil
}

// List returns one page of rentals, newest first, and the total count
func (r *RentalRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.Rental, int64, error) {
	total, err := r.count(ctx, "rentals", nil)
	if err != nil {
		return nil, 0, err
	}

	sql, args, err := r.sb.Select(rentalColumns...).
		From("rentals").
		OrderBy("created_at DESC", "seq DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list rentals query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list rentals query")
		return nil, 0, fmt.Errorf("error querying rentals: %w", err)
	}
	defer rows.Close()

	rentals := []*models.Rental{}
	for rows.Next() {
		v, err := scanRental(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning rental row: %w", err)
		}
		rentals = append(rentals, v)
	}
	return rentals, total, rows.Err()
}

// Update overwrites every mutable column of a rental
func (r *RentalRepository) Update(ctx context.Context, v *models.Rental) error {
	found, err := r.exec(ctx, r.sb.Update("rentals").
		SetMap(map[string]interface{}{
			"locker_id":      v.LockerID,
			"student_id":     v.StudentID,
			"start_date":     v.StartDate,
			"end_date":       v.EndDate,
			"monthly_price":  v.MonthlyPrice,
			"total_amount":   v.TotalAmount,
			"status":         v.Status,
			"payment_status": v.PaymentStatus,
			"notes":          helpers.NullIfBlank(v.Notes),
			"updated_at":     v.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": v.ID}), "update rental")
	if err != nil {
		logger.Error().Err(err).Str("rentalID", v.ID).Msg("Error executing update rental query")
		return fmt.Errorf("error updating rental: %w", err)
	}
	if !found {
		return apperrors.ErrRentalNotFound
	}
	return nil
}

// Delete removes a rental by ID
func (r *RentalRepository) Delete(ctx context.Context, id string) error {
	found, err := r.exec(ctx, r.sb.Delete("rentals").Where(squirrel.Eq{"id": id}), "delete rental")
	if err != nil {
		logger.Error().Err(err).Str("rentalID", id).Msg("Error executing delete rental query")
		return fmt.Errorf("error deleting rental: %w", err)
	}
	if !found {
		return apperrors.ErrRentalNotFound
	}
	return nil
}

// CountByStatus groups rentals by status
func (r *RentalRepository) CountByStatus(ctx context.Context) (map[models.RentalStatus]int64, error) {
	sql, args, err := r.sb.Select("status", "COUNT(*)").From("rentals").GroupBy("status").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build rental status query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting rentals by status")
		return nil, fmt.Errorf("error counting rentals by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.RentalStatus]int64)
	for rows.Next() {
		var status models.RentalStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("error scanning rental status row: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// SumMonthlyPrice totals monthly_price over rentals in the given statuses
func (r *RentalRepository) SumMonthlyPrice(ctx context.Context, statuses ...models.RentalStatus) (float64, error) {
	sql, args, err := r.sb.Select("COALESCE(SUM(monthly_price), 0)::float8").
		From("rentals").
		Where(squirrel.Eq{"status": statusStrings(statuses)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build revenue query: %w", err)
	}

	var sum float64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&sum); err != nil {
		logger.Error().Err(err).Msg("Error summing rental prices")
		return 0, fmt.Errorf("error summing rental prices: %w", err)
	}
	return sum, nil
}

// HasOpenRentalsForLocker reports whether an active or overdue rental references the locker
func (r *RentalRepository) HasOpenRentalsForLocker(ctx context.Context, lockerID string) (bool, error) {
	n, err := r.count(ctx, "rentals", squirrel.And{
		squirrel.Eq{"locker_id": lockerID},
		squirrel.Eq{"status": statusStrings(models.OpenRentalStatuses)},
	})
	return n > 0, err
}

// HasOpenRentalsForStudent reports whether an active or overdue rental references the student
func (r *RentalRepository) HasOpenRentalsForStudent(ctx context.Context, studentID string) (bool, error) {
	n, err := r.count(ctx, "rentals", squirrel.And{
		squirrel.Eq{"student_id": studentID},
		squirrel.Eq{"status": statusStrings(models.OpenRentalStatuses)},
	})
	return n > 0, err
}

// MarkOverdue flips active rentals past their end date to overdue
func (r *RentalRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	sql, args, err := r.sb.Update("rentals").
		Set("status", models.RentalOverdue).
		Set("updated_at", now).
		Where(squirrel.Eq{"status": models.RentalActive}).
		Where(squirrel.Lt{"end_date": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build overdue query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error marking overdue rentals")
		return 0, fmt.Errorf("error marking overdue rentals: %w", err)
	}
	return tag.RowsAffected(), nil
}

// statusStrings converts to []string so squirrel expands an IN list
func statusStrings(statuses []models.RentalStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
