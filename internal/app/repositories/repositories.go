package repositories

import (
	"context"
	"time"

	"github.com/yigit/lockersys/internal/app/models"
)

// StudentRepository persists students. List returns newest first.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	List(ctx context.Context, offset uint64, limit int) ([]*models.Student, int64, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// LockerRepository persists lockers. List returns newest first.
type LockerRepository interface {
	Create(ctx context.Context, locker *models.Locker) error
	GetByID(ctx context.Context, id string) (*models.Locker, error)
	List(ctx context.Context, offset uint64, limit int) ([]*models.Locker, int64, error)
	Update(ctx context.Context, locker *models.Locker) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[models.LockerStatus]int64, error)
}

// RentalRepository persists rentals. List returns newest first.
type RentalRepository interface {
	Create(ctx context.Context, rental *models.Rental) error
	GetByID(ctx context.Context, id string) (*models.Rental, error)
	List(ctx context.Context, offset uint64, limit int) ([]*models.Rental, int64, error)
	Update(ctx context.Context, rental *models.Rental) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[models.RentalStatus]int64, error)
	// SumMonthlyPrice totals monthlyPrice over rentals in the given statuses
	SumMonthlyPrice(ctx context.Context, statuses ...models.RentalStatus) (float64, error)
	// HasOpenRentals reports whether an active or overdue rental references the locker or student
	HasOpenRentalsForLocker(ctx context.Context, lockerID string) (bool, error)
	HasOpenRentalsForStudent(ctx context.Context, studentID string) (bool, error)
	// MarkOverdue flips active rentals whose end date is before now to overdue
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

// ReferenceGuard serialises the writes that decide whether an open rental may
// point at a locker or student: opening or moving a rental, and deleting either side.
type ReferenceGuard interface {
	WithReferenceLock(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repositories holds all the repository instances
type Repositories struct {
	Students StudentRepository
	Lockers  LockerRepository
	Rentals  RentalRepository
	Guard    ReferenceGuard
}
