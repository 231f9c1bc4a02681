package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/yigit/lockersys/internal/app/models"
	"github.com/yigit/lockersys/internal/app/repositories"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
)

// NewRepositories returns an empty in-memory store for all entities
func NewRepositories() *repositories.Repositories {
	return &repositories.Repositories{
		Students: NewStudentRepository(),
		Lockers:  NewLockerRepository(),
		Rentals:  NewRentalRepository(),
		Guard:    &ReferenceGuard{},
	}
}

// ReferenceGuard is a process-wide lock around reference checks and the writes they allow
type ReferenceGuard struct {
	mu sync.Mutex
}

func (g *ReferenceGuard) WithReferenceLock(ctx context.Context, fn func(ctx context.Context) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(ctx)
}

func ptr[T any](v T) *T { return &v }

func toPtrs[T any](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

// StudentRepository is the in-memory student store
type StudentRepository struct {
	t *table[models.Student]
}

// NewStudentRepository creates an empty student store. Student codes are unique.
func NewStudentRepository() *StudentRepository {
	t := newTable(
		func(s *models.Student) string { return s.ID },
		func(s *models.Student) time.Time { return s.CreatedAt },
	)
	t.unique = func(a, b *models.Student) bool { return strings.EqualFold(a.StudentID, b.StudentID) }
	return &StudentRepository{t: t}
}

func (r *StudentRepository) Create(_ context.Context, student *models.Student) error {
	err := r.t.insert(*student)
	switch {
	case errors.Is(err, errUnique):
		return apperrors.ErrStudentCodeExists
	case err != nil:
		return apperrors.NewConflictError("student id already exists")
	}
	return nil
}

func (r *StudentRepository) GetByID(_ context.Context, id string) (*models.Student, error) {
	s, ok := r.t.get(id)
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return &s, nil
}

func (r *StudentRepository) List(_ context.Context, offset uint64, limit int) ([]*models.Student, int64, error) {
	items, total := r.t.page(offset, limit)
	return toPtrs(items), total, nil
}

func (r *StudentRepository) Update(_ context.Context, student *models.Student) error {
	found, err := r.t.replace(*student)
	if !found {
		return apperrors.ErrStudentNotFound
	}
	if err != nil {
		return apperrors.ErrStudentCodeExists
	}
	return nil
}

func (r *StudentRepository) Delete(_ context.Context, id string) error {
	if !r.t.remove(id) {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

func (r *StudentRepository) Count(_ context.Context) (int64, error) {
	return r.t.count(nil), nil
}

// LockerRepository is the in-memory locker store
type LockerRepository struct {
	t *table[models.Locker]
}

// NewLockerRepository creates an empty locker store
func NewLockerRepository() *LockerRepository {
	return &LockerRepository{t: newTable(
		func(l *models.Locker) string { return l.ID },
		func(l *models.Locker) time.Time { return l.CreatedAt },
	)}
}

func (r *LockerRepository) Create(_ context.Context, locker *models.Locker) error {
	if err := r.t.insert(*locker); err != nil {
		return apperrors.NewConflictError("locker id already exists")
	}
	return nil
}

func (r *LockerRepository) GetByID(_ context.Context, id string) (*models.Locker, error) {
	l, ok := r.t.get(id)
	if !ok {
		return nil, apperrors.ErrLockerNotFound
	}
	return &l, nil
}

func (r *LockerRepository) List(_ context.Context, offset uint64, limit int) ([]*models.Locker, int64, error) {
	items, total := r.t.page(offset, limit)
	return toPtrs(items), total, nil
}

func (r *LockerRepository) Update(_ context.Context, locker *models.Locker) error {
	if found, _ := r.t.replace(*locker); !found {
		return apperrors.ErrLockerNotFound
	}
	return nil
}

func (r *LockerRepository) Delete(_ context.Context, id string) error {
	if !r.t.remove(id) {
		return apperrors.ErrLockerNotFound
	}
	return nil
}

func (r *LockerRepository) CountByStatus(_ context.Context) (map[models.LockerStatus]int64, error) {
	counts := make(map[models.LockerStatus]int64)
	r.t.each(func(l *models.Locker) { counts[l.Status]++ })
	return counts, nil
}

// RentalRepository is the in-memory rental store
type RentalRepository struct {
	t *table[models.Rental]
}

// NewRentalRepository creates an empty rental store
func NewRentalRepository() *RentalRepository {
	return &RentalRepository{t: newTable(
		func(r *models.Rental) string { return r.ID },
		func(r *models.Rental) time.Time { return r.CreatedAt },
	)}
}

// stored strips joined snapshots and detaches the notes pointer from the caller
func stored(rental *models.Rental) models.Rental {
	v := *rental
	v.Locker, v.Student = nil, nil
	if v.Notes != nil {
		v.Notes = ptr(*v.Notes)
	}
	return v
}

func (r *RentalRepository) Create(_ context.Context, rental *models.Rental) error {
	if err := r.t.insert(stored(rental)); err != nil {
		return apperrors.NewConflictError("rental id already exists")
	}
	return nil
}

func (r *RentalRepository) GetByID(_ context.Context, id string) (*models.Rental, error) {
	v, ok := r.t.get(id)
	if !ok {
		return nil, apperrors.ErrRentalNotFound
	}
	return &v, nil
}

func (r *RentalRepository) List(_ context.Context, offset uint64, limit int) ([]*models.Rental, int64, error) {
	items, total := r.t.page(offset, limit)
	return toPtrs(items), total, nil
}

func (r *RentalRepository) Update(_ context.Context, rental *models.Rental) error {
	if found, _ := r.t.replace(stored(rental)); !found {
		return apperrors.ErrRentalNotFound
	}
	return nil
}

func (r *RentalRepository) Delete(_ context.Context, id string) error {
	if !r.t.remove(id) {
		return apperrors.ErrRentalNotFound
	}
	return nil
}

func (r *RentalRepository) CountByStatus(_ context.Context) (map[models.RentalStatus]int64, error) {
	counts := make(map[models.RentalStatus]int64)
	r.t.each(func(v *models.Rental) { counts[v.Status]++ })
	return counts, nil
}

func (r *RentalRepository) SumMonthlyPrice(_ context.Context, statuses ...models.RentalStatus) (float64, error) {
	var sum float64
	r.t.each(func(v *models.Rental) {
		for _, s := range statuses {
			if v.Status == s {
				sum += v.MonthlyPrice
				return
			}
		}
	})
	return sum, nil
}

func (r *RentalRepository) HasOpenRentalsForLocker(_ context.Context, lockerID string) (bool, error) {
	return r.t.count(func(v *models.Rental) bool { return v.LockerID == lockerID && v.Status.Open() }) > 0, nil
}

func (r *RentalRepository) HasOpenRentalsForStudent(_ context.Context, studentID string) (bool, error) {
	return r.t.count(func(v *models.Rental) bool { return v.StudentID == studentID && v.Status.Open() }) > 0, nil
}

func (r *RentalRepository) MarkOverdue(_ context.Context, now time.Time) (int64, error) {
	return r.t.updateWhere(
		func(v *models.Rental) bool { return v.IsPastDue(now) },
		func(v *models.Rental) {
			v.Status = models.RentalOverdue
			v.UpdatedAt = now
		},
	), nil
}
