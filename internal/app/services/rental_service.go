package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/lockersys/internal/app/models"
	"github.com/yigit/lockersys/internal/app/models/dto"
	"github.com/yigit/lockersys/internal/app/repositories"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
	"github.com/yigit/lockersys/internal/pkg/helpers"
)

// RentalService defines the interface for rental-related operations.
// Rentals it returns carry locker and student snapshots when those still exist.
type RentalService interface {
	List(ctx context.Context, page, pageSize int) (*dto.Page[*models.Rental], error)
	Get(ctx context.Context, id string) (*models.Rental, error)
	Create(ctx context.Context, req *dto.CreateRentalRequest) (*models.Rental, error)
	Update(ctx context.Context, id string, req *dto.UpdateRentalRequest) (*models.Rental, error)
	Delete(ctx context.Context, id string) error
}

type rentalServiceImpl struct {
	rentalRepo  repositories.RentalRepository
	lockerRepo  repositories.LockerRepository
	studentRepo repositories.StudentRepository
	guard       repositories.ReferenceGuard
	stats       StatsInvalidator
	now         func() time.Time
}

// NewRentalService creates a new rental service instance
func NewRentalService(repos *repositories.Repositories, stats StatsInvalidator) RentalService {
	return &rentalServiceImpl{
		rentalRepo:  repos.Rentals,
		lockerRepo:  repos.Lockers,
		studentRepo: repos.Students,
		guard:       orUnguarded(repos.Guard),
		stats:       orNoop(stats),
		now:         utcNow,
	}
}

// snapshotter resolves joined records once per call
type snapshotter struct {
	s        *rentalServiceImpl
	lockers  map[string]*models.Locker
	students map[string]*models.Student
}

func (s *rentalServiceImpl) snapshots() *snapshotter {
	return &snapshotter{s: s, lockers: map[string]*models.Locker{}, students: map[string]*models.Student{}}
}

func (j *snapshotter) fill(ctx context.Context, rental *models.Rental) error {
	locker, ok := j.lockers[rental.LockerID]
	if !ok {
		l, err := j.s.lockerRepo.GetByID(ctx, rental.LockerID)
		if err != nil && !apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return wrapRepoErr(err, "failed to load rental locker")
		}
		locker = l
		j.lockers[rental.LockerID] = l
	}

	student, ok := j.students[rental.StudentID]
	if !ok {
		st, err := j.s.studentRepo.GetByID(ctx, rental.StudentID)
		if err != nil && !apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return wrapRepoErr(err, "failed to load rental student")
		}
		student = st
		j.students[rental.StudentID] = st
	}

	rental.Locker, rental.Student = locker, student
	return nil
}

func (s *rentalServiceImpl) List(ctx context.Context, page, pageSize int) (*dto.Page[*models.Rental], error) {
	if err := helpers.ValidatePage(page, pageSize); err != nil {
		return nil, err
	}
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	items, total, err := s.rentalRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, wrapRepoErr(err, "failed to list rentals")
	}

	join := s.snapshots()
	for _, rental := range items {
		if err := join.fill(ctx, rental); err != nil {
			return nil, err
		}
	}
	return helpers.NewPage(items, total, page, pageSize), nil
}

func (s *rentalServiceImpl) Get(ctx context.Context, id string) (*models.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr(err, "failed to get rental")
	}
	if err := s.snapshots().fill(ctx, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

// requireReferences checks that the locker and student exist and returns the locker
func (s *rentalServiceImpl) requireReferences(ctx context.Context, lockerID, studentID string) (*models.Locker, error) {
	locker, err := s.lockerRepo.GetByID(ctx, lockerID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrRentalLockerNotFound
		}
		return nil, wrapRepoErr(err, "failed to load locker")
	}
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrRentalStudentNotFound
		}
		return nil, wrapRepoErr(err, "failed to load student")
	}
	return locker, nil
}

func (s *rentalServiceImpl) Create(ctx context.Context, req *dto.CreateRentalRequest) (*models.Rental, error) {
	if req == nil {
		return nil, apperrors.NewValidationError("rental payload is required")
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, apperrors.ErrRentalDateRangeInvalid
	}

	var rental *models.Rental
	err := s.guard.WithReferenceLock(ctx, func(ctx context.Context) error {
		locker, err := s.requireReferences(ctx, req.LockerID, req.StudentID)
		if err != nil {
			return err
		}

		monthly := locker.MonthlyPrice
		if req.MonthlyPrice != nil {
			monthly = *req.MonthlyPrice
		}
		total := monthly * float64(helpers.StartedMonths(req.StartDate, req.EndDate))
		if req.TotalAmount != nil && *req.TotalAmount > 0 {
			total = *req.TotalAmount
		}

		status := req.Status
		if status == "" {
			status = models.RentalActive
		}
		payment := req.PaymentStatus
		if payment == "" {
			payment = models.PaymentPending
		}

		now := s.now()
		rental = &models.Rental{
			ID:            uuid.NewString(),
			LockerID:      req.LockerID,
			StudentID:     req.StudentID,
			StartDate:     req.StartDate.UTC(),
			EndDate:       req.EndDate.UTC(),
			MonthlyPrice:  monthly,
			TotalAmount:   total,
			Status:        status,
			PaymentStatus: payment,
			Notes:         helpers.NullIfBlank(req.Notes),
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		return wrapRepoErr(s.rentalRepo.Create(ctx, rental), "failed to create rental")
	})
	if err != nil {
		return nil, err
	}
	s.stats.Invalidate(ctx)

	if err := s.snapshots().fill(ctx, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalServiceImpl) Update(ctx context.Context, id string, req *dto.UpdateRentalRequest) (*models.Rental, error) {
	existing, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr(err, "failed to get rental")
	}
	if req != nil {
		if err := validateRequest(req); err != nil {
			return nil, err
		}
	} else {
		req = &dto.UpdateRentalRequest{}
	}

	updated := *existing
	if req.LockerID != nil {
		updated.LockerID = *req.LockerID
	}
	if req.StudentID != nil {
		updated.StudentID = *req.StudentID
	}
	if req.StartDate != nil {
		updated.StartDate = req.StartDate.UTC()
	}
	if req.EndDate != nil {
		updated.EndDate = req.EndDate.UTC()
	}
	if req.MonthlyPrice != nil {
		updated.MonthlyPrice = *req.MonthlyPrice
	}
	if req.TotalAmount != nil {
		updated.TotalAmount = *req.TotalAmount
	}
	if req.Status != nil {
		updated.Status = *req.Status
	}
	if req.PaymentStatus != nil {
		updated.PaymentStatus = *req.PaymentStatus
	}
	if req.Notes != nil {
		updated.Notes = helpers.NullIfBlank(req.Notes)
	}

	if sameRental(existing, &updated) {
		if err := s.snapshots().fill(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	if updated.EndDate.Before(updated.StartDate) {
		return nil, apperrors.ErrRentalDateRangeInvalid
	}

	write := func(ctx context.Context) error {
		updated.UpdatedAt = s.now()
		return wrapRepoErr(s.rentalRepo.Update(ctx, &updated), "failed to update rental")
	}

	// an open rental must point at records that still exist, including one reopened after a delete
	moved := updated.LockerID != existing.LockerID || updated.StudentID != existing.StudentID
	reopened := updated.Status.Open() && !existing.Status.Open()
	if moved || reopened {
		err = s.guard.WithReferenceLock(ctx, func(ctx context.Context) error {
			if _, err := s.requireReferences(ctx, updated.LockerID, updated.StudentID); err != nil {
				return err
			}
			return write(ctx)
		})
	} else {
		err = write(ctx)
	}
	if err != nil {
		return nil, err
	}
	s.stats.Invalidate(ctx)

	if err := s.snapshots().fill(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *rentalServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.rentalRepo.Delete(ctx, id); err != nil {
		return wrapRepoErr(err, "failed to delete rental")
	}
	s.stats.Invalidate(ctx)
	return nil
}

func sameRental(a, b *models.Rental) bool {
	return a.LockerID == b.LockerID &&
		a.StudentID == b.StudentID &&
		a.StartDate.Equal(b.StartDate) &&
		a.EndDate.Equal(b.EndDate) &&
		a.MonthlyPrice == b.MonthlyPrice &&
		a.TotalAmount == b.TotalAmount &&
		a.Status == b.Status &&
		a.PaymentStatus == b.PaymentStatus &&
		notesText(a.Notes) == notesText(b.Notes)
}

func notesText(n *string) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(*n)
}
