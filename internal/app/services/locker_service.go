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

// LockerService defines the interface for locker-related operations
type LockerService interface {
	List(ctx context.Context, page, pageSize int) (*dto.Page[*models.Locker], error)
	Get(ctx context.Context, id string) (*models.Locker, error)
	Create(ctx context.Context, req *dto.CreateLockerRequest) (*models.Locker, error)
	Update(ctx context.Context, id string, req *dto.UpdateLockerRequest) (*models.Locker, error)
	Delete(ctx context.Context, id string) error
}

type lockerServiceImpl struct {
	lockerRepo repositories.LockerRepository
	rentalRepo repositories.RentalRepository
	guard      repositories.ReferenceGuard
	stats      StatsInvalidator
	now        func() time.Time
}

// NewLockerService creates a new locker service instance
func NewLockerService(repos *repositories.Repositories, stats StatsInvalidator) LockerService {
	return &lockerServiceImpl{
		lockerRepo: repos.Lockers,
		rentalRepo: repos.Rentals,
		guard:      orUnguarded(repos.Guard),
		stats:      orNoop(stats),
		now:        utcNow,
	}
}

func (s *lockerServiceImpl) List(ctx context.Context, page, pageSize int) (*dto.Page[*models.Locker], error) {
	if err := helpers.ValidatePage(page, pageSize); err != nil {
		return nil, err
	}
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	items, total, err := s.lockerRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, wrapRepoErr(err, "failed to list lockers")
	}
	return helpers.NewPage(items, total, page, pageSize), nil
}

func (s *lockerServiceImpl) Get(ctx context.Context, id string) (*models.Locker, error) {
	locker, err := s.lockerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr(err, "failed to get locker")
	}
	return locker, nil
}

func (s *lockerServiceImpl) Create(ctx context.Context, req *dto.CreateLockerRequest) (*models.Locker, error) {
	if req == nil {
		return nil, apperrors.NewValidationError("locker payload is required")
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.LockerAvailable
	}

	now := s.now()
	locker := &models.Locker{
		ID:           uuid.NewString(),
		Number:       strings.TrimSpace(req.Number),
		Location:     strings.TrimSpace(req.Location),
		Size:         req.Size,
		Status:       status,
		MonthlyPrice: req.MonthlyPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.lockerRepo.Create(ctx, locker); err != nil {
		return nil, wrapRepoErr(err, "failed to create locker")
	}
	s.stats.Invalidate(ctx)
	return locker, nil
}

func (s *lockerServiceImpl) Update(ctx context.Context, id string, req *dto.UpdateLockerRequest) (*models.Locker, error) {
	existing, err := s.lockerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr(err, "failed to get locker")
	}
	if req == nil {
		return existing, nil
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	updated := *existing
	if req.Number != nil {
		updated.Number = strings.TrimSpace(*req.Number)
	}
	if req.Location != nil {
		updated.Location = strings.TrimSpace(*req.Location)
	}
	if req.Size != nil {
		updated.Size = *req.Size
	}
	if req.Status != nil {
		updated.Status = *req.Status
	}
	if req.MonthlyPrice != nil {
		updated.MonthlyPrice = *req.MonthlyPrice
	}

	if updated == *existing {
		return existing, nil
	}

	updated.UpdatedAt = s.now()
	if err := s.lockerRepo.Update(ctx, &updated); err != nil {
		return nil, wrapRepoErr(err, "failed to update locker")
	}
	s.stats.Invalidate(ctx)
	return &updated, nil
}

func (s *lockerServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.lockerRepo.GetByID(ctx, id); err != nil {
		return wrapRepoErr(err, "failed to get locker")
	}

	err := s.guard.WithReferenceLock(ctx, func(ctx context.Context) error {
		open, err := s.rentalRepo.HasOpenRentalsForLocker(ctx, id)
		if err != nil {
			return wrapRepoErr(err, "failed to check locker rentals")
		}
		if open {
			return apperrors.ErrLockerHasOpenRentals
		}
		return wrapRepoErr(s.lockerRepo.Delete(ctx, id), "failed to delete locker")
	})
	if err != nil {
		return err
	}
	s.stats.Invalidate(ctx)
	return nil
}
