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

// StudentService defines the interface for student-related operations
type StudentService interface {
	List(ctx context.Context, page, pageSize int) (*dto.Page[*models.Student], error)
	Get(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	Update(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id string) error
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo repositories.StudentRepository
	rentalRepo  repositories.RentalRepository
	guard       repositories.ReferenceGuard
	stats       StatsInvalidator
	now         func() time.Time
}

// NewStudentService creates a new student service instance
func NewStudentService(repos *repositories.Repositories, stats StatsInvalidator) StudentService {
	return &studentServiceImpl{
		studentRepo: repos.Students,
		rentalRepo:  repos.Rentals,
		guard:       orUnguarded(repos.Guard),
		stats:       orNoop(stats),
		now:         utcNow,
	}
}

func (s *studentServiceImpl) List(ctx context.Context, page, pageSize int) (*dto.Page[*models.Student], error) {
	if err := helpers.ValidatePage(page, pageSize); err != nil {
		return nil, err
	}
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	items, total, err := s.studentRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, wrapRepoErr(err, "failed to list students")
	}
	return helpers.NewPage(items, total, page, pageSize), nil
}

func (s *studentServiceImpl) Get(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr(err, "failed to get student")
	}
	return student, nil
}

func (s *studentServiceImpl) Create(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	if req == nil {
		return nil, apperrors.NewValidationError("student payload is required")
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StudentActive
	}

	now := s.now()
	student := &models.Student{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		StudentID: strings.TrimSpace(req.StudentID),
		Course:    strings.TrimSpace(req.Course),
		Semester:  req.Semester,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, wrapRepoErr(err, "failed to create student")
	}
	s.stats.Invalidate(ctx)
	return student, nil
}

func (s *studentServiceImpl) Update(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*models.Student, error) {
	existing, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr(err, "failed to get student")
	}
	if req == nil {
		return existing, nil
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		updated.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		updated.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.StudentID != nil {
		updated.StudentID = strings.TrimSpace(*req.StudentID)
	}
	if req.Course != nil {
		updated.Course = strings.TrimSpace(*req.Course)
	}
	if req.Semester != nil {
		updated.Semester = *req.Semester
	}
	if req.Status != nil {
		updated.Status = *req.Status
	}

	if updated == *existing {
		return existing, nil
	}

	updated.UpdatedAt = s.now()
	if err := s.studentRepo.Update(ctx, &updated); err != nil {
		return nil, wrapRepoErr(err, "failed to update student")
	}
	s.stats.Invalidate(ctx)
	return &updated, nil
}

func (s *studentServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.studentRepo.GetByID(ctx, id); err != nil {
		return wrapRepoErr(err, "failed to get student")
	}

	err := s.guard.WithReferenceLock(ctx, func(ctx context.Context) error {
		open, err := s.rentalRepo.HasOpenRentalsForStudent(ctx, id)
		if err != nil {
			return wrapRepoErr(err, "failed to check student rentals")
		}
		if open {
			return apperrors.ErrStudentHasOpenRentals
		}
		return wrapRepoErr(s.studentRepo.Delete(ctx, id), "failed to delete student")
	})
	if err != nil {
		return err
	}
	s.stats.Invalidate(ctx)
	return nil
}
