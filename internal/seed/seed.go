package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/lockersys/internal/app/models"
	"github.com/yigit/lockersys/internal/app/repositories"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// CreateDefaultData fills an empty store with the demonstration records.
// A store that already holds students is left untouched.
func CreateDefaultData(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	existing, err := repos.Students.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing students: %w", err)
	}
	if existing > 0 {
		lgr.Debug().Int64("students", existing).Msg("Store already populated, skipping seed")
		return nil
	}

	lgr.Info().Msg("Creating default data (students, lockers, rentals)...")
	var finalErr error

	joao := &models.Student{
		ID:        uuid.NewString(),
		Name:      "João Silva",
		Email:     "joao.silva@university.edu",
		Phone:     "(11) 99999-1111",
		StudentID: "STU2024001",
		Course:    "Engenharia de Software",
		Semester:  6,
		Status:    models.StudentActive,
		CreatedAt: day(2024, time.January, 15),
		UpdatedAt: day(2024, time.January, 15),
	}
	maria := &models.Student{
		ID:        uuid.NewString(),
		Name:      "Maria Santos",
		Email:     "maria.santos@university.edu",
		Phone:     "(11) 99999-2222",
		StudentID: "STU2024002",
		Course:    "Ciência da Computação",
		Semester:  4,
		Status:    models.StudentActive,
		CreatedAt: day(2024, time.January, 16),
		UpdatedAt: day(2024, time.January, 16),
	}
	for _, s := range []*models.Student{joao, maria} {
		if err := repos.Students.Create(ctx, s); err != nil {
			lgr.Error().Err(err).Str("studentCode", s.StudentID).Msg("Error creating default student")
			finalErr = errors.Join(finalErr, err)
		}
	}

	a001 := &models.Locker{
		ID:           uuid.NewString(),
		Number:       "A001",
		Location:     "Bloco A - 1º Andar",
		Size:         models.LockerMedium,
		Status:       models.LockerRented,
		MonthlyPrice: 300,
		CreatedAt:    day(2024, time.January, 10),
		UpdatedAt:    day(2024, time.January, 15),
	}
	a002 := &models.Locker{
		ID:           uuid.NewString(),
		Number:       "A002",
		Location:     "Bloco A - 1º Andar",
		Size:         models.LockerLarge,
		Status:       models.LockerAvailable,
		MonthlyPrice: 400,
		CreatedAt:    day(2024, time.January, 10),
		UpdatedAt:    day(2024, time.January, 10),
	}
	for _, l := range []*models.Locker{a001, a002} {
		if err := repos.Lockers.Create(ctx, l); err != nil {
			lgr.Error().Err(err).Str("number", l.Number).Msg("Error creating default locker")
			finalErr = errors.Join(finalErr, err)
		}
	}

	rental := &models.Rental{
		ID:            uuid.NewString(),
		LockerID:      a001.ID,
		StudentID:     joao.ID,
		StartDate:     day(2024, time.January, 15),
		EndDate:       day(2024, time.July, 15),
		MonthlyPrice:  300,
		TotalAmount:   1800,
		Status:        models.RentalActive,
		PaymentStatus: models.PaymentPaid,
		Notes:         ptr("Rental for Spring semester"),
		CreatedAt:     day(2024, time.January, 15),
		UpdatedAt:     day(2024, time.January, 15),
	}
	if err := repos.Rentals.Create(ctx, rental); err != nil {
		lgr.Error().Err(err).Msg("Error creating default rental")
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr != nil {
		lgr.Warn().Err(finalErr).Msg("Some default data could not be created")
		return finalErr
	}
	lgr.Info().Msg("Default data created")
	return nil
}
