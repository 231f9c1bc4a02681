package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/lockersys/internal/app/models"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
)

var base = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func student(i int, created time.Time) *models.Student {
	return &models.Student{
		ID:        fmt.Sprintf("s-%03d", i),
		Name:      fmt.Sprintf("Student %d", i),
		StudentID: fmt.Sprintf("STU%06d", i),
		Semester:  1,
		Status:    models.StudentActive,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestStudentListIsNewestFirstAndCoversAll(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository()

	for i := 0; i < 25; i++ {
		// every five share a timestamp to exercise the insertion-order tiebreak
		require.NoError(t, repo.Create(ctx, student(i, base.Add(time.Duration(i/5)*time.Hour))))
	}

	seen := map[string]bool{}
	var previous *models.Student
	for offset := uint64(0); offset < 25; offset += 10 {
		items, total, err := repo.List(ctx, offset, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 25, total)
		assert.LessOrEqual(t, len(items), 10)
		for _, s := range items {
			assert.False(t, seen[s.ID], "duplicate %s", s.ID)
			seen[s.ID] = true
			if previous != nil {
				assert.False(t, s.CreatedAt.After(previous.CreatedAt))
			}
			previous = s
		}
	}
	assert.Len(t, seen, 25)

	first, _, err := repo.List(ctx, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, "s-024", first[0].ID, "latest insert wins the tie")

	beyond, total, err := repo.List(ctx, 30, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond)
	assert.EqualValues(t, 25, total)
}

func TestStudentCodeIsUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository()
	require.NoError(t, repo.Create(ctx, student(1, base)))

	dup := student(2, base)
	dup.StudentID = "stu000001"
	assert.ErrorIs(t, repo.Create(ctx, dup), apperrors.ErrConflict)

	other := student(3, base)
	require.NoError(t, repo.Create(ctx, other))
	other.StudentID = "STU000001"
	assert.ErrorIs(t, repo.Update(ctx, other), apperrors.ErrConflict)
}

func TestDeleteTwiceIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewLockerRepository()
	require.NoError(t, repo.Create(ctx, &models.Locker{ID: "l-1", Number: "A001", CreatedAt: base}))

	require.NoError(t, repo.Delete(ctx, "l-1"))
	assert.ErrorIs(t, repo.Delete(ctx, "l-1"), apperrors.ErrResourceNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "nonexistent-id"), apperrors.ErrResourceNotFound)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewLockerRepository()
	require.NoError(t, repo.Create(ctx, &models.Locker{ID: "l-1", Number: "A001", CreatedAt: base}))

	got, err := repo.GetByID(ctx, "l-1")
	require.NoError(t, err)
	got.Number = "changed"

	again, err := repo.GetByID(ctx, "l-1")
	require.NoError(t, err)
	assert.Equal(t, "A001", again.Number)
}

func TestRentalAggregatesAndOverdue(t *testing.T) {
	ctx := context.Background()
	repo := NewRentalRepository()
	now := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)

	add := func(id string, status models.RentalStatus, end time.Time, price float64) {
		require.NoError(t, repo.Create(ctx, &models.Rental{
			ID: id, LockerID: "l-" + id, StudentID: "s-1", Status: status,
			StartDate: base, EndDate: end, MonthlyPrice: price, CreatedAt: base,
			Locker: &models.Locker{ID: "snapshot"},
		}))
	}
	add("1", models.RentalActive, now.AddDate(0, 0, -1), 300)
	add("2", models.RentalActive, now.AddDate(0, 1, 0), 400)
	add("3", models.RentalCompleted, now.AddDate(0, 0, -10), 500)

	stored, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, stored.Locker, "snapshots are not persisted")

	sum, err := repo.SumMonthlyPrice(ctx, models.OpenRentalStatuses...)
	require.NoError(t, err)
	assert.Equal(t, 700.0, sum)

	open, err := repo.HasOpenRentalsForStudent(ctx, "s-1")
	require.NoError(t, err)
	assert.True(t, open)
	open, err = repo.HasOpenRentalsForLocker(ctx, "l-3")
	require.NoError(t, err)
	assert.False(t, open)

	n, err := repo.MarkOverdue(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[models.RentalOverdue])
	assert.EqualValues(t, 1, counts[models.RentalActive])
	assert.EqualValues(t, 1, counts[models.RentalCompleted])
}
