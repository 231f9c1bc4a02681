// Package jobs holds the background maintenance jobs and their scheduler.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/lockersys/internal/app/repositories"
	"github.com/yigit/lockersys/internal/app/services"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
)

// OverdueJob flips active rentals whose end date has passed to overdue
type OverdueJob struct {
	rentals repositories.RentalRepository
	stats   services.StatsInvalidator
	logger  zerolog.Logger
	now     func() time.Time
}

// NewOverdueJob creates the sweep job
func NewOverdueJob(rentals repositories.RentalRepository, stats services.StatsInvalidator, logger zerolog.Logger) *OverdueJob {
	return &OverdueJob{rentals: rentals, stats: stats, logger: logger, now: time.Now}
}

// Run performs one sweep and returns how many rentals changed
func (j *OverdueJob) Run(ctx context.Context) (int64, error) {
	n, err := j.rentals.MarkOverdue(ctx, j.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("%w: overdue sweep: %w", apperrors.ErrServiceFailure, err)
	}
	if n > 0 {
		if j.stats != nil {
			j.stats.Invalidate(ctx)
		}
		j.logger.Info().Int64("rentals", n).Msg("Marked rentals as overdue")
	}
	return n, nil
}
