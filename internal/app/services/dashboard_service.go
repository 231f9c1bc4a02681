package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/lockersys/internal/app/models"
	"github.com/yigit/lockersys/internal/app/repositories"
	"github.com/yigit/lockersys/internal/pkg/cache"
)

const statsCacheKey = "dashboard:stats"

// DashboardService computes the aggregate figures shown on the dashboard
type DashboardService interface {
	GetStats(ctx context.Context) (*models.DashboardStats, error)
	StatsInvalidator
}

type dashboardServiceImpl struct {
	repos  *repositories.Repositories
	cache  cache.Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewDashboardService creates the stats service. A nil cache or a zero ttl
// computes the stats on every call.
func NewDashboardService(repos *repositories.Repositories, c cache.Cache, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardServiceImpl{repos: repos, cache: c, ttl: ttl, logger: logger}
}

func (s *dashboardServiceImpl) cached() bool { return s.cache != nil && s.ttl > 0 }

func (s *dashboardServiceImpl) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	if s.cached() {
		var stats models.DashboardStats
		hit, err := s.cache.Get(ctx, statsCacheKey, &stats)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Stats cache read failed, computing directly")
		} else if hit {
			return &stats, nil
		}
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cached() {
		if err := s.cache.Set(ctx, statsCacheKey, stats, s.ttl); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to cache dashboard stats")
		}
	}
	return stats, nil
}

func (s *dashboardServiceImpl) compute(ctx context.Context) (*models.DashboardStats, error) {
	lockers, err := s.repos.Lockers.CountByStatus(ctx)
	if err != nil {
		return nil, wrapRepoErr(err, "failed to count lockers")
	}
	rentals, err := s.repos.Rentals.CountByStatus(ctx)
	if err != nil {
		return nil, wrapRepoErr(err, "failed to count rentals")
	}
	students, err := s.repos.Students.Count(ctx)
	if err != nil {
		return nil, wrapRepoErr(err, "failed to count students")
	}
	revenue, err := s.repos.Rentals.SumMonthlyPrice(ctx, models.OpenRentalStatuses...)
	if err != nil {
		return nil, wrapRepoErr(err, "failed to sum revenue")
	}

	stats := &models.DashboardStats{
		AvailableLockers:   lockers[models.LockerAvailable],
		RentedLockers:      lockers[models.LockerRented],
		MaintenanceLockers: lockers[models.LockerMaintenance],
		OverdueRentals:     rentals[models.RentalOverdue],
		ActiveRentals:      rentals[models.RentalActive],
		MonthlyRevenue:     revenue,
		TotalStudents:      students,
	}
	for _, n := range lockers {
		stats.TotalLockers += n
	}
	return stats, nil
}

// Invalidate drops the cached snapshot so the next read recomputes it
func (s *dashboardServiceImpl) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to invalidate dashboard stats cache")
	}
}
