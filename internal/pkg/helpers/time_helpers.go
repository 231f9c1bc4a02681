package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		// Global logger: this runs while the config is still being turned into dependencies.
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// StartedMonths counts calendar months touched by [start, end], at least one.
// 2024-01-15..2024-07-15 is six months; 2024-01-15..2024-07-16 is seven.
func StartedMonths(start, end time.Time) int {
	if end.Before(start) {
		return 1
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if start.AddDate(0, months, 0).Before(end) {
		months++
	}
	if months < 1 {
		months = 1
	}
	return months
}
