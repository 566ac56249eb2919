package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returning the default on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// EndOfCalendarYear returns the last instant of the calendar year containing
// t, in UTC. Waiver acceptances expire at this boundary.
func EndOfCalendarYear(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), time.December, 31, 23, 59, 59, 0, time.UTC)
}
