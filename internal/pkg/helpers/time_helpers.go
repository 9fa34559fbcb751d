package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns default duration on error.
// Config validation runs first, so a fallback here means an empty value.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// DeadlineLayouts are the date formats accepted for project deadlines
var DeadlineLayouts = []string{"2006-01-02", "02/01/2006", "01-02-2006"}

// ParseDeadline parses s with the first matching layout in DeadlineLayouts
func ParseDeadline(s string) (time.Time, bool) {
	for _, layout := range DeadlineLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
