package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, falling back to the given default
// when the string is empty or malformed. Config validation catches bad values
// at startup; this keeps callers working when a field is left unset.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil || duration <= 0 {
		if durationStr != "" {
			log.Warn().Str("duration", durationStr).Dur("default", defaultDuration).
				Msg("Unusable duration value, using default")
		}
		return defaultDuration
	}
	return duration
}
