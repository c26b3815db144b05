package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// AnnouncementTimeLayout renders timestamps as "DD/MM/YYYY h:mm AM".
const AnnouncementTimeLayout = "02/01/2006 3:04 PM"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// FormatAnnouncementTime formats t in the announcement display layout.
func FormatAnnouncementTime(t time.Time) string {
	return t.Format(AnnouncementTimeLayout)
}
