// Package zerologadapter implements ratelimiter.Logger on top of zerolog,
// tagging every event so GCRA output stays identifiable in structured
// output.
package zerologadapter

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ZerologLogger forwards ratelimiter's Debugf/Errorf calls to a zerolog
// logger carrying a fixed "component" field.
type ZerologLogger struct {
	logger zerolog.Logger
}

// New wraps l for use as a ratelimiter.Logger. A nil l falls back to
// zerolog's global logger.
func New(l *zerolog.Logger) *ZerologLogger {
	if l == nil {
		l = &log.Logger
	}
	return &ZerologLogger{
		logger: l.With().Str("component", "gcra-limiter").Logger(),
	}
}

// Debugf logs a decision-path message — admitted/rejected counts, keys,
// remaining burst.
func (z *ZerologLogger) Debugf(format string, args ...interface{}) {
	z.logger.Debug().Msgf(format, args...)
}

// Errorf logs a limiter error — a request whose weight exceeds the
// quota's burst, or a keyed store refusing a new key.
func (z *ZerologLogger) Errorf(format string, args ...interface{}) {
	z.logger.Error().Msgf(format, args...)
}
