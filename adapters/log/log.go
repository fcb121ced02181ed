// Package stdlogadapter implements ratelimiter.Logger on top of the
// standard library's log.Logger, for callers who don't pull in a
// structured logging library just to watch GCRA decisions.
package stdlogadapter

import "log"

// StdLogger forwards ratelimiter's Debugf/Errorf calls to an underlying
// *log.Logger, prefixing every line so GCRA output is easy to grep out of
// a mixed application log.
type StdLogger struct {
	logger *log.Logger
}

// New wraps l for use as a ratelimiter.Logger. A nil l falls back to
// log.Default().
func New(l *log.Logger) *StdLogger {
	if l == nil {
		l = log.Default()
	}
	return &StdLogger{logger: l}
}

// Debugf logs a decision-path message — admitted/rejected counts, keys,
// remaining burst — at the level a caller would normally only enable
// while diagnosing throttling.
func (s *StdLogger) Debugf(format string, args ...interface{}) {
	s.logger.Printf("gcra-limiter: DEBUG: "+format, args...)
}

// Errorf logs a limiter error — a request whose weight exceeds the
// quota's burst, a keyed store refusing to allocate a new cell.
func (s *StdLogger) Errorf(format string, args ...interface{}) {
	s.logger.Printf("gcra-limiter: ERROR: "+format, args...)
}
