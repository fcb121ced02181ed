// Package logrusadapter implements ratelimiter.Logger on top of logrus,
// tagging every entry so GCRA output is filterable in structured output.
package logrusadapter

import "github.com/sirupsen/logrus"

// LogrusLogger forwards ratelimiter's Debugf/Errorf calls to a logrus
// entry carrying a fixed "component" field.
type LogrusLogger struct {
	entry *logrus.Entry
}

// New wraps l for use as a ratelimiter.Logger. A nil l falls back to
// logrus.New().
func New(l *logrus.Logger) *LogrusLogger {
	if l == nil {
		l = logrus.New()
	}
	return &LogrusLogger{
		entry: logrus.NewEntry(l).WithField("component", "gcra-limiter"),
	}
}

// Debugf logs a decision-path message — admitted/rejected counts, keys,
// remaining burst.
func (l *LogrusLogger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

// Errorf logs a limiter error — a request whose weight exceeds the
// quota's burst, or a keyed store refusing a new key.
func (l *LogrusLogger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}
