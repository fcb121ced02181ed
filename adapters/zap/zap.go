// Package zapadapter implements ratelimiter.Logger on top of zap, tagging
// every entry so GCRA output stays identifiable in structured JSON output.
package zapadapter

import "go.uber.org/zap"

// ZapLogger forwards ratelimiter's Debugf/Errorf calls to a
// zap.SugaredLogger carrying a fixed "component" field.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// New wraps l for use as a ratelimiter.Logger. A nil l uses zap.NewNop(),
// discarding all output.
//
// Example:
//
//	limiter, _ := ratelimiter.NewKeyed(quota, mw, ratelimiter.WithLogger(zapadapter.New(logger)))
func New(l *zap.Logger) *ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapLogger{sugar: l.Sugar().With("component", "gcra-limiter")}
}

// Debugf logs a decision-path message — admitted/rejected counts, keys,
// remaining burst.
func (z *ZapLogger) Debugf(format string, args ...interface{}) {
	z.sugar.Debugf(format, args...)
}

// Errorf logs a limiter error — a request whose weight exceeds the
// quota's burst, or a keyed store refusing a new key.
func (z *ZapLogger) Errorf(format string, args ...interface{}) {
	z.sugar.Errorf(format, args...)
}
