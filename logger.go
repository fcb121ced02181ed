package ratelimiter

// Logger is the minimal structured-logging surface this package needs, so
// that limiters can report their decisions and errors without forcing a
// specific logging library on every caller. It mirrors the shape the
// logging adapter submodules (adapters/log, adapters/logrus, adapters/zap,
// adapters/zerolog) each implement for their respective library.
type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

// noopLogger discards everything; it is the default when no WithLogger
// option is supplied.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Errorf(string, ...any) {}
