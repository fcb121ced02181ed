package ratelimiter

import (
	"github.com/jassus213/gcra-limiter/clock"
	"github.com/jassus213/gcra-limiter/store"
)

// config holds all configurable parameters shared by DirectLimiter and
// KeyedLimiter. Users interact with it only through functional options.
type config struct {
	clock  clock.Clock
	logger Logger
	store  store.KeyedStore // KeyedLimiter only; ignored by DirectLimiter
}

// Option is a function that applies a configuration setting to a limiter
// under construction. It's the core of the functional options pattern,
// shared between DirectLimiter and KeyedLimiter; the HTTP middleware
// adapters define their own Option types.
type Option func(*config)

// newConfig builds a config with defaults — a Monotonic clock, a no-op
// logger, a default-shard-count Sharded store — and applies opts over it.
func newConfig(opts ...Option) *config {
	cfg := &config{
		clock:  clock.NewMonotonic(),
		logger: noopLogger{},
		store:  store.NewSharded(0),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithClock returns an Option that sets the Clock a limiter reads arrival
// times from. The default is clock.NewMonotonic(); pass a clock.Fake in
// tests, a clock.Upkeep under heavy concurrent load, or a
// clock.HighResolution for its explicit Calibrate step (its readings cost
// the same as Monotonic's).
func WithClock(c clock.Clock) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.clock = c
		}
	}
}

// WithLogger returns an Option that sets the Logger a limiter reports its
// decisions (admitted and rejected requests, at Debugf) and errors (a
// weight over the burst, a store refusing a key, at Errorf) through.
// Construction does not log.
func WithLogger(l Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithStore returns an Option that sets the KeyedStore backing a
// KeyedLimiter. The default is store.NewSharded(0). Has no effect on
// DirectLimiter, which holds a single cell rather than a store.
func WithStore(s store.KeyedStore) Option {
	return func(cfg *config) {
		if s != nil {
			cfg.store = s
		}
	}
}

// calibrator is implemented by clocks that need a one-time setup step
// before their readings are meaningful (clock.HighResolution). Limiter
// constructors call it if present, so construction — not the first Check —
// is where a calibration failure surfaces.
type calibrator interface {
	Calibrate() error
}

func (cfg *config) calibrateClock() error {
	if c, ok := cfg.clock.(calibrator); ok {
		if err := c.Calibrate(); err != nil {
			return err
		}
	}
	return nil
}
