// Package nethttp adapts a ratelimiter.KeyedLimiter to the standard
// net/http middleware shape: func(http.Handler) http.Handler.
package nethttp

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	ratelimiter "github.com/jassus213/gcra-limiter"
)

// KeyFunc extracts a unique client identifier from an incoming request.
// The returned string is used as the key passed to KeyedLimiter.CheckKey.
type KeyFunc func(r *http.Request) (string, error)

// ErrorHandler defines how to respond to a client whose request was
// rejected, giving the caller full control over status code, headers, and
// body.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Config holds the middleware's configurable parameters. Users interact
// with it only via functional Options.
type Config struct {
	KeyFunc      KeyFunc
	ErrorHandler ErrorHandler
}

// Option applies a configuration setting to a Config.
type Option func(*Config)

// WithKeyFunc sets a custom function for client identification — rate
// limit by API key, user ID, or anything else extractable from the
// request, instead of the default remote address.
func WithKeyFunc(f KeyFunc) Option {
	return func(c *Config) {
		if f != nil {
			c.KeyFunc = f
		}
	}
}

// WithErrorHandler sets a custom handler for rejected requests.
func WithErrorHandler(f ErrorHandler) Option {
	return func(c *Config) {
		if f != nil {
			c.ErrorHandler = f
		}
	}
}

func newConfig(opts ...Option) *Config {
	cfg := &Config{
		KeyFunc: func(r *http.Request) (string, error) {
			return r.RemoteAddr, nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			var notYet *ratelimiter.NotYetError
			retryAfter := 1
			if errors.As(err, &notYet) {
				retryAfter = int(math.Ceil(notYet.RetryAfter().Seconds()))
				if retryAfter <= 0 {
					retryAfter = 1
				}
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Middleware wraps an http.Handler, checking every request against limiter
// keyed by Config.KeyFunc and setting X-RateLimit-* / Retry-After headers
// from the StateInfo every check returns.
//
// Example:
//
//	limiter, _ := ratelimiter.NewKeyed(quota, ratelimiter.StateInformationMiddleware{})
//	mux := http.NewServeMux()
//	mux.HandleFunc("/", myHandler)
//	http.ListenAndServe(":8080", nethttp.Middleware(limiter)(mux))
func Middleware(limiter *ratelimiter.KeyedLimiter[ratelimiter.StateInfo], opts ...Option) func(http.Handler) http.Handler {
	cfg := newConfig(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, err := cfg.KeyFunc(r)
			if err != nil {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			info, err := limiter.CheckKey(key)

			var notYet *ratelimiter.NotYetError
			if err == nil || errors.As(err, &notYet) {
				w.Header().Set("X-RateLimit-Remaining", strconv.FormatUint(uint64(info.Snapshot.RemainingBurst()), 10))
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(int64(info.Snapshot.TimeToFull().Seconds()), 10))
			}

			if err != nil {
				cfg.ErrorHandler(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
