// Package gin adapts a ratelimiter.KeyedLimiter to the gin-gonic/gin
// middleware shape: gin.HandlerFunc.
package gin

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	ratelimiter "github.com/jassus213/gcra-limiter"
)

// KeyFunc extracts a unique client identifier from an incoming request.
type KeyFunc func(r *http.Request) (string, error)

// ErrorHandler defines how to respond to a client whose request was
// rejected.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Config holds the middleware's configurable parameters.
type Config struct {
	KeyFunc      KeyFunc
	ErrorHandler ErrorHandler
}

// Option applies a configuration setting to a Config.
type Option func(*Config)

// WithKeyFunc sets a custom function for client identification.
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

// RateLimiter creates a new Gin middleware handler backed by limiter.
//
// Example:
//
//	limiter, _ := ratelimiter.NewKeyed(quota, ratelimiter.StateInformationMiddleware{})
//	router := gin.Default()
//	router.Use(ginMiddleware.RateLimiter(limiter)) // this package, imported as ginMiddleware
func RateLimiter(limiter *ratelimiter.KeyedLimiter[ratelimiter.StateInfo], opts ...Option) gin.HandlerFunc {
	cfg := newConfig(opts...)

	return func(c *gin.Context) {
		key, err := cfg.KeyFunc(c.Request)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		info, err := limiter.CheckKey(key)

		var notYet *ratelimiter.NotYetError
		if err == nil || errors.As(err, &notYet) {
			c.Header("X-RateLimit-Remaining", strconv.FormatUint(uint64(info.Snapshot.RemainingBurst()), 10))
			c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(info.Snapshot.TimeToFull().Seconds()), 10))
		}

		if err != nil {
			cfg.ErrorHandler(c.Writer, c.Request, err)
			c.Abort()
			return
		}

		c.Next()
	}
}
