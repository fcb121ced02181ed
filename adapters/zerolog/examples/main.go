package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	ratelimiter "github.com/jassus213/gcra-limiter"
	zerologadapter "github.com/jassus213/gcra-limiter/adapters/zerolog"
	ginMiddleware "github.com/jassus213/gcra-limiter/middleware/gin"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zeroLogger := zerologadapter.New(&log.Logger)

	quota, err := ratelimiter.PerSecond(5)
	if err != nil {
		log.Fatal().Err(err).Msg("bad quota")
	}

	limiter, err := ratelimiter.NewKeyed(quota, ratelimiter.StateInformationMiddleware{},
		ratelimiter.WithLogger(zeroLogger),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build limiter")
	}

	router := gin.Default()
	router.Use(ginMiddleware.RateLimiter(limiter))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	log.Info().Msg("Starting server on http://localhost:8080")
	if err := router.Run(":8080"); err != nil {
		log.Fatal().Err(err).Msg("Failed to run server")
	}
}
