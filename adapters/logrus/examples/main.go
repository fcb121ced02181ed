package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	ratelimiter "github.com/jassus213/gcra-limiter"
	logrusadapter "github.com/jassus213/gcra-limiter/adapters/logrus"
	ginMiddleware "github.com/jassus213/gcra-limiter/middleware/gin"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	logrusLogger := logrusadapter.New(logger)

	quota, err := ratelimiter.PerSecond(5)
	if err != nil {
		logger.Fatalf("bad quota: %v", err)
	}

	limiter, err := ratelimiter.NewKeyed(quota, ratelimiter.StateInformationMiddleware{},
		ratelimiter.WithLogger(logrusLogger),
	)
	if err != nil {
		logger.Fatalf("failed to build limiter: %v", err)
	}

	router := gin.Default()
	router.Use(ginMiddleware.RateLimiter(limiter))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	logger.Info("Starting server on http://localhost:8080")
	if err := router.Run(":8080"); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
