package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	ratelimiter "github.com/jassus213/gcra-limiter"
	zapadapter "github.com/jassus213/gcra-limiter/adapters/zap"
	ginMiddleware "github.com/jassus213/gcra-limiter/middleware/gin"
)

func main() {
	cfg := zap.Config{
		Level:         zap.NewAtomicLevelAt(zap.DebugLevel),
		Development:   true,
		Encoding:      "console",
		OutputPaths:   []string{"stdout"},
		EncoderConfig: zap.NewDevelopmentEncoderConfig(),
	}
	logger, _ := cfg.Build()
	defer logger.Sync()

	zapLogger := zapadapter.New(logger)

	quota, err := ratelimiter.PerSecond(5)
	if err != nil {
		logger.Fatal("bad quota", zap.Error(err))
	}

	limiter, err := ratelimiter.NewKeyed(quota, ratelimiter.StateInformationMiddleware{},
		ratelimiter.WithLogger(zapLogger),
	)
	if err != nil {
		logger.Fatal("failed to build limiter", zap.Error(err))
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
