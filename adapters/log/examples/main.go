package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	ratelimiter "github.com/jassus213/gcra-limiter"
	stdlogadapter "github.com/jassus213/gcra-limiter/adapters/log"
	ginMiddleware "github.com/jassus213/gcra-limiter/middleware/gin"
)

func main() {
	stdLogger := stdlogadapter.New(log.Default())

	quota, err := ratelimiter.PerSecond(5)
	if err != nil {
		log.Fatalf("bad quota: %v", err)
	}

	limiter, err := ratelimiter.NewKeyed(quota, ratelimiter.StateInformationMiddleware{},
		ratelimiter.WithLogger(stdLogger),
	)
	if err != nil {
		log.Fatalf("failed to build limiter: %v", err)
	}

	router := gin.Default()
	router.Use(ginMiddleware.RateLimiter(limiter))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	log.Println("Starting server on http://localhost:8080")
	if err := router.Run(":8080"); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
