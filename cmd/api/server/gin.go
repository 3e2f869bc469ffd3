package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	ginhandler "twitter-api/internal/adapter/gin/handler"
	ginrouter "twitter-api/internal/adapter/gin/router"
	"twitter-api/internal/adapter/ratelimit"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(
	userHandler *ginhandler.UserHandler,
	tweetHandler *ginhandler.TweetHandler,
	limiter *ratelimit.Limiter,
	addr string,
	l *zap.Logger,
) *http.Server {
	// Setup Gin router with all middleware and routes
	router := ginrouter.SetupRouter(userHandler, tweetHandler, limiter, l)

	l.Info("Gin REST API configured", zap.String("address", addr))

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
