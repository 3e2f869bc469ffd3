package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"twitter-api/api/openapi"
	"twitter-api/internal/adapter/gin/handler"
	"twitter-api/internal/adapter/gin/middleware"
	"twitter-api/internal/adapter/ratelimit"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "twitter-api"

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	tweetHandler *handler.TweetHandler,
	limiter *ratelimit.Limiter,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Each router owns its registry so several can coexist in one process
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Global middleware
	// Recovery runs innermost so panics are still logged and counted as 500s
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Metrics(registry))
	router.Use(middleware.Recovery(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": ServiceName,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	router.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", openapi.Spec)
	})
	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/openapi.json"))))

	api := router.Group("/")
	api.Use(middleware.RateLimiter(limiter))
	{
		api.GET("/", tweetHandler.ListTweets)
		api.POST("/signup", userHandler.Signup)
		api.POST("/login", userHandler.Login)

		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id/update", userHandler.UpdateUser)
			users.DELETE("/:id/delete", userHandler.DeleteUser)
		}

		api.POST("/post", tweetHandler.PostTweet)

		tweets := api.Group("/tweets")
		{
			tweets.GET("/:id", tweetHandler.GetTweet)
			tweets.PUT("/:id/update", tweetHandler.UpdateTweet)
			tweets.DELETE("/:id/delete", tweetHandler.DeleteTweet)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handler.ErrorResponse{Error: "not_found", Message: "route not found"})
	})

	return router
}
