package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/ecosort-backend/internal/handlers"
	"github.com/yungbote/ecosort-backend/internal/middleware"
)

type RouterConfig struct {
	AllowedOrigins        string
	AuthHandler           *handlers.AuthHandler
	AuthMiddleware        *middleware.AuthMiddleware
	UserHandler           *handlers.UserHandler
	ClassificationHandler *handlers.ClassificationHandler
	RewardsHandler        *handlers.RewardsHandler
	SSEHandler            *handlers.SSEHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// Protected
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	// Classification
	protected.POST("/classify", cfg.ClassificationHandler.Classify)
	// Points
	protected.GET("/points/balance", cfg.RewardsHandler.GetBalance)
	protected.GET("/points/history", cfg.RewardsHandler.GetHistory)
	protected.GET("/points/verify", cfg.RewardsHandler.VerifyBalance)
	// SSE
	protected.GET("/sse/stream", cfg.SSEHandler.SSEStream)
	protected.POST("/sse/subscribe", cfg.SSEHandler.SSESubscribe)
	protected.POST("/sse/unsubscribe", cfg.SSEHandler.SSEUnsubscribe)

	return router
}
