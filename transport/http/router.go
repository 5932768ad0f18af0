package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/penpalhq/warden/service"
)

// SetupRouter sets up the Gin router
func SetupRouter(authService *service.AuthService) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "RefreshToken"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handlers := NewAuthHandlers(authService)

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/login", handlers.Login)
		auth.POST("/logout", handlers.Logout)
		auth.POST("/reissue", handlers.Reissue)
	}

	// Protected routes
	protected := router.Group("/")
	protected.Use(AuthMiddleware(authService))
	{
		protected.GET("/health", handlers.Health)
		protected.GET("/api/me", handlers.Me)
	}

	return router
}
