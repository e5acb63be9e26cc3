package app

import (
	"ai_tutor_backend/internal/config"
	"ai_tutor_backend/internal/middleware"
	"ai_tutor_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/auth/me", c.auth.Me)

		authGroup.POST("/chat/send", c.chat.Send)
		authGroup.GET("/chat/conversations", c.chat.Conversations)
		authGroup.GET("/chat/conversations/:id/messages", c.chat.Messages)

		authGroup.GET("/quizzes", c.quiz.List)
		authGroup.GET("/quizzes/:id", c.quiz.Get)
		authGroup.POST("/quizzes/:id/submit", c.quiz.Submit)

		authGroup.GET("/progress", c.progress.List)
		authGroup.GET("/stats", c.progress.Stats)

		authGroup.GET("/ai/status", c.chat.AIStatus)
	}
}
