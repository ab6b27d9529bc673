package http

import (
	"github.com/gdugdh24/expo-networking/internal/delivery/http/handler"
	"github.com/gdugdh24/expo-networking/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Router struct {
	recommendationHandler *handler.RecommendationHandler
	authMiddleware        *middleware.AuthMiddleware
	logger                *zap.Logger
}

func NewRouter(
	recommendationHandler *handler.RecommendationHandler,
	authMiddleware *middleware.AuthMiddleware,
	logger *zap.Logger,
) *Router {
	return &Router{
		recommendationHandler: recommendationHandler,
		authMiddleware:        authMiddleware,
		logger:                logger,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logging(r.logger))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			recommendations := protected.Group("/recommendations")
			{
				recommendations.GET("/me", r.recommendationHandler.GetMyRecommendations)
				recommendations.GET("/me/:candidate_id", r.recommendationHandler.Explain)
				recommendations.POST("/me/:candidate_id/intro", r.recommendationHandler.GenerateIntro)
				recommendations.POST("/score", r.recommendationHandler.Score)
			}
		}
	}

	return router
}
