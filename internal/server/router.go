package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/uniquest/uniquest-backend/internal/handlers"
	"github.com/uniquest/uniquest-backend/internal/middleware"
	"github.com/uniquest/uniquest-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log                *logger.Logger
	PredictionHandler  *handlers.PredictionHandler
	SearchHandler      *handlers.SearchHandler
	LearningHandler    *handlers.LearningHandler
	PerformanceHandler *handlers.PerformanceHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Trained-model prediction
		api.POST("/predict-grade", cfg.PredictionHandler.PredictGrade)
		// Lecture retrieval
		api.POST("/search", cfg.SearchHandler.Search)
		// Heuristic analytics
		api.POST("/students/:id/learning-profile", cfg.LearningHandler.AnalyzeLearningStyle)
		api.POST("/students/:id/courses/:course_id/exam-prediction", cfg.LearningHandler.PredictExamSuccess)
		api.POST("/students/:id/courses/:course_id/study-plan", cfg.LearningHandler.GenerateStudyPlan)
		api.GET("/students/:id/courses/:course_id/recommendations", cfg.LearningHandler.GetRecommendations)
		// Performance analytics
		api.GET("/students/:id/courses/:course_id/performance", cfg.PerformanceHandler.PredictPerformance)
		api.GET("/students/:id/courses/:course_id/study-intensity", cfg.PerformanceHandler.RecommendStudyIntensity)
		api.GET("/courses/:id/statistics", cfg.PerformanceHandler.ClassStatistics)
	}

	return router
}
