package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/uniquest/uniquest-backend/internal/platform/logger"
	"github.com/uniquest/uniquest-backend/internal/services"
)

type PerformanceHandler struct {
	log            *logger.Logger
	performanceSvc services.PerformanceService
}

func NewPerformanceHandler(log *logger.Logger, performanceSvc services.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{
		log:            log.With("handler", "PerformanceHandler"),
		performanceSvc: performanceSvc,
	}
}

// GET /api/students/:id/courses/:course_id/performance
func (h *PerformanceHandler) PredictPerformance(c *gin.Context) {
	studentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	courseID, ok := parseIDParam(c, "course_id")
	if !ok {
		return
	}
	prediction, err := h.performanceSvc.PredictPerformance(c.Request.Context(), nil, studentID, courseID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, prediction)
}

// GET /api/students/:id/courses/:course_id/study-intensity
func (h *PerformanceHandler) RecommendStudyIntensity(c *gin.Context) {
	studentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	courseID, ok := parseIDParam(c, "course_id")
	if !ok {
		return
	}
	intensity, err := h.performanceSvc.RecommendStudyIntensity(c.Request.Context(), nil, studentID, courseID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, intensity)
}

// GET /api/courses/:id/statistics
func (h *PerformanceHandler) ClassStatistics(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	stats, err := h.performanceSvc.ClassStatistics(c.Request.Context(), nil, courseID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, stats)
}
