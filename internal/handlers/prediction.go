package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pkgerrors "github.com/uniquest/uniquest-backend/internal/pkg/errors"
	"github.com/uniquest/uniquest-backend/internal/platform/logger"
	"github.com/uniquest/uniquest-backend/internal/services"
)

type PredictionHandler struct {
	log           *logger.Logger
	predictionSvc services.PredictionService
}

func NewPredictionHandler(log *logger.Logger, predictionSvc services.PredictionService) *PredictionHandler {
	return &PredictionHandler{
		log:           log.With("handler", "PredictionHandler"),
		predictionSvc: predictionSvc,
	}
}

type predictGradeRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	CourseID  string `json:"course_id" binding:"required"`
}

// POST /api/predict-grade
func (h *PredictionHandler) PredictGrade(c *gin.Context) {
	var req predictGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: student_id", pkgerrors.ErrInvalidArgument))
		return
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: course_id", pkgerrors.ErrInvalidArgument))
		return
	}

	prediction, err := h.predictionSvc.PredictGrade(c.Request.Context(), nil, studentID, courseID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, prediction)
}
