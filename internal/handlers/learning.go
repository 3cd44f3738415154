package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pkgerrors "github.com/uniquest/uniquest-backend/internal/pkg/errors"
	"github.com/uniquest/uniquest-backend/internal/platform/apierr"
	"github.com/uniquest/uniquest-backend/internal/platform/logger"
	"github.com/uniquest/uniquest-backend/internal/services"
)

// LearningHandler serves the heuristic analytics: learning profiles,
// exam predictions, study plans and recommendation cards.
type LearningHandler struct {
	log      *logger.Logger
	styleSvc services.LearningStyleService
	examSvc  services.ExamPredictionService
	planSvc  services.StudyPlanService
	recSvc   services.RecommendationService
}

func NewLearningHandler(
	log *logger.Logger,
	styleSvc services.LearningStyleService,
	examSvc services.ExamPredictionService,
	planSvc services.StudyPlanService,
	recSvc services.RecommendationService,
) *LearningHandler {
	return &LearningHandler{
		log:      log.With("handler", "LearningHandler"),
		styleSvc: styleSvc,
		examSvc:  examSvc,
		planSvc:  planSvc,
		recSvc:   recSvc,
	}
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondServiceError(c, apierr.New(http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: %s", pkgerrors.ErrInvalidArgument, name)))
		return uuid.Nil, false
	}
	return id, true
}

// POST /api/students/:id/learning-profile
func (h *LearningHandler) AnalyzeLearningStyle(c *gin.Context) {
	studentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	profile, err := h.styleSvc.Analyze(c.Request.Context(), nil, studentID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, profile)
}

type examPredictionRequest struct {
	ExamDate *time.Time `json:"exam_date"`
}

// POST /api/students/:id/courses/:course_id/exam-prediction
func (h *LearningHandler) PredictExamSuccess(c *gin.Context) {
	studentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	courseID, ok := parseIDParam(c, "course_id")
	if !ok {
		return
	}
	var req examPredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	prediction, err := h.examSvc.Predict(c.Request.Context(), nil, studentID, courseID, req.ExamDate)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, prediction)
}

type studyPlanRequest struct {
	TargetDate time.Time `json:"target_date" binding:"required"`
}

// POST /api/students/:id/courses/:course_id/study-plan
func (h *LearningHandler) GenerateStudyPlan(c *gin.Context) {
	studentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	courseID, ok := parseIDParam(c, "course_id")
	if !ok {
		return
	}
	var req studyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	plan, err := h.planSvc.Generate(c.Request.Context(), nil, studentID, courseID, req.TargetDate)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, plan)
}

// GET /api/students/:id/courses/:course_id/recommendations
func (h *LearningHandler) GetRecommendations(c *gin.Context) {
	studentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	courseID, ok := parseIDParam(c, "course_id")
	if !ok {
		return
	}
	recommendations, err := h.recSvc.ForStudentCourse(c.Request.Context(), nil, studentID, courseID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"recommendations": recommendations})
}
