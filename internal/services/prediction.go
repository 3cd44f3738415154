package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/uniquest/uniquest-backend/internal/data/repos"
	"github.com/uniquest/uniquest-backend/internal/ml"
	pkgerrors "github.com/uniquest/uniquest-backend/internal/pkg/errors"
	"github.com/uniquest/uniquest-backend/internal/platform/logger"
)

// GradePrediction is the trained-model estimate for one enrollment.
// The predicted grade is intentionally unbounded; the model may
// extrapolate past [0,100].
type GradePrediction struct {
	PredictedFinalGrade  float64            `json:"predicted_final_grade"`
	ModelConfidence      float64            `json:"model_confidence"`
	FeatureContributions map[string]float64 `json:"feature_contributions"`
}

// Reported as-is regardless of actual fit quality.
const fixedModelConfidence = 0.8

type PredictionService interface {
	PredictGrade(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) (*GradePrediction, error)
}

type predictionService struct {
	db             *gorm.DB
	log            *logger.Logger
	enrollmentRepo repos.EnrollmentRepo
	gradeRepo      repos.GradeRepo
	attendanceRepo repos.AttendanceRepo
	store          *ml.ModelStore
}

func NewPredictionService(
	db *gorm.DB,
	log *logger.Logger,
	enrollmentRepo repos.EnrollmentRepo,
	gradeRepo repos.GradeRepo,
	attendanceRepo repos.AttendanceRepo,
	store *ml.ModelStore,
) PredictionService {
	return &predictionService{
		db:             db,
		log:            log.With("service", "PredictionService"),
		enrollmentRepo: enrollmentRepo,
		gradeRepo:      gradeRepo,
		attendanceRepo: attendanceRepo,
		store:          store,
	}
}

func (s *predictionService) PredictGrade(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) (*GradePrediction, error) {
	enrollment, err := s.enrollmentRepo.GetByStudentAndCourse(ctx, tx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, fmt.Errorf("%w: no enrollment for student %s in course %s", pkgerrors.ErrNotFound, studentID, courseID)
	}

	bundle, ok := s.store.Bundle()
	if !ok {
		return nil, fmt.Errorf("%w: no trained model", pkgerrors.ErrUnavailable)
	}

	grades, err := s.gradeRepo.GetByEnrollmentIDs(ctx, tx, []uuid.UUID{enrollment.ID})
	if err != nil {
		return nil, err
	}
	attendance, err := s.attendanceRepo.GetByEnrollmentIDs(ctx, tx, []uuid.UUID{enrollment.ID})
	if err != nil {
		return nil, err
	}
	otherGrades, err := s.gradeRepo.GetByStudentExcludingCourse(ctx, tx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	features := ml.ExtractFeatures(grades, attendance, otherGrades)
	scaled := bundle.Scaler.Transform(features.Values())
	predicted := bundle.Model.Predict(scaled)

	contributions := make(map[string]float64, len(bundle.FeatureNames))
	for i, name := range bundle.FeatureNames {
		if i < len(bundle.Model.Coefficients) && i < len(scaled) {
			contributions[name] = bundle.Model.Coefficients[i] * scaled[i]
		}
	}

	s.log.Info("Grade predicted",
		"student_id", studentID,
		"course_id", courseID,
		"predicted", predicted,
	)
	return &GradePrediction{
		PredictedFinalGrade:  predicted,
		ModelConfidence:      fixedModelConfidence,
		FeatureContributions: contributions,
	}, nil
}
