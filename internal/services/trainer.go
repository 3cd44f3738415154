package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/uniquest/uniquest-backend/internal/data/repos"
	"github.com/uniquest/uniquest-backend/internal/ml"
	"github.com/uniquest/uniquest-backend/internal/platform/logger"
)

// TrainerService builds the training dataset from enrollments and runs
// the model fit. Invoked from the training CLI, not the request path.
type TrainerService interface {
	BuildDataset(ctx context.Context, tx *gorm.DB) ([]ml.Sample, error)
	TrainAndSave(ctx context.Context, tx *gorm.DB, modelPath, metricsPath string) (*ml.TrainResult, error)
}

type trainerService struct {
	db             *gorm.DB
	log            *logger.Logger
	enrollmentRepo repos.EnrollmentRepo
	gradeRepo      repos.GradeRepo
	attendanceRepo repos.AttendanceRepo
}

func NewTrainerService(
	db *gorm.DB,
	log *logger.Logger,
	enrollmentRepo repos.EnrollmentRepo,
	gradeRepo repos.GradeRepo,
	attendanceRepo repos.AttendanceRepo,
) TrainerService {
	return &trainerService{
		db:             db,
		log:            log.With("service", "TrainerService"),
		enrollmentRepo: enrollmentRepo,
		gradeRepo:      gradeRepo,
		attendanceRepo: attendanceRepo,
	}
}

// BuildDataset emits one sample per enrollment that has a final grade.
// Enrollments without any grades are skipped.
func (s *trainerService) BuildDataset(ctx context.Context, tx *gorm.DB) ([]ml.Sample, error) {
	enrollments, err := s.enrollmentRepo.GetAll(ctx, tx)
	if err != nil {
		return nil, err
	}

	var samples []ml.Sample
	for _, enr := range enrollments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		grades, err := s.gradeRepo.GetByEnrollmentIDs(ctx, tx, []uuid.UUID{enr.ID})
		if err != nil {
			return nil, err
		}
		if len(grades) == 0 {
			continue
		}
		final := ml.FindFinalGrade(grades)
		if final == nil {
			continue
		}
		attendance, err := s.attendanceRepo.GetByEnrollmentIDs(ctx, tx, []uuid.UUID{enr.ID})
		if err != nil {
			return nil, err
		}
		otherGrades, err := s.gradeRepo.GetByStudentExcludingCourse(ctx, tx, enr.StudentID, enr.CourseID)
		if err != nil {
			return nil, err
		}
		samples = append(samples, ml.Sample{
			Features: ml.ExtractFeatures(grades, attendance, otherGrades),
			Final:    final.Value,
		})
	}
	s.log.Info("Training dataset built", "n_samples", len(samples), "n_enrollments", len(enrollments))
	return samples, nil
}

func (s *trainerService) TrainAndSave(ctx context.Context, tx *gorm.DB, modelPath, metricsPath string) (*ml.TrainResult, error) {
	samples, err := s.BuildDataset(ctx, tx)
	if err != nil {
		return nil, err
	}
	result, err := ml.Train(samples, ml.TrainSeed)
	if err != nil {
		return nil, err
	}
	if err := result.Save(modelPath, metricsPath); err != nil {
		return nil, err
	}
	s.log.Info("Model trained",
		"model_path", modelPath,
		"rmse", result.Metrics.RMSE,
		"r2", result.Metrics.R2,
		"n_samples", result.Metrics.NSamples,
	)
	return result, nil
}
