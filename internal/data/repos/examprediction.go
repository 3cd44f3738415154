package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/uniquest/uniquest-backend/internal/platform/logger"
	"github.com/uniquest/uniquest-backend/internal/types"
)

type ExamPredictionRepo interface {
	GetByStudentAndCourse(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) (*types.ExamPrediction, error)
	GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.ExamPrediction, error)
	UpsertByStudentAndCourse(ctx context.Context, tx *gorm.DB, row *types.ExamPrediction) error
}

type examPredictionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExamPredictionRepo(db *gorm.DB, baseLog *logger.Logger) ExamPredictionRepo {
	repoLog := baseLog.With("repo", "ExamPredictionRepo")
	return &examPredictionRepo{db: db, log: repoLog}
}

func (r *examPredictionRepo) GetByStudentAndCourse(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) (*types.ExamPrediction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ExamPrediction
	if err := transaction.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *examPredictionRepo) GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.ExamPrediction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ExamPrediction
	if len(studentIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("student_id IN ?", studentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *examPredictionRepo) UpsertByStudentAndCourse(ctx context.Context, tx *gorm.DB, row *types.ExamPrediction) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	if err := transaction.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"predicted_score",
			"success_probability",
			"current_avg",
			"attendance_rate",
			"assignment_completion",
			"recommended_study_hours",
			"focus_topics",
			"risk_factors",
			"confidence",
			"exam_date",
			"updated_at",
		}),
	}).Create(row).Error; err != nil {
		return err
	}
	return nil
}
