package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/uniquest/uniquest-backend/internal/platform/logger"
	"github.com/uniquest/uniquest-backend/internal/types"
)

type StudyPlanRepo interface {
	GetByStudentAndCourse(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) ([]*types.PersonalizedStudyPlan, error)
	GetByKey(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID, targetDate time.Time) (*types.PersonalizedStudyPlan, error)
	UpsertByKey(ctx context.Context, tx *gorm.DB, row *types.PersonalizedStudyPlan) error
}

type studyPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudyPlanRepo(db *gorm.DB, baseLog *logger.Logger) StudyPlanRepo {
	repoLog := baseLog.With("repo", "StudyPlanRepo")
	return &studyPlanRepo{db: db, log: repoLog}
}

func (r *studyPlanRepo) GetByStudentAndCourse(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) ([]*types.PersonalizedStudyPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.PersonalizedStudyPlan
	if err := transaction.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Order("target_date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *studyPlanRepo) GetByKey(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID, targetDate time.Time) (*types.PersonalizedStudyPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.PersonalizedStudyPlan
	if err := transaction.WithContext(ctx).
		Where("student_id = ? AND course_id = ? AND target_date = ?", studentID, courseID, targetDate).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *studyPlanRepo) UpsertByKey(ctx context.Context, tx *gorm.DB, row *types.PersonalizedStudyPlan) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	if err := transaction.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "course_id"}, {Name: "target_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"plan_name",
			"total_hours",
			"daily_schedule",
			"topics_priority",
			"milestones",
			"progress",
			"is_active",
			"updated_at",
		}),
	}).Create(row).Error; err != nil {
		return err
	}
	return nil
}
