package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/uniquest/uniquest-backend/internal/platform/logger"
	"github.com/uniquest/uniquest-backend/internal/types"
)

type LearningProfileRepo interface {
	GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.SmartLearningProfile, error)
	UpsertByStudent(ctx context.Context, tx *gorm.DB, row *types.SmartLearningProfile) error
}

type learningProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningProfileRepo(db *gorm.DB, baseLog *logger.Logger) LearningProfileRepo {
	repoLog := baseLog.With("repo", "LearningProfileRepo")
	return &learningProfileRepo{db: db, log: repoLog}
}

func (r *learningProfileRepo) GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.SmartLearningProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SmartLearningProfile
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

func (r *learningProfileRepo) UpsertByStudent(ctx context.Context, tx *gorm.DB, row *types.SmartLearningProfile) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	if err := transaction.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"learning_style",
			"preferred_study_time",
			"learning_velocity",
			"retention_rate",
			"analyzed_at",
			"updated_at",
		}),
	}).Create(row).Error; err != nil {
		return err
	}
	return nil
}
