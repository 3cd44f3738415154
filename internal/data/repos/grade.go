package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/uniquest/uniquest-backend/internal/platform/logger"
	"github.com/uniquest/uniquest-backend/internal/types"
)

type GradeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Grade) ([]*types.Grade, error)
	GetByEnrollmentIDs(ctx context.Context, tx *gorm.DB, enrollmentIDs []uuid.UUID) ([]*types.Grade, error)
	GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.Grade, error)
	GetByStudentExcludingCourse(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) ([]*types.Grade, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.Grade) error
}

type gradeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGradeRepo(db *gorm.DB, baseLog *logger.Logger) GradeRepo {
	repoLog := baseLog.With("repo", "GradeRepo")
	return &gradeRepo{db: db, log: repoLog}
}

func (r *gradeRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Grade) ([]*types.Grade, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Grade{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gradeRepo) GetByEnrollmentIDs(ctx context.Context, tx *gorm.DB, enrollmentIDs []uuid.UUID) ([]*types.Grade, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Grade
	if len(enrollmentIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("enrollment_id IN ?", enrollmentIDs).
		Order("graded_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *gradeRepo) GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.Grade, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Grade
	if len(studentIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Joins("JOIN enrollment ON enrollment.id = grade.enrollment_id").
		Where("enrollment.student_id IN ?", studentIDs).
		Order("grade.graded_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *gradeRepo) GetByStudentExcludingCourse(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) ([]*types.Grade, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Grade
	if err := transaction.WithContext(ctx).
		Joins("JOIN enrollment ON enrollment.id = grade.enrollment_id").
		Where("enrollment.student_id = ? AND enrollment.course_id <> ?", studentID, courseID).
		Order("grade.graded_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *gradeRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Grade) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	if err := transaction.WithContext(ctx).Save(row).Error; err != nil {
		return err
	}
	return nil
}
