package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/uniquest/uniquest-backend/internal/platform/logger"
	"github.com/uniquest/uniquest-backend/internal/types"
)

type AttendanceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Attendance) ([]*types.Attendance, error)
	GetByEnrollmentIDs(ctx context.Context, tx *gorm.DB, enrollmentIDs []uuid.UUID) ([]*types.Attendance, error)
	GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.Attendance, error)
}

type attendanceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAttendanceRepo(db *gorm.DB, baseLog *logger.Logger) AttendanceRepo {
	repoLog := baseLog.With("repo", "AttendanceRepo")
	return &attendanceRepo{db: db, log: repoLog}
}

func (r *attendanceRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Attendance) ([]*types.Attendance, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Attendance{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *attendanceRepo) GetByEnrollmentIDs(ctx context.Context, tx *gorm.DB, enrollmentIDs []uuid.UUID) ([]*types.Attendance, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Attendance
	if len(enrollmentIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("enrollment_id IN ?", enrollmentIDs).
		Order("date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *attendanceRepo) GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.Attendance, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Attendance
	if len(studentIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Joins("JOIN enrollment ON enrollment.id = attendance.enrollment_id").
		Where("enrollment.student_id IN ?", studentIDs).
		Order("attendance.date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
