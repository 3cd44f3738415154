package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Attendance struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EnrollmentID uuid.UUID      `gorm:"type:uuid;not null;index:idx_attendance_triple,unique,priority:1" json:"enrollment_id"`
	Enrollment   *Enrollment    `gorm:"constraint:OnDelete:CASCADE;foreignKey:EnrollmentID;references:ID" json:"enrollment,omitempty"`
	LectureID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_attendance_triple,unique,priority:2" json:"lecture_id"`
	Lecture      *Lecture       `gorm:"constraint:OnDelete:CASCADE;foreignKey:LectureID;references:ID" json:"lecture,omitempty"`
	Present      bool           `gorm:"column:present;not null;default:false" json:"present"`
	Date         time.Time      `gorm:"column:date;not null;index:idx_attendance_triple,unique,priority:3" json:"date"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Attendance) TableName() string { return "attendance" }
