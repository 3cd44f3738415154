package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SmartLearningProfile struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"student_id"`
	Student            *Student       `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	LearningStyle      string         `gorm:"column:learning_style;not null;default:mixed" json:"learning_style"` // visual|kinesthetic|reading|mixed
	PreferredStudyTime string         `gorm:"column:preferred_study_time;not null;default:afternoon" json:"preferred_study_time"`
	LearningVelocity   float64        `gorm:"column:learning_velocity;not null;default:1.0" json:"learning_velocity"`
	RetentionRate      float64        `gorm:"column:retention_rate;not null;default:0.7" json:"retention_rate"`
	AnalyzedAt         time.Time      `gorm:"column:analyzed_at;not null;default:now()" json:"analyzed_at"`
	CreatedAt          time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SmartLearningProfile) TableName() string { return "smart_learning_profile" }
