package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PersonalizedStudyPlan is the single active plan per
// (student, course, target_date); regeneration overwrites it in place.
type PersonalizedStudyPlan struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_study_plan_key,unique,priority:1" json:"student_id"`
	Student        *Student       `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	CourseID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_study_plan_key,unique,priority:2" json:"course_id"`
	Course         *Course        `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	TargetDate     time.Time      `gorm:"column:target_date;not null;index:idx_study_plan_key,unique,priority:3" json:"target_date"`
	PlanName       string         `gorm:"column:plan_name;not null" json:"plan_name"`
	TotalHours     int            `gorm:"column:total_hours;not null" json:"total_hours"`
	DailySchedule  datatypes.JSON `gorm:"type:jsonb;column:daily_schedule" json:"daily_schedule"`
	TopicsPriority datatypes.JSON `gorm:"type:jsonb;column:topics_priority" json:"topics_priority"`
	Milestones     datatypes.JSON `gorm:"type:jsonb;column:milestones" json:"milestones"`
	Progress       float64        `gorm:"column:progress;not null;default:0" json:"progress"`
	IsActive       bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (PersonalizedStudyPlan) TableName() string { return "personalized_study_plan" }
