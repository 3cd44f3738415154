package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ExamPrediction is the single active heuristic prediction per
// (student, course). Re-running the predictor overwrites it in place.
type ExamPrediction struct {
	ID                    uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID             uuid.UUID      `gorm:"type:uuid;not null;index:idx_exam_prediction_pair,unique,priority:1" json:"student_id"`
	Student               *Student       `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	CourseID              uuid.UUID      `gorm:"type:uuid;not null;index:idx_exam_prediction_pair,unique,priority:2" json:"course_id"`
	Course                *Course        `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	PredictedScore        float64        `gorm:"column:predicted_score;not null" json:"predicted_score"`
	SuccessProbability    float64        `gorm:"column:success_probability;not null" json:"success_probability"`
	CurrentAvg            float64        `gorm:"column:current_avg;not null" json:"current_avg"`
	AttendanceRate        float64        `gorm:"column:attendance_rate;not null" json:"attendance_rate"`
	AssignmentCompletion  float64        `gorm:"column:assignment_completion;not null" json:"assignment_completion"`
	RecommendedStudyHours int            `gorm:"column:recommended_study_hours;not null" json:"recommended_study_hours"`
	FocusTopics           datatypes.JSON `gorm:"type:jsonb;column:focus_topics" json:"focus_topics"`
	RiskFactors           datatypes.JSON `gorm:"type:jsonb;column:risk_factors" json:"risk_factors"`
	Confidence            float64        `gorm:"column:confidence;not null" json:"confidence"`
	ExamDate              *time.Time     `gorm:"column:exam_date" json:"exam_date,omitempty"`
	CreatedAt             time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ExamPrediction) TableName() string { return "exam_prediction" }
