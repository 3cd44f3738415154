package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Grade struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EnrollmentID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"enrollment_id"`
	Enrollment     *Enrollment    `gorm:"constraint:OnDelete:CASCADE;foreignKey:EnrollmentID;references:ID" json:"enrollment,omitempty"`
	AssignmentID   *uuid.UUID     `gorm:"type:uuid;index" json:"assignment_id,omitempty"` // nil => lecture-type grade
	Assignment     *Assignment    `gorm:"foreignKey:AssignmentID;references:ID" json:"assignment,omitempty"`
	AssignmentName string         `gorm:"column:assignment_name" json:"assignment_name"`
	Topic          string         `gorm:"column:topic" json:"topic"`
	Value          float64        `gorm:"column:value;not null" json:"value"`
	LetterGrade    string         `gorm:"column:letter_grade" json:"letter_grade"`
	GradedAt       time.Time      `gorm:"column:graded_at;not null;default:now()" json:"graded_at"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Grade) TableName() string { return "grade" }

// LetterGradeFor maps a numeric value onto the A..F scale.
func LetterGradeFor(value float64) string {
	switch {
	case value >= 90:
		return "A"
	case value >= 80:
		return "B"
	case value >= 70:
		return "C"
	case value >= 60:
		return "D"
	default:
		return "F"
	}
}

// BeforeSave derives the letter grade when it has not been set yet.
// An explicitly assigned letter is never re-derived, even if the numeric
// value later changes.
func (g *Grade) BeforeSave(tx *gorm.DB) error {
	if g.LetterGrade == "" {
		g.LetterGrade = LetterGradeFor(g.Value)
	}
	return nil
}
