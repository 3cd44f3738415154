package ml

import (
	"strings"

	"github.com/uniquest/uniquest-backend/internal/types"
)

// Assignment-name markers used by the feature extractor. Grade rows are
// seeded with Russian assignment names, midterms keep the English label.
const (
	homeworkMarker = "домашнее"
	finalMarker    = "финал"
	midtermMarker  = "midterm"
)

// FeatureNames returns the ordered feature list persisted with every
// trained model bundle. Order matters: scaler statistics and model
// coefficients are positional.
func FeatureNames() []string {
	return []string{"attendance_rate", "avg_homework", "midterm_score", "previous_gpa"}
}

type FeatureVector struct {
	AttendanceRate float64 `json:"attendance_rate"`
	AvgHomework    float64 `json:"avg_homework"`
	MidtermScore   float64 `json:"midterm_score"`
	PreviousGPA    float64 `json:"previous_gpa"`
}

func (f FeatureVector) Values() []float64 {
	return []float64{f.AttendanceRate, f.AvgHomework, f.MidtermScore, f.PreviousGPA}
}

// ExtractFeatures computes the four-feature summary for one enrollment.
// It never fails: every feature degenerates to a defined default when the
// underlying rows are missing. In particular an enrollment with zero
// attendance records counts as perfect attendance, and a student with no
// history in other courses inherits the homework average as prior GPA.
func ExtractFeatures(grades []*types.Grade, attendance []*types.Attendance, otherCourseGrades []*types.Grade) FeatureVector {
	attendanceRate := 100.0
	if len(attendance) > 0 {
		present := 0
		for _, a := range attendance {
			if a.Present {
				present++
			}
		}
		attendanceRate = float64(present) / float64(len(attendance)) * 100.0
	}

	avgHomework := meanWhere(grades, func(g *types.Grade) bool {
		return nameContains(g, homeworkMarker)
	})
	if avgHomework < 0 {
		avgHomework = meanWhere(grades, func(g *types.Grade) bool {
			return !nameContains(g, finalMarker)
		})
	}
	if avgHomework < 0 {
		avgHomework = 0
	}

	midtermScore := avgHomework
	var latest *types.Grade
	for _, g := range grades {
		if !nameContains(g, midtermMarker) {
			continue
		}
		if latest == nil || g.GradedAt.After(latest.GradedAt) {
			latest = g
		}
	}
	if latest != nil {
		midtermScore = latest.Value
	}

	previousGPA := avgHomework
	if len(otherCourseGrades) > 0 {
		sum := 0.0
		for _, g := range otherCourseGrades {
			sum += g.Value
		}
		previousGPA = sum / float64(len(otherCourseGrades))
	}

	return FeatureVector{
		AttendanceRate: attendanceRate,
		AvgHomework:    avgHomework,
		MidtermScore:   midtermScore,
		PreviousGPA:    previousGPA,
	}
}

// FindFinalGrade picks the target for training: the most recent grade
// explicitly marked as a final, falling back to the highest-valued grade.
// Returns nil only when the enrollment has no grades at all.
func FindFinalGrade(grades []*types.Grade) *types.Grade {
	var final *types.Grade
	for _, g := range grades {
		if !nameContains(g, finalMarker) {
			continue
		}
		if final == nil || g.GradedAt.After(final.GradedAt) {
			final = g
		}
	}
	if final != nil {
		return final
	}
	for _, g := range grades {
		if final == nil || g.Value > final.Value {
			final = g
		}
	}
	return final
}

func nameContains(g *types.Grade, marker string) bool {
	return strings.Contains(strings.ToLower(g.AssignmentName), marker)
}

// meanWhere returns -1 when no grade matches, so callers can fall through
// to the next default in the chain.
func meanWhere(grades []*types.Grade, match func(*types.Grade) bool) float64 {
	sum := 0.0
	n := 0
	for _, g := range grades {
		if match(g) {
			sum += g.Value
			n++
		}
	}
	if n == 0 {
		return -1
	}
	return sum / float64(n)
}
