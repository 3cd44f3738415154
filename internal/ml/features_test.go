package ml

import (
	"testing"
	"time"

	"github.com/uniquest/uniquest-backend/internal/types"
)

func grade(name string, value float64, at time.Time) *types.Grade {
	return &types.Grade{AssignmentName: name, Value: value, GradedAt: at}
}

func TestExtractFeaturesZeroData(t *testing.T) {
	f := ExtractFeatures(nil, nil, nil)
	if f.AttendanceRate != 100 {
		t.Fatalf("attendance with no rows = %v, want 100", f.AttendanceRate)
	}
	if f.AvgHomework != 0 || f.MidtermScore != 0 || f.PreviousGPA != 0 {
		t.Fatalf("zero-data features = %+v, want zeros", f)
	}
}

func TestExtractFeaturesAttendanceRate(t *testing.T) {
	att := []*types.Attendance{
		{Present: true},
		{Present: true},
		{Present: false},
		{Present: true},
	}
	f := ExtractFeatures(nil, att, nil)
	if f.AttendanceRate != 75 {
		t.Fatalf("attendance = %v, want 75", f.AttendanceRate)
	}
	if f.AttendanceRate < 0 || f.AttendanceRate > 100 {
		t.Fatalf("attendance out of range: %v", f.AttendanceRate)
	}
}

func TestExtractFeaturesHomeworkFallbacks(t *testing.T) {
	now := time.Now()

	// Explicit homework rows win.
	grades := []*types.Grade{
		grade("Домашнее задание 1", 80, now),
		grade("Домашнее задание 2", 90, now),
		grade("Финальный экзамен", 40, now),
	}
	f := ExtractFeatures(grades, nil, nil)
	if f.AvgHomework != 85 {
		t.Fatalf("avg_homework = %v, want 85", f.AvgHomework)
	}

	// No homework marker: all grades except finals.
	grades = []*types.Grade{
		grade("Лабораторная 1", 60, now),
		grade("Лабораторная 2", 70, now),
		grade("Финальный экзамен", 100, now),
	}
	f = ExtractFeatures(grades, nil, nil)
	if f.AvgHomework != 65 {
		t.Fatalf("avg_homework fallback = %v, want 65", f.AvgHomework)
	}

	// Only finals: degrades to zero.
	grades = []*types.Grade{grade("Финальный экзамен", 100, now)}
	f = ExtractFeatures(grades, nil, nil)
	if f.AvgHomework != 0 {
		t.Fatalf("avg_homework with finals only = %v, want 0", f.AvgHomework)
	}
}

func TestExtractFeaturesMidtermAndGPA(t *testing.T) {
	now := time.Now()
	grades := []*types.Grade{
		grade("Домашнее задание 1", 70, now.Add(-72*time.Hour)),
		grade("Midterm Exam", 55, now.Add(-48*time.Hour)),
		grade("Midterm Retake", 65, now.Add(-24*time.Hour)),
	}
	other := []*types.Grade{
		grade("Домашнее задание 1", 90, now),
		grade("Лабораторная 1", 70, now),
	}
	f := ExtractFeatures(grades, nil, other)
	if f.MidtermScore != 65 {
		t.Fatalf("midterm = %v, want most recent 65", f.MidtermScore)
	}
	if f.PreviousGPA != 80 {
		t.Fatalf("previous_gpa = %v, want 80", f.PreviousGPA)
	}

	// Without a midterm row, midterm inherits the homework average; without
	// other-course history, GPA does too.
	f = ExtractFeatures([]*types.Grade{grade("Домашнее задание 1", 70, now)}, nil, nil)
	if f.MidtermScore != 70 || f.PreviousGPA != 70 {
		t.Fatalf("fallbacks = %+v, want midterm and gpa 70", f)
	}
}

func TestFindFinalGrade(t *testing.T) {
	now := time.Now()
	grades := []*types.Grade{
		grade("Домашнее задание 1", 95, now.Add(-48*time.Hour)),
		grade("Финальный экзамен", 72, now),
	}
	if got := FindFinalGrade(grades); got == nil || got.Value != 72 {
		t.Fatalf("final = %+v, want explicit final with 72", got)
	}

	// No explicit final: highest value wins.
	grades = []*types.Grade{
		grade("Домашнее задание 1", 61, now),
		grade("Лабораторная 1", 88, now),
	}
	if got := FindFinalGrade(grades); got == nil || got.Value != 88 {
		t.Fatalf("final fallback = %+v, want 88", got)
	}

	if got := FindFinalGrade(nil); got != nil {
		t.Fatalf("final on empty history = %+v, want nil", got)
	}
}
