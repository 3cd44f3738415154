package heuristics

import (
	"testing"
	"time"
)

func TestClassifyStyle(t *testing.T) {
	w := DefaultWeights()
	cases := []struct {
		name     string
		practice []float64
		lecture  []float64
		want     string
	}{
		{"practice dominates", []float64{90, 92}, []float64{80}, StyleKinesthetic},
		{"lecture dominates", []float64{70}, []float64{80, 82}, StyleVisual},
		{"within gap", []float64{78}, []float64{80}, StyleMixed},
		{"exactly at gap stays mixed", []float64{85}, []float64{80}, StyleMixed},
		{"no practice data", nil, []float64{90}, StyleMixed},
		{"no lecture data", []float64{90}, nil, StyleMixed},
	}
	for _, tc := range cases {
		if got := ClassifyStyle(w, tc.practice, tc.lecture); got != tc.want {
			t.Fatalf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestAttendanceHourCollapsesDateOnlyToNoon(t *testing.T) {
	dateOnly := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if got := AttendanceHour(dateOnly); got != 12 {
		t.Fatalf("date-only hour = %d, want 12", got)
	}
	timed := time.Date(2026, 3, 10, 19, 30, 0, 0, time.UTC)
	if got := AttendanceHour(timed); got != 19 {
		t.Fatalf("timed hour = %d, want 19", got)
	}
}

func TestPreferredStudyTimeBuckets(t *testing.T) {
	cases := []struct {
		hours []int
		want  string
	}{
		{nil, TimeAfternoon},
		{[]int{8, 9, 10}, TimeMorning},
		{[]int{12, 14}, TimeAfternoon},
		{[]int{19, 20, 21}, TimeEvening},
		{[]int{1, 2, 3}, TimeNight},
		// Date-only records collapse to noon, so they all land here.
		{[]int{12, 12, 12}, TimeAfternoon},
	}
	for _, tc := range cases {
		if got := PreferredStudyTime(tc.hours); got != tc.want {
			t.Fatalf("hours %v: got %s, want %s", tc.hours, got, tc.want)
		}
	}
}

func TestLearningVelocity(t *testing.T) {
	if got := LearningVelocity([]float64{85}); got != DefaultVelocity {
		t.Fatalf("single grade velocity = %v, want %v", got, DefaultVelocity)
	}
	// Steeply rising and falling trends hit the clamps.
	if got := LearningVelocity([]float64{10, 40, 70, 100}); got != 2.0 {
		t.Fatalf("rising velocity = %v, want clamp 2.0", got)
	}
	if got := LearningVelocity([]float64{100, 70, 40, 10}); got != 0.5 {
		t.Fatalf("falling velocity = %v, want clamp 0.5", got)
	}
	// Only the last five grades count: the early crash is ignored.
	stable := []float64{100, 0, 80, 80, 80, 80, 80}
	if got := LearningVelocity(stable); got != 1.0 {
		t.Fatalf("flat recent velocity = %v, want 1.0", got)
	}
}
