package heuristics

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// HeuristicWeights names the constants behind the exam-success and
// learning-style rules so they can be tuned without code changes.
type HeuristicWeights struct {
	// Weighted-sum coefficients for the exam-success score. They are
	// expected to sum to 1; Validate enforces it.
	AvgWeight        float64 `yaml:"avg_weight"`
	AttendanceWeight float64 `yaml:"attendance_weight"`
	CompletionWeight float64 `yaml:"completion_weight"`
	TrendWeight      float64 `yaml:"trend_weight"`

	// Risk thresholds.
	LowAverage    float64 `yaml:"low_average"`
	LowAttendance float64 `yaml:"low_attendance"`
	LowCompletion float64 `yaml:"low_completion"`
	FallingTrend  float64 `yaml:"falling_trend"`

	// Topics whose mean grade falls below this go on the focus list.
	WeakTopicThreshold float64 `yaml:"weak_topic_threshold"`

	// Points one group must exceed the other by before the style
	// classifier leaves "mixed".
	StyleGap float64 `yaml:"style_gap"`

	// Study-hours recommendation.
	MinStudyHours    int     `yaml:"min_study_hours"`
	HoursPerDeficit  float64 `yaml:"hours_per_deficit"`
	StoredConfidence float64 `yaml:"stored_confidence"`
}

func DefaultWeights() HeuristicWeights {
	return HeuristicWeights{
		AvgWeight:          0.40,
		AttendanceWeight:   0.25,
		CompletionWeight:   0.20,
		TrendWeight:        0.15,
		LowAverage:         60,
		LowAttendance:      70,
		LowCompletion:      70,
		FallingTrend:       -2,
		WeakTopicThreshold: 60,
		StyleGap:           5,
		MinStudyHours:      10,
		HoursPerDeficit:    0.3,
		StoredConfidence:   85,
	}
}

// LoadWeights reads overrides from a YAML file on top of the defaults.
// An empty path returns the defaults unchanged.
func LoadWeights(path string) (HeuristicWeights, error) {
	w := DefaultWeights()
	if path == "" {
		return w, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return w, err
	}
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return w, fmt.Errorf("parse heuristic weights %s: %w", path, err)
	}
	if err := w.Validate(); err != nil {
		return w, fmt.Errorf("heuristic weights %s: %w", path, err)
	}
	return w, nil
}

func (w HeuristicWeights) Validate() error {
	sum := w.AvgWeight + w.AttendanceWeight + w.CompletionWeight + w.TrendWeight
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("score weights sum to %.3f, want 1.0", sum)
	}
	if w.MinStudyHours < 0 {
		return fmt.Errorf("min_study_hours must be non-negative")
	}
	return nil
}
