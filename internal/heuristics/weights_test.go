package heuristics

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultWeightsValidate(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoadWeightsOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	body := "avg_weight: 0.5\nattendance_weight: 0.2\ncompletion_weight: 0.2\ntrend_weight: 0.1\nmin_study_hours: 8\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w, err := LoadWeights(path)
	if err != nil {
		t.Fatalf("LoadWeights: %v", err)
	}
	if w.AvgWeight != 0.5 || w.MinStudyHours != 8 {
		t.Fatalf("overrides not applied: %+v", w)
	}
	// Untouched fields keep their defaults.
	if w.StyleGap != 5 || w.WeakTopicThreshold != 60 {
		t.Fatalf("defaults lost: %+v", w)
	}
}

func TestLoadWeightsRejectsBadSum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	if err := os.WriteFile(path, []byte("avg_weight: 0.9\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadWeights(path); err == nil {
		t.Fatal("expected validation error for weights not summing to 1")
	}
}

func TestLoadWeightsEmptyPathReturnsDefaults(t *testing.T) {
	w, err := LoadWeights("")
	if err != nil {
		t.Fatalf("LoadWeights: %v", err)
	}
	if w != DefaultWeights() {
		t.Fatalf("empty path should return defaults, got %+v", w)
	}
}
