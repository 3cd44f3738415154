package ml

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/uniquest/uniquest-backend/internal/platform/logger"
)

func testLogger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("logger: %v", err)
	}
	return log
}

func TestModelStoreEmptyUntilArtifactExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grade_model.json")
	store := NewModelStore(testLogger(t), path)

	// A missing artifact is a valid startup state, not an error.
	if err := store.Load(); err != nil {
		t.Fatalf("Load with missing artifact: %v", err)
	}
	if _, ok := store.Bundle(); ok {
		t.Fatal("empty store reported a bundle")
	}
}

func TestModelStoreReloadSwapsBundle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grade_model.json")
	store := NewModelStore(testLogger(t), path)

	first := &Bundle{
		Model:        LinearModel{Coefficients: []float64{1, 2, 3, 4}, Intercept: 10},
		Scaler:       StandardScaler{Mean: []float64{0, 0, 0, 0}, Std: []float64{1, 1, 1, 1}},
		FeatureNames: FeatureNames(),
		TrainedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := SaveBundle(path, first); err != nil {
		t.Fatalf("SaveBundle: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	got, ok := store.Bundle()
	if !ok {
		t.Fatal("store empty after Load")
	}
	if got.Model.Intercept != 10 {
		t.Fatalf("intercept = %v, want 10", got.Model.Intercept)
	}

	second := *first
	second.Model.Intercept = 20
	second.TrainedAt = first.TrainedAt.Add(24 * time.Hour)
	if err := SaveBundle(path, &second); err != nil {
		t.Fatalf("SaveBundle: %v", err)
	}
	if err := store.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	// The old reference stays valid for callers that grabbed it before
	// the swap.
	if got.Model.Intercept != 10 {
		t.Fatalf("pre-swap bundle mutated: intercept = %v", got.Model.Intercept)
	}
	cur, ok := store.Bundle()
	if !ok || cur.Model.Intercept != 20 {
		t.Fatalf("post-swap bundle = %+v, ok=%v", cur, ok)
	}
}
