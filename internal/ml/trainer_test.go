package ml

import (
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	pkgerrors "github.com/uniquest/uniquest-backend/internal/pkg/errors"
)

func syntheticSamples(n int, seed int64) []Sample {
	rng := rand.New(rand.NewSource(seed))
	out := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		f := FeatureVector{
			AttendanceRate: 50 + rng.Float64()*50,
			AvgHomework:    40 + rng.Float64()*60,
			MidtermScore:   40 + rng.Float64()*60,
			PreviousGPA:    40 + rng.Float64()*60,
		}
		final := 0.2*f.AttendanceRate + 0.4*f.AvgHomework + 0.3*f.MidtermScore + 0.1*f.PreviousGPA
		out = append(out, Sample{Features: f, Final: final})
	}
	return out
}

func TestTrainRejectsSmallDatasets(t *testing.T) {
	_, err := Train(syntheticSamples(MinTrainingSamples-1, 1), TrainSeed)
	if !errors.Is(err, pkgerrors.ErrDataInsufficient) {
		t.Fatalf("err = %v, want ErrDataInsufficient", err)
	}
}

func TestTrainFitsNoiselessRelation(t *testing.T) {
	res, err := Train(syntheticSamples(60, 7), TrainSeed)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if res.Metrics.NSamples != 60 || res.Metrics.NFeatures != 4 {
		t.Fatalf("metrics counts = %+v", res.Metrics)
	}
	// The target is an exact linear function of the features, so the
	// held-out error has to be numerically zero and R² one.
	if res.Metrics.RMSE > 1e-6 {
		t.Fatalf("rmse = %v, want ~0", res.Metrics.RMSE)
	}
	if math.Abs(res.Metrics.R2-1) > 1e-6 {
		t.Fatalf("r2 = %v, want ~1", res.Metrics.R2)
	}
}

func TestTrainIsDeterministicForFixedSeed(t *testing.T) {
	a, err := Train(syntheticSamples(40, 3), TrainSeed)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	b, err := Train(syntheticSamples(40, 3), TrainSeed)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	for i := range a.Bundle.Model.Coefficients {
		if a.Bundle.Model.Coefficients[i] != b.Bundle.Model.Coefficients[i] {
			t.Fatalf("coefficients differ across runs: %v vs %v", a.Bundle.Model.Coefficients, b.Bundle.Model.Coefficients)
		}
	}
	if a.Metrics.RMSE != b.Metrics.RMSE {
		t.Fatalf("rmse differs across runs: %v vs %v", a.Metrics.RMSE, b.Metrics.RMSE)
	}
}

func TestTrainResultSaveWritesBothArtifacts(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "grade_model.json")
	metricsPath := filepath.Join(dir, "metrics.json")

	res, err := Train(syntheticSamples(30, 5), TrainSeed)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if err := res.Save(modelPath, metricsPath); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := os.Stat(modelPath); err != nil {
		t.Fatalf("model artifact missing: %v", err)
	}
	if _, err := os.Stat(metricsPath); err != nil {
		t.Fatalf("metrics artifact missing: %v", err)
	}

	// No temp files may survive the atomic rename.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("artifact dir holds %d entries, want 2", len(entries))
	}

	loaded, err := LoadBundle(modelPath)
	if err != nil {
		t.Fatalf("LoadBundle: %v", err)
	}
	if len(loaded.Model.Coefficients) != 4 || len(loaded.FeatureNames) != 4 {
		t.Fatalf("bundle round-trip lost shape: %+v", loaded)
	}
	if loaded.FeatureNames[0] != "attendance_rate" {
		t.Fatalf("feature order lost: %v", loaded.FeatureNames)
	}
}
