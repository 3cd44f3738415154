package ml

import (
	"math"
	"testing"
)

func TestLinearModelRecoversExactFit(t *testing.T) {
	// y = 2*x1 - 1*x2 + 5, no noise: OLS must recover it exactly.
	X := [][]float64{
		{1, 0}, {0, 1}, {1, 1}, {2, 3}, {4, 1}, {3, 2},
	}
	y := make([]float64, len(X))
	for i, row := range X {
		y[i] = 2*row[0] - row[1] + 5
	}

	var m LinearModel
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if math.Abs(m.Coefficients[0]-2) > 1e-9 || math.Abs(m.Coefficients[1]+1) > 1e-9 {
		t.Fatalf("coefficients = %v, want [2 -1]", m.Coefficients)
	}
	if math.Abs(m.Intercept-5) > 1e-9 {
		t.Fatalf("intercept = %v, want 5", m.Intercept)
	}
}

func TestScalerStandardizes(t *testing.T) {
	X := [][]float64{{1, 10}, {3, 10}, {5, 10}}
	var s StandardScaler
	s.Fit(X)

	if math.Abs(s.Mean[0]-3) > 1e-9 {
		t.Fatalf("mean = %v, want 3", s.Mean[0])
	}
	// Constant column keeps std 1 so transforms stay finite.
	if s.Std[1] != 1 {
		t.Fatalf("constant-column std = %v, want 1", s.Std[1])
	}

	z := s.Transform([]float64{3, 10})
	if z[0] != 0 || z[1] != 0 {
		t.Fatalf("transform of the mean = %v, want zeros", z)
	}
}

// The end-to-end inference fixture: a known feature vector through a
// bundle with known coefficients must reproduce the linear combination
// exactly, every time.
func TestBundlePredictionIsDeterministic(t *testing.T) {
	b := Bundle{
		Model: LinearModel{
			Coefficients: []float64{0.5, 0.3, 0.15, 0.05},
			Intercept:    70,
		},
		Scaler: StandardScaler{
			Mean: []float64{75, 70, 68, 71},
			Std:  []float64{10, 12, 15, 9},
		},
		FeatureNames: FeatureNames(),
	}

	f := FeatureVector{AttendanceRate: 80, AvgHomework: 75, MidtermScore: 70, PreviousGPA: 72}
	z := b.Scaler.Transform(f.Values())

	want := 70.0
	want += 0.5 * (80 - 75) / 10
	want += 0.3 * (75 - 70) / 12
	want += 0.15 * (70 - 68) / 15
	want += 0.05 * (72 - 71) / 9

	for i := 0; i < 100; i++ {
		got := b.Model.Predict(z)
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("prediction %v, want %v", got, want)
		}
	}
}
