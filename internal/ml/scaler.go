package ml

import "math"

// StandardScaler standardizes features to zero mean and unit variance.
// Statistics are fitted on the training split only and persisted with the
// model bundle so that inference applies the exact same transform.
type StandardScaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

func (s *StandardScaler) Fit(X [][]float64) {
	if len(X) == 0 {
		s.Mean = nil
		s.Std = nil
		return
	}
	dim := len(X[0])
	s.Mean = make([]float64, dim)
	s.Std = make([]float64, dim)

	for _, row := range X {
		for j := 0; j < dim; j++ {
			s.Mean[j] += row[j]
		}
	}
	for j := 0; j < dim; j++ {
		s.Mean[j] /= float64(len(X))
	}

	for _, row := range X {
		for j := 0; j < dim; j++ {
			d := row[j] - s.Mean[j]
			s.Std[j] += d * d
		}
	}
	for j := 0; j < dim; j++ {
		s.Std[j] = math.Sqrt(s.Std[j] / float64(len(X)))
		// A constant feature scales to zero, not NaN.
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
}

func (s *StandardScaler) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for j := range x {
		out[j] = (x[j] - s.Mean[j]) / s.Std[j]
	}
	return out
}

func (s *StandardScaler) TransformAll(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		out[i] = s.Transform(row)
	}
	return out
}
