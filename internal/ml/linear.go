package ml

import "fmt"

// LinearModel is an ordinary least-squares regression fitted through the
// normal equations. Small feature counts make the closed-form solve cheap
// and deterministic.
type LinearModel struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

func (m *LinearModel) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 || len(X) != len(y) {
		return fmt.Errorf("fit: %d rows vs %d targets", len(X), len(y))
	}
	dim := len(X[0])
	// Augment with a bias column: solve (A^T A) w = A^T y where
	// A = [X | 1], w = [coefficients..., intercept].
	n := dim + 1

	ata := make([][]float64, n)
	for i := range ata {
		ata[i] = make([]float64, n)
	}
	aty := make([]float64, n)

	for r, row := range X {
		aug := make([]float64, n)
		copy(aug, row)
		aug[dim] = 1
		for i := 0; i < n; i++ {
			aty[i] += aug[i] * y[r]
			for j := 0; j < n; j++ {
				ata[i][j] += aug[i] * aug[j]
			}
		}
	}

	w, err := solve(ata, aty)
	if err != nil {
		return fmt.Errorf("fit: %w", err)
	}
	m.Coefficients = w[:dim]
	m.Intercept = w[dim]
	return nil
}

func (m *LinearModel) Predict(x []float64) float64 {
	out := m.Intercept
	for j, c := range m.Coefficients {
		out += c * x[j]
	}
	return out
}

// solve performs Gaussian elimination with partial pivoting on a copy of
// the inputs.
func solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	m := make([][]float64, n)
	for i := range a {
		m[i] = make([]float64, n+1)
		copy(m[i], a[i])
		m[i][n] = b[i]
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if abs(m[r][col]) > abs(m[pivot][col]) {
				pivot = r
			}
		}
		if abs(m[pivot][col]) < 1e-12 {
			return nil, fmt.Errorf("singular system at column %d", col)
		}
		m[col], m[pivot] = m[pivot], m[col]

		for r := col + 1; r < n; r++ {
			f := m[r][col] / m[col][col]
			for c := col; c <= n; c++ {
				m[r][c] -= f * m[col][c]
			}
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := m[i][n]
		for j := i + 1; j < n; j++ {
			sum -= m[i][j] * x[j]
		}
		x[i] = sum / m[i][i]
	}
	return x, nil
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
