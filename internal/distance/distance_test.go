package distance

import (
	"math"
	"testing"
)

func TestHellinger(t *testing.T) {
	tests := []struct {
		name     string
		p, q     []float64
		expected float64
	}{
		{
			name:     "identical distributions",
			p:        []float64{0.5, 0.3, 0.2},
			q:        []float64{0.5, 0.3, 0.2},
			expected: 0,
		},
		{
			name:     "disjoint distributions",
			p:        []float64{1, 0},
			q:        []float64{0, 1},
			expected: 1,
		},
		{
			name:     "uniform vs point mass",
			p:        []float64{0.5, 0.5},
			q:        []float64{1, 0},
			expected: math.Sqrt(1 - math.Sqrt(0.5)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hellinger(tt.p, tt.q)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Hellinger() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHellingerSymmetric(t *testing.T) {
	p := []float64{0.7, 0.2, 0.1}
	q := []float64{0.1, 0.1, 0.8}
	if d1, d2 := Hellinger(p, q), Hellinger(q, p); d1 != d2 {
		t.Errorf("Hellinger not symmetric: %v vs %v", d1, d2)
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name     string
		p, q     []float64
		expected float64
	}{
		{
			name:     "identical vectors",
			p:        []float64{0.5, 0.5},
			q:        []float64{0.5, 0.5},
			expected: 0,
		},
		{
			name:     "orthogonal vectors",
			p:        []float64{1, 0},
			q:        []float64{0, 1},
			expected: 1,
		},
		{
			name:     "zero vector",
			p:        []float64{0, 0},
			q:        []float64{1, 0},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.p, tt.q)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Cosine() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMatrix(t *testing.T) {
	vectors := [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0.5, 0.5, 0},
		{0.5, 0.3, 0.2},
	}

	dist, err := Matrix(vectors, MetricHellinger)
	if err != nil {
		t.Fatalf("Matrix() error: %v", err)
	}

	n := dist.SymmetricDim()
	if n != len(vectors) {
		t.Fatalf("matrix dimension = %d, want %d", n, len(vectors))
	}

	for i := 0; i < n; i++ {
		if d := dist.At(i, i); d != 0 {
			t.Errorf("diagonal entry (%d,%d) = %v, want 0", i, i, d)
		}
		for j := 0; j < n; j++ {
			d := dist.At(i, j)
			if d < 0 || d > 1 {
				t.Errorf("entry (%d,%d) = %v, outside [0,1]", i, j, d)
			}
			if d != dist.At(j, i) {
				t.Errorf("matrix not symmetric at (%d,%d)", i, j)
			}
		}
	}
}

func TestMatrixEmptyInput(t *testing.T) {
	dist, err := Matrix(nil, MetricHellinger)
	if err != nil {
		t.Fatalf("Matrix() error: %v", err)
	}
	if dist != nil {
		t.Errorf("Matrix(nil) = %v, want nil", dist)
	}
}

func TestMatrixRejectsUnknownMetric(t *testing.T) {
	if _, err := Matrix([][]float64{{1}}, Metric("manhattan")); err == nil {
		t.Error("Matrix() with unknown metric expected error, got nil")
	}
}

func TestMetricValid(t *testing.T) {
	if !MetricHellinger.Valid() || !MetricCosine.Valid() {
		t.Error("built-in metrics must be valid")
	}
	if Metric("euclidean").Valid() {
		t.Error("unknown metric reported valid")
	}
}
