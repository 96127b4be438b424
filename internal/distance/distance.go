// Package distance computes pairwise distances between embedded sentence
// vectors treated as probability distributions over embedding dimensions.
package distance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Metric selects the pairwise distance function.
type Metric string

// Supported metrics. Hellinger is the default and assumes non-negative,
// L1-normalized vectors. Cosine is the substitute for embedding sources
// that do not guarantee probability distributions.
const (
	MetricHellinger Metric = "hellinger"
	MetricCosine    Metric = "cosine"
)

// Valid reports whether the metric is one of the supported values.
func (m Metric) Valid() bool {
	return m == MetricHellinger || m == MetricCosine
}

// Matrix computes the symmetric pairwise distance matrix for the given
// vectors. All entries lie in [0, 1] and the diagonal is exactly zero.
// A nil matrix is returned for zero vectors.
func Matrix(vectors [][]float64, metric Metric) (*mat.SymDense, error) {
	if !metric.Valid() {
		return nil, fmt.Errorf("unsupported distance metric %q", metric)
	}

	n := len(vectors)
	if n == 0 {
		return nil, nil
	}

	dist := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var d float64
			switch metric {
			case MetricCosine:
				d = Cosine(vectors[i], vectors[j])
			default:
				d = Hellinger(vectors[i], vectors[j])
			}
			dist.SetSym(i, j, d)
		}
	}
	return dist, nil
}

// Hellinger returns the Hellinger distance between two probability
// distributions: sqrt(1 - sum_d sqrt(p[d]*q[d])). Clamped to [0, 1] to
// absorb floating-point drift.
func Hellinger(p, q []float64) float64 {
	bc := 0.0
	for d := range p {
		bc += math.Sqrt(p[d] * q[d])
	}
	return clamp01(math.Sqrt(clamp01(1 - bc)))
}

// Cosine returns 1 minus the cosine similarity, clamped to [0, 1]. For the
// non-negative vectors this pipeline produces, cosine similarity is already
// in [0, 1], so the result is a bounded distance. Zero vectors are treated
// as maximally distant.
func Cosine(p, q []float64) float64 {
	var dot, normP, normQ float64
	for d := range p {
		dot += p[d] * q[d]
		normP += p[d] * p[d]
		normQ += q[d] * q[d]
	}
	if normP == 0 || normQ == 0 {
		return 1
	}
	sim := dot / (math.Sqrt(normP) * math.Sqrt(normQ))
	return clamp01(1 - sim)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
