// Package centrality scores graph nodes by eigenvector centrality: a
// node's importance is proportional to the sum of its neighbors'
// importances.
package centrality

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gistlab/gist/internal/simgraph"
)

const (
	maxIterations = 200
	tolerance     = 1e-10
)

// Scores computes eigenvector centrality for every node of the similarity
// graph via power iteration on the weighted adjacency matrix. Scores are
// normalized so the maximum component is 1. Isolated nodes score 0, and a
// graph with no edges at all yields all-zero scores rather than failing.
func Scores(g *simgraph.Graph) []float64 {
	n := g.NodeCount()
	if n == 0 {
		return nil
	}

	scores := make([]float64, n)
	if g.EdgeCount() == 0 {
		return scores
	}

	adj := g.Adjacency()

	// Iterate on A + cI rather than A. Bipartite graphs (a hub sentence
	// whose neighbors share no edges) have a paired +λ/-λ spectrum, so
	// unshifted power iteration oscillates with period 2 instead of
	// converging. The shift keeps the eigenvectors, and with c at least
	// the spectral radius every shifted eigenvalue is non-negative, so
	// the dominant one is unique on any connected component with edges.
	shift := maxAbsRowSum(adj)
	shifted := mat.NewSymDense(n, nil)
	shifted.CopySym(adj)
	for i := 0; i < n; i++ {
		shifted.SetSym(i, i, adj.At(i, i)+shift)
	}

	x := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x.SetVec(i, 1/float64(n))
	}

	y := mat.NewVecDense(n, nil)
	for iter := 0; iter < maxIterations; iter++ {
		y.MulVec(shifted, x)

		norm := maxComponent(y)
		if norm == 0 {
			// the dominant eigenvalue collapsed; no meaningful ranking
			return scores
		}
		y.ScaleVec(1/norm, y)

		if converged(x, y) {
			x.CopyVec(y)
			break
		}
		x.CopyVec(y)
	}

	for i := 0; i < n; i++ {
		scores[i] = x.AtVec(i)
	}

	// zero-degree nodes get a defined score of 0 regardless of the
	// iteration's residual mass on them
	for i := 0; i < n; i++ {
		if g.Degree(i) == 0 {
			scores[i] = 0
		}
	}
	return scores
}

// maxAbsRowSum is the infinity norm of the matrix, an upper bound on its
// spectral radius.
func maxAbsRowSum(a *mat.SymDense) float64 {
	n, _ := a.Dims()
	maxVal := 0.0
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += math.Abs(a.At(i, j))
		}
		if sum > maxVal {
			maxVal = sum
		}
	}
	return maxVal
}

func maxComponent(v *mat.VecDense) float64 {
	maxVal := 0.0
	for i := 0; i < v.Len(); i++ {
		if a := math.Abs(v.AtVec(i)); a > maxVal {
			maxVal = a
		}
	}
	return maxVal
}

func converged(x, y *mat.VecDense) bool {
	diff := 0.0
	for i := 0; i < x.Len(); i++ {
		diff += math.Abs(x.AtVec(i) - y.AtVec(i))
	}
	return diff < tolerance
}
