package simgraph

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func distMatrix(t *testing.T, d [][]float64) *mat.SymDense {
	t.Helper()
	n := len(d)
	dist := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dist.SetSym(i, j, d[i][j])
		}
	}
	return dist
}

func TestBuildSimilarityScaling(t *testing.T) {
	dist := distMatrix(t, [][]float64{
		{0, 0.25},
		{0.25, 0},
	})
	g := Build(dist, 3)

	want := (1 - 0.25) * 100
	if got := g.Weight(0, 1); math.Abs(got-want) > 1e-9 {
		t.Errorf("Weight(0,1) = %v, want %v", got, want)
	}
}

func TestBuildNoSelfLoops(t *testing.T) {
	dist := distMatrix(t, [][]float64{
		{0, 0.5, 0.5},
		{0.5, 0, 0.5},
		{0.5, 0.5, 0},
	})
	g := Build(dist, 3)

	for i := 0; i < 3; i++ {
		if w := g.Weight(i, i); w != 0 {
			t.Errorf("self-loop weight at node %d = %v, want 0", i, w)
		}
	}
}

func TestBuildSymmetric(t *testing.T) {
	dist := distMatrix(t, [][]float64{
		{0, 0.1, 0.8, 0.9, 0.95},
		{0.1, 0, 0.2, 0.85, 0.9},
		{0.8, 0.2, 0, 0.3, 0.7},
		{0.9, 0.85, 0.3, 0, 0.4},
		{0.95, 0.9, 0.7, 0.4, 0},
	})
	g := Build(dist, 2)

	for i := 0; i < g.NodeCount(); i++ {
		for j := 0; j < g.NodeCount(); j++ {
			if g.Weight(i, j) != g.Weight(j, i) {
				t.Errorf("asymmetric weight between %d and %d", i, j)
			}
		}
	}
}

func TestBuildTopKPruning(t *testing.T) {
	// node 0's similarities: to 1: 99, to 2: 98, to 3: 97, to 4: 10.
	// with k=3, the edge 0-4 must only exist if node 4 ranks node 0.
	dist := distMatrix(t, [][]float64{
		{0, 0.01, 0.02, 0.03, 0.90},
		{0.01, 0, 0.01, 0.01, 0.01},
		{0.02, 0.01, 0, 0.01, 0.01},
		{0.03, 0.01, 0.01, 0, 0.01},
		{0.90, 0.01, 0.01, 0.01, 0},
	})
	g := Build(dist, 3)

	// node 4's top-3 are 1, 2, 3 (sim 99 each); node 0 is its worst
	// neighbor, and node 4 is node 0's worst, so the edge must be gone
	if w := g.Weight(0, 4); w != 0 {
		t.Errorf("Weight(0,4) = %v, want 0 after pruning", w)
	}
	// mutual nearest neighbors keep their edge
	if w := g.Weight(0, 1); w == 0 {
		t.Error("Weight(0,1) = 0, want a surviving edge")
	}
}

func TestBuildOneSidedEdgeSurvives(t *testing.T) {
	// node 3 ranks node 0 in its top-1 even though node 0 prefers 1;
	// symmetrization must keep the one-sided edge.
	dist := distMatrix(t, [][]float64{
		{0, 0.1, 0.2, 0.3},
		{0.1, 0, 0.15, 0.9},
		{0.2, 0.15, 0, 0.9},
		{0.3, 0.9, 0.9, 0},
	})
	g := Build(dist, 1)

	if w := g.Weight(0, 3); w == 0 {
		t.Error("one-sided nearest-neighbor edge 0-3 was dropped")
	}
}

func TestBuildFewerNodesThanK(t *testing.T) {
	dist := distMatrix(t, [][]float64{
		{0, 0.2, 0.4},
		{0.2, 0, 0.3},
		{0.4, 0.3, 0},
	})
	g := Build(dist, 3)

	// only 2 other nodes per row, so everything is kept
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3 (complete graph)", g.EdgeCount())
	}
}

func TestBuildZeroSimilarityMakesNoEdge(t *testing.T) {
	dist := distMatrix(t, [][]float64{
		{0, 1},
		{1, 0},
	})
	g := Build(dist, 3)

	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0 for maximally distant nodes", g.EdgeCount())
	}
	if d := g.Degree(0); d != 0 {
		t.Errorf("Degree(0) = %d, want 0", d)
	}
}

func TestBuildNilDistance(t *testing.T) {
	g := Build(nil, 3)
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Errorf("Build(nil) = %d nodes, %d edges; want 0, 0", g.NodeCount(), g.EdgeCount())
	}
	if g.Adjacency() != nil {
		t.Error("Adjacency() of empty graph should be nil")
	}
}

func TestBuildSingleNode(t *testing.T) {
	g := Build(distMatrix(t, [][]float64{{0}}), 3)
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
}

func TestAdjacencyMatchesWeights(t *testing.T) {
	dist := distMatrix(t, [][]float64{
		{0, 0.2, 0.6},
		{0.2, 0, 0.4},
		{0.6, 0.4, 0},
	})
	g := Build(dist, 2)

	adj := g.Adjacency()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if adj.At(i, j) != g.Weight(i, j) {
				t.Errorf("Adjacency()[%d][%d] = %v, want %v", i, j, adj.At(i, j), g.Weight(i, j))
			}
		}
	}
}

func TestEdgeWeightsInRange(t *testing.T) {
	dist := distMatrix(t, [][]float64{
		{0, 0, 0.5},
		{0, 0, 1},
		{0.5, 1, 0},
	})
	g := Build(dist, 2)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			w := g.Weight(i, j)
			if w < 0 || w > 100 {
				t.Errorf("Weight(%d,%d) = %v, outside [0,100]", i, j, w)
			}
		}
	}
}
