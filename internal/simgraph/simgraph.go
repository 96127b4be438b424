// Package simgraph turns a sentence distance matrix into a sparsified,
// undirected weighted similarity graph.
package simgraph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/mat"
)

// similarityScale maps distances in [0,1] onto edge weights in [0,100].
const similarityScale = 100.0

// Graph is an undirected weighted similarity graph over surviving
// sentences. Node IDs are positions in the distance matrix. There are no
// self-loops, and each node keeps edges only to neighbors that ranked in
// someone's top-K.
type Graph struct {
	g     *simple.WeightedUndirectedGraph
	n     int
	edges int
}

// Build converts the distance matrix to similarities, prunes each row to
// its top-K most similar neighbors, and symmetrizes with an element-wise
// maximum: an edge survives if either endpoint ranks the other in its
// top-K. With K or fewer other nodes, all neighbors are kept. A nil
// distance matrix yields an empty graph.
func Build(dist *mat.SymDense, neighborK int) *Graph {
	if dist == nil {
		return &Graph{g: simple.NewWeightedUndirectedGraph(0, 0)}
	}

	n := dist.SymmetricDim()
	sim := similarities(dist)
	kept := pruneToNearest(sim, neighborK)

	g := simple.NewWeightedUndirectedGraph(0, 0)
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}

	edges := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			// symmetrize: max of the directed relation and its transpose
			w := kept[i][j]
			if kept[j][i] > w {
				w = kept[j][i]
			}
			if w <= 0 {
				continue
			}
			g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(i), simple.Node(j), w))
			edges++
		}
	}

	return &Graph{g: g, n: n, edges: edges}
}

// similarities converts distances to similarity scores in [0,100] with a
// zero diagonal.
func similarities(dist *mat.SymDense) [][]float64 {
	n := dist.SymmetricDim()
	sim := make([][]float64, n)
	for i := 0; i < n; i++ {
		sim[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			sim[i][j] = (1 - dist.At(i, j)) * similarityScale
		}
	}
	return sim
}

// pruneToNearest zeroes every row entry that is not among the row's top-K
// similarities. Ties break toward the lower column index so results are
// deterministic. Rows with K or fewer candidates keep everything.
func pruneToNearest(sim [][]float64, k int) [][]float64 {
	n := len(sim)
	kept := make([][]float64, n)

	for i := 0; i < n; i++ {
		kept[i] = make([]float64, n)

		cols := make([]int, 0, n-1)
		for j := 0; j < n; j++ {
			if j != i {
				cols = append(cols, j)
			}
		}
		sort.SliceStable(cols, func(a, b int) bool {
			return sim[i][cols[a]] > sim[i][cols[b]]
		})

		limit := k
		if limit > len(cols) {
			limit = len(cols)
		}
		for _, j := range cols[:limit] {
			kept[i][j] = sim[i][j]
		}
	}
	return kept
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return g.n
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Weight returns the edge weight between nodes i and j, or 0 when no edge
// exists. Self-queries return 0.
func (g *Graph) Weight(i, j int) float64 {
	if i == j {
		return 0
	}
	w, ok := g.g.Weight(int64(i), int64(j))
	if !ok {
		return 0
	}
	return w
}

// Degree returns the number of edges incident to node i.
func (g *Graph) Degree(i int) int {
	if i < 0 || i >= g.n {
		return 0
	}
	return g.g.From(int64(i)).Len()
}

// Adjacency returns the dense symmetric weighted adjacency matrix, or nil
// for an empty graph.
func (g *Graph) Adjacency() *mat.SymDense {
	if g.n == 0 {
		return nil
	}
	adj := mat.NewSymDense(g.n, nil)
	for i := 0; i < g.n; i++ {
		for j := i + 1; j < g.n; j++ {
			if w := g.Weight(i, j); w > 0 {
				adj.SetSym(i, j, w)
			}
		}
	}
	return adj
}
