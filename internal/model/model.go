package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedMatrix reports a structurally invalid embedding matrix:
// ragged rows, NaN or negative weights, or an empty vocabulary. It is
// surfaced immediately and never silently coerced.
var ErrMalformedMatrix = errors.New("malformed embedding matrix")

// Matrix is a term-embedding projection matrix (dimensions x vocabulary).
// Each row is one embedding dimension expressed as weights over vocabulary
// terms. A Matrix is immutable after construction and safe to share across
// concurrent summarization calls without locking.
type Matrix struct {
	terms []string
	index map[string]int
	rows  [][]float64
}

// New builds a Matrix from a vocabulary and its row weights. The rows must
// form a rectangular dims x len(terms) matrix of finite, non-negative
// values; anything else is ErrMalformedMatrix.
func New(terms []string, rows [][]float64) (*Matrix, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", ErrMalformedMatrix)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no embedding dimensions", ErrMalformedMatrix)
	}

	index := make(map[string]int, len(terms))
	for i, term := range terms {
		if term == "" {
			return nil, fmt.Errorf("%w: empty term at position %d", ErrMalformedMatrix, i)
		}
		if _, dup := index[term]; dup {
			return nil, fmt.Errorf("%w: duplicate term %q", ErrMalformedMatrix, term)
		}
		index[term] = i
	}

	for d, row := range rows {
		if len(row) != len(terms) {
			return nil, fmt.Errorf("%w: row %d has %d weights, vocabulary has %d terms",
				ErrMalformedMatrix, d, len(row), len(terms))
		}
		for j, w := range row {
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return nil, fmt.Errorf("%w: non-finite weight at row %d column %d", ErrMalformedMatrix, d, j)
			}
			if w < 0 {
				return nil, fmt.Errorf("%w: negative weight at row %d column %d", ErrMalformedMatrix, d, j)
			}
		}
	}

	return &Matrix{terms: copyTerms(terms), index: index, rows: copyRows(rows)}, nil
}

// Dimensions returns the number of embedding dimensions (rows).
func (m *Matrix) Dimensions() int {
	return len(m.rows)
}

// VocabSize returns the number of vocabulary terms (columns).
func (m *Matrix) VocabSize() int {
	return len(m.terms)
}

// Terms returns a copy of the vocabulary in column order.
func (m *Matrix) Terms() []string {
	return copyTerms(m.terms)
}

// Column returns the column index for a vocabulary term.
func (m *Matrix) Column(term string) (int, bool) {
	col, ok := m.index[term]
	return col, ok
}

// Weight returns the projection weight for one embedding dimension and
// one vocabulary column.
func (m *Matrix) Weight(dim, col int) float64 {
	return m.rows[dim][col]
}

func copyTerms(terms []string) []string {
	out := make([]string, len(terms))
	copy(out, terms)
	return out
}

func copyRows(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}
