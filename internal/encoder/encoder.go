package encoder

import (
	"github.com/gistlab/gist/internal/model"
	"github.com/gistlab/gist/internal/segmenter"
)

// TermVector is a sparse mapping from term to occurrence count for one
// sentence.
type TermVector map[string]int

// Total returns the total term count of the vector.
func (tv TermVector) Total() int {
	total := 0
	for _, c := range tv {
		total += c
	}
	return total
}

// Embedded is a sentence that survived filtering, together with its term
// counts and its dense probability vector over embedding dimensions.
type Embedded struct {
	Sentence segmenter.Sentence
	Terms    TermVector
	Vector   []float64
}

// Stats describes what the encoder did with a document's sentences.
type Stats struct {
	Total        int  // sentences in
	Surviving    int  // sentences embedded
	VocabOverlap bool // any sentence shared at least one term with the model
}

// Encoder converts sentences into dense embedded vectors using a shared,
// read-only embedding matrix.
type Encoder struct {
	matrix   *model.Matrix
	tok      Tokenizer
	minTerms int
}

// New creates an Encoder. Sentences with a total term count of minTerms or
// fewer are discarded; near-empty sentences produce unstable embeddings.
func New(matrix *model.Matrix, tok Tokenizer, minTerms int) *Encoder {
	if tok == nil {
		tok = NewTokenizer()
	}
	return &Encoder{matrix: matrix, tok: tok, minTerms: minTerms}
}

// Encode tokenizes each sentence, applies the minimum-term and
// vocabulary-intersection filters, and projects the survivors into the
// embedding space. The projected vector is L1-normalized so it is a
// probability distribution over embedding dimensions, which the Hellinger
// metric downstream requires.
func (e *Encoder) Encode(sentences []segmenter.Sentence) ([]Embedded, Stats) {
	stats := Stats{Total: len(sentences)}
	embedded := make([]Embedded, 0, len(sentences))

	for _, sentence := range sentences {
		terms := e.tok.Tokenize(sentence.Text)

		tv := make(TermVector, len(terms))
		for _, term := range terms {
			tv[term]++
		}

		total := len(terms)
		overlap := false
		for term := range tv {
			if _, ok := e.matrix.Column(term); ok {
				overlap = true
				break
			}
		}
		if overlap {
			stats.VocabOverlap = true
		}

		if total <= e.minTerms || !overlap {
			continue
		}

		vector := e.project(tv, total)
		if vector == nil {
			continue
		}

		embedded = append(embedded, Embedded{Sentence: sentence, Terms: tv, Vector: vector})
	}

	stats.Surviving = len(embedded)
	return embedded, stats
}

// project maps a term vector into the embedding space as a weighted
// combination of the matrix rows restricted to the intersected vocabulary.
func (e *Encoder) project(tv TermVector, total int) []float64 {
	dims := e.matrix.Dimensions()
	vector := make([]float64, dims)

	sum := 0.0
	for term, count := range tv {
		col, ok := e.matrix.Column(term)
		if !ok {
			continue
		}
		p := float64(count) / float64(total)
		for d := 0; d < dims; d++ {
			w := p * e.matrix.Weight(d, col)
			vector[d] += w
			sum += w
		}
	}

	// all intersecting terms had zero weight in every dimension
	if sum == 0 {
		return nil
	}

	for d := range vector {
		vector[d] /= sum
	}
	return vector
}
