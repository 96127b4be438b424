// Package summarizer extracts a short representative summary from a
// document by ranking its sentences with eigenvector centrality over a
// semantic similarity graph.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/gistlab/gist/internal/centrality"
	"github.com/gistlab/gist/internal/distance"
	"github.com/gistlab/gist/internal/encoder"
	"github.com/gistlab/gist/internal/model"
	"github.com/gistlab/gist/internal/segmenter"
	"github.com/gistlab/gist/internal/simgraph"
)

// ErrVocabularyMismatch reports a document that shares no terms at all
// with the embedding model vocabulary.
var ErrVocabularyMismatch = errors.New("document shares no terms with the embedding vocabulary")

// Reason explains an empty summary that is not an error.
type Reason string

// Empty-summary reasons.
const (
	ReasonNone          Reason = ""
	ReasonEmptyDocument Reason = "empty_document"
	ReasonAllFiltered   Reason = "all_sentences_filtered"
)

// SentenceScore is one segmented sentence with its centrality score.
// Sentences dropped by the encoder carry a zero score and Embedded=false.
type SentenceScore struct {
	Index    int     `json:"index"`
	Text     string  `json:"text"`
	Score    float64 `json:"score"`
	Embedded bool    `json:"embedded"`
	Selected bool    `json:"selected"`
}

// Stats describes the pipeline run behind a Result.
type Stats struct {
	TotalSentences int             `json:"total_sentences"`
	Surviving      int             `json:"surviving_sentences"`
	GraphEdges     int             `json:"graph_edges"`
	Metric         distance.Metric `json:"metric"`
}

// Result is the outcome of summarizing one document.
type Result struct {
	Summary   string          `json:"summary"`
	Reason    Reason          `json:"reason,omitempty"`
	Sentences []SentenceScore `json:"sentences"`
	Stats     Stats           `json:"stats"`
}

// options holds the pipeline tunables and their defaults.
type options struct {
	topK      int
	neighborK int
	minTerms  int
	metric    distance.Metric
	tokenizer encoder.Tokenizer
	logger    *zap.Logger
}

// Option configures a Summarizer.
type Option func(*options)

// WithTopK sets how many sentences the summary keeps (default 3).
func WithTopK(k int) Option {
	return func(o *options) { o.topK = k }
}

// WithNeighborK sets the per-node neighbor limit for graph sparsification
// (default 3).
func WithNeighborK(k int) Option {
	return func(o *options) { o.neighborK = k }
}

// WithMinTerms sets the term-count threshold below which a sentence is
// discarded (default 2; a sentence needs more than this many terms).
func WithMinTerms(n int) Option {
	return func(o *options) { o.minTerms = n }
}

// WithMetric selects the pairwise distance metric (default Hellinger).
func WithMetric(m distance.Metric) Option {
	return func(o *options) { o.metric = m }
}

// WithTokenizer injects a custom tokenizer.
func WithTokenizer(t encoder.Tokenizer) Option {
	return func(o *options) { o.tokenizer = t }
}

// WithLogger attaches a logger; the default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Summarizer runs the extractive summarization pipeline against one
// shared, read-only embedding model. It is safe for concurrent use.
type Summarizer struct {
	matrix *model.Matrix
	enc    *encoder.Encoder
	opts   options
}

// New creates a Summarizer for the given embedding model. The model is
// validated here, before any document is processed, so malformed input
// fails fast.
func New(matrix *model.Matrix, opts ...Option) (*Summarizer, error) {
	if matrix == nil {
		return nil, fmt.Errorf("%w: nil matrix", model.ErrMalformedMatrix)
	}

	o := options{
		topK:      3,
		neighborK: 3,
		minTerms:  2,
		metric:    distance.MetricHellinger,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.topK < 1 {
		return nil, fmt.Errorf("top-k must be at least 1, got %d", o.topK)
	}
	if o.neighborK < 1 {
		return nil, fmt.Errorf("neighbor-k must be at least 1, got %d", o.neighborK)
	}
	if o.minTerms < 0 {
		return nil, fmt.Errorf("min-terms must not be negative, got %d", o.minTerms)
	}
	if !o.metric.Valid() {
		return nil, fmt.Errorf("unsupported distance metric %q", o.metric)
	}

	return &Summarizer{
		matrix: matrix,
		enc:    encoder.New(matrix, o.tokenizer, o.minTerms),
		opts:   o,
	}, nil
}

// Summarize runs the full pipeline on one document: segmentation,
// encoding, projection, pairwise distances, graph construction, centrality
// ranking and selection. An empty document or one whose sentences are all
// filtered yields an empty summary with a Reason, not an error. A document
// with no vocabulary overlap at all is ErrVocabularyMismatch.
func (s *Summarizer) Summarize(ctx context.Context, text string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := s.opts.logger

	sentences := segmenter.Segment(text)
	if len(sentences) == 0 {
		log.Debug("document yielded no sentences")
		return &Result{Reason: ReasonEmptyDocument, Stats: Stats{Metric: s.opts.metric}}, nil
	}

	embedded, encStats := s.enc.Encode(sentences)
	log.Debug("encoded sentences",
		zap.Int("total", encStats.Total),
		zap.Int("surviving", encStats.Surviving))

	if !encStats.VocabOverlap {
		return nil, ErrVocabularyMismatch
	}
	if len(embedded) == 0 {
		return &Result{
			Reason:    ReasonAllFiltered,
			Sentences: scoreAll(sentences, nil, nil),
			Stats: Stats{
				TotalSentences: encStats.Total,
				Metric:         s.opts.metric,
			},
		}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vectors := make([][]float64, len(embedded))
	for i, e := range embedded {
		vectors[i] = e.Vector
	}

	dist, err := distance.Matrix(vectors, s.opts.metric)
	if err != nil {
		return nil, fmt.Errorf("distance computation: %w", err)
	}

	graph := simgraph.Build(dist, s.opts.neighborK)
	scores := centrality.Scores(graph)
	log.Debug("built similarity graph",
		zap.Int("nodes", graph.NodeCount()),
		zap.Int("edges", graph.EdgeCount()))

	selected := s.selectSentences(embedded, scores)

	return &Result{
		Summary:   assemble(embedded, selected),
		Sentences: scoreAll(sentences, embedded, scoresByIndex(embedded, scores, selected)),
		Stats: Stats{
			TotalSentences: encStats.Total,
			Surviving:      encStats.Surviving,
			GraphEdges:     graph.EdgeCount(),
			Metric:         s.opts.metric,
		},
	}, nil
}

// selectSentences picks the top-K surviving sentences by centrality score.
// Ties break toward the earlier sentence so repeated runs agree.
func (s *Summarizer) selectSentences(embedded []encoder.Embedded, scores []float64) map[int]bool {
	order := make([]int, len(embedded))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if scores[order[a]] != scores[order[b]] {
			return scores[order[a]] > scores[order[b]]
		}
		return embedded[order[a]].Sentence.Index < embedded[order[b]].Sentence.Index
	})

	limit := s.opts.topK
	if limit > len(order) {
		limit = len(order)
	}

	selected := make(map[int]bool, limit)
	for _, i := range order[:limit] {
		selected[i] = true
	}
	return selected
}

// assemble restores reading order over the selected sentences and joins
// them with a single space.
func assemble(embedded []encoder.Embedded, selected map[int]bool) string {
	var picked []segmenter.Sentence
	for i, e := range embedded {
		if selected[i] {
			picked = append(picked, e.Sentence)
		}
	}
	sort.Slice(picked, func(a, b int) bool { return picked[a].Index < picked[b].Index })

	parts := make([]string, len(picked))
	for i, s := range picked {
		parts[i] = s.Text
	}
	return strings.Join(parts, " ")
}

type sentenceMark struct {
	score    float64
	selected bool
}

// scoresByIndex maps original sentence indices to their centrality scores
// and selection state.
func scoresByIndex(embedded []encoder.Embedded, scores []float64, selected map[int]bool) map[int]sentenceMark {
	marks := make(map[int]sentenceMark, len(embedded))
	for i, e := range embedded {
		marks[e.Sentence.Index] = sentenceMark{score: scores[i], selected: selected[i]}
	}
	return marks
}

// scoreAll produces the per-sentence report covering every segmented
// sentence, embedded or not.
func scoreAll(sentences []segmenter.Sentence, embedded []encoder.Embedded, marks map[int]sentenceMark) []SentenceScore {
	embeddedIdx := make(map[int]bool, len(embedded))
	for _, e := range embedded {
		embeddedIdx[e.Sentence.Index] = true
	}

	out := make([]SentenceScore, len(sentences))
	for i, s := range sentences {
		sc := SentenceScore{Index: s.Index, Text: s.Text, Embedded: embeddedIdx[s.Index]}
		if m, ok := marks[s.Index]; ok {
			sc.Score = m.score
			sc.Selected = m.selected
		}
		out[i] = sc
	}
	return out
}
