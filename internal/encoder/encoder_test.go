package encoder

import (
	"math"
	"reflect"
	"testing"

	"github.com/gistlab/gist/internal/model"
	"github.com/gistlab/gist/internal/segmenter"
)

func TestTokenize(t *testing.T) {
	tok := NewTokenizer()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple sentence",
			input:    "A cat sat.",
			expected: []string{"a", "cat", "sat"},
		},
		{
			name:     "punctuation and case",
			input:    "Hello, World! It's 2024.",
			expected: []string{"hello", "world", "it", "s", "2024"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "only punctuation",
			input:    "... !!! ???",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Tokenize(tt.input)
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func identityModel(t *testing.T, terms ...string) *model.Matrix {
	t.Helper()
	rows := make([][]float64, len(terms))
	for i := range terms {
		rows[i] = make([]float64, len(terms))
		rows[i][i] = 1
	}
	m, err := model.New(terms, rows)
	if err != nil {
		t.Fatalf("model.New() error: %v", err)
	}
	return m
}

func TestEncodeFiltersShortSentences(t *testing.T) {
	m := identityModel(t, "cat", "dog", "bird")
	enc := New(m, nil, 2)

	sentences := segmenter.Segment("Cat dog. A cat saw a dog and a bird today.")
	embedded, stats := enc.Encode(sentences)

	if stats.Total != 2 {
		t.Fatalf("stats.Total = %d, want 2", stats.Total)
	}
	// "Cat dog." has 2 terms, which is <= minTerms and must be dropped.
	if len(embedded) != 1 {
		t.Fatalf("Encode() kept %d sentences, want 1", len(embedded))
	}
	if embedded[0].Sentence.Index != 2 {
		t.Errorf("surviving sentence index = %d, want 2", embedded[0].Sentence.Index)
	}
	if stats.Surviving != 1 {
		t.Errorf("stats.Surviving = %d, want 1", stats.Surviving)
	}
}

func TestEncodeDropsSentencesOutsideVocabulary(t *testing.T) {
	m := identityModel(t, "cat", "dog")
	enc := New(m, nil, 2)

	sentences := segmenter.Segment("Quantum flux capacitors hum loudly. The cat chased the dog around.")
	embedded, stats := enc.Encode(sentences)

	if len(embedded) != 1 {
		t.Fatalf("Encode() kept %d sentences, want 1", len(embedded))
	}
	if embedded[0].Sentence.Index != 2 {
		t.Errorf("surviving sentence index = %d, want 2", embedded[0].Sentence.Index)
	}
	if !stats.VocabOverlap {
		t.Error("stats.VocabOverlap = false, want true")
	}
}

func TestEncodeReportsNoOverlap(t *testing.T) {
	m := identityModel(t, "cat", "dog")
	enc := New(m, nil, 2)

	sentences := segmenter.Segment("Quantum flux capacitors hum loudly near the reactor core.")
	embedded, stats := enc.Encode(sentences)

	if len(embedded) != 0 {
		t.Fatalf("Encode() kept %d sentences, want 0", len(embedded))
	}
	if stats.VocabOverlap {
		t.Error("stats.VocabOverlap = true, want false")
	}
}

func TestEncodeVectorIsDistribution(t *testing.T) {
	m := identityModel(t, "cat", "dog", "bird")
	enc := New(m, nil, 2)

	sentences := segmenter.Segment("The cat and the dog watched a bird together.")
	embedded, _ := enc.Encode(sentences)

	if len(embedded) != 1 {
		t.Fatalf("Encode() kept %d sentences, want 1", len(embedded))
	}

	sum := 0.0
	for _, v := range embedded[0].Vector {
		if v < 0 {
			t.Errorf("vector component %v is negative", v)
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("vector sums to %v, want 1", sum)
	}
	if len(embedded[0].Vector) != m.Dimensions() {
		t.Errorf("vector has %d dimensions, want %d", len(embedded[0].Vector), m.Dimensions())
	}
}

func TestEncodeIdentityProjection(t *testing.T) {
	// With an identity matrix, a sentence mentioning only "cat" must land
	// entirely on the cat dimension.
	m := identityModel(t, "cat", "dog", "weather")
	enc := New(m, nil, 2)

	sentences := segmenter.Segment("A cat sat on the cat mat near another cat.")
	embedded, _ := enc.Encode(sentences)

	if len(embedded) != 1 {
		t.Fatalf("Encode() kept %d sentences, want 1", len(embedded))
	}
	v := embedded[0].Vector
	if v[0] != 1 || v[1] != 0 || v[2] != 0 {
		t.Errorf("projected vector = %v, want [1 0 0]", v)
	}
}

func TestEncodeEmptyInput(t *testing.T) {
	m := identityModel(t, "cat")
	enc := New(m, nil, 2)

	embedded, stats := enc.Encode(nil)
	if len(embedded) != 0 || stats.Total != 0 {
		t.Errorf("Encode(nil) = %d embedded, %d total; want 0, 0", len(embedded), stats.Total)
	}
}

func TestTermVectorTotal(t *testing.T) {
	tv := TermVector{"cat": 2, "dog": 1}
	if got := tv.Total(); got != 3 {
		t.Errorf("Total() = %d, want 3", got)
	}
}
