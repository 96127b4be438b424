package encoder

import (
	"regexp"
	"strings"
)

// Tokenizer splits text into terms. Implementations own the language and
// locale rules; the pipeline only consumes the resulting term sequence.
type Tokenizer interface {
	Tokenize(text string) []string
}

// RegexpTokenizer lowercases text and splits on any run of characters that
// is not a letter or digit. It is the default tokenizer; callers with
// language-specific needs inject their own.
type RegexpTokenizer struct {
	split *regexp.Regexp
}

// NewTokenizer creates the default regexp-based tokenizer.
func NewTokenizer() *RegexpTokenizer {
	return &RegexpTokenizer{
		split: regexp.MustCompile(`[^\p{L}\p{N}]+`),
	}
}

// Tokenize splits text into lowercase terms.
func (t *RegexpTokenizer) Tokenize(text string) []string {
	text = strings.ToLower(text)
	text = t.split.ReplaceAllString(text, " ")
	return strings.Fields(text)
}
