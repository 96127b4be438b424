package segmenter

import (
	"strings"
	"unicode"
)

// Sentence is one segmented sentence with its original document position.
// Index is 1-based and increases monotonically with no gaps.
type Sentence struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// abbreviations that end with a period but do not terminate a sentence
var abbreviations = map[string]bool{
	"mr":   true,
	"mrs":  true,
	"ms":   true,
	"dr":   true,
	"prof": true,
	"sr":   true,
	"jr":   true,
	"st":   true,
	"vs":   true,
	"etc":  true,
	"e.g":  true,
	"i.e":  true,
	"fig":  true,
	"no":   true,
	"vol":  true,
}

// Segment splits raw document text into an ordered sequence of sentences.
// Boundaries are '.', '!' or '?' followed by whitespace or end of input,
// with guards for common abbreviations and decimal numbers. An empty
// document yields an empty slice, never an error. Nothing is filtered
// here; every non-blank run of text becomes a sentence.
func Segment(text string) []Sentence {
	var sentences []Sentence
	runes := []rune(text)

	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}

		// decimal point: 3.14
		if runes[i] == '.' && i > 0 && i+1 < len(runes) &&
			unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
			continue
		}

		// consume a run of terminators ("..." or "?!")
		end := i
		for end+1 < len(runes) && isTerminator(runes[end+1]) {
			end++
		}

		// a boundary needs trailing whitespace or end of input
		if end+1 < len(runes) && !unicode.IsSpace(runes[end+1]) {
			i = end
			continue
		}

		if runes[i] == '.' && isAbbreviation(runes[start:i]) {
			i = end
			continue
		}

		if s := normalize(string(runes[start : end+1])); s != "" {
			sentences = append(sentences, Sentence{Index: len(sentences) + 1, Text: s})
		}
		i = end
		start = end + 1
	}

	// trailing text without a terminator is still a sentence
	if s := normalize(string(runes[start:])); s != "" {
		sentences = append(sentences, Sentence{Index: len(sentences) + 1, Text: s})
	}

	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// isAbbreviation reports whether the text before a period ends in a known
// abbreviation, so the period does not close the sentence.
func isAbbreviation(before []rune) bool {
	j := len(before)
	for j > 0 && !unicode.IsSpace(before[j-1]) {
		j--
	}
	word := strings.ToLower(strings.TrimRight(string(before[j:]), "."))
	return abbreviations[word]
}

// normalize collapses internal whitespace and trims the sentence so that
// joining all sentences reconstructs the document up to whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
