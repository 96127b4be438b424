package formatter

import (
	"encoding/json"

	"github.com/gistlab/gist/internal/summarizer"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(result *summarizer.Result) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
