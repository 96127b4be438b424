package formatter

import "github.com/gistlab/gist/internal/summarizer"

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(result *summarizer.Result) ([]byte, error)
}
