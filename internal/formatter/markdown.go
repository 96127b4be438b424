package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/gistlab/gist/internal/summarizer"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(result *summarizer.Result) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Document Summary\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	if result.Summary != "" {
		b.WriteString("> " + result.Summary + "\n\n")
	} else {
		b.WriteString(fmt.Sprintf("_No summary produced (%s)._\n\n", reasonText(result.Reason)))
	}

	f.writeStatsTable(&b, result)
	f.writeSentenceTable(&b, result)

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeStatsTable(b *strings.Builder, result *summarizer.Result) {
	b.WriteString("## Pipeline\n\n")
	b.WriteString("| Stage | Value |\n")
	b.WriteString("|-------|-------|\n")
	b.WriteString(fmt.Sprintf("| Sentences segmented | %d |\n", result.Stats.TotalSentences))
	b.WriteString(fmt.Sprintf("| Sentences embedded | %d |\n", result.Stats.Surviving))
	b.WriteString(fmt.Sprintf("| Similarity edges | %d |\n", result.Stats.GraphEdges))
	b.WriteString(fmt.Sprintf("| Distance metric | %s |\n", result.Stats.Metric))
	b.WriteString("\n")
}

func (f *markdownFormatter) writeSentenceTable(b *strings.Builder, result *summarizer.Result) {
	if len(result.Sentences) == 0 {
		return
	}

	b.WriteString("## Sentences\n\n")
	b.WriteString("| # | Score | Selected | Sentence |\n")
	b.WriteString("|---|-------|----------|----------|\n")
	for _, s := range result.Sentences {
		mark := ""
		if s.Selected {
			mark = "x"
		}
		score := "-"
		if s.Embedded {
			score = fmt.Sprintf("%.4f", s.Score)
		}
		b.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n",
			s.Index, score, mark, escapePipes(s.Text)))
	}
	b.WriteString("\n")
}

func reasonText(r summarizer.Reason) string {
	switch r {
	case summarizer.ReasonEmptyDocument:
		return "empty document"
	case summarizer.ReasonAllFiltered:
		return "all sentences filtered"
	default:
		return "unknown"
	}
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
