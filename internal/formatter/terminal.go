package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"

	"github.com/gistlab/gist/internal/summarizer"
)

// terminalFormatter formats results as plain text for terminal display
// using go-termfmt
type terminalFormatter struct {
	opts       *termfmt.TerminalOptions
	showScores bool
}

// NewTerminal creates a new terminal formatter with optional color support
// and per-sentence score display
func NewTerminal(color, showScores bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = true
	return &terminalFormatter{opts: opts, showScores: showScores}
}

func (f *terminalFormatter) Format(result *summarizer.Result) ([]byte, error) {
	var b strings.Builder

	f.writeSummary(&b, result)
	f.writeStatistics(&b, result)
	if f.showScores {
		f.writeScores(&b, result)
	}

	return []byte(b.String()), nil
}

func (f *terminalFormatter) writeSummary(b *strings.Builder, result *summarizer.Result) {
	symbol := termfmt.GetEmoji("summary", f.opts)
	b.WriteString(symbol + " Summary\n\n")

	switch {
	case result.Summary != "":
		b.WriteString(result.Summary + "\n")
	case result.Reason == summarizer.ReasonEmptyDocument:
		b.WriteString("(empty document)\n")
	case result.Reason == summarizer.ReasonAllFiltered:
		b.WriteString("(no sentence carried enough content to summarize)\n")
	default:
		b.WriteString("(empty summary)\n")
	}
	b.WriteString("\n")
}

func (f *terminalFormatter) writeStatistics(b *strings.Builder, result *summarizer.Result) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Statistics\n")

	selected := 0
	for _, s := range result.Sentences {
		if s.Selected {
			selected++
		}
	}

	items := []termfmt.TreeItem{
		{Label: "Sentences", Value: fmt.Sprintf("%d", result.Stats.TotalSentences)},
		{Label: "Embedded", Value: fmt.Sprintf("%d", result.Stats.Surviving)},
		{Label: "Selected", Value: fmt.Sprintf("%d", selected)},
		{Label: "Graph Edges", Value: fmt.Sprintf("%d", result.Stats.GraphEdges)},
		{Label: "Metric", Value: string(result.Stats.Metric), Last: true},
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts))
	b.WriteString("\n")
}

// writeScores lists every sentence with its centrality score, highest
// first, marking the selected ones.
func (f *terminalFormatter) writeScores(b *strings.Builder, result *summarizer.Result) {
	if len(result.Sentences) == 0 {
		return
	}

	symbol := termfmt.GetEmoji("target", f.opts)
	b.WriteString(symbol + " Sentence Scores\n")

	items := make([]termfmt.TreeItem, 0, len(result.Sentences))
	for i, s := range result.Sentences {
		label := fmt.Sprintf("#%d %s", s.Index, truncate(s.Text, 60))
		value := fmt.Sprintf("%.4f", s.Score)
		switch {
		case s.Selected:
			value += " *"
		case !s.Embedded:
			value = "filtered"
		}
		items = append(items, termfmt.TreeItem{
			Label: label,
			Value: value,
			Last:  i == len(result.Sentences)-1,
		})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts))
	b.WriteString("\n")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
