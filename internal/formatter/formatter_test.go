package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/gistlab/gist/internal/distance"
	"github.com/gistlab/gist/internal/summarizer"
)

func sampleResult() *summarizer.Result {
	return &summarizer.Result{
		Summary: "The cat sat. The weather was nice.",
		Sentences: []summarizer.SentenceScore{
			{Index: 1, Text: "The cat sat.", Score: 1.0, Embedded: true, Selected: true},
			{Index: 2, Text: "A dog ran far.", Score: 0.4, Embedded: true},
			{Index: 3, Text: "The weather was nice.", Score: 0.9, Embedded: true, Selected: true},
			{Index: 4, Text: "Hm.", Embedded: false},
		},
		Stats: summarizer.Stats{
			TotalSentences: 4,
			Surviving:      3,
			GraphEdges:     2,
			Metric:         distance.MetricHellinger,
		},
	}
}

func TestJSONFormatter(t *testing.T) {
	out, err := NewJSON().Format(sampleResult())
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	var decoded summarizer.Result
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Summary != "The cat sat. The weather was nice." {
		t.Errorf("decoded summary = %q", decoded.Summary)
	}
	if decoded.Stats.Surviving != 3 {
		t.Errorf("decoded surviving = %d, want 3", decoded.Stats.Surviving)
	}
}

func TestTerminalFormatter(t *testing.T) {
	out, err := NewTerminal(false, true).Format(sampleResult())
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	text := string(out)
	if !strings.Contains(text, "The cat sat. The weather was nice.") {
		t.Error("terminal output missing summary text")
	}
	if !strings.Contains(text, "Statistics") {
		t.Error("terminal output missing statistics section")
	}
	if !strings.Contains(text, "Sentence Scores") {
		t.Error("terminal output missing scores section with showScores enabled")
	}
}

func TestTerminalFormatterEmptyResult(t *testing.T) {
	result := &summarizer.Result{Reason: summarizer.ReasonEmptyDocument}
	out, err := NewTerminal(false, false).Format(result)
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if !strings.Contains(string(out), "empty document") {
		t.Error("terminal output does not explain the empty summary")
	}
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdown().Format(sampleResult())
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	text := string(out)
	if !strings.Contains(text, "# Document Summary") {
		t.Error("markdown output missing title")
	}
	if !strings.Contains(text, "> The cat sat. The weather was nice.") {
		t.Error("markdown output missing summary blockquote")
	}
	if !strings.Contains(text, "| 2 | 0.4000 |  | A dog ran far. |") {
		t.Errorf("markdown output missing sentence row:\n%s", text)
	}
}

func TestMarkdownEscapesPipes(t *testing.T) {
	result := &summarizer.Result{
		Summary: "a | b.",
		Sentences: []summarizer.SentenceScore{
			{Index: 1, Text: "a | b.", Score: 1, Embedded: true, Selected: true},
		},
	}
	out, err := NewMarkdown().Format(result)
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if !strings.Contains(string(out), `a \| b.`) {
		t.Error("markdown output did not escape pipe characters")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := strings.Repeat("verylongtext ", 10)
	got := truncate(long, 20)
	if len([]rune(got)) != 20 {
		t.Errorf("truncate() length = %d, want 20", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncate() = %q, want ellipsis suffix", got)
	}
}
