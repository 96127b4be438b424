package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gistlab/gist/internal/summarizer"
)

// Message types shared across UI models
type summaryCompleteMsg struct {
	result *summarizer.Result
}

type summaryErrorMsg struct {
	err error
}

// CreateSummaryCommand creates a tea command that runs the pipeline
func CreateSummaryCommand(ctx context.Context, s *summarizer.Summarizer, document string) tea.Cmd {
	return func() tea.Msg {
		result, err := s.Summarize(ctx, document)
		if err != nil {
			return summaryErrorMsg{err: err}
		}
		return summaryCompleteMsg{result: result}
	}
}
