package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gistlab/gist/internal/emoji"
	"github.com/gistlab/gist/internal/summarizer"
)

// Model renders a single summarization run in the terminal
type Model struct {
	ctx        context.Context
	s          *summarizer.Summarizer
	document   string
	name       string
	width      int
	height     int
	result     *summarizer.Result
	err        error
	working    bool
	showScores bool
	ready      bool
	quitting   bool
}

// NewModel creates a new summary viewer model
func NewModel(ctx context.Context, s *summarizer.Summarizer, document, name string) *Model {
	return &Model{
		ctx:      ctx,
		s:        s,
		document: document,
		name:     name,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	m.working = true
	return tea.Batch(
		tea.EnterAltScreen,
		CreateSummaryCommand(m.ctx, m.s, m.document),
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "s":
			m.showScores = !m.showScores
		}

	case summaryCompleteMsg:
		m.result = msg.result
		m.working = false

	case summaryErrorMsg:
		m.err = msg.err
		m.working = false
	}

	return m, nil
}

// View renders the model
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.quitting {
		return ""
	}

	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6"))

	var content string
	switch {
	case m.working:
		content = emoji.GetEmoji("document") + " Summarizing " + m.name + "...\n\nPress 'q' to quit"
	case m.err != nil:
		content = emoji.GetEmoji("error") + " Summarization failed\n\n" +
			m.err.Error() + "\n\nPress 'q' to quit"
	case m.result != nil:
		content = m.renderResult()
	default:
		content = "No summary available\n\nPress 'q' to quit"
	}

	return style.Render(content)
}

func (m *Model) renderResult() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6"))
	b.WriteString(titleStyle.Render(emoji.GetEmoji("summary")+" Summary: "+m.name) + "\n\n")

	if m.result.Summary == "" {
		switch m.result.Reason {
		case summarizer.ReasonEmptyDocument:
			b.WriteString("The document contains no sentences.\n")
		case summarizer.ReasonAllFiltered:
			b.WriteString("Every sentence was too short to embed.\n")
		}
	} else {
		summaryStyle := lipgloss.NewStyle().Width(maxInt(20, m.width-10))
		b.WriteString(summaryStyle.Render(m.result.Summary) + "\n")
	}

	b.WriteString("\n" + emoji.GetEmoji("statistics") + " Pipeline\n")
	fmt.Fprintf(&b, "Sentences: %d  Embedded: %d  Graph Edges: %d  Metric: %s\n",
		m.result.Stats.TotalSentences, m.result.Stats.Surviving,
		m.result.Stats.GraphEdges, m.result.Stats.Metric)

	if m.showScores {
		b.WriteString("\n" + emoji.GetEmoji("sentence") + " Sentence Scores\n")
		for _, sc := range m.result.Sentences {
			marker := "  "
			if sc.Selected {
				marker = emoji.GetEmoji("target") + " "
			}
			fmt.Fprintf(&b, "%s%2d. %s %.3f\n", marker, sc.Index, scoreBar(sc.Score), sc.Score)
		}
	}

	b.WriteString("\nPress 's' to toggle scores, 'q' to quit")
	return b.String()
}

// scoreBar renders a ten character centrality bar
func scoreBar(score float64) string {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	filled := int(score * 10)

	if emoji.IsEmojiDisabled() {
		return "[" + strings.Repeat("#", filled) + strings.Repeat("-", 10-filled) + "]"
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Run runs the summary viewer
func Run(ctx context.Context, s *summarizer.Summarizer, document, name string) error {
	model := NewModel(ctx, s, document, name)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
