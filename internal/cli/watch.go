package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/gistlab/gist/internal/summarizer"
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Watch a document and re-summarize on change",
		Long: `Monitor a document file and print a fresh summary whenever it changes.

Uses file system notifications to detect writes and re-runs the full pipeline
on the updated document. Press Ctrl+C to stop watching.

Examples:
  gist watch --model model.json draft.txt
  gist watch --model model.json --top-k 5 notes.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().StringVarP(&summarizeModel, "model", "m", "", "embedding model file (JSON)")
	cmd.Flags().IntVarP(&summarizeTopK, "top-k", "k", 0, "number of sentences in the summary")
	cmd.Flags().IntVar(&summarizeNeighborK, "neighbors", 0, "neighbors kept per sentence in the similarity graph")
	cmd.Flags().IntVar(&summarizeMinTerms, "min-terms", 0, "drop sentences with this many terms or fewer")
	cmd.Flags().StringVar(&summarizeMetric, "metric", "", "distance metric (hellinger, cosine)")
	cmd.Flags().DurationVar(&summarizeTimeout, "timeout", 0, "timeout per summarization run")
	cmd.Flags().BoolVar(&summarizeShowScores, "show-scores", false, "include per-sentence centrality scores")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	if !cmd.Flag("model").Changed && cfg.Model.Path != "" {
		summarizeModel = cfg.Model.Path
	}
	if !cmd.Flag("top-k").Changed {
		summarizeTopK = cfg.Summary.TopK
	}
	if !cmd.Flag("neighbors").Changed {
		summarizeNeighborK = cfg.Summary.NeighborK
	}
	if !cmd.Flag("min-terms").Changed {
		summarizeMinTerms = cfg.Summary.MinTerms
	}
	if !cmd.Flag("metric").Changed {
		summarizeMetric = cfg.Summary.Metric
	}
	if !cmd.Flag("timeout").Changed {
		summarizeTimeout = cfg.Summary.Timeout
	}
	if !cmd.Flag("show-scores").Changed {
		summarizeShowScores = cfg.Output.ShowScores
	}

	filename := args[0]

	s, err := buildSummarizer()
	if err != nil {
		return err
	}

	watcher, cleanup, err := setupFileWatcher(filename)
	if err != nil {
		return err
	}
	defer cleanup()

	// Summarize the current contents before waiting for changes
	if err := resummarize(s, filename); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	return runWatchLoop(watcher, s, filename)
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// setupFileWatcher creates and configures the file system watcher
func setupFileWatcher(filename string) (*fsnotify.Watcher, func(), error) {
	if err := validateFilePath(filename); err != nil {
		return nil, nil, fmt.Errorf("invalid file path: %w", err)
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Watching file: %s\n", filename)
		fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop...\n\n")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Clean(filename)); err != nil {
		cleanupWatcher(watcher)
		return nil, nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, func() { cleanupWatcher(watcher) }, nil
}

// runWatchLoop runs the main watch loop with signal handling
func runWatchLoop(watcher *fsnotify.Watcher, s *summarizer.Summarizer, filename string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-signals:
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, stopping...\n")
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if err := handleWatchEvent(event, s, filename); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
			}
		}
	}
}

// handleWatchEvent processes file system events
func handleWatchEvent(event fsnotify.Event, s *summarizer.Summarizer, filename string) error {
	// Only process write events
	if event.Op&fsnotify.Write != fsnotify.Write {
		return nil
	}
	return resummarize(s, filename)
}

// resummarize reads the whole document and prints a fresh summary.
func resummarize(s *summarizer.Summarizer, filename string) error {
	ctx, cancel := context.WithTimeout(context.Background(), summarizeTimeout)
	defer cancel()

	text, err := readDocumentFile(filename)
	if err != nil {
		return err
	}

	result, err := s.Summarize(ctx, text)
	if err != nil {
		return fmt.Errorf("summarization failed: %w", err)
	}

	fmt.Printf("--- %s ---\n", time.Now().Format("15:04:05"))
	return formatAndOutput(result)
}
