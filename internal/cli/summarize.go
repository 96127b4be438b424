package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/gistlab/gist/internal/distance"
	"github.com/gistlab/gist/internal/logger"
	"github.com/gistlab/gist/internal/model"
	"github.com/gistlab/gist/internal/summarizer"
	"github.com/gistlab/gist/internal/ui"
)

var (
	summarizeModel      string
	summarizeTopK       int
	summarizeNeighborK  int
	summarizeMinTerms   int
	summarizeMetric     string
	summarizeTimeout    time.Duration
	summarizeNoTUI      bool
	summarizeOutputFile string
	summarizeShowScores bool
)

func newSummarizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize [file...]",
		Short: "Summarize documents or stdin",
		Long: `Extract the most central sentences of one or more documents.

If no file is specified, reads the document from stdin. With several files,
each is summarized independently and the results are printed in input order.

Examples:
  gist summarize --model model.json article.txt
  gist summarize --model model.json --top-k 5 report.txt
  cat article.txt | gist summarize --model model.json
  gist summarize --model model.json --output json a.txt b.txt`,
		Args: cobra.ArbitraryArgs,
		RunE: runSummarize,
	}

	cmd.Flags().StringVarP(&summarizeModel, "model", "m", "", "embedding model file (JSON)")
	cmd.Flags().IntVarP(&summarizeTopK, "top-k", "k", 0, "number of sentences in the summary")
	cmd.Flags().IntVar(&summarizeNeighborK, "neighbors", 0, "neighbors kept per sentence in the similarity graph")
	cmd.Flags().IntVar(&summarizeMinTerms, "min-terms", 0, "drop sentences with this many terms or fewer")
	cmd.Flags().StringVar(&summarizeMetric, "metric", "", "distance metric (hellinger, cosine)")
	cmd.Flags().DurationVar(&summarizeTimeout, "timeout", 0, "summarization timeout")
	cmd.Flags().BoolVar(&summarizeNoTUI, "no-tui", false, "disable terminal UI, output to stdout")
	cmd.Flags().StringVar(&summarizeOutputFile, "output-file", "", "save output to file instead of stdout")
	cmd.Flags().BoolVar(&summarizeShowScores, "show-scores", false, "include per-sentence centrality scores")

	return cmd
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	// Use config values if flags weren't explicitly set
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

	ctx, cancel := context.WithTimeout(context.Background(), summarizeTimeout)
	defer cancel()

	s, err := buildSummarizer()
	if err != nil {
		return err
	}

	docs, names, err := readDocuments(args)
	if err != nil {
		return err
	}

	if len(docs) == 1 {
		return summarizeSingle(ctx, s, docs[0], names[0])
	}
	return summarizeMany(ctx, s, docs, names)
}

// buildSummarizer loads the embedding model and assembles the pipeline.
func buildSummarizer() (*summarizer.Summarizer, error) {
	if summarizeModel == "" {
		return nil, fmt.Errorf("no embedding model: pass --model or set model.path in the config file")
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Loading embedding model: %s\n", summarizeModel)
	}

	matrix, err := model.Load(summarizeModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load embedding model: %w", err)
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Model: %d dimensions, %d vocabulary terms\n",
			matrix.Dimensions(), matrix.VocabSize())
	}

	return summarizer.New(matrix,
		summarizer.WithTopK(summarizeTopK),
		summarizer.WithNeighborK(summarizeNeighborK),
		summarizer.WithMinTerms(summarizeMinTerms),
		summarizer.WithMetric(distance.Metric(summarizeMetric)),
		summarizer.WithLogger(logger.New(isVerbose())),
	)
}

// readDocuments reads every input document up front. With no args it reads
// stdin; otherwise one document per file argument.
func readDocuments(args []string) (docs, names []string, err error) {
	if len(args) == 0 {
		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Reading from stdin...\n")
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []string{string(data)}, []string{"stdin"}, nil
	}

	for _, filename := range args {
		text, err := readDocumentFile(filename)
		if err != nil {
			return nil, nil, err
		}
		docs = append(docs, text)
		names = append(names, filename)
	}
	return docs, names, nil
}

func readDocumentFile(filename string) (string, error) {
	if err := validateFilePath(filename); err != nil {
		return "", fmt.Errorf("invalid file path: %w", err)
	}

	cleanPath := filepath.Clean(filename)

	// #nosec G304 - path is validated above
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Read %d bytes from %s\n", len(data), cleanPath)
	}
	return string(data), nil
}

// summarizeSingle handles the one-document path, including the TUI.
func summarizeSingle(ctx context.Context, s *summarizer.Summarizer, doc, name string) error {
	shouldUseTUI := !summarizeNoTUI && getOutputFormat() == "text" &&
		summarizeOutputFile == "" && !isVerbose()

	if shouldUseTUI {
		return ui.Run(ctx, s, doc, name)
	}

	result, err := s.Summarize(ctx, doc)
	if err != nil {
		return fmt.Errorf("summarization failed: %w", err)
	}

	return formatAndOutput(result)
}

// summarizeMany runs the batch path and reports per-document failures
// without aborting the rest.
func summarizeMany(ctx context.Context, s *summarizer.Summarizer, docs, names []string) error {
	items := s.SummarizeBatch(ctx, docs)

	var failed int
	var output []byte
	for _, item := range items {
		if item.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", names[item.Index], item.Err)
			continue
		}

		formatted, err := formatResult(item.Result)
		if err != nil {
			return err
		}

		header := fmt.Sprintf("=== %s ===\n", names[item.Index])
		output = append(output, []byte(header)...)
		output = append(output, formatted...)
		output = append(output, '\n')
	}

	if err := handleOutputDestination(output); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(docs))
	}
	return nil
}

func validateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	return nil
}
