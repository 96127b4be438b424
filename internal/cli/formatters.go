package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gistlab/gist/internal/formatter"
	"github.com/gistlab/gist/internal/summarizer"
)

// getFormatter returns the appropriate formatter for the given format
func getFormatter(format string) (formatter.Formatter, error) {
	switch format {
	case "json":
		return formatter.NewJSON(), nil
	case "markdown", "md":
		return formatter.NewMarkdown(), nil
	case "text", "terminal", "":
		return formatter.NewTerminal(useColor(), summarizeShowScores), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// formatResult renders a single result with the selected formatter.
func formatResult(result *summarizer.Result) ([]byte, error) {
	f, err := getFormatter(getOutputFormat())
	if err != nil {
		return nil, fmt.Errorf("failed to get formatter: %w", err)
	}

	output, err := f.Format(result)
	if err != nil {
		return nil, fmt.Errorf("failed to format output: %w", err)
	}
	return output, nil
}

// formatAndOutput formats a result and writes it to the selected destination.
func formatAndOutput(result *summarizer.Result) error {
	output, err := formatResult(result)
	if err != nil {
		return err
	}
	return handleOutputDestination(output)
}

// handleOutputDestination writes output to file or stdout
func handleOutputDestination(output []byte) error {
	if summarizeOutputFile != "" {
		if err := writeOutputBytesToFile(output, summarizeOutputFile); err != nil {
			return fmt.Errorf("failed to write output to file: %w", err)
		}

		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Output saved to: %s\n", summarizeOutputFile)
		}
	} else {
		fmt.Print(string(output))
	}

	return nil
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return nil
}
