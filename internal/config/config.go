package config

import (
	"fmt"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Model   ModelConfig   `yaml:"model" json:"model"`
	Summary SummaryConfig `yaml:"summary" json:"summary"`
	Output  OutputConfig  `yaml:"output" json:"output"`
}

// ModelConfig locates the embedding model
type ModelConfig struct {
	Path string `yaml:"path" json:"path"` // JSON file with vocabulary and projection matrix
}

// SummaryConfig configures the summarization pipeline
type SummaryConfig struct {
	TopK      int           `yaml:"top_k" json:"top_k"`           // sentences in the summary
	NeighborK int           `yaml:"neighbor_k" json:"neighbor_k"` // neighbors kept per graph node
	MinTerms  int           `yaml:"min_terms" json:"min_terms"`   // sentences with <= this many terms are dropped
	Metric    string        `yaml:"metric" json:"metric"`         // hellinger|cosine
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`       // wall-clock budget per document
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`               // default verbosity
	ShowScores    bool   `yaml:"show_scores" json:"show_scores"`       // include per-sentence scores
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Model: ModelConfig{
			Path: "",
		},
		Summary: SummaryConfig{
			TopK:      3,
			NeighborK: 3,
			MinTerms:  2,
			Metric:    "hellinger",
			Timeout:   30 * time.Second,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
			ShowScores:    false,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateSummaryConfig(); err != nil {
		return err
	}
	return c.validateOutputConfig()
}

func (c *Config) validateSummaryConfig() error {
	if c.Summary.TopK < 1 {
		return fmt.Errorf("top_k must be greater than 0")
	}
	if c.Summary.NeighborK < 1 {
		return fmt.Errorf("neighbor_k must be greater than 0")
	}
	if c.Summary.MinTerms < 0 {
		return fmt.Errorf("min_terms must be non-negative")
	}
	if c.Summary.Metric != "" {
		validMetrics := map[string]bool{
			"hellinger": true,
			"cosine":    true,
		}
		if !validMetrics[c.Summary.Metric] {
			return fmt.Errorf("invalid metric: %s (must be one of: hellinger, cosine)", c.Summary.Metric)
		}
	}
	if c.Summary.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"text":     true,
			"json":     true,
			"markdown": true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: text, json, markdown)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}

// SampleConfig returns a documented sample configuration file
func SampleConfig() string {
	return `# gist configuration file
version: "1.0"

model:
  # Path to the embedding model JSON file (vocabulary + projection matrix),
  # produced by an external topic-model fitting tool.
  path: ""

summary:
  # Number of sentences in the summary.
  top_k: 3
  # Neighbors each sentence keeps in the similarity graph.
  neighbor_k: 3
  # Sentences with this many terms or fewer are dropped. A value of 0
  # here is treated as unset and keeps the default; use the --min-terms
  # flag to keep single-term sentences.
  min_terms: 2
  # Distance metric: hellinger (probability distributions) or cosine.
  metric: hellinger
  # Wall-clock budget per document.
  timeout: 30s

output:
  # Default output format: text, json or markdown.
  default_format: text
  # Color mode: auto, always or never.
  color_mode: auto
  # Verbose logging by default.
  verbose: false
  # Include per-sentence centrality scores in text output.
  show_scores: false
`
}

// MinimalSampleConfig returns a compact sample configuration with only
// the settings most installations change.
func MinimalSampleConfig() string {
	return `version: "1.0"

model:
  path: ""

summary:
  top_k: 3
  metric: hellinger
`
}
