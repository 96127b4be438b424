package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.gist.yaml",               // Project-specific config (highest priority)
	"~/.config/gist/config.yaml", // User config
	"/etc/gist/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
	}
}

// LoadConfig loads configuration with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables (GIST_* prefix)
// 3. ./.gist.yaml
// 4. ~/.config/gist/config.yaml
// 5. /etc/gist/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// load lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			path := expandPath(l.configPaths[i])
			if !fileExists(path) {
				continue
			}
			if err := l.loadFromFile(config, path); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to load config from %s: %v\n", path, err)
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile merges a YAML file into the existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated before reaching here
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig)
	return nil
}

// mergeConfigs copies non-zero fields of src over dst. Zero values mean
// "unset" and keep the default, so min_terms: 0 in a file does not
// override the default; pass --min-terms 0 on the command line to keep
// single-term sentences.
func mergeConfigs(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}
	if src.Model.Path != "" {
		dst.Model.Path = src.Model.Path
	}
	if src.Summary.TopK != 0 {
		dst.Summary.TopK = src.Summary.TopK
	}
	if src.Summary.NeighborK != 0 {
		dst.Summary.NeighborK = src.Summary.NeighborK
	}
	if src.Summary.MinTerms != 0 {
		dst.Summary.MinTerms = src.Summary.MinTerms
	}
	if src.Summary.Metric != "" {
		dst.Summary.Metric = src.Summary.Metric
	}
	if src.Summary.Timeout != 0 {
		dst.Summary.Timeout = src.Summary.Timeout
	}
	if src.Output.DefaultFormat != "" {
		dst.Output.DefaultFormat = src.Output.DefaultFormat
	}
	if src.Output.ColorMode != "" {
		dst.Output.ColorMode = src.Output.ColorMode
	}
	if src.Output.Verbose {
		dst.Output.Verbose = true
	}
	if src.Output.ShowScores {
		dst.Output.ShowScores = true
	}
}

// applyEnvOverrides applies GIST_* environment variables to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		"GIST_MODEL_PATH":           func(v string) error { config.Model.Path = v; return nil },
		"GIST_SUMMARY_TOP_K":        func(v string) error { return parseInt(v, &config.Summary.TopK) },
		"GIST_SUMMARY_NEIGHBOR_K":   func(v string) error { return parseInt(v, &config.Summary.NeighborK) },
		"GIST_SUMMARY_MIN_TERMS":    func(v string) error { return parseInt(v, &config.Summary.MinTerms) },
		"GIST_SUMMARY_METRIC":       func(v string) error { config.Summary.Metric = v; return nil },
		"GIST_SUMMARY_TIMEOUT":      func(v string) error { return parseDuration(v, &config.Summary.Timeout) },
		"GIST_OUTPUT_FORMAT":        func(v string) error { config.Output.DefaultFormat = v; return nil },
		"GIST_OUTPUT_COLOR_MODE":    func(v string) error { config.Output.ColorMode = v; return nil },
		"GIST_OUTPUT_VERBOSE":       func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"GIST_OUTPUT_SHOW_SCORES":   func(v string) error { return parseBool(v, &config.Output.ShowScores) },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}
	return nil
}

// GetConfigPaths returns the expanded configuration search paths
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expanded := expandPath(path)
		if fileExists(expanded) {
			return expanded, true
		}
	}
	return "", false
}

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}
	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must be a YAML file (.yaml or .yml)")
	}
	return nil
}

// expandPath expands a leading ~ to the user's home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func parseInt(v string, dst *int) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func parseBool(v string, dst *bool) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

func parseDuration(v string, dst *time.Duration) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
