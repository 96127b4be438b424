package cli

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/spf13/cobra"

	"github.com/gistlab/gist/internal/config"
	"github.com/gistlab/gist/internal/emoji"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string
)

var (
	globalConfig *config.Config
	configOnce   sync.Once
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gist",
		Short: "Extractive Text Summarization Tool",
		Long: `Gist is an extractive summarization tool that picks the most central
sentences of a document and returns them in their original order.

Sentences are embedded with a pretrained topic-model matrix, connected in a
nearest-neighbor similarity graph, and ranked by eigenvector centrality.
Documents can come from files or stdin, with one-shot and watch modes.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			// Set emoji state for all components
			emoji.SetEmojiDisabled(noEmoji)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (text, json, markdown)")

	// Add subcommands
	rootCmd.AddCommand(newSummarizeCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			fmt.Printf("Gist %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// GetGlobalConfig returns the merged configuration, loading it on first use.
// Load errors fall back to defaults so commands stay usable without a config
// file.
func GetGlobalConfig() *config.Config {
	configOnce.Do(func() {
		loader := config.NewLoader()
		cfg, err := loader.LoadConfig(cfgFile)
		if err != nil {
			globalConfig = config.DefaultConfig()
			return
		}
		globalConfig = cfg
	})
	return globalConfig
}

// Global helpers
func isVerbose() bool {
	return verbose || GetGlobalConfig().Output.Verbose
}

func getOutputFormat() string {
	if outputFmt != "" {
		return outputFmt
	}
	if f := GetGlobalConfig().Output.DefaultFormat; f != "" {
		return f
	}
	return "text"
}

func isEmojiDisabled() bool {
	return noEmoji
}

func useColor() bool {
	if noColor {
		return false
	}
	return GetGlobalConfig().Output.ColorMode != "never"
}
