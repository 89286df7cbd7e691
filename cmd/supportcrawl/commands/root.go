// Package commands implements the CLI commands for supportcrawl.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/supportcrawl/supportcrawl/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "supportcrawl",
	Short: "Crawl a support site into a clean text corpus",
	Long: `Supportcrawl ingests a support website into a corpus of clean,
deduplicated text pages suitable for downstream indexing.

It crawls breadth-first within a single host and path prefix, extracts
the main content of each page through a selector cascade, and falls back
to a headless browser for pages that only render with JavaScript.

Examples:
  # Crawl a support section into a JSON corpus
  supportcrawl crawl -u "https://www.angelone.in/support" -o corpus.json

  # Static-only crawl with a page cap
  supportcrawl crawl -u "https://example.com/help" --no-render --max-pages 100

  # Stream page records as JSONL and mirror them into SQLite
  supportcrawl crawl -u "https://example.com/support" --format jsonl --db pages.db`,
	Version: version.String(),
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.supportcrawl.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".supportcrawl")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SUPPORTCRAWL")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
