// Package cli holds the markboard command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"MarkBoard/internal/config"
	"MarkBoard/internal/logger"
)

var version = "dev"

var (
	configPath string
	verbose    bool
	feedFlag   bool
)

var rootCmd = &cobra.Command{
	Use:          "markboard",
	Short:        "Freehand annotation board",
	Long:         "markboard opens a page you can draw on with a pen and erase with an eraser.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runBoard(cmd.Context(), cfg, configPath)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.Flags().BoolVar(&feedFlag, "feed", false, "serve the read-only observer feed")
}

// loadConfig reads --config, applies flag overrides and sets up logging.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if verbose {
		cfg.Log.Verbose = true
	}
	if feedFlag {
		cfg.Feed.Enabled = true
	}
	logger.Setup(os.Stderr, cfg.Log.Verbose)
	return cfg, nil
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}
