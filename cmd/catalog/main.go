package main

import (
	"fmt"
	"os"

	"restaurant-catalog/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse a restaurant listing with rating and name filters",
	Long: `catalog fetches a restaurant listing once, extracts the restaurant grid
from the nested upstream document, and lets you narrow it by rating or name.

Use "serve" to expose browser sessions over HTTP, or "list" to print cards
in the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv()

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		zapConfig := zap.NewProductionConfig()
		if level, err := zapcore.ParseLevel(cfg.Logging.Level); err == nil {
			zapConfig.Level = zap.NewAtomicLevelAt(level)
		}
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "catalog.yaml", "path to the YAML config file")

	rootCmd.AddCommand(serveCmd, listCmd, aggregateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
