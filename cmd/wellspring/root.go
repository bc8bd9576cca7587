package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/wellspring/backend/internal/config"
	"github.com/JonnyWalker81/wellspring/backend/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "wellspring",
	Short: "Wellspring wellness analytics",
	Long: `Wellspring computes wellness insights, daily focus suggestions and
shareable reports from logged mood check-ins and wellness activities.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var (
	driverFlag string
	pathFlag   string

	cfg    *config.Config
	appLog logger.Logger
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "Storage driver: file, sqlite, postgres, supabase or memory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&pathFlag, "path", "", "Storage path for the file and sqlite drivers (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if driverFlag != "" {
		loaded.Storage.Driver = driverFlag
	}
	if pathFlag != "" {
		loaded.Storage.Path = pathFlag
	}

	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cfg = loaded
	// Report commands write JSON to stdout, so their logs go to stderr
	appLog = newLogger(cfg, "cli", os.Stderr)
	logger.SetDefault(appLog)
	return nil
}

func newLogger(c *config.Config, component string, out io.Writer) logger.Logger {
	return logger.NewSlogLogger(logger.Config{
		Level:     logger.ParseLevel(c.Log.Level),
		Format:    c.Log.Format,
		Component: component,
		Output:    out,
	})
}
