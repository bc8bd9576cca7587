package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/wellspring/backend/internal/logger"
	"github.com/JonnyWalker81/wellspring/backend/internal/service"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a browser local storage dump into the configured store",
	Long: `Import reads a JSON object keyed by storage key ("wellness_mood") or
category name ("mood") and appends every decodable record to the configured
storage backend. Records keep their IDs, so SQL backends skip duplicates.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

var importFile string

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Path to the JSON dump")
	importCmd.MarkFlagRequired("file")
}

func runImport(cmd *cobra.Command, args []string) error {
	document, err := os.ReadFile(importFile)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	store, err := openStore(cmd.Context(), cfg, appLog)
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := service.NewActivityService(store, loc).ImportDocument(cmd.Context(), document)
	if err != nil {
		if result != nil {
			appLog.Error("import stopped early", logger.Int("imported", result.Total), logger.Err(err))
		}
		return err
	}

	return writeJSON(cmd.OutOrStdout(), result)
}
