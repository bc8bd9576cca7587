package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/wellspring/backend/internal/service"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Print wellness insights as JSON",
	Args:  cobra.NoArgs,
	RunE:  runInsights,
}

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Print today's suggested focus as JSON",
	Args:  cobra.NoArgs,
	RunE:  runFocus,
}

var exportCmd = &cobra.Command{
	Use:       "export healthcare|research",
	Short:     "Print a healthcare or anonymised research report as JSON",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"healthcare", "research"},
	RunE:      runExport,
}

var insightsDays int

func init() {
	insightsCmd.Flags().IntVarP(&insightsDays, "days", "d", 0, "Window in days, 1-365 (defaults to analytics.default_window_days)")
}

// newWellnessService opens storage and builds the engine for one CLI run.
// The returned func closes the store.
func newWellnessService(cmd *cobra.Command) (service.WellnessService, func(), error) {
	store, err := openStore(cmd.Context(), cfg, appLog)
	if err != nil {
		return nil, nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	svc := service.NewWellnessService(store,
		service.WithLocation(loc),
		service.WithDefaultWindow(cfg.Analytics.DefaultWindowDays),
	)
	return svc, func() { store.Close() }, nil
}

func runInsights(cmd *cobra.Command, args []string) error {
	days := insightsDays
	if days == 0 {
		days = cfg.Analytics.DefaultWindowDays
	}
	if !service.ValidWindow(days) {
		return fmt.Errorf("--days must be between 1 and %d, got %d", service.MaxWindowDays, days)
	}

	svc, closeStore, err := newWellnessService(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	insights, err := svc.GetWellnessInsights(cmd.Context(), days)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), insights)
}

func runFocus(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := newWellnessService(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	focus, err := svc.GetTodaysFocus(cmd.Context())
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), focus)
}

func runExport(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := newWellnessService(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	var report any
	switch args[0] {
	case "healthcare":
		report, err = svc.ExportHealthcareData(cmd.Context())
	case "research":
		report, err = svc.ExportResearchData(cmd.Context())
	default:
		return fmt.Errorf("unknown export %q", args[0])
	}
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), report)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
