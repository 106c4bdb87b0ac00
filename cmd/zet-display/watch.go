package main

import (
	"github.com/spf13/cobra"

	"github.com/flyer26/zet-display/metrics"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Runs the board service, keeping the timetable current",
	Args:  cobra.NoArgs,
	RunE:  watch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func watch(cmd *cobra.Command, args []string) error {
	manager, cfg, err := buildManager()
	if err != nil {
		return err
	}

	collector := metrics.NewCollector()
	manager.WithMetrics(collector)
	if cfg.MetricsAddr != "" {
		collector.Serve(cfg.MetricsAddr)
	}

	return manager.Run(cmd.Context(), cfg.RefreshInterval)
}
