package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	zet "github.com/flyer26/zet-display"
	"github.com/flyer26/zet-display/config"
)

var rootCmd = &cobra.Command{
	Use:          "zet-display",
	Short:        "In-memory transit departure board",
	Long:         "Builds a departure board from a static timetable feed plus realtime delays",
	SilenceUsage: true,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func buildManager() (*zet.Manager, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	manager, err := zet.NewManager(cfg)
	if err != nil {
		return nil, nil, err
	}

	return manager, cfg, nil
}
