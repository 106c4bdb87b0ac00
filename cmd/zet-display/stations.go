package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "Lists all logical stations in the current timetable",
	Args:  cobra.NoArgs,
	RunE:  stations,
}

func init() {
	rootCmd.AddCommand(stationsCmd)
}

func stations(cmd *cobra.Command, args []string) error {
	manager, _, err := buildManager()
	if err != nil {
		return err
	}

	if err := manager.Rebuild(cmd.Context()); err != nil {
		return err
	}

	for _, name := range manager.Schedule().Stations {
		fmt.Println(name)
	}

	return nil
}
