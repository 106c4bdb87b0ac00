package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var nearestCmd = &cobra.Command{
	Use:   "nearest <lat> <lon>",
	Short: "Finds the station closest to a coordinate",
	Args:  cobra.ExactArgs(2),
	RunE:  nearest,
}

func init() {
	rootCmd.AddCommand(nearestCmd)
}

func nearest(cmd *cobra.Command, args []string) error {
	lat, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid lat: %w", err)
	}
	lon, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid lon: %w", err)
	}

	manager, _, err := buildManager()
	if err != nil {
		return err
	}

	if err := manager.Rebuild(cmd.Context()); err != nil {
		return err
	}

	name, err := manager.Nearest(lat, lon)
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Println("none")
		return nil
	}

	fmt.Println(name)
	return nil
}
