package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board <station>",
	Short: "Shows upcoming departures from a station",
	Args:  cobra.ExactArgs(1),
	RunE:  board,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

func board(cmd *cobra.Command, args []string) error {
	manager, _, err := buildManager()
	if err != nil {
		return err
	}

	if err := manager.Rebuild(cmd.Context()); err != nil {
		return err
	}

	entries, err := manager.Board(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	for _, e := range entries {
		fmt.Printf("%-4s %-28s %3d min  %s  [%s]\n", e.Route, e.Headsign, e.Minutes, e.Display, e.Status)
	}

	return nil
}
