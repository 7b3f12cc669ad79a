package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <app-id>",
		Short: "Show download statistics for an application",
		Args:  cobra.ExactArgs(1),
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	client, _ := newAPIClient()

	res, err := client.GetStats(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fetching stats for %q: %w", args[0], err)
	}

	return renderResult(res)
}
