package main

import (
	"fmt"

	"github.com/spf13/cobra"

	bindist "github.com/bindist/bindist-go"
)

func newActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the server-side activity feed",
		Args:  cobra.NoArgs,
		RunE:  runActivity,
	}

	cmd.Flags().String("type", "", "filter by type (upload or download)")
	cmd.Flags().String("app", "", "filter by application ID")
	addPageFlags(cmd)

	return cmd
}

func runActivity(cmd *cobra.Command, _ []string) error {
	activityType, err := cmd.Flags().GetString("type")
	if err != nil {
		return err
	}

	switch activityType {
	case "", bindist.ActivityUpload, bindist.ActivityDownload:
	default:
		return fmt.Errorf("invalid --type %q: want %q or %q", activityType, bindist.ActivityUpload, bindist.ActivityDownload)
	}

	app, err := cmd.Flags().GetString("app")
	if err != nil {
		return err
	}

	page, pageSize, err := pageFlags(cmd)
	if err != nil {
		return err
	}

	client, _ := newAPIClient()

	res, err := client.ListActivity(cmd.Context(), bindist.ActivityOptions{
		Type:          activityType,
		ApplicationID: app,
		Page:          page,
		PageSize:      pageSize,
	})
	if err != nil {
		return fmt.Errorf("listing activity: %w", err)
	}

	return renderResult(res)
}
