package main

import (
	"fmt"

	"github.com/spf13/cobra"

	bindist "github.com/bindist/bindist-go"
)

func newShareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Create a time-limited share link",
		Long: `Create a pre-signed share link for a version artifact. Anyone holding
the link can download the file until it expires, no API key needed.`,
		Args: cobra.NoArgs,
		RunE: runShare,
	}

	cmd.Flags().String("app", "", "application ID (required)")
	cmd.Flags().String("version", "", "version string (required)")
	cmd.Flags().String("file-id", "", "specific file of a multi-file version")
	cmd.Flags().Int("expires", 0, "link lifetime in minutes, 5 to 1440 (default 30)")

	_ = cmd.MarkFlagRequired("app")
	_ = cmd.MarkFlagRequired("version")

	return cmd
}

func runShare(cmd *cobra.Command, _ []string) error {
	appID, err := cmd.Flags().GetString("app")
	if err != nil {
		return err
	}

	versionStr, err := cmd.Flags().GetString("version")
	if err != nil {
		return err
	}

	fileID, err := cmd.Flags().GetString("file-id")
	if err != nil {
		return err
	}

	expires, err := cmd.Flags().GetInt("expires")
	if err != nil {
		return err
	}

	client, logger := newAPIClient()
	logger.Debug("share", "application_id", appID, "version", versionStr, "expires_minutes", expires)

	res, err := client.CreateShareLink(cmd.Context(), appID, versionStr, bindist.ShareLinkOptions{
		FileID:         fileID,
		ExpiresMinutes: expires,
	})
	if err != nil {
		return fmt.Errorf("creating share link for %s %s: %w", appID, versionStr, err)
	}

	return renderResult(res)
}
