package main

import (
	"fmt"

	"github.com/spf13/cobra"

	bindist "github.com/bindist/bindist-go"
)

func newVersionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Manage application versions",
	}

	cmd.AddCommand(newVersionsListCmd())
	cmd.AddCommand(newVersionsFilesCmd())
	cmd.AddCommand(newVersionsUpdateCmd())

	return cmd
}

func newVersionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <app-id>",
		Short: "List versions of an application",
		Args:  cobra.ExactArgs(1),
		RunE:  runVersionsList,
	}

	cmd.Flags().String("changelog", "", "include release notes newer than this installed version")

	return cmd
}

func newVersionsFilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "files <app-id> <version>",
		Short: "List the files of a version",
		Args:  cobra.ExactArgs(2),
		RunE:  runVersionsFiles,
	}
}

func newVersionsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <app-id> <version>",
		Short: "Update version flags and metadata",
		Long: `Update a version record. Only the fields named by flags are sent;
everything else is left untouched on the server.`,
		Args: cobra.ExactArgs(2),
		RunE: runVersionsUpdate,
	}

	cmd.Flags().Bool("enable", false, "enable the version for download")
	cmd.Flags().Bool("disable", false, "disable the version")
	cmd.Flags().Bool("activate", false, "mark the version active")
	cmd.Flags().Bool("deactivate", false, "mark the version inactive")
	cmd.Flags().String("release-notes", "", "replace the release notes")
	cmd.Flags().String("min-client", "", "minimum client version allowed to fetch")

	cmd.MarkFlagsMutuallyExclusive("enable", "disable")
	cmd.MarkFlagsMutuallyExclusive("activate", "deactivate")

	return cmd
}

func runVersionsList(cmd *cobra.Command, args []string) error {
	changelog, err := cmd.Flags().GetString("changelog")
	if err != nil {
		return err
	}

	client, logger := newAPIClient()
	logger.Debug("versions list", "application_id", args[0], "test_channel", resolvedCfg.TestChannel)

	res, err := client.ListVersions(cmd.Context(), args[0], bindist.ListVersionsOptions{
		Changelog:   changelog,
		TestChannel: resolvedCfg.TestChannel,
	})
	if err != nil {
		return fmt.Errorf("listing versions of %q: %w", args[0], err)
	}

	return renderResult(res)
}

func runVersionsFiles(cmd *cobra.Command, args []string) error {
	client, _ := newAPIClient()

	res, err := client.ListVersionFiles(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("listing files of %s %s: %w", args[0], args[1], err)
	}

	return renderResult(res)
}

func runVersionsUpdate(cmd *cobra.Command, args []string) error {
	upd, changed, err := versionUpdateFromFlags(cmd)
	if err != nil {
		return err
	}

	if !changed {
		return fmt.Errorf("nothing to update: pass at least one of --enable, --disable, --activate, --deactivate, --release-notes, --min-client")
	}

	client, logger := newAPIClient()
	logger.Debug("versions update", "application_id", args[0], "version", args[1])

	res, err := client.UpdateVersion(cmd.Context(), args[0], args[1], upd)
	if err != nil {
		return fmt.Errorf("updating %s %s: %w", args[0], args[1], err)
	}

	if err := renderResult(res); err != nil {
		return err
	}

	statusf("Updated %s %s\n", args[0], args[1])

	return nil
}

// versionUpdateFromFlags translates update flags into a sparse VersionUpdate.
// Returns changed=false when no update flag was set at all.
func versionUpdateFromFlags(cmd *cobra.Command) (bindist.VersionUpdate, bool, error) {
	var upd bindist.VersionUpdate

	changed := false

	if cmd.Flags().Changed("enable") {
		upd.IsEnabled = bindist.Bool(true)
		changed = true
	}

	if cmd.Flags().Changed("disable") {
		upd.IsEnabled = bindist.Bool(false)
		changed = true
	}

	if cmd.Flags().Changed("activate") {
		upd.IsActive = bindist.Bool(true)
		changed = true
	}

	if cmd.Flags().Changed("deactivate") {
		upd.IsActive = bindist.Bool(false)
		changed = true
	}

	if cmd.Flags().Changed("release-notes") {
		notes, err := cmd.Flags().GetString("release-notes")
		if err != nil {
			return upd, false, err
		}

		upd.ReleaseNotes = bindist.String(notes)
		changed = true
	}

	if cmd.Flags().Changed("min-client") {
		minClient, err := cmd.Flags().GetString("min-client")
		if err != nil {
			return upd, false, err
		}

		upd.MinimumClientVersion = bindist.String(minClient)
		changed = true
	}

	return upd, changed, nil
}
