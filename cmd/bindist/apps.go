package main

import (
	"fmt"

	"github.com/spf13/cobra"

	bindist "github.com/bindist/bindist-go"
)

func newAppsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "Manage applications",
	}

	cmd.AddCommand(newAppsListCmd())
	cmd.AddCommand(newAppsGetCmd())
	cmd.AddCommand(newAppsCreateCmd())
	cmd.AddCommand(newAppsRmCmd())

	return cmd
}

func newAppsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applications",
		Args:  cobra.NoArgs,
		RunE:  runAppsList,
	}

	cmd.Flags().String("search", "", "filter by name or ID substring")
	cmd.Flags().StringSlice("tag", nil, "filter by tag (repeatable)")
	addPageFlags(cmd)

	return cmd
}

func newAppsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <app-id>",
		Short: "Show one application",
		Args:  cobra.ExactArgs(1),
		RunE:  runAppsGet,
	}
}

func newAppsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <app-id> <name>",
		Short: "Register a new application",
		Args:  cobra.ExactArgs(2),
		RunE:  runAppsCreate,
	}

	cmd.Flags().StringSlice("customer", nil, "customer ID granted access (repeatable)")
	cmd.Flags().String("description", "", "application description")
	cmd.Flags().StringSlice("tag", nil, "tag (repeatable)")

	return cmd
}

func newAppsRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <app-id>",
		Short: "Soft-delete an application",
		Long: `Soft-delete an application on the server. The application stops being
served to customers but its records are retained and can be restored
by the operator.`,
		Args: cobra.ExactArgs(1),
		RunE: runAppsRm,
	}
}

// addPageFlags registers the pagination flags shared by list commands.
func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 0, "page number, 1-based (default 1)")
	cmd.Flags().Int("page-size", 0, "results per page (default 20)")
}

// pageFlags reads the shared pagination flags. Zero values defer to the
// library defaults.
func pageFlags(cmd *cobra.Command) (int, int, error) {
	page, err := cmd.Flags().GetInt("page")
	if err != nil {
		return 0, 0, err
	}

	pageSize, err := cmd.Flags().GetInt("page-size")
	if err != nil {
		return 0, 0, err
	}

	return page, pageSize, nil
}

func runAppsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	search, err := cmd.Flags().GetString("search")
	if err != nil {
		return err
	}

	tags, err := cmd.Flags().GetStringSlice("tag")
	if err != nil {
		return err
	}

	page, pageSize, err := pageFlags(cmd)
	if err != nil {
		return err
	}

	client, logger := newAPIClient()
	logger.Debug("apps list", "search", search, "tags", tags)

	res, err := client.ListApplications(ctx, bindist.ListApplicationsOptions{
		Search:   search,
		Tags:     tags,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return fmt.Errorf("listing applications: %w", err)
	}

	return renderResult(res)
}

func runAppsGet(cmd *cobra.Command, args []string) error {
	client, _ := newAPIClient()

	res, err := client.GetApplication(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fetching application %q: %w", args[0], err)
	}

	return renderResult(res)
}

func runAppsCreate(cmd *cobra.Command, args []string) error {
	appID, name := args[0], args[1]

	customers, err := cmd.Flags().GetStringSlice("customer")
	if err != nil {
		return err
	}

	description, err := cmd.Flags().GetString("description")
	if err != nil {
		return err
	}

	tags, err := cmd.Flags().GetStringSlice("tag")
	if err != nil {
		return err
	}

	client, logger := newAPIClient()
	logger.Debug("apps create", "application_id", appID, "name", name)

	res, err := client.CreateApplication(cmd.Context(), appID, name, customers, bindist.CreateApplicationOptions{
		Description: description,
		Tags:        tags,
	})
	if err != nil {
		return fmt.Errorf("creating application %q: %w", appID, err)
	}

	if err := renderResult(res); err != nil {
		return err
	}

	statusf("Created application %s\n", appID)

	return nil
}

func runAppsRm(cmd *cobra.Command, args []string) error {
	client, logger := newAPIClient()
	logger.Debug("apps rm", "application_id", args[0])

	res, err := client.DeleteApplication(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("deleting application %q: %w", args[0], err)
	}

	if err := renderResult(res); err != nil {
		return err
	}

	statusf("Deleted application %s\n", args[0])

	return nil
}
