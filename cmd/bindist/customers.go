package main

import (
	"fmt"

	"github.com/spf13/cobra"

	bindist "github.com/bindist/bindist-go"
)

func newCustomersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Manage customers and their API keys",
	}

	cmd.AddCommand(newCustomersListCmd())
	cmd.AddCommand(newCustomersCreateCmd())
	cmd.AddCommand(newCustomersUpdateCmd())

	return cmd
}

func newCustomersListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Args:  cobra.NoArgs,
		RunE:  runCustomersList,
	}

	addPageFlags(cmd)

	return cmd
}

func newCustomersCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a customer and issue its API key",
		Long: `Create a customer under a parent customer (default "admin") and issue
its API key. The key appears once in the response; store it safely.`,
		Args: cobra.ExactArgs(1),
		RunE: runCustomersCreate,
	}

	cmd.Flags().String("parent", "", `parent customer ID (default "admin")`)
	cmd.Flags().String("notes", "", "free-form notes")

	return cmd
}

func newCustomersUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <customer-id>",
		Short: "Update customer fields",
		Long: `Update a customer record. Only the fields named by flags are sent;
everything else is left untouched on the server.`,
		Args: cobra.ExactArgs(1),
		RunE: runCustomersUpdate,
	}

	cmd.Flags().String("name", "", "rename the customer")
	cmd.Flags().Bool("activate", false, "activate the customer")
	cmd.Flags().Bool("deactivate", false, "deactivate the customer")
	cmd.Flags().String("notes", "", "replace the notes")

	cmd.MarkFlagsMutuallyExclusive("activate", "deactivate")

	return cmd
}

func runCustomersList(cmd *cobra.Command, _ []string) error {
	page, pageSize, err := pageFlags(cmd)
	if err != nil {
		return err
	}

	client, _ := newAPIClient()

	res, err := client.ListCustomers(cmd.Context(), bindist.ListOptions{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return fmt.Errorf("listing customers: %w", err)
	}

	return renderResult(res)
}

func runCustomersCreate(cmd *cobra.Command, args []string) error {
	parent, err := cmd.Flags().GetString("parent")
	if err != nil {
		return err
	}

	notes, err := cmd.Flags().GetString("notes")
	if err != nil {
		return err
	}

	client, logger := newAPIClient()
	logger.Debug("customers create", "name", args[0], "parent", parent)

	res, err := client.CreateCustomer(cmd.Context(), args[0], bindist.CreateCustomerOptions{
		ParentCustomerID: parent,
		Notes:            notes,
	})
	if err != nil {
		return fmt.Errorf("creating customer %q: %w", args[0], err)
	}

	return renderResult(res)
}

func runCustomersUpdate(cmd *cobra.Command, args []string) error {
	upd, changed, err := customerUpdateFromFlags(cmd)
	if err != nil {
		return err
	}

	if !changed {
		return fmt.Errorf("nothing to update: pass at least one of --name, --activate, --deactivate, --notes")
	}

	client, logger := newAPIClient()
	logger.Debug("customers update", "customer_id", args[0])

	res, err := client.UpdateCustomer(cmd.Context(), args[0], upd)
	if err != nil {
		return fmt.Errorf("updating customer %q: %w", args[0], err)
	}

	if err := renderResult(res); err != nil {
		return err
	}

	statusf("Updated customer %s\n", args[0])

	return nil
}

// customerUpdateFromFlags translates update flags into a sparse
// CustomerUpdate. Returns changed=false when no update flag was set.
func customerUpdateFromFlags(cmd *cobra.Command) (bindist.CustomerUpdate, bool, error) {
	var upd bindist.CustomerUpdate

	changed := false

	if cmd.Flags().Changed("name") {
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			return upd, false, err
		}

		upd.Name = bindist.String(name)
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

	if cmd.Flags().Changed("notes") {
		notes, err := cmd.Flags().GetString("notes")
		if err != nil {
			return upd, false, err
		}

		upd.Notes = bindist.String(notes)
		changed = true
	}

	return upd, changed, nil
}
