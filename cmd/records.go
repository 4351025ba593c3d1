package cmd

import (
	"context"

	"github.com/EO-DataHub/eodhp-crm-console/internal/crm"
	"github.com/spf13/cobra"
)

// newRecordsCmd builds the list/create/update/delete commands for one
// collection of the CRM store.
func newRecordsCmd[T, In, P any](use, short string, collection func(*crm.Store) *crm.Collection[T, In, P]) *cobra.Command {
	parent := &cobra.Command{Use: use, Short: short}

	// run bootstraps the session and hands the collection to fn. The
	// collection is printed afterwards, as refetched by the write.
	run := func(cmd *cobra.Command, fn func(context.Context, *crm.Collection[T, In, P]) error) error {
		a, err := newApp(appCfg)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.authenticated(cmd.Context()); err != nil {
			return err
		}

		c := collection(a.crm)
		if err := fn(cmd.Context(), c); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), c.Items())
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all " + use,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, c *crm.Collection[T, In, P]) error {
				return c.Fetch(ctx)
			})
		},
	}

	var createData string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a record from JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var record In
			if err := decodeInput(createData, cmd.InOrStdin(), &record); err != nil {
				return err
			}
			return run(cmd, func(ctx context.Context, c *crm.Collection[T, In, P]) error {
				return c.Create(ctx, record)
			})
		},
	}
	create.Flags().StringVar(&createData, "data", "", `record as JSON, or "-" to read stdin`)

	var updateData string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Apply a partial JSON update to a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch P
			if err := decodeInput(updateData, cmd.InOrStdin(), &patch); err != nil {
				return err
			}
			return run(cmd, func(ctx context.Context, c *crm.Collection[T, In, P]) error {
				return c.Update(ctx, args[0], patch)
			})
		},
	}
	update.Flags().StringVar(&updateData, "data", "", `fields as JSON, or "-" to read stdin`)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, c *crm.Collection[T, In, P]) error {
				return c.Delete(ctx, args[0])
			})
		},
	}

	parent.AddCommand(list, create, update, del)
	return parent
}

func init() {
	rootCmd.AddCommand(
		newRecordsCmd("contacts", "Manage contacts", func(s *crm.Store) *crm.Contacts { return s.Contacts }),
		newRecordsCmd("leads", "Manage leads", func(s *crm.Store) *crm.Leads { return s.Leads }),
		newRecordsCmd("deals", "Manage deals", func(s *crm.Store) *crm.Deals { return s.Deals }),
	)
}
