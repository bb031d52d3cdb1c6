package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opconnect/itemsync/internal/query"
	"github.com/opconnect/itemsync/internal/reconcile"
	"github.com/opconnect/itemsync/pkg/connect"
)

func NewItemCommand(rt *Runtime) *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "item <name-or-id>",
		Short: "Show an item, or a single field value",
		Long: `Fetch an item by name or ID and print it with its fields keyed by
label. When --field is given, only that field's value is printed,
which makes the command usable from scripts.

When no vault is given, every vault the token can access is searched.

Examples:
  itemsync item Dev-Database --vault Engineering
  itemsync item lixyh6993asdfq9njdzf221d3z
  itemsync item Dev-Database --field password`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := rt.connectClient()
			if err != nil {
				return err
			}

			vault := cfg.VaultID

			var item *connect.Item
			if vault != "" {
				item, err = query.GetItem(cmd.Context(), client, vault, args[0])
			} else {
				item, err = query.GetItemAnyVault(cmd.Context(), client, args[0])
			}
			if err != nil {
				return err
			}

			if field != "" {
				found, err := query.FindField(item, field, "")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), found.Value)
				return nil
			}

			return printJSON(reconcile.Flatten(item))
		},
	}

	cmd.Flags().StringVar(&field, "field", "", "Print only this field's value")

	return cmd
}
