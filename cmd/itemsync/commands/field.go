package commands

import (
	"github.com/spf13/cobra"

	"github.com/opconnect/itemsync/internal/query"
	"github.com/opconnect/itemsync/internal/reconcile"
)

// fieldOutput is the document printed for a single field.
type fieldOutput struct {
	ID      string `json:"id,omitempty"`
	Value   string `json:"value"`
	Section string `json:"section,omitempty"`
}

func NewFieldCommand(rt *Runtime) *cobra.Command {
	var section string

	cmd := &cobra.Command{
		Use:   "field <item> <field>",
		Short: "Look up a single field within an item",
		Long: `Find a field by label or ID within an item. A section label or ID
limits the search to that section; without one, the field label must
be unique across the whole item.

Examples:
  itemsync field "MySQL Database" username --vault 2zbeu4smcibizsuxmyvhdh57b6
  itemsync field "MySQL Database" username --section Credentials --vault Ops`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := rt.connectClient()
			if err != nil {
				return err
			}

			if cfg.VaultID == "" {
				return reconcile.ErrMissingVaultID
			}

			item, err := query.GetItem(cmd.Context(), client, cfg.VaultID, args[0])
			if err != nil {
				return err
			}

			field, err := query.FindField(item, args[1], section)
			if err != nil {
				return err
			}

			return printJSON(fieldOutput{
				ID:      field.ID,
				Value:   field.Value,
				Section: field.SectionID(),
			})
		},
	}

	cmd.Flags().StringVar(&section, "section", "", "Limit the search to this section label or ID")

	return cmd
}
