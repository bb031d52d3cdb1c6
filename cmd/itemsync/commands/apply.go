package commands

import (
	"github.com/spf13/cobra"

	"github.com/opconnect/itemsync/internal/query"
	"github.com/opconnect/itemsync/internal/reconcile"
	"github.com/opconnect/itemsync/internal/specfile"
)

// applyOutput is the document printed after a reconciliation pass.
type applyOutput struct {
	Changed bool                `json:"changed"`
	Item    *reconcile.FlatItem `json:"item"`
}

func NewApplyCommand(rt *Runtime) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "apply <item-document.yaml>",
		Short: "Reconcile an item document against the Connect server",
		Long: `Apply an item document: find the declared item by UUID or title,
then create, update or delete it so the stored state matches the
declaration.

With --check, no mutating call is made; the output shows what would
have been stored and whether anything would change.

Examples:
  # Create or update an item
  itemsync apply club-membership.yaml

  # Preview without writing
  itemsync apply club-membership.yaml --check`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := rt.connectClient()
			if err != nil {
				return err
			}

			doc, err := specfile.Load(args[0])
			if err != nil {
				return err
			}

			params, err := doc.Params()
			if err != nil {
				return err
			}

			vault := doc.Vault
			if vault == "" {
				vault = cfg.VaultID
			}
			if vault == "" {
				return reconcile.ErrMissingVaultID
			}

			vaultID, err := query.ResolveVaultID(cmd.Context(), client, vault)
			if err != nil {
				return err
			}
			params.VaultID = vaultID

			engine := reconcile.New(client, rt.Logger)
			result, err := engine.Apply(cmd.Context(), params, check)
			if err != nil {
				return err
			}

			if result.Changed {
				rt.Logger.Info("item %q reconciled", params.Title)
			} else {
				rt.Logger.Info("item %q already up to date", params.Title)
			}

			return printJSON(applyOutput{Changed: result.Changed, Item: result.Item})
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Do not write changes, only report what would change")

	return cmd
}
