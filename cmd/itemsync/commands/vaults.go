package commands

import (
	"github.com/spf13/cobra"
)

func NewVaultsCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "vaults",
		Short: "List vaults the token can access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := rt.connectClient()
			if err != nil {
				return err
			}

			vaults, err := client.ListVaults(cmd.Context())
			if err != nil {
				return err
			}

			return printJSON(vaults)
		},
	}
}
