package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/opconnect/itemsync/internal/config"
)

func NewLoginCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the Connect token in the OS keyring",
		Long: `Save the Connect bearer token in the OS keyring so later runs do not
need --token or OP_CONNECT_TOKEN. The token is taken from --token or
from the OP_CONNECT_TOKEN environment variable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token := rt.Token
			if token == "" {
				token = os.Getenv(config.EnvToken)
			}
			if token == "" {
				return connectTokenMissingErr()
			}

			if err := config.StoreToken(token); err != nil {
				return err
			}
			rt.Logger.Info("Connect token stored in OS keyring")
			return nil
		},
	}
	return cmd
}

func NewLogoutCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the Connect token from the OS keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ForgetToken(); err != nil {
				return err
			}
			rt.Logger.Info("Connect token removed from OS keyring")
			return nil
		},
	}
}
