package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opconnect/itemsync/cmd/itemsync/commands"
	"github.com/opconnect/itemsync/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		host    string
		token   string
		vault   string
		noColor bool
		debug   bool
	)

	rt := &commands.Runtime{Version: version}

	rootCmd := &cobra.Command{
		Use:   "itemsync",
		Short: "Reconcile 1Password Connect items against declared state",
		Long: `itemsync maps declarative item documents onto a 1Password Connect
server: it creates, updates or deletes items so the stored state
matches the declaration, and reports whether anything changed.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			rt.Logger = logging.New(debug, noColor)
			rt.Host = host
			rt.Token = token
			rt.Vault = vault
		},
	}

	rootCmd.PersistentFlags().StringVar(&host, "host", "", "Connect server URL (default $OP_CONNECT_HOST)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Connect bearer token (default $OP_CONNECT_TOKEN or OS keyring)")
	rootCmd.PersistentFlags().StringVar(&vault, "vault", "", "Default vault name or ID (default $OP_VAULT_ID)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		commands.NewApplyCommand(rt),
		commands.NewItemCommand(rt),
		commands.NewFieldCommand(rt),
		commands.NewVaultsCommand(rt),
		commands.NewLoginCommand(rt),
		commands.NewLogoutCommand(rt),
	)

	return rootCmd.Execute()
}
