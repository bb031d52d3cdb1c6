package commands

import (
	"encoding/json"
	"os"

	"github.com/opconnect/itemsync/internal/config"
	"github.com/opconnect/itemsync/internal/logging"
	"github.com/opconnect/itemsync/internal/transport"
	"github.com/opconnect/itemsync/pkg/connect"
)

// Runtime carries the values parsed from the persistent flags into
// the subcommands.
type Runtime struct {
	Host    string
	Token   string
	Vault   string
	Version string
	Logger  *logging.Logger
}

// connectClient resolves the configuration and builds the HTTP client.
func (rt *Runtime) connectClient() (*config.Config, connect.Client, error) {
	cfg, err := config.Load(config.Options{
		Host:    rt.Host,
		Token:   rt.Token,
		VaultID: rt.Vault,
	}, rt.Logger)
	if err != nil {
		return nil, nil, err
	}

	client, err := transport.New(transport.Config{
		Host:    cfg.Host,
		Token:   cfg.Token(),
		Version: rt.Version,
		Logger:  rt.Logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, client, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func connectTokenMissingErr() error {
	return connect.NewAccessDeniedError("no token given, pass --token or set " + config.EnvToken)
}
