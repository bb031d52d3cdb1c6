// Package config resolves the runtime configuration for itemsync:
// the Connect server address, the bearer token and the default vault.
//
// Resolution order for each value: explicit flag, environment
// variable, then (for the token) the OS keyring. A .env file in the
// working directory is loaded first when present.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/zalando/go-keyring"

	"github.com/opconnect/itemsync/internal/logging"
	"github.com/opconnect/itemsync/internal/secure"
	"github.com/opconnect/itemsync/pkg/connect"
)

// Environment variables honored during resolution.
const (
	EnvHost    = "OP_CONNECT_HOST"
	EnvToken   = "OP_CONNECT_TOKEN"
	EnvVaultID = "OP_VAULT_ID"
)

// Keyring coordinates for the stored token fallback.
const (
	keyringService = "itemsync"
	keyringUser    = "op-connect-token"
)

// Options carry the values parsed from command-line flags. Empty
// values fall through to the environment.
type Options struct {
	Host    string
	Token   string
	VaultID string
}

// Config is the resolved runtime configuration.
type Config struct {
	Host    string
	VaultID string
	Logger  *logging.Logger

	token *secure.Buffer
}

// Load resolves the configuration. It fails with an AccessDeniedError
// when no server hostname or token can be found, before any request
// is attempted.
func Load(opts Options, logger *logging.Logger) (*Config, error) {
	// A missing .env file is not an error.
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded environment from .env")
	}

	host := opts.Host
	if host == "" {
		host = os.Getenv(EnvHost)
	}

	token := opts.Token
	if token == "" {
		token = os.Getenv(EnvToken)
	}
	if token == "" {
		if stored, err := keyring.Get(keyringService, keyringUser); err == nil {
			logger.Debug("using Connect token from OS keyring")
			token = stored
		}
	}

	vaultID := opts.VaultID
	if vaultID == "" {
		vaultID = os.Getenv(EnvVaultID)
	}

	if host == "" || token == "" {
		return nil, connect.NewAccessDeniedError("server hostname or auth token not defined")
	}

	return &Config{
		Host:    host,
		VaultID: vaultID,
		Logger:  logger,
		token:   secure.NewBufferFromString(token),
	}, nil
}

// Token returns the protected token buffer.
func (c *Config) Token() *secure.Buffer {
	return c.token
}

// StoreToken saves a token in the OS keyring for later runs.
func StoreToken(token string) error {
	return keyring.Set(keyringService, keyringUser, token)
}

// ForgetToken removes the stored token from the OS keyring.
func ForgetToken() error {
	return keyring.Delete(keyringService, keyringUser)
}
