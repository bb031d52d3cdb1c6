package connect

import "context"

// Client is the transport contract consumed by the reconciliation
// engine and the lookup helpers. The production implementation lives
// in internal/transport.
//
// Every call is a single blocking request/response. Implementations
// classify failures with the error types in this package; a missing
// vault or item is a *NotFoundError.
type Client interface {
	// FindItemByID fetches a single item by its machine identifier.
	FindItemByID(ctx context.Context, vaultID, itemID string) (*Item, error)

	// FindItemByTitle fetches a single item by exact title match
	// within a vault. More than one match is an *APIError; zero
	// matches is a *NotFoundError.
	FindItemByTitle(ctx context.Context, vaultID, title string) (*Item, error)

	// CreateItem stores a new item in the vault and returns the
	// server's copy, including generated identifiers and values.
	CreateItem(ctx context.Context, vaultID string, item *Item) (*Item, error)

	// UpdateItem replaces an existing item's properties and returns
	// the server's copy.
	UpdateItem(ctx context.Context, vaultID string, item *Item) (*Item, error)

	// DeleteItem removes an item. A *NotFoundError means the item
	// already vanished; callers treat that as a no-op.
	DeleteItem(ctx context.Context, vaultID, itemID string) error

	// ListVaults returns every vault the token grants access to.
	ListVaults(ctx context.Context) ([]Vault, error)
}
