package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/opconnect/itemsync/internal/logging"
	"github.com/opconnect/itemsync/pkg/connect"
)

// State declares the desired end state for an item.
type State string

const (
	StatePresent State = "present"
	StateAbsent  State = "absent"
)

// ParseState maps a declared state string onto a State. The historical
// aliases "created" and "upserted" both mean present.
func ParseState(raw string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "present", "created", "upserted":
		return StatePresent, nil
	case "absent":
		return StateAbsent, nil
	default:
		return "", &ValidationError{Message: fmt.Sprintf("unknown state %q", raw)}
	}
}

// Params is one full item declaration: the desired item attributes
// plus the desired state and an optional machine identifier.
type Params struct {
	ItemParams
	UUID  string
	State State
}

// Result is the outcome of one reconciliation pass. Item is nil when
// the end state is absent.
type Result struct {
	Changed bool
	Item    *FlatItem
}

// Engine drives the find-or-create-or-replace-or-delete state machine
// against the transport client. An Engine holds no state across
// invocations.
type Engine struct {
	client connect.Client
	logger *logging.Logger
}

// New creates a reconciliation engine on top of the given transport
// client.
func New(client connect.Client, logger *logging.Logger) *Engine {
	if logger == nil {
		logger = logging.New(false, true)
	}
	return &Engine{client: client, logger: logger}
}

// Apply reconciles the declaration against the remote store and
// returns whether anything changed together with the resulting item.
//
// With checkMode set, all mutating transport calls are suppressed; the
// result reflects what would have been stored.
func (e *Engine) Apply(ctx context.Context, p Params, checkMode bool) (Result, error) {
	if p.VaultID == "" {
		return Result{}, ErrMissingVaultID
	}
	if !protectedFieldsHaveLabel(p.Fields) {
		return Result{}, &ValidationError{
			Message: "fields with overwrite disabled must have a label",
		}
	}

	existing, err := e.findItem(ctx, p)
	if err != nil {
		return Result{}, err
	}

	if p.State == StateAbsent {
		return e.deleteItem(ctx, existing, checkMode)
	}

	if existing == nil {
		return e.createItem(ctx, p, checkMode)
	}
	return e.updateItem(ctx, p, existing, checkMode)
}

// findItem looks the declared item up by UUID when given, otherwise by
// normalized title within the vault. A missing item is not an error.
func (e *Engine) findItem(ctx context.Context, p Params) (*connect.Item, error) {
	var (
		item *connect.Item
		err  error
	)

	if p.UUID != "" {
		item, err = e.client.FindItemByID(ctx, p.VaultID, p.UUID)
	} else {
		item, err = e.client.FindItemByTitle(ctx, p.VaultID, connect.NormalizeLabel(p.Title))
	}

	if err != nil {
		if connect.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func (e *Engine) createItem(ctx context.Context, p Params, checkMode bool) (Result, error) {
	item, err := assembleItem(p.ItemParams, mergeFields(nil, p.Fields))
	if err != nil {
		return Result{}, err
	}

	e.logger.Debug("item %q not found in vault %s, creating", p.Title, p.VaultID)

	if checkMode {
		return Result{Changed: true, Item: Flatten(item)}, nil
	}

	created, err := e.client.CreateItem(ctx, p.VaultID, item)
	if err != nil {
		return Result{}, err
	}
	return Result{Changed: true, Item: Flatten(created)}, nil
}

func (e *Engine) updateItem(ctx context.Context, p Params, existing *connect.Item, checkMode bool) (Result, error) {
	if existing.Vault.ID == "" {
		return Result{}, fmt.Errorf("stored item %s missing vault reference: %w", existing.ID, ErrMissingVaultID)
	}

	params := p.ItemParams
	params.VaultID = existing.Vault.ID

	item, err := assembleItem(params, mergeFields(existing.Fields, p.Fields))
	if err != nil {
		return Result{}, err
	}
	item.ID = existing.ID

	if equivalentItems(existing, item) {
		e.logger.Debug("item %q already in desired state", existing.Title)
		return Result{Changed: false, Item: Flatten(existing)}, nil
	}

	if checkMode {
		return Result{Changed: true, Item: Flatten(item)}, nil
	}

	updated, err := e.client.UpdateItem(ctx, existing.Vault.ID, item)
	if err != nil {
		return Result{}, err
	}
	return Result{Changed: true, Item: Flatten(updated)}, nil
}

func (e *Engine) deleteItem(ctx context.Context, existing *connect.Item, checkMode bool) (Result, error) {
	if existing == nil {
		return Result{Changed: false}, nil
	}
	if existing.Vault.ID == "" {
		return Result{}, fmt.Errorf("stored item %s missing vault reference: %w", existing.ID, ErrMissingVaultID)
	}

	if checkMode {
		return Result{Changed: true}, nil
	}

	if err := e.client.DeleteItem(ctx, existing.Vault.ID, existing.ID); err != nil {
		// The item vanished between lookup and delete: already in the
		// desired state.
		if connect.IsNotFound(err) {
			return Result{Changed: false}, nil
		}
		return Result{}, err
	}
	return Result{Changed: true}, nil
}
