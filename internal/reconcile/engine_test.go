package reconcile

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opconnect/itemsync/pkg/connect"
)

// fakeClient is an in-memory connect.Client for engine tests. Items are
// keyed by id; lookups by title scan the store. Mutating calls are
// counted so tests can assert the engine stayed read-only.
type fakeClient struct {
	items   map[string]*connect.Item
	nextID  int
	creates int
	updates int
	deletes int
}

func newFakeClient(items ...*connect.Item) *fakeClient {
	c := &fakeClient{items: make(map[string]*connect.Item)}
	for _, item := range items {
		c.items[item.ID] = item
	}
	return c
}

func (c *fakeClient) FindItemByID(_ context.Context, vaultID, itemID string) (*connect.Item, error) {
	item, ok := c.items[itemID]
	if !ok || item.Vault.ID != vaultID {
		return nil, connect.NewNotFoundError("item " + itemID + " not found")
	}
	return item, nil
}

func (c *fakeClient) FindItemByTitle(_ context.Context, vaultID, title string) (*connect.Item, error) {
	for _, item := range c.items {
		if item.Vault.ID == vaultID && item.Title == title {
			return item, nil
		}
	}
	return nil, connect.NewNotFoundError("no item named " + title)
}

func (c *fakeClient) CreateItem(_ context.Context, vaultID string, item *connect.Item) (*connect.Item, error) {
	c.creates++
	c.nextID++
	stored := *item
	stored.ID = fmt.Sprintf("fake-%d", c.nextID)
	stored.Vault.ID = vaultID
	c.items[stored.ID] = &stored
	return &stored, nil
}

func (c *fakeClient) UpdateItem(_ context.Context, _ string, item *connect.Item) (*connect.Item, error) {
	c.updates++
	c.items[item.ID] = item
	return item, nil
}

func (c *fakeClient) DeleteItem(_ context.Context, _, itemID string) error {
	c.deletes++
	if _, ok := c.items[itemID]; !ok {
		return connect.NewNotFoundError("item " + itemID + " not found")
	}
	delete(c.items, itemID)
	return nil
}

func (c *fakeClient) ListVaults(context.Context) ([]connect.Vault, error) {
	return []connect.Vault{{ID: "vault-1", Name: "Automation"}}, nil
}

func presentParams(title string, fields ...FieldParam) Params {
	return Params{
		ItemParams: ItemParams{
			VaultID:  "vault-1",
			Title:    title,
			Category: connect.CategoryAPICredential,
			Fields:   fields,
		},
		State: StatePresent,
	}
}

func TestApplyCreatesMissingItem(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	engine := New(client, nil)

	result, err := engine.Apply(context.Background(), presentParams("New Credential",
		FieldParam{Label: "token", Type: connect.FieldTypeConcealed, Value: "s3cret"},
	), false)
	require.NoError(t, err)

	assert.True(t, result.Changed)
	require.NotNil(t, result.Item)
	assert.NotEmpty(t, result.Item.ID)
	assert.Equal(t, "s3cret", result.Item.Fields["token"].Value)
	assert.Equal(t, 1, client.creates)
}

func TestApplyCreateInCheckMode(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	engine := New(client, nil)

	result, err := engine.Apply(context.Background(), presentParams("Dry Run"), true)
	require.NoError(t, err)

	assert.True(t, result.Changed)
	require.NotNil(t, result.Item)
	assert.Empty(t, result.Item.ID, "check mode returns the unsaved document")
	assert.Zero(t, client.creates)
}

func TestApplyUpdateIsIdempotent(t *testing.T) {
	t.Parallel()

	stored := &connect.Item{
		ID:       "existing",
		Title:    "Stable",
		Vault:    connect.VaultRef{ID: "vault-1"},
		Category: connect.CategoryAPICredential,
		Tags:     []string{},
		URLs:     []connect.URL{},
		Fields: []connect.Field{
			{ID: "f1", Label: "token", Type: connect.FieldTypeConcealed, Value: "s3cret"},
		},
	}
	client := newFakeClient(stored)
	engine := New(client, nil)

	result, err := engine.Apply(context.Background(), presentParams("Stable",
		FieldParam{Label: "token", Type: connect.FieldTypeConcealed, Value: "s3cret"},
	), false)
	require.NoError(t, err)

	assert.False(t, result.Changed, "identical declaration must be a no-op")
	require.NotNil(t, result.Item)
	assert.Equal(t, "existing", result.Item.ID)
	assert.Zero(t, client.updates)
}

func TestApplyUpdateReplacesChangedItem(t *testing.T) {
	t.Parallel()

	stored := &connect.Item{
		ID:       "existing",
		Title:    "Drifted",
		Vault:    connect.VaultRef{ID: "vault-1"},
		Category: connect.CategoryAPICredential,
		Tags:     []string{},
		URLs:     []connect.URL{},
		Fields: []connect.Field{
			{ID: "f1", Label: "token", Type: connect.FieldTypeConcealed, Value: "old"},
		},
	}
	client := newFakeClient(stored)
	engine := New(client, nil)

	result, err := engine.Apply(context.Background(), presentParams("Drifted",
		FieldParam{Label: "token", Type: connect.FieldTypeConcealed, Value: "new"},
	), false)
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.Equal(t, "new", result.Item.Fields["token"].Value)
	assert.Equal(t, "existing", result.Item.ID, "updates keep the stored id")
	assert.Equal(t, 1, client.updates)
	assert.Zero(t, client.creates)
}

func TestApplyFindsItemByUUID(t *testing.T) {
	t.Parallel()

	stored := &connect.Item{
		ID:       "by-uuid",
		Title:    "Renamed Upstream",
		Vault:    connect.VaultRef{ID: "vault-1"},
		Category: connect.CategoryAPICredential,
		Tags:     []string{},
		URLs:     []connect.URL{},
	}
	client := newFakeClient(stored)
	engine := New(client, nil)

	p := presentParams("New Title")
	p.UUID = "by-uuid"

	result, err := engine.Apply(context.Background(), p, false)
	require.NoError(t, err)

	assert.True(t, result.Changed, "title change counts as drift")
	assert.Equal(t, "New Title", result.Item.Title)
	assert.Equal(t, 1, client.updates)
}

func TestApplyAbsentDeletesItem(t *testing.T) {
	t.Parallel()

	stored := &connect.Item{
		ID:    "doomed",
		Title: "Doomed",
		Vault: connect.VaultRef{ID: "vault-1"},
	}
	client := newFakeClient(stored)
	engine := New(client, nil)

	p := presentParams("Doomed")
	p.State = StateAbsent

	result, err := engine.Apply(context.Background(), p, false)
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.Nil(t, result.Item)
	assert.Equal(t, 1, client.deletes)
	assert.Empty(t, client.items)
}

func TestApplyAbsentMissingItemIsNoop(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	engine := New(client, nil)

	p := presentParams("Never Existed")
	p.State = StateAbsent

	result, err := engine.Apply(context.Background(), p, false)
	require.NoError(t, err)

	assert.False(t, result.Changed)
	assert.Zero(t, client.deletes)
}

func TestApplyAbsentInCheckMode(t *testing.T) {
	t.Parallel()

	stored := &connect.Item{
		ID:    "spared",
		Title: "Spared",
		Vault: connect.VaultRef{ID: "vault-1"},
	}
	client := newFakeClient(stored)
	engine := New(client, nil)

	p := presentParams("Spared")
	p.State = StateAbsent

	result, err := engine.Apply(context.Background(), p, true)
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.Zero(t, client.deletes)
	assert.Len(t, client.items, 1)
}

func TestApplyRejectsUnlabeledProtectedFields(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	engine := New(client, nil)

	_, err := engine.Apply(context.Background(), presentParams("Broken",
		FieldParam{Type: connect.FieldTypeConcealed, Value: "v", Overwrite: boolPtr(false)},
	), false)

	require.Error(t, err)
	assert.True(t, IsValidation(err), "validation fails before any transport call")
	assert.Zero(t, client.creates)
}

func TestApplyRequiresVaultID(t *testing.T) {
	t.Parallel()

	engine := New(newFakeClient(), nil)

	p := presentParams("No Vault")
	p.VaultID = ""

	_, err := engine.Apply(context.Background(), p, false)
	assert.ErrorIs(t, err, ErrMissingVaultID)
}

func TestParseState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    State
		wantErr bool
	}{
		{raw: "present", want: StatePresent},
		{raw: "created", want: StatePresent},
		{raw: "upserted", want: StatePresent},
		{raw: " Present ", want: StatePresent},
		{raw: "", want: StatePresent},
		{raw: "absent", want: StateAbsent},
		{raw: "destroyed", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run("state "+tt.raw, func(t *testing.T) {
			t.Parallel()
			got, err := ParseState(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
