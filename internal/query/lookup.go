// Package query resolves vaults, items and fields from human labels
// or machine identifiers.
package query

import (
	"context"
	"fmt"

	"github.com/opconnect/itemsync/internal/reconcile"
	"github.com/opconnect/itemsync/pkg/connect"
)

// ResolveVaultID turns a vault name or ID into a vault ID. A valid
// client ID is used directly; anything else is matched against the
// normalized names of all accessible vaults.
func ResolveVaultID(ctx context.Context, client connect.Client, vault string) (string, error) {
	if connect.ValidClientID(vault) {
		return vault, nil
	}

	vaults, err := client.ListVaults(ctx)
	if err != nil {
		return "", err
	}

	wanted := connect.NormalizeLabel(vault)
	for _, v := range vaults {
		if connect.NormalizeLabel(v.Name) == wanted {
			return v.ID, nil
		}
	}
	return "", connect.NewNotFoundError(fmt.Sprintf("vault %q not found", vault))
}

// GetItem fetches an item by name or ID from the given vault, which
// may itself be a name or an ID.
func GetItem(ctx context.Context, client connect.Client, vault, item string) (*connect.Item, error) {
	vaultID, err := ResolveVaultID(ctx, client, vault)
	if err != nil {
		return nil, err
	}

	if connect.ValidClientID(item) {
		return client.FindItemByID(ctx, vaultID, item)
	}
	return client.FindItemByTitle(ctx, vaultID, item)
}

// GetItemAnyVault searches every accessible vault for the item,
// returning the first match.
func GetItemAnyVault(ctx context.Context, client connect.Client, item string) (*connect.Item, error) {
	vaults, err := client.ListVaults(ctx)
	if err != nil {
		return nil, err
	}

	for _, v := range vaults {
		found, err := GetItem(ctx, client, v.ID, item)
		if err != nil {
			if connect.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		return found, nil
	}
	return nil, connect.NewNotFoundError(fmt.Sprintf("item %q not found in any vault", item))
}

// FindField resolves a field within an item by machine ID or by
// normalized label, optionally scoped to a section given as a label or
// ID. A label matching more than one field in scope is rejected.
func FindField(item *connect.Item, field, section string) (*connect.Field, error) {
	if len(item.Fields) == 0 {
		return nil, connect.NewNotFoundError("item has no fields")
	}

	sectionID, err := resolveSectionID(item.Sections, section)
	if err != nil {
		return nil, err
	}

	if connect.ValidClientID(field) {
		return findFieldByID(item.Fields, field, sectionID)
	}
	return findFieldByLabel(item.Fields, field, sectionID)
}

// resolveSectionID maps an optional section identifier to a section
// ID. An empty identifier means the whole item is in scope.
func resolveSectionID(sections []connect.Section, section string) (string, error) {
	if section == "" || len(sections) == 0 {
		return "", nil
	}
	if connect.ValidClientID(section) {
		return section, nil
	}

	wanted := connect.NormalizeLabel(section)
	for _, s := range sections {
		if connect.NormalizeLabel(s.Label) == wanted {
			return s.ID, nil
		}
	}
	return "", connect.NewNotFoundError(fmt.Sprintf("section %q not found in item", section))
}

func inScope(f connect.Field, sectionID string) bool {
	return sectionID == "" || f.SectionID() == sectionID
}

func findFieldByID(fields []connect.Field, id, sectionID string) (*connect.Field, error) {
	for i := range fields {
		if inScope(fields[i], sectionID) && fields[i].ID == id {
			return &fields[i], nil
		}
	}
	return nil, connect.NewNotFoundError(fmt.Sprintf("field %s not found in item", id))
}

func findFieldByLabel(fields []connect.Field, label, sectionID string) (*connect.Field, error) {
	wanted := connect.NormalizeLabel(label)

	var match *connect.Field
	for i := range fields {
		if !inScope(fields[i], sectionID) {
			continue
		}
		if connect.NormalizeLabel(fields[i].Label) != wanted {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("field %q: %w", label, reconcile.ErrFieldNotUnique)
		}
		match = &fields[i]
	}

	if match == nil {
		return nil, connect.NewNotFoundError(fmt.Sprintf("field %q not found in item", label))
	}
	return match, nil
}
