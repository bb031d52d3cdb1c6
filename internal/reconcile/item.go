package reconcile

import (
	"fmt"
	"strings"

	"github.com/opconnect/itemsync/pkg/connect"
)

// ItemParams are the item-level attributes of a declaration.
type ItemParams struct {
	VaultID  string
	Title    string
	Category connect.ItemCategory
	URLs     []string
	Tags     []string
	Favorite bool
	Fields   []FieldParam
}

// assembleItem composes one complete item document from item-level
// attributes and a reconciled field set. It allocates section IDs,
// derives field purposes and enforces the per-category invariants.
func assembleItem(p ItemParams, fields []mergedField) (*connect.Item, error) {
	if p.VaultID == "" {
		return nil, ErrMissingVaultID
	}

	category := connect.ItemCategory(strings.ToUpper(string(p.Category)))

	urls := make([]connect.URL, 0, len(p.URLs))
	for _, u := range p.URLs {
		urls = append(urls, connect.URL{Href: u})
	}

	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	item := &connect.Item{
		Title:    p.Title,
		Vault:    connect.VaultRef{ID: p.VaultID},
		Category: category,
		URLs:     urls,
		Tags:     tags,
		Favorite: p.Favorite,
		Fields:   make([]connect.Field, 0, len(fields)),
	}

	sections := newSectionAllocator()

	for _, mf := range fields {
		if mf.carried != nil {
			carried := *mf.carried
			// Carried fields keep their stored attributes but are not
			// re-attached to a section.
			carried.Section = nil
			item.Fields = append(item.Fields, carried)
			continue
		}

		sectionID := ""
		if mf.param.Section != "" {
			sectionID = sections.allocate(mf.param.Section)
		}

		field, err := assembleField(
			category,
			mf.param.Type,
			mf.param.Label,
			mf.param.Value,
			mf.generate,
			mf.param.Recipe,
			sectionID,
			connect.PurposeNone,
		)
		if err != nil {
			return nil, err
		}
		item.Fields = append(item.Fields, field)
	}

	if err := derivePurposes(item, category); err != nil {
		return nil, err
	}

	item.Sections = sections.sections()

	return item, nil
}

// derivePurposes assigns each field its semantic purpose and enforces
// that at most one field is the primary username and at most one the
// primary password. The pass overrides any default the field assembler
// set, and fails fast on the second qualifying field.
func derivePurposes(item *connect.Item, category connect.ItemCategory) error {
	var usernameSet, passwordSet bool

	for i := range item.Fields {
		purpose := fieldPurpose(item.Fields[i], category)

		switch purpose {
		case connect.PurposeUsername:
			if usernameSet {
				return fmt.Errorf("item category %s may only have one %q field: %w",
					category, "username", ErrPrimaryUsernameExists)
			}
			usernameSet = true
		case connect.PurposePassword:
			if passwordSet {
				return fmt.Errorf("item category %s may only have one %q field: %w",
					category, "password", ErrPrimaryPasswordExists)
			}
			passwordSet = true
		}

		item.Fields[i].Purpose = purpose
	}

	if category == connect.CategoryPassword && !passwordSet {
		return fmt.Errorf("item category %s: %w", category, ErrPrimaryPasswordUndefined)
	}

	return nil
}

// fieldPurpose derives a single field's purpose from the item category
// and the field's label and type.
func fieldPurpose(field connect.Field, category connect.ItemCategory) connect.Purpose {
	label := strings.TrimSpace(field.Label)
	if label == "" {
		return connect.PurposeNone
	}

	// The notes field match is case-sensitive and bypasses the
	// category rules.
	if field.Type == connect.FieldTypeString && label == connect.NotesFieldLabel {
		return connect.PurposeNotes
	}

	label = strings.ToLower(label)

	if category == connect.CategoryLogin {
		if field.Type == connect.FieldTypeString && label == "username" {
			return connect.PurposeUsername
		}
		if field.Type == connect.FieldTypeConcealed && label == "password" {
			return connect.PurposePassword
		}
	}

	if category == connect.CategoryPassword {
		if field.Type == connect.FieldTypeConcealed && label == "password" {
			return connect.PurposePassword
		}
	}

	return connect.PurposeNone
}
