package reconcile

import "github.com/opconnect/itemsync/pkg/connect"

// FlatItem is the presentation form of a reconciled item: the field
// list remapped into a mapping keyed by label, falling back to the
// field's machine id when the label is empty. Flattening is applied
// only to the final returned document, never to intermediate assembly.
type FlatItem struct {
	ID        string                   `json:"id,omitempty"`
	Title     string                   `json:"title"`
	Vault     connect.VaultRef         `json:"vault"`
	Category  connect.ItemCategory     `json:"category"`
	URLs      []connect.URL            `json:"urls"`
	Tags      []string                 `json:"tags"`
	Favorite  bool                     `json:"favorite"`
	Fields    map[string]connect.Field `json:"fields"`
	Sections  []connect.Section        `json:"sections,omitempty"`
	CreatedAt string                   `json:"created_at,omitempty"`
	UpdatedAt string                   `json:"updated_at,omitempty"`
}

func Flatten(item *connect.Item) *FlatItem {
	fields := make(map[string]connect.Field, len(item.Fields))
	for _, f := range item.Fields {
		key := f.Label
		if key == "" {
			key = f.ID
		}
		fields[key] = f
	}

	return &FlatItem{
		ID:        item.ID,
		Title:     item.Title,
		Vault:     item.Vault,
		Category:  item.Category,
		URLs:      item.URLs,
		Tags:      item.Tags,
		Favorite:  item.Favorite,
		Fields:    fields,
		Sections:  item.Sections,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
