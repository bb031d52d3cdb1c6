package reconcile

import (
	"strings"

	"github.com/google/uuid"

	"github.com/opconnect/itemsync/pkg/connect"
)

// sectionAllocator deduplicates section labels into stable section IDs
// for the duration of one assembly pass. Labels are squashed by
// trimmed, case-sensitive equality only; no Unicode normalization is
// applied to section labels.
type sectionAllocator struct {
	ids   map[string]string
	order []connect.Section
}

func newSectionAllocator() *sectionAllocator {
	return &sectionAllocator{ids: make(map[string]string)}
}

// allocate returns the section ID for the given label, generating a
// fresh one on first sight of a trimmed label.
func (a *sectionAllocator) allocate(label string) string {
	trimmed := strings.TrimSpace(label)
	if id, ok := a.ids[trimmed]; ok {
		return id
	}

	id := uuid.NewString()
	a.ids[trimmed] = id
	a.order = append(a.order, connect.Section{ID: id, Label: trimmed})
	return id
}

// sections returns the allocated sections in first-seen order, or nil
// when no field referenced a section.
func (a *sectionAllocator) sections() []connect.Section {
	return a.order
}
