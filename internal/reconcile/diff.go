package reconcile

import "github.com/opconnect/itemsync/pkg/connect"

// equivalentItems reports whether the assembled document matches the
// stored item, ignoring attributes the assembly cannot produce: the
// item id, server timestamps, and the concrete section ids (a fresh
// assembly generates new ones, so section references are compared
// through their labels).
func equivalentItems(stored, assembled *connect.Item) bool {
	if stored.Title != assembled.Title ||
		stored.Vault.ID != assembled.Vault.ID ||
		stored.Category != assembled.Category ||
		stored.Favorite != assembled.Favorite {
		return false
	}

	if !equalURLs(stored.URLs, assembled.URLs) {
		return false
	}
	if !equalStrings(stored.Tags, assembled.Tags) {
		return false
	}
	if !equalSectionLabels(stored.Sections, assembled.Sections) {
		return false
	}

	if len(stored.Fields) != len(assembled.Fields) {
		return false
	}

	storedSections := sectionLabelsByID(stored.Sections)
	assembledSections := sectionLabelsByID(assembled.Sections)

	for i := range stored.Fields {
		if !equivalentFields(stored.Fields[i], assembled.Fields[i], storedSections, assembledSections) {
			return false
		}
	}

	return true
}

// equivalentFields compares two fields positionally, resolving section
// references to labels on each side.
func equivalentFields(stored, assembled connect.Field, storedSections, assembledSections map[string]string) bool {
	if stored.Label != assembled.Label ||
		stored.Type != assembled.Type ||
		stored.Value != assembled.Value ||
		stored.Purpose != assembled.Purpose ||
		stored.Generate != assembled.Generate {
		return false
	}
	return storedSections[stored.SectionID()] == assembledSections[assembled.SectionID()]
}

func sectionLabelsByID(sections []connect.Section) map[string]string {
	labels := make(map[string]string, len(sections))
	for _, s := range sections {
		labels[s.ID] = s.Label
	}
	return labels
}

func equalSectionLabels(stored, assembled []connect.Section) bool {
	if len(stored) != len(assembled) {
		return false
	}
	seen := make(map[string]int, len(stored))
	for _, s := range stored {
		seen[s.Label]++
	}
	for _, s := range assembled {
		seen[s.Label]--
		if seen[s.Label] < 0 {
			return false
		}
	}
	return true
}

func equalURLs(a, b []connect.URL) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Href != b[i].Href {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
