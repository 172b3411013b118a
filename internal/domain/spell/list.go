package spell

import "sort"

// Journal page types and subtypes for spell list pages
const (
	PageTypeSpells   = "spells"
	PageSubtypeClass = "class"
	PageSubtypeOther = "other"
)

// ListDescriptor describes a spell list page in a compendium journal.
// Lists are keyed to a class identifier and carry the set of spell UUIDs
// that class can learn from.
type ListDescriptor struct {
	UUID            string          `json:"uuid"`
	Name            string          `json:"name"`
	ClassIdentifier string          `json:"class_identifier"`
	Spells          map[string]bool `json:"spells"` // set of spell UUIDs
}

// SpellUUIDs returns the list's spell UUIDs in stable order
func (l *ListDescriptor) SpellUUIDs() []string {
	uuids := make([]string, 0, len(l.Spells))
	for uuid := range l.Spells {
		uuids = append(uuids, uuid)
	}
	sort.Strings(uuids)
	return uuids
}

// Contains reports whether the list includes the given spell UUID
func (l *ListDescriptor) Contains(uuid string) bool {
	return l.Spells[uuid]
}

// SortListsByName orders descriptors by display name in place
func SortListsByName(lists []*ListDescriptor) {
	sort.Slice(lists, func(i, j int) bool {
		return lists[i].Name < lists[j].Name
	})
}
