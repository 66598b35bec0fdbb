// SPDX-License-Identifier: MPL-2.0

package namespace

import (
	"sort"
	"strings"
)

type (
	// Entry is a single substitution rule: references starting with Prefix
	// have that prefix replaced by Root.
	Entry struct {
		// Prefix is matched literally against the start of a reference.
		// The empty prefix matches every reference and acts as the default.
		Prefix string `json:"prefix" mapstructure:"prefix"`
		// Root is the canonical namespace root substituted for Prefix.
		Root string `json:"root" mapstructure:"root"`
	}

	// Table is an immutable, priority-ordered list of entries.
	Table struct {
		entries []Entry
	}
)

// NewTable builds a Table ordered by descending prefix length. Entries with
// equal-length prefixes keep their relative input order.
func NewTable(entries []Entry) *Table {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Prefix) > len(sorted[j].Prefix)
	})
	return &Table{entries: sorted}
}

// Match returns the entry with the longest prefix that is a literal prefix of id.
func (t *Table) Match(id string) (Entry, bool) {
	for _, e := range t.entries {
		if strings.HasPrefix(id, e.Prefix) {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns the entries in priority order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Substitute replaces the entry's prefix at the start of id with its root.
// The remainder of id is preserved verbatim.
func (e Entry) Substitute(id string) string {
	return e.Root + strings.TrimPrefix(id, e.Prefix)
}
