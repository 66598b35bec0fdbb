// SPDX-License-Identifier: MPL-2.0

package namespace

import "testing"

func TestTable_LongestPrefixWins(t *testing.T) {
	t.Parallel()

	table := NewTable([]Entry{
		{Prefix: "a", Root: "resource://short"},
		{Prefix: "a/b/c", Root: "resource://longest"},
		{Prefix: "a/b", Root: "resource://middle"},
	})

	tests := []struct {
		id   string
		want string
	}{
		{"a/b/c/d", "resource://longest"},
		{"a/b/x", "resource://middle"},
		{"a/x", "resource://short"},
		{"abc", "resource://short"},
	}

	for _, tt := range tests {
		entry, ok := table.Match(tt.id)
		if !ok {
			t.Fatalf("Match(%q) found no entry", tt.id)
		}
		if entry.Root != tt.want {
			t.Errorf("Match(%q).Root = %q, want %q", tt.id, entry.Root, tt.want)
		}
	}
}

func TestTable_NoMatch(t *testing.T) {
	t.Parallel()

	table := NewTable([]Entry{{Prefix: "devtools", Root: "resource:///modules/devtools"}})
	if entry, ok := table.Match("gcli/types"); ok {
		t.Errorf("Match() = %+v, want no match", entry)
	}
}

func TestTable_EmptyPrefixIsDefault(t *testing.T) {
	t.Parallel()

	table := NewTable(DefaultEntries())
	entry, ok := table.Match("sdk/core/heritage")
	if !ok {
		t.Fatal("expected the empty prefix to match")
	}
	if entry.Prefix != "" {
		t.Errorf("Match().Prefix = %q, want empty default", entry.Prefix)
	}
}

func TestTable_EqualLengthKeepsInputOrder(t *testing.T) {
	t.Parallel()

	table := NewTable([]Entry{
		{Prefix: "ab", Root: "first"},
		{Prefix: "cd", Root: "second"},
		{Prefix: "", Root: "default"},
	})
	entries := table.Entries()
	if entries[0].Root != "first" || entries[1].Root != "second" || entries[2].Root != "default" {
		t.Errorf("Entries() = %+v, want stable order by length", entries)
	}
	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3", table.Len())
	}
}

func TestTable_EntriesIsCopy(t *testing.T) {
	t.Parallel()

	table := NewTable([]Entry{{Prefix: "x", Root: "resource://x"}})
	entries := table.Entries()
	entries[0].Root = "mutated"

	if got, _ := table.Match("x"); got.Root != "resource://x" {
		t.Errorf("table mutated through Entries(): %+v", got)
	}
}
