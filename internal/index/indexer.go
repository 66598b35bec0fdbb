// SPDX-License-Identifier: MPL-2.0

package index

import (
	"fmt"
	"path"

	"github.com/modrewrite/modrewrite/internal/declare"
	"github.com/modrewrite/modrewrite/internal/issue"
)

type (
	// Collision reports an overwritten index entry. The later declaration wins.
	Collision struct {
		// Resource is the canonical id of the later declaration.
		Resource string
		// Source is the physical path of the later declaration.
		Source string
		// PrevSource is the physical path that resource pointed to before.
		PrevSource string
		// PrevResource is the canonical id that source pointed to before.
		PrevResource string
		// Descriptor and Line locate the later declaration.
		Descriptor string
		Line       int
	}

	// Indexer accumulates declaration records into a SourceIndex.
	Indexer struct {
		index *SourceIndex
	}
)

// NewIndexer creates an Indexer over an empty SourceIndex.
func NewIndexer() *Indexer {
	return &Indexer{index: NewSourceIndex()}
}

// Index returns the index built so far.
func (ix *Indexer) Index() *SourceIndex { return ix.index }

// AddRecord indexes every entry of rec. Entries are resolved against the
// descriptor's directory; the canonical id keeps only the file's base name.
func (ix *Indexer) AddRecord(rec declare.Record) []Collision {
	var collisions []Collision
	dir := path.Dir(rec.Descriptor)
	for _, entry := range rec.Entries {
		source := path.Join(dir, entry)
		resource := rec.Root + "/" + path.Base(source)

		prevSource, prevResource := ix.index.Add(source, resource)
		if (prevSource != "" && prevSource != source) || (prevResource != "" && prevResource != resource) {
			collisions = append(collisions, Collision{
				Resource:     resource,
				Source:       source,
				PrevSource:   prevSource,
				PrevResource: prevResource,
				Descriptor:   rec.Descriptor,
				Line:         rec.Line,
			})
		}
	}
	return collisions
}

// Build indexes records in order.
func Build(records []declare.Record) (*SourceIndex, []Collision) {
	ix := NewIndexer()
	var collisions []Collision
	for _, rec := range records {
		collisions = append(collisions, ix.AddRecord(rec)...)
	}
	return ix.Index(), collisions
}

// Diagnostic describes the collision as a warning.
func (c Collision) Diagnostic() issue.Diagnostic {
	var msg string
	if c.PrevSource != "" && c.PrevSource != c.Source {
		msg = fmt.Sprintf("%s declared for %s, replacing %s", c.Resource, c.Source, c.PrevSource)
	} else {
		msg = fmt.Sprintf("%s redeclared as %s, replacing %s", c.Source, c.Resource, c.PrevResource)
	}
	return issue.NewWarning(issue.CodeIndexCollision, c.Descriptor, msg).WithLine(c.Line)
}
