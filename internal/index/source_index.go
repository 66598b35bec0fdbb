// SPDX-License-Identifier: MPL-2.0

package index

import (
	"cmp"

	"golang.org/x/exp/slices"
)

type (
	// SourceIndex maps physical source paths to canonical ids and back.
	// It is filled once while indexing and only read afterwards.
	SourceIndex struct {
		sourceToResource map[string]string
		resourceToSource map[string]string
	}

	// Mapping is one source/resource pair, exported for index dumps.
	Mapping struct {
		Source   string `json:"source" yaml:"source" toml:"source"`
		Resource string `json:"resource" yaml:"resource" toml:"resource"`
	}
)

// NewSourceIndex creates an empty SourceIndex.
func NewSourceIndex() *SourceIndex {
	return &SourceIndex{
		sourceToResource: make(map[string]string),
		resourceToSource: make(map[string]string),
	}
}

// Add records source <-> resource, overwriting earlier pairs on either side.
// It returns the source previously bound to resource and the resource
// previously bound to source, empty when there was none.
func (x *SourceIndex) Add(source, resource string) (prevSource, prevResource string) {
	prevSource = x.resourceToSource[resource]
	prevResource = x.sourceToResource[source]
	x.sourceToResource[source] = resource
	x.resourceToSource[resource] = source
	return prevSource, prevResource
}

// Source returns the physical path indexed for a canonical id.
func (x *SourceIndex) Source(resource string) (string, bool) {
	s, ok := x.resourceToSource[resource]
	return s, ok
}

// Resource returns the canonical id indexed for a physical path.
func (x *SourceIndex) Resource(source string) (string, bool) {
	r, ok := x.sourceToResource[source]
	return r, ok
}

// Len returns the number of canonical ids in the index.
func (x *SourceIndex) Len() int { return len(x.resourceToSource) }

// Mappings returns every resource -> source pair sorted by resource.
func (x *SourceIndex) Mappings() []Mapping {
	mappings := make([]Mapping, 0, len(x.resourceToSource))
	for resource, source := range x.resourceToSource {
		mappings = append(mappings, Mapping{Source: source, Resource: resource})
	}
	slices.SortFunc(mappings, func(a, b Mapping) int {
		return cmp.Compare(a.Resource, b.Resource)
	})
	return mappings
}
