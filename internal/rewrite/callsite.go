// SPDX-License-Identifier: MPL-2.0

package rewrite

type (
	// CallSite describes one call that carries a module identifier.
	CallSite struct {
		// Keyword is the callee name, possibly dotted ("Cu.import").
		Keyword string `json:"keyword" mapstructure:"keyword"`
		// Kind classifies references found at this call.
		Kind Kind `json:"kind" mapstructure:"kind"`
		// Accessor marks lazy getters whose identifier is the third argument.
		// Other calls take the identifier as their first argument.
		Accessor bool `json:"accessor" mapstructure:"accessor"`
	}
)

// DefaultCallSites returns the call sites of the devtools tree.
func DefaultCallSites() []CallSite {
	return []CallSite{
		{Keyword: "Components.utils.import", Kind: EagerImport},
		{Keyword: "Cu.import", Kind: EagerImport},
		{Keyword: "require", Kind: DependencyRequire},
		{Keyword: "devtoolsRequire", Kind: DependencyRequire},
		{Keyword: "loadFrameScript", Kind: EagerImport},
		{Keyword: "importScripts", Kind: EagerImport},
		{Keyword: "loadSubScript", Kind: EagerImport},
		{Keyword: "lazyImporter", Kind: LazyImport, Accessor: true},
		{Keyword: "lazyRequireGetter", Kind: DependencyRequire, Accessor: true},
		{Keyword: "defineLazyModuleGetter", Kind: LazyImport, Accessor: true},
	}
}
