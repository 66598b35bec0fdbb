// SPDX-License-Identifier: MPL-2.0

package namespace

// DefaultEntries returns the loader namespace table of the devtools tree.
// The empty prefix maps everything else into the commonjs root.
func DefaultEntries() []Entry {
	return []Entry{
		{Prefix: "", Root: "resource://gre/modules/commonjs/"},
		{Prefix: "main", Root: "resource:///modules/devtools/main.js"},
		{Prefix: "definitions", Root: "resource:///modules/devtools/definitions.js"},
		{Prefix: "devtools", Root: "resource:///modules/devtools"},
		{Prefix: "devtools/toolkit", Root: "resource://gre/modules/devtools"},
		{Prefix: "devtools/server", Root: "resource://gre/modules/devtools/server"},
		{Prefix: "devtools/toolkit/webconsole", Root: "resource://gre/modules/devtools/toolkit/webconsole"},
		{Prefix: "devtools/app-actor-front", Root: "resource://gre/modules/devtools/app-actor-front.js"},
		{Prefix: "devtools/styleinspector/css-logic", Root: "resource://gre/modules/devtools/styleinspector/css-logic"},
		{Prefix: "devtools/css-color", Root: "resource://gre/modules/devtools/css-color"},
		{Prefix: "devtools/output-parser", Root: "resource://gre/modules/devtools/output-parser"},
		{Prefix: "devtools/client", Root: "resource://gre/modules/devtools/client"},
		{Prefix: "devtools/pretty-fast", Root: "resource://gre/modules/devtools/pretty-fast.js"},
		{Prefix: "devtools/jsbeautify", Root: "resource://gre/modules/devtools/jsbeautify/beautify.js"},
		{Prefix: "devtools/async-utils", Root: "resource://gre/modules/devtools/async-utils"},
		{Prefix: "devtools/content-observer", Root: "resource://gre/modules/devtools/content-observer"},
		{Prefix: "gcli", Root: "resource://gre/modules/devtools/gcli"},
		{Prefix: "projecteditor", Root: "resource:///modules/devtools/projecteditor"},
		{Prefix: "promise", Root: "resource://gre/modules/Promise-backend.js"},
		{Prefix: "acorn", Root: "resource://gre/modules/devtools/acorn"},
		{Prefix: "acorn/util/walk", Root: "resource://gre/modules/devtools/acorn/walk.js"},
		{Prefix: "tern", Root: "resource://gre/modules/devtools/tern"},
		{Prefix: "source-map", Root: "resource://gre/modules/devtools/sourcemap/source-map.js"},
		{Prefix: "xpcshell-test", Root: "resource://test"},
	}
}
