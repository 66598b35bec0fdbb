// SPDX-License-Identifier: MPL-2.0

// Package namespace maps symbolic module identifiers to canonical, scheme-rooted ids.
//
// A Table holds prefix-to-root substitution rules ordered so that the most
// specific (longest) prefix wins. A Resolver wraps a Table with the canonical
// scheme short-circuit and default extension inference:
//
//	table := namespace.NewTable(namespace.DefaultEntries())
//	r := namespace.NewResolver(table)
//	id, err := r.Resolve("devtools/toolkit/event-emitter")
//	// id == "resource://gre/modules/devtools/event-emitter.js"
package namespace
