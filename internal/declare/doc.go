// SPDX-License-Identifier: MPL-2.0

// Package declare extracts declaration records from build descriptors.
//
// A descriptor declares shipped modules with a build-array assignment whose
// target expression names the canonical directory:
//
//	EXTRA_JS_MODULES.devtools.shared += [
//	    'event-emitter.js',
//	]
//
// Each block becomes a Record carrying the declared canonical root
// ("resource://gre/modules/devtools/shared") and its relative entries.
// Descriptors under the client subtree use the client root instead.
package declare
