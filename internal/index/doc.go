// SPDX-License-Identifier: MPL-2.0

// Package index holds the bidirectional mapping between physical source paths
// and canonical module ids built from build-descriptor declarations.
package index
