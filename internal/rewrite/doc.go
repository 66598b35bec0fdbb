// SPDX-License-Identifier: MPL-2.0

// Package rewrite finds module references in source text, classifies them,
// and rewrites their identifiers to source-tree based canonical forms.
//
// Only the identifier literal of a call site is replaced. Edits are collected
// with their byte spans and applied in one right-to-left pass.
package rewrite
