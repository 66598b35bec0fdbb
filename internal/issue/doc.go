// SPDX-License-Identifier: MPL-2.0

// Package issue provides the error and diagnostic vocabulary shared by the
// indexing and rewriting passes.
//
// ActionableError carries the failed operation, the file involved and
// remediation hints for fatal conditions. Diagnostic describes recoverable
// conditions that are collected and rendered by the CLI instead of aborting
// the run. The issue catalog holds Markdown help rendered with glamour.
package issue
