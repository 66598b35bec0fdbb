// SPDX-License-Identifier: MPL-2.0

// Package workspace provides the file capability used by a migration run:
// enumerating a project tree, reading files, and writing them back in place.
package workspace
