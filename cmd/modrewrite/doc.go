// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the modrewrite command tree: run, index, resolve and
// config. Handlers receive an *App and delegate to the migrate, config and
// namespace packages.
package cmd
