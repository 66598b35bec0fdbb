// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from the file named by --config, from
// ~/.config/modrewrite/config.cue (XDG equivalent on Linux,
// ~/Library/Application Support/modrewrite/config.cue on macOS,
// %APPDATA%\modrewrite\config.cue on Windows), or from ./modrewrite.cue.
// Every key has a default, so running without a file migrates a devtools tree.
//
// Files are validated against the embedded CUE schema (config_schema.cue).
// Constraints CUE cannot express, such as namespace roots carrying the
// configured scheme or unique call-site keywords, are checked in Go.
package config
