// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include project tree builders (WriteTree, MustWriteFile),
// directory operations (MustChdir, MustMkdirAll), and file inspection
// (MustReadFile).
package testutil
