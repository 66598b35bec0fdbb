// SPDX-License-Identifier: MPL-2.0

// Package migrate runs a whole-tree migration in two passes.
//
// Pass one reads every build descriptor below the module directory and builds
// the source index. Pass two visits every file of the tree, rewrites the
// module references it can map, and writes changed files back in place.
// The index is complete before the first source file is read.
package migrate
