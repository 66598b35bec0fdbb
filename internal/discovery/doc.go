// SPDX-License-Identifier: MPL-2.0

// Package discovery locates the files a migration run works on.
//
// The first pass only needs build descriptors below the module directory.
// The second pass visits every regular file of the project tree except those
// inside pruned directories such as version-control metadata or build output.
package discovery
