// SPDX-License-Identifier: MPL-2.0

package migrate

import (
	"github.com/modrewrite/modrewrite/internal/index"
	"github.com/modrewrite/modrewrite/internal/issue"
	"github.com/modrewrite/modrewrite/internal/rewrite"
)

type (
	// IndexResult is the outcome of the descriptor pass.
	IndexResult struct {
		// Index maps physical paths to canonical ids and back.
		Index *index.SourceIndex
		// Descriptors is the number of descriptor files read.
		Descriptors int
		// Records is the number of build-array blocks indexed.
		Records int
		// Collisions are the overwritten index entries.
		Collisions []index.Collision
		// Diagnostics are malformed entries and collisions.
		Diagnostics []issue.Diagnostic
	}

	// FileChange lists the edits applied to one file.
	FileChange struct {
		Path  string         `json:"path"`
		Edits []rewrite.Edit `json:"edits"`
	}

	// Report summarizes a migration run.
	Report struct {
		DryRun       bool
		Descriptors  int
		Records      int
		Mappings     int
		Collisions   int
		FilesScanned int
		FilesChanged int
		FilesSkipped int
		References   int
		Rewrites     int
		// Skips counts untouched references per reason.
		Skips map[rewrite.SkipReason]int
		// Changes lists changed files in path order.
		Changes []FileChange
		// Diagnostics are the recoverable conditions met during the run.
		Diagnostics []issue.Diagnostic
	}
)

func newReport(ir *IndexResult, dryRun bool) *Report {
	return &Report{
		DryRun:      dryRun,
		Descriptors: ir.Descriptors,
		Records:     ir.Records,
		Mappings:    ir.Index.Len(),
		Collisions:  len(ir.Collisions),
		Skips:       make(map[rewrite.SkipReason]int),
		Diagnostics: append([]issue.Diagnostic(nil), ir.Diagnostics...),
	}
}

func (r *Report) addResult(res *rewrite.Result) {
	r.FilesScanned++
	r.References += res.References
	r.Rewrites += len(res.Edits)
	for reason, n := range res.Skips {
		r.Skips[reason] += n
	}
	r.Diagnostics = append(r.Diagnostics, res.Diagnostics...)
	if res.Changed {
		r.FilesChanged++
		r.Changes = append(r.Changes, FileChange{Path: res.Path, Edits: res.Edits})
	}
}

// Warnings returns the warning-level diagnostics.
func (r *Report) Warnings() []issue.Diagnostic {
	var out []issue.Diagnostic
	for _, d := range r.Diagnostics {
		if d.IsWarning() {
			out = append(out, d)
		}
	}
	return out
}

// CountCode returns how many diagnostics carry code.
func (r *Report) CountCode(code string) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Code == code {
			n++
		}
	}
	return n
}
