// SPDX-License-Identifier: MPL-2.0

package rewrite

import (
	"fmt"
	"strings"

	"github.com/modrewrite/modrewrite/internal/index"
	"github.com/modrewrite/modrewrite/internal/issue"
	"github.com/modrewrite/modrewrite/pkg/namespace"

	"golang.org/x/exp/slices"
)

const (
	// SkipEmpty: the identifier literal is empty.
	SkipEmpty SkipReason = "empty"
	// SkipRelative: relative identifiers stay valid after the migration.
	SkipRelative SkipReason = "relative"
	// SkipBootstrap: the bootstrap identifier inside its own subtree.
	SkipBootstrap SkipReason = "bootstrap"
	// SkipNoMapping: no namespace entry matched.
	SkipNoMapping SkipReason = "no_mapping"
	// SkipVendoredRoot: the canonical id belongs to a vendored library.
	SkipVendoredRoot SkipReason = "vendored_root"
	// SkipOutsideProject: the canonical id lacks the project marker.
	SkipOutsideProject SkipReason = "outside_project"
	// SkipUnmapped: no declaration indexed the canonical id.
	SkipUnmapped SkipReason = "unmapped"
	// SkipExcludedSource: the physical path is excluded.
	SkipExcludedSource SkipReason = "excluded_source"
	// SkipUnchanged: the identifier is already in its rewritten form.
	SkipUnchanged SkipReason = "unchanged"
)

type (
	// SkipReason records why a reference was left untouched.
	SkipReason string

	// Edit replaces the identifier at Span.
	Edit struct {
		Span    Span   `json:"span"`
		Line    int    `json:"line"`
		Keyword string `json:"keyword"`
		Old     string `json:"old"`
		New     string `json:"new"`
	}

	// Result is the outcome of rewriting one file.
	Result struct {
		// Path is the slash-separated file path relative to the project root.
		Path string
		// Text is the rewritten content; it aliases the input when unchanged.
		Text []byte
		// Changed reports whether any edit was applied.
		Changed bool
		// References is the number of call sites found.
		References int
		// Edits are the applied replacements in order of appearance.
		Edits []Edit
		// Skips counts untouched references per reason.
		Skips map[SkipReason]int
		// Diagnostics are the recoverable conditions met in this file.
		Diagnostics []issue.Diagnostic
	}

	// Rewriter rewrites the references of individual files against a
	// read-only SourceIndex.
	Rewriter struct {
		resolver *namespace.Resolver
		index    *index.SourceIndex
		scanner  *Scanner
		policy   Policy
	}

	// Option configures a Rewriter.
	Option func(*Rewriter)
)

// WithPolicy overrides DefaultPolicy.
func WithPolicy(p Policy) Option {
	return func(r *Rewriter) { r.policy = p }
}

// WithCallSites overrides DefaultCallSites.
func WithCallSites(sites []CallSite) Option {
	return func(r *Rewriter) { r.scanner = NewScanner(sites) }
}

// NewRewriter creates a Rewriter resolving through resolver and idx.
func NewRewriter(resolver *namespace.Resolver, idx *index.SourceIndex, opts ...Option) *Rewriter {
	r := &Rewriter{
		resolver: resolver,
		index:    idx,
		scanner:  NewScanner(DefaultCallSites()),
		policy:   DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RewriteFile rewrites every reference found in text. file is the
// slash-separated path relative to the project root.
func (r *Rewriter) RewriteFile(file string, text []byte) *Result {
	res := &Result{Path: file, Text: text, Skips: make(map[SkipReason]int)}
	refs := r.scanner.Scan(text)
	res.References = len(refs)

	for _, ref := range refs {
		updated, reason, diag := r.rewriteReference(file, ref)
		if diag != nil {
			res.Diagnostics = append(res.Diagnostics, *diag)
		}
		if reason != "" {
			res.Skips[reason]++
			continue
		}
		res.Edits = append(res.Edits, Edit{
			Span:    ref.ID,
			Line:    ref.Line,
			Keyword: ref.Keyword,
			Old:     ref.RawID,
			New:     updated,
		})
	}

	if len(res.Edits) > 0 {
		res.Text = ApplyEdits(text, res.Edits)
		res.Changed = true
	}
	return res
}

// Rewrite returns the rewritten identifier for ref, or the reason it is
// left alone.
func (r *Rewriter) Rewrite(file string, ref Reference) (string, SkipReason) {
	updated, reason, _ := r.rewriteReference(file, ref)
	return updated, reason
}

func (r *Rewriter) rewriteReference(file string, ref Reference) (string, SkipReason, *issue.Diagnostic) {
	raw := ref.RawID
	switch {
	case raw == "":
		return "", SkipEmpty, nil
	case strings.HasPrefix(raw, "."):
		return "", SkipRelative, nil
	case r.policy.isBootstrap(file, raw):
		return "", SkipBootstrap, nil
	}

	resolved, err := r.resolver.Resolve(raw)
	if err != nil {
		d := issue.NewDebug(issue.CodeReferenceNoMapping, file, err.Error()).WithLine(ref.Line).WithCause(err)
		return "", SkipNoMapping, &d
	}
	resource := resolved.String()

	if r.policy.isVendored(resource) {
		return "", SkipVendoredRoot, nil
	}
	if r.policy.isOutsideProject(resource) {
		return "", SkipOutsideProject, nil
	}

	source, ok := r.index.Source(resource)
	if !ok {
		if alt, tried := r.policy.fallback(resource); tried {
			source, ok = r.index.Source(alt)
		}
	}
	if !ok {
		d := issue.NewWarning(issue.CodeReferenceUnmapped, file,
			fmt.Sprintf("no mapping for %s (from %q)", resource, raw)).WithLine(ref.Line)
		return "", SkipUnmapped, &d
	}

	if r.policy.isExcluded(source) {
		return "", SkipExcludedSource, nil
	}

	var updated string
	if ref.Kind.IsImportLike() || r.resolver.IsCanonical(raw) {
		updated = r.policy.canonicalURL(source)
	} else {
		updated = namespace.TrimExtension(source, r.resolver.DefaultExtension())
	}
	if updated == raw {
		return "", SkipUnchanged, nil
	}
	return updated, "", nil
}

// ApplyEdits returns text with every edit applied. Edits must not overlap;
// they are applied from the end of the text so earlier spans stay valid.
func ApplyEdits(text []byte, edits []Edit) []byte {
	ordered := slices.Clone(edits)
	slices.SortFunc(ordered, func(a, b Edit) int { return b.Span.Start - a.Span.Start })

	out := slices.Clone(text)
	for _, e := range ordered {
		tail := slices.Clone(out[e.Span.End:])
		out = append(append(out[:e.Span.Start], e.New...), tail...)
	}
	return out
}
