// SPDX-License-Identifier: MPL-2.0

package namespace

import "strings"

const (
	// DefaultScheme marks identifiers that are already canonical.
	DefaultScheme = "resource://"
	// DefaultExtension is appended to canonical ids that carry no extension.
	DefaultExtension = ".js"
)

type (
	// CanonicalID is an absolute, scheme-rooted module identifier with an extension.
	CanonicalID string

	// Resolver turns raw references into canonical ids. It holds no mutable
	// state and is safe to share.
	Resolver struct {
		table     *Table
		scheme    string
		extension string
	}

	// Option configures a Resolver.
	Option func(*Resolver)
)

// WithScheme overrides the canonical scheme marker.
func WithScheme(scheme string) Option {
	return func(r *Resolver) { r.scheme = scheme }
}

// WithDefaultExtension overrides the extension appended to extensionless ids.
func WithDefaultExtension(ext string) Option {
	return func(r *Resolver) { r.extension = ext }
}

// NewResolver creates a Resolver over table.
func NewResolver(table *Table, opts ...Option) *Resolver {
	r := &Resolver{
		table:     table,
		scheme:    DefaultScheme,
		extension: DefaultExtension,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// String returns the string representation of the CanonicalID.
func (id CanonicalID) String() string { return string(id) }

// HasPrefix reports whether the canonical id starts with prefix.
func (id CanonicalID) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(id), prefix)
}

// Resolve returns the canonical form of raw. Identifiers already carrying the
// scheme are only extension-normalized, which keeps resolution idempotent.
func (r *Resolver) Resolve(raw string) (CanonicalID, error) {
	if r.IsCanonical(raw) {
		return CanonicalID(NormalizeExtension(raw, r.extension)), nil
	}
	entry, ok := r.table.Match(raw)
	if !ok {
		return "", &NoMappingError{ID: raw}
	}
	return CanonicalID(NormalizeExtension(entry.Substitute(raw), r.extension)), nil
}

// IsCanonical reports whether raw already begins with the canonical scheme.
func (r *Resolver) IsCanonical(raw string) bool {
	return strings.HasPrefix(raw, r.scheme)
}

// Scheme returns the canonical scheme marker.
func (r *Resolver) Scheme() string { return r.scheme }

// DefaultExtension returns the extension appended to extensionless ids.
func (r *Resolver) DefaultExtension() string { return r.extension }

// Table returns the underlying namespace table.
func (r *Resolver) Table() *Table { return r.table }

// NormalizeExtension appends ext to id when the final path element of id has
// no extension. Calling it repeatedly never appends twice.
func NormalizeExtension(id, ext string) string {
	if Extension(id) != "" {
		return id
	}
	return id + ext
}

// Extension returns the extension of the final slash-separated element of id,
// including the dot. Leading dots of the element (".eslintrc") are not treated
// as an extension.
func Extension(id string) string {
	base := id
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		base = id[i+1:]
	}
	trimmed := strings.TrimLeft(base, ".")
	if i := strings.LastIndexByte(trimmed, '.'); i >= 0 {
		return trimmed[i:]
	}
	return ""
}

// TrimExtension removes ext from the end of id when id's extension equals ext.
func TrimExtension(id, ext string) string {
	if ext != "" && Extension(id) == ext {
		return strings.TrimSuffix(id, ext)
	}
	return id
}
