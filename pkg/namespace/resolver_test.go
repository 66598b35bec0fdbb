// SPDX-License-Identifier: MPL-2.0

package namespace

import (
	"errors"
	"testing"
)

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	r := NewResolver(NewTable(DefaultEntries()))

	tests := []struct {
		name string
		raw  string
		want CanonicalID
	}{
		{"most specific prefix", "devtools/toolkit/event-emitter", "resource://gre/modules/devtools/event-emitter.js"},
		{"broad devtools prefix", "devtools/shared/event-emitter", "resource:///modules/devtools/shared/event-emitter.js"},
		{"nested longest prefix", "devtools/toolkit/webconsole/utils", "resource://gre/modules/devtools/toolkit/webconsole/utils.js"},
		{"exact file entry", "promise", "resource://gre/modules/Promise-backend.js"},
		{"default entry", "sdk/core/heritage", "resource://gre/modules/commonjs/sdk/core/heritage.js"},
		{"already canonical", "resource://gre/modules/Services.jsm", "resource://gre/modules/Services.jsm"},
		{"canonical without extension", "resource://gre/modules/devtools/Loader", "resource://gre/modules/devtools/Loader.js"},
		{"existing extension kept", "devtools/toolkit/styles.css", "resource://gre/modules/devtools/styles.css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.Resolve(tt.raw)
			if err != nil {
				t.Fatalf("Resolve(%q) returned error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestResolver_ResolveIsIdempotent(t *testing.T) {
	t.Parallel()

	r := NewResolver(NewTable(DefaultEntries()))
	for _, raw := range []string{"devtools/toolkit/event-emitter", "gcli/index", "resource://test/head"} {
		once, err := r.Resolve(raw)
		if err != nil {
			t.Fatalf("Resolve(%q) returned error: %v", raw, err)
		}
		twice, err := r.Resolve(once.String())
		if err != nil {
			t.Fatalf("Resolve(%q) returned error: %v", once, err)
		}
		if once != twice {
			t.Errorf("Resolve not idempotent: %q -> %q -> %q", raw, once, twice)
		}
	}
}

func TestResolver_NoMapping(t *testing.T) {
	t.Parallel()

	r := NewResolver(NewTable([]Entry{{Prefix: "devtools", Root: "resource:///modules/devtools"}}))
	_, err := r.Resolve("gcli/index")
	if err == nil {
		t.Fatal("expected NoMappingError")
	}
	if !errors.Is(err, ErrNoMapping) {
		t.Errorf("errors.Is(err, ErrNoMapping) = false for %v", err)
	}
	var nme *NoMappingError
	if !errors.As(err, &nme) || nme.ID != "gcli/index" {
		t.Errorf("errors.As(err, *NoMappingError) = %+v", nme)
	}
}

func TestResolver_Options(t *testing.T) {
	t.Parallel()

	r := NewResolver(
		NewTable([]Entry{{Prefix: "lib", Root: "chrome://lib"}}),
		WithScheme("chrome://"),
		WithDefaultExtension(".mjs"),
	)

	got, err := r.Resolve("lib/util")
	if err != nil {
		t.Fatalf("Resolve() returned error: %v", err)
	}
	if got != "chrome://lib/util.mjs" {
		t.Errorf("Resolve() = %q, want chrome://lib/util.mjs", got)
	}
	if !r.IsCanonical("chrome://other") {
		t.Error("IsCanonical(chrome://other) = false, want true")
	}
	if r.Scheme() != "chrome://" || r.DefaultExtension() != ".mjs" {
		t.Errorf("Scheme()/DefaultExtension() = %q/%q", r.Scheme(), r.DefaultExtension())
	}
}

func TestNormalizeExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want string
	}{
		{"resource://gre/modules/devtools/foo", "resource://gre/modules/devtools/foo.js"},
		{"resource://gre/modules/devtools/foo.js", "resource://gre/modules/devtools/foo.js"},
		{"resource://gre/modules/foo.jsm", "resource://gre/modules/foo.jsm"},
		{"resource://test", "resource://test.js"},
		{"resource://gre/modules/dir.d/file", "resource://gre/modules/dir.d/file.js"},
		{"resource://gre/modules/.hidden", "resource://gre/modules/.hidden.js"},
	}

	for _, tt := range tests {
		got := NormalizeExtension(tt.id, DefaultExtension)
		if got != tt.want {
			t.Errorf("NormalizeExtension(%q) = %q, want %q", tt.id, got, tt.want)
		}
		if again := NormalizeExtension(got, DefaultExtension); again != got {
			t.Errorf("NormalizeExtension not idempotent: %q -> %q", got, again)
		}
	}
}

func TestTrimExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want string
	}{
		{"devtools/shared/foo.js", "devtools/shared/foo"},
		{"devtools/shared/foo.jsm", "devtools/shared/foo.jsm"},
		{"devtools/shared/foo", "devtools/shared/foo"},
		{"devtools/shared.js/foo", "devtools/shared.js/foo"},
	}

	for _, tt := range tests {
		if got := TrimExtension(tt.id, DefaultExtension); got != tt.want {
			t.Errorf("TrimExtension(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
