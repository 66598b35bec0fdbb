// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/modrewrite/modrewrite/internal/workspace"
)

// memFS is an in-memory workspace.FS honouring prune decisions.
type memFS struct {
	paths []string
}

func (m *memFS) Root() string { return "/mem" }

func (m *memFS) List(_ context.Context, dir string, prune workspace.PruneFunc) ([]workspace.File, error) {
	var files []workspace.File
	for _, p := range m.paths {
		if dir != "" && !strings.HasPrefix(p, dir+"/") {
			continue
		}
		if prune != nil && prunedAncestor(p, prune) {
			continue
		}
		files = append(files, workspace.File{Path: p})
	}
	return files, nil
}

func prunedAncestor(p string, prune workspace.PruneFunc) bool {
	parts := strings.Split(p, "/")
	for i := 1; i < len(parts); i++ {
		if prune(strings.Join(parts[:i], "/")) {
			return true
		}
	}
	return false
}

func (m *memFS) Read(context.Context, workspace.File) ([]byte, error) { return nil, nil }

func (m *memFS) Write(context.Context, workspace.File, []byte) error { return nil }

func paths(files []workspace.File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

func testFS() *memFS {
	return &memFS{paths: []string{
		".git/config",
		".hg/store/data",
		"browser/moz.build",
		"devtools/client/moz.build",
		"devtools/client/panel.js",
		"devtools/moz.build",
		"devtools/shared/moz.build.orig",
		"obj-debug/devtools/moz.build",
		"toolkit/obj-notpruned.js",
	}}
}

func TestDiscovery_Descriptors(t *testing.T) {
	t.Parallel()

	got, err := New(testFS()).Descriptors(context.Background())
	if err != nil {
		t.Fatalf("Descriptors() error: %v", err)
	}
	want := []string{"devtools/client/moz.build", "devtools/moz.build"}
	if !reflect.DeepEqual(paths(got), want) {
		t.Errorf("Descriptors() = %v, want %v", paths(got), want)
	}
}

func TestDiscovery_Sources(t *testing.T) {
	t.Parallel()

	got, err := New(testFS()).Sources(context.Background())
	if err != nil {
		t.Fatalf("Sources() error: %v", err)
	}
	want := []string{
		"browser/moz.build",
		"devtools/client/moz.build",
		"devtools/client/panel.js",
		"devtools/moz.build",
		"devtools/shared/moz.build.orig",
		"toolkit/obj-notpruned.js",
	}
	if !reflect.DeepEqual(paths(got), want) {
		t.Errorf("Sources() = %v, want %v", paths(got), want)
	}
}

func TestDiscovery_Options(t *testing.T) {
	t.Parallel()

	d := New(testFS(), WithModuleDir("/browser/"), WithDescriptorName("moz.build"), WithPrune(Prune{}))
	if d.ModuleDir() != "browser" {
		t.Errorf("ModuleDir() = %q", d.ModuleDir())
	}
	got, err := d.Descriptors(context.Background())
	if err != nil {
		t.Fatalf("Descriptors() error: %v", err)
	}
	if !reflect.DeepEqual(paths(got), []string{"browser/moz.build"}) {
		t.Errorf("Descriptors() = %v", paths(got))
	}

	sources, _ := d.Sources(context.Background())
	if len(sources) != len(testFS().paths) {
		t.Errorf("Sources() without pruning = %d files, want %d", len(sources), len(testFS().paths))
	}
}

func TestPrune_Match(t *testing.T) {
	t.Parallel()

	p := DefaultPrune()
	tests := []struct {
		rel  string
		want bool
	}{
		{".git", true},
		{"sub/.hg", true},
		{"obj-x86_64-pc-linux-gnu", true},
		{"devtools/obj-nested", true},
		{"devtools", false},
		{"objects", false},
		{".github", false},
	}
	for _, tt := range tests {
		if got := p.Match(tt.rel); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}
}
