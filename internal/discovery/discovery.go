// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/modrewrite/modrewrite/internal/workspace"
)

const (
	// DefaultModuleDir is the subtree scanned for build descriptors.
	DefaultModuleDir = "devtools"
	// DefaultDescriptorName is the build descriptor file name.
	DefaultDescriptorName = "moz.build"
)

type (
	// Prune selects directories skipped during source enumeration.
	Prune struct {
		// Names are exact directory names (".hg").
		Names []string `json:"names" mapstructure:"names"`
		// Prefixes match directory names by prefix ("obj-").
		Prefixes []string `json:"prefixes" mapstructure:"prefixes"`
	}

	// Discovery enumerates descriptors and sources through a workspace.FS.
	Discovery struct {
		fs             workspace.FS
		moduleDir      string
		descriptorName string
		prune          Prune
	}

	// Option configures a Discovery.
	Option func(*Discovery)
)

// DefaultPrune skips version-control metadata and object directories.
func DefaultPrune() Prune {
	return Prune{
		Names:    []string{".hg", ".git"},
		Prefixes: []string{"obj-"},
	}
}

// Match reports whether the directory rel is pruned. Only its last path
// element is compared.
func (p Prune) Match(rel string) bool {
	name := path.Base(rel)
	for _, n := range p.Names {
		if name == n {
			return true
		}
	}
	for _, prefix := range p.Prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// WithModuleDir sets the subtree scanned for descriptors.
func WithModuleDir(dir string) Option {
	return func(d *Discovery) { d.moduleDir = strings.Trim(dir, "/") }
}

// WithDescriptorName sets the descriptor file name.
func WithDescriptorName(name string) Option {
	return func(d *Discovery) { d.descriptorName = name }
}

// WithPrune replaces DefaultPrune.
func WithPrune(p Prune) Option {
	return func(d *Discovery) { d.prune = p }
}

// New creates a Discovery over fs.
func New(fs workspace.FS, opts ...Option) *Discovery {
	d := &Discovery{
		fs:             fs,
		moduleDir:      DefaultModuleDir,
		descriptorName: DefaultDescriptorName,
		prune:          DefaultPrune(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Descriptors returns the build descriptors below the module directory in
// path order.
func (d *Discovery) Descriptors(ctx context.Context) ([]workspace.File, error) {
	files, err := d.fs.List(ctx, d.moduleDir, d.prune.Match)
	if err != nil {
		return nil, fmt.Errorf("discover descriptors in %s: %w", d.moduleDir, err)
	}
	descriptors := files[:0]
	for _, f := range files {
		if path.Base(f.Path) == d.descriptorName {
			descriptors = append(descriptors, f)
		}
	}
	return descriptors, nil
}

// Sources returns every regular file of the project tree outside pruned
// directories, in path order.
func (d *Discovery) Sources(ctx context.Context) ([]workspace.File, error) {
	files, err := d.fs.List(ctx, "", d.prune.Match)
	if err != nil {
		return nil, fmt.Errorf("discover sources: %w", err)
	}
	return files, nil
}

// ModuleDir returns the subtree scanned for descriptors.
func (d *Discovery) ModuleDir() string { return d.moduleDir }
