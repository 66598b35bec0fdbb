// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"golang.org/x/exp/slices"
)

var (
	// ErrRootNotDirectory is returned when the project root is not a directory.
	ErrRootNotDirectory = errors.New("project root is not a directory")
	// ErrDirNotFound is returned when a listed directory does not exist.
	ErrDirNotFound = errors.New("directory not found")
)

type (
	// File is a regular file of the project tree.
	File struct {
		// Path is slash-separated and relative to the project root.
		Path string
		// URL locates the file in the backing storage.
		URL string
		// Mode is the file's permission bits, reused on write.
		Mode os.FileMode
	}

	// PruneFunc reports whether the directory at rel (slash-separated,
	// relative to the root) and everything below it are skipped.
	PruneFunc func(rel string) bool

	// FS enumerates, reads and writes project files.
	FS interface {
		// Root returns the project root location.
		Root() string
		// List returns every regular file below dir in path order. Symbolic
		// links are not followed. A missing dir yields ErrDirNotFound.
		List(ctx context.Context, dir string, prune PruneFunc) ([]File, error)
		// Read returns a file's content.
		Read(ctx context.Context, f File) ([]byte, error)
		// Write replaces a file's content.
		Write(ctx context.Context, f File, content []byte) error
	}

	// Storage is an FS backed by viant/afs.
	Storage struct {
		fs       afs.Service
		root     string
		rootPath string
	}
)

// New creates a Storage rooted at root, which must be an existing directory.
func New(ctx context.Context, root string) (*Storage, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}
	fs := afs.New()
	obj, err := fs.Object(ctx, abs)
	if err != nil {
		return nil, fmt.Errorf("open project root %s: %w", abs, err)
	}
	if !obj.IsDir() {
		return nil, fmt.Errorf("%s: %w", abs, ErrRootNotDirectory)
	}
	return &Storage{
		fs:       fs,
		root:     abs,
		rootPath: strings.TrimRight(url.Path(filepath.ToSlash(abs)), "/"),
	}, nil
}

// Root returns the absolute project root.
func (s *Storage) Root() string { return s.root }

// List walks dir depth first. Pruned directories are never listed.
func (s *Storage) List(ctx context.Context, dir string, prune PruneFunc) ([]File, error) {
	location := s.location(dir)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", location, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s: %w", location, ErrDirNotFound)
	}
	var files []File
	if err := s.walk(ctx, location, prune, &files); err != nil {
		return nil, err
	}
	slices.SortFunc(files, func(a, b File) int { return strings.Compare(a.Path, b.Path) })
	return files, nil
}

func (s *Storage) walk(ctx context.Context, location string, prune PruneFunc, files *[]File) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	objects, err := s.fs.List(ctx, location)
	if err != nil {
		return fmt.Errorf("list %s: %w", location, err)
	}
	self := strings.TrimRight(url.Path(location), "/")
	for _, obj := range objects {
		objPath := strings.TrimRight(url.Path(obj.URL()), "/")
		if objPath == self {
			continue
		}
		rel := s.relative(objPath)
		if obj.IsDir() {
			if prune != nil && prune(rel) {
				continue
			}
			if err := s.walk(ctx, obj.URL(), prune, files); err != nil {
				return err
			}
			continue
		}
		if !obj.Mode().IsRegular() {
			continue
		}
		*files = append(*files, File{Path: rel, URL: obj.URL(), Mode: obj.Mode().Perm()})
	}
	return nil
}

// Read downloads a file's content.
func (s *Storage) Read(ctx context.Context, f File) ([]byte, error) {
	data, err := s.fs.DownloadWithURL(ctx, s.url(f))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return data, nil
}

// Write uploads content over the file, keeping its permission bits.
func (s *Storage) Write(ctx context.Context, f File, content []byte) error {
	mode := f.Mode
	if mode == 0 {
		mode = file.DefaultFileOsMode
	}
	if err := s.fs.Upload(ctx, s.url(f), mode, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	return nil
}

func (s *Storage) url(f File) string {
	if f.URL != "" {
		return f.URL
	}
	return s.location(f.Path)
}

func (s *Storage) location(rel string) string {
	if rel == "" || rel == "." {
		return s.root
	}
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

func (s *Storage) relative(objPath string) string {
	return strings.TrimPrefix(strings.TrimPrefix(objPath, s.rootPath), "/")
}
