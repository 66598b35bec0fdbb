// SPDX-License-Identifier: MPL-2.0

package migrate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/modrewrite/modrewrite/internal/config"
	"github.com/modrewrite/modrewrite/internal/issue"
	"github.com/modrewrite/modrewrite/internal/rewrite"
	"github.com/modrewrite/modrewrite/internal/testutil"
	"github.com/modrewrite/modrewrite/internal/workspace"
)

// memFS is an in-memory workspace.FS.
type memFS struct {
	files    map[string]string
	unread   map[string]bool
	failSave bool
	writes   []string
}

func newMemFS(files map[string]string) *memFS {
	return &memFS{files: files, unread: map[string]bool{}}
}

func (m *memFS) Root() string { return "/mem" }

func (m *memFS) List(_ context.Context, dir string, prune workspace.PruneFunc) ([]workspace.File, error) {
	var paths []string
	for p := range m.files {
		if dir != "" && !strings.HasPrefix(p, dir+"/") {
			continue
		}
		if prune != nil && prunedAncestor(p, prune) {
			continue
		}
		paths = append(paths, p)
	}
	if dir != "" && len(paths) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, workspace.ErrDirNotFound)
	}
	sort.Strings(paths)
	files := make([]workspace.File, 0, len(paths))
	for _, p := range paths {
		files = append(files, workspace.File{Path: p, Mode: 0o644})
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

func (m *memFS) Read(_ context.Context, f workspace.File) ([]byte, error) {
	content, ok := m.files[f.Path]
	if !ok || m.unread[f.Path] {
		return nil, fmt.Errorf("open %s: file does not exist", f.Path)
	}
	return []byte(content), nil
}

func (m *memFS) Write(_ context.Context, f workspace.File, content []byte) error {
	if m.failSave {
		return errors.New("read-only file system")
	}
	m.files[f.Path] = string(content)
	m.writes = append(m.writes, f.Path)
	return nil
}

func devtoolsTree() map[string]string {
	return map[string]string{
		"devtools/shared/moz.build": "EXTRA_JS_MODULES.devtools.shared += [\n    'event-emitter.js',\n]\n",
		"devtools/shared/webconsole/moz.build": "EXTRA_JS_MODULES.devtools.toolkit.webconsole += [\n    'utils.js',\n]\n",
		"devtools/client/framework/moz.build":  "EXTRA_JS_MODULES.devtools.framework += [\n    'toolbox.js',\n]\n",
		"devtools/shared/event-emitter.js":     "module.exports = {};\n",
		"devtools/client/framework/toolbox.js": "const utils = require(\"devtools/toolkit/webconsole/utils\");\n" +
			"const EventEmitter = require(\"devtools/shared/event-emitter\");\n",
		"browser/base/content/browser.js": "Cu.import(\"resource:///modules/devtools/framework/toolbox.js\");\n",
		"addon-sdk/lib/loader.js":         "const main = require(\"main\");\n",
		".git/hooks/pre-commit.js":        "require(\"devtools/toolkit/webconsole/utils\");\n",
		"obj-debug/dist/toolbox.js":       "require(\"devtools/toolkit/webconsole/utils\");\n",
		"devtools/client/icon.png":        "\x89PNG\xff\xfe\x00",
	}
}

func TestMigrator_Index(t *testing.T) {
	t.Parallel()

	m := New(config.DefaultConfig(), newMemFS(devtoolsTree()))
	ir, err := m.Index(context.Background())
	if err != nil {
		t.Fatalf("Index() error: %v", err)
	}
	if ir.Descriptors != 3 || ir.Records != 3 || ir.Index.Len() != 3 {
		t.Errorf("IndexResult = %+v", ir)
	}
	if src, ok := ir.Index.Source("resource:///modules/devtools/framework/toolbox.js"); !ok || src != "devtools/client/framework/toolbox.js" {
		t.Errorf("client mapping = %q, %v", src, ok)
	}
}

func TestMigrator_Run(t *testing.T) {
	t.Parallel()

	fs := newMemFS(devtoolsTree())
	report, err := New(config.DefaultConfig(), fs).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	wantToolbox := "const utils = require(\"devtools/shared/webconsole/utils\");\n" +
		"const EventEmitter = require(\"devtools/shared/event-emitter\");\n"
	if got := fs.files["devtools/client/framework/toolbox.js"]; got != wantToolbox {
		t.Errorf("toolbox.js =\n%s", got)
	}
	if got := fs.files["browser/base/content/browser.js"]; got != "Cu.import(\"resource:///modules/devtools/client/framework/toolbox.js\");\n" {
		t.Errorf("browser.js =\n%s", got)
	}
	for _, untouched := range []string{".git/hooks/pre-commit.js", "obj-debug/dist/toolbox.js", "addon-sdk/lib/loader.js"} {
		if fs.files[untouched] != devtoolsTree()[untouched] {
			t.Errorf("%s was modified", untouched)
		}
	}

	if report.FilesChanged != 2 || report.Rewrites != 2 || len(fs.writes) != 2 {
		t.Errorf("changed=%d rewrites=%d writes=%v", report.FilesChanged, report.Rewrites, fs.writes)
	}
	if report.FilesScanned != 7 || report.FilesSkipped != 1 {
		t.Errorf("scanned=%d skipped=%d", report.FilesScanned, report.FilesSkipped)
	}
	if report.Skips[rewrite.SkipBootstrap] != 1 || report.Skips[rewrite.SkipUnchanged] != 1 {
		t.Errorf("Skips = %v", report.Skips)
	}
	if report.CountCode(issue.CodeSourceDecodeFailed) != 1 {
		t.Errorf("Diagnostics = %v", report.Diagnostics)
	}
	if len(report.Changes) != 2 || report.Changes[0].Path != "browser/base/content/browser.js" {
		t.Errorf("Changes = %+v", report.Changes)
	}
}

func TestMigrator_RunIsIdempotent(t *testing.T) {
	t.Parallel()

	fs := newMemFS(devtoolsTree())
	m := New(config.DefaultConfig(), fs)
	if _, err := m.Run(context.Background()); err != nil {
		t.Fatalf("first Run() error: %v", err)
	}
	after := make(map[string]string, len(fs.files))
	for k, v := range fs.files {
		after[k] = v
	}

	report, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() error: %v", err)
	}
	if report.FilesChanged != 0 {
		t.Errorf("second run changed %d files: %+v", report.FilesChanged, report.Changes)
	}
	for k, v := range after {
		if fs.files[k] != v {
			t.Errorf("%s changed on the second run", k)
		}
	}
}

func TestMigrator_DryRun(t *testing.T) {
	t.Parallel()

	fs := newMemFS(devtoolsTree())
	report, err := New(config.DefaultConfig(), fs, WithDryRun(true)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !report.DryRun || report.FilesChanged != 2 {
		t.Errorf("report = %+v", report)
	}
	if len(fs.writes) != 0 {
		t.Errorf("dry run wrote %v", fs.writes)
	}
}

func TestMigrator_FatalHeaderStopsRun(t *testing.T) {
	t.Parallel()

	tree := devtoolsTree()
	tree["devtools/broken/moz.build"] = "EXTRA_JS_MODULES(devtools) += [\n    'x.js',\n]\n"
	fs := newMemFS(tree)

	_, err := New(config.DefaultConfig(), fs).Run(context.Background())
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want *issue.ActionableError", err)
	}
	if ae.Resource != "devtools/broken/moz.build" {
		t.Errorf("Resource = %q", ae.Resource)
	}
	if !IsFatalDeclaration(err) {
		t.Error("IsFatalDeclaration() = false")
	}
	if len(fs.writes) != 0 {
		t.Errorf("files written before the index was complete: %v", fs.writes)
	}
}

func TestMigrator_MalformedEntryIsReported(t *testing.T) {
	t.Parallel()

	tree := devtoolsTree()
	tree["devtools/extra/moz.build"] = "EXTRA_JS_MODULES.devtools.extra += [\n    some_list,\n]\n"

	report, err := New(config.DefaultConfig(), newMemFS(tree), WithDryRun(true)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if report.CountCode(issue.CodeDeclarationMalformed) != 1 || len(report.Warnings()) == 0 {
		t.Errorf("Diagnostics = %v", report.Diagnostics)
	}
	if report.Descriptors != 4 || report.Records != 3 {
		t.Errorf("descriptors=%d records=%d", report.Descriptors, report.Records)
	}
}

func TestMigrator_MissingModuleDir(t *testing.T) {
	t.Parallel()

	fs := newMemFS(map[string]string{
		"browser/base/content/browser.js": "Cu.import(\"resource:///modules/devtools/framework/toolbox.js\");\n",
	})
	report, err := New(config.DefaultConfig(), fs).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if report.CountCode(issue.CodeModuleDirMissing) != 1 || len(report.Warnings()) != 2 {
		t.Errorf("Diagnostics = %v", report.Diagnostics)
	}
	if report.Descriptors != 0 || report.FilesScanned != 1 || report.FilesChanged != 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestMigrator_UnreadableFileIsSkipped(t *testing.T) {
	t.Parallel()

	fs := newMemFS(devtoolsTree())
	fs.unread["browser/base/content/browser.js"] = true

	report, err := New(config.DefaultConfig(), fs).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if report.CountCode(issue.CodeSourceReadFailed) != 1 || report.FilesSkipped != 2 || report.FilesChanged != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestMigrator_WriteFailureStopsRun(t *testing.T) {
	t.Parallel()

	fs := newMemFS(devtoolsTree())
	fs.failSave = true

	_, err := New(config.DefaultConfig(), fs).Run(context.Background())
	var we *WriteError
	if !errors.As(err, &we) || !errors.Is(err, ErrWriteFailed) {
		t.Fatalf("error = %v, want *WriteError", err)
	}
	if we.Path != "browser/base/content/browser.js" {
		t.Errorf("Path = %q", we.Path)
	}
}

func TestMigrator_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(config.DefaultConfig(), newMemFS(devtoolsTree())).Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestMigrator_RunOnDisk(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	tree := devtoolsTree()
	delete(tree, "devtools/client/icon.png")
	testutil.WriteTree(t, root, tree)

	ctx := context.Background()
	fs, err := workspace.New(ctx, root)
	if err != nil {
		t.Fatalf("workspace.New() error: %v", err)
	}
	report, err := New(config.DefaultConfig(), fs).Run(ctx)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if report.FilesChanged != 2 {
		t.Errorf("FilesChanged = %d", report.FilesChanged)
	}
	if got := testutil.MustReadFile(t, root, "browser/base/content/browser.js"); !strings.Contains(got, "resource:///modules/devtools/client/framework/toolbox.js") {
		t.Errorf("browser.js = %s", got)
	}
	if got := testutil.MustReadFile(t, root, ".git/hooks/pre-commit.js"); got != tree[".git/hooks/pre-commit.js"] {
		t.Errorf("pruned file changed: %s", got)
	}
}

func TestDecodeError(t *testing.T) {
	t.Parallel()

	err := &DecodeError{Path: "a.png"}
	if !errors.Is(err, ErrNotText) || !strings.Contains(err.Error(), "a.png") {
		t.Errorf("DecodeError = %v", err)
	}
}
