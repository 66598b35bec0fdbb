// SPDX-License-Identifier: MPL-2.0

package migrate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"unicode/utf8"

	"github.com/modrewrite/modrewrite/internal/config"
	"github.com/modrewrite/modrewrite/internal/declare"
	"github.com/modrewrite/modrewrite/internal/discovery"
	"github.com/modrewrite/modrewrite/internal/index"
	"github.com/modrewrite/modrewrite/internal/issue"
	"github.com/modrewrite/modrewrite/internal/rewrite"
	"github.com/modrewrite/modrewrite/internal/workspace"

	"github.com/charmbracelet/log"
)

type (
	// Migrator runs the descriptor and rewrite passes over one project tree.
	Migrator struct {
		cfg       *config.Config
		fs        workspace.FS
		discovery *discovery.Discovery
		logger    *log.Logger
		dryRun    bool
	}

	// Option configures a Migrator.
	Option func(*Migrator)
)

// WithLogger sets the logger receiving the run trace.
func WithLogger(logger *log.Logger) Option {
	return func(m *Migrator) { m.logger = logger }
}

// WithDryRun computes every edit without writing files.
func WithDryRun(dryRun bool) Option {
	return func(m *Migrator) { m.dryRun = dryRun }
}

// New creates a Migrator for the tree behind fs.
func New(cfg *config.Config, fs workspace.FS, opts ...Option) *Migrator {
	m := &Migrator{
		cfg:       cfg,
		fs:        fs,
		discovery: discovery.New(fs, cfg.DiscoveryOptions()...),
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Index runs the descriptor pass. A descriptor header that cannot be parsed
// stops the pass with an *issue.ActionableError.
func (m *Migrator) Index(ctx context.Context) (*IndexResult, error) {
	result := &IndexResult{}
	descriptors, err := m.discovery.Descriptors(ctx)
	if errors.Is(err, workspace.ErrDirNotFound) {
		d := issue.NewWarning(issue.CodeModuleDirMissing, m.discovery.ModuleDir(),
			"module directory not found, no build descriptors indexed").WithCause(err)
		result.Diagnostics = append(result.Diagnostics, d)
		m.logDiagnostic(d)
		err = nil
	}
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("discover build descriptors").
			WithResource(m.fs.Root()).
			WithSuggestion(fmt.Sprintf("Check that %q below the project root is readable", m.discovery.ModuleDir())).
			Wrap(err).
			BuildError()
	}

	indexer := index.NewIndexer()
	opts := m.cfg.DeclareOptions()

	for _, f := range descriptors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m.logger.Debug("reading descriptor", "path", f.Path)
		content, err := m.fs.Read(ctx, f)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("read build descriptor").
				WithResource(f.Path).
				Wrap(err).
				BuildError()
		}

		records, diags, err := declare.Parse(f.Path, content, opts)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("index build descriptors").
				WithResource(f.Path).
				WithSuggestion(fmt.Sprintf("Fix the %s header reported above", opts.Marker)).
				WithSuggestion("Headers look like: " + opts.Marker + ".devtools.shared += [").
				Wrap(err).
				BuildError()
		}
		result.Descriptors++
		result.Diagnostics = append(result.Diagnostics, diags...)
		for _, d := range diags {
			m.logDiagnostic(d)
		}

		for _, rec := range records {
			result.Records++
			collisions := indexer.AddRecord(rec)
			if m.logger.GetLevel() <= log.DebugLevel {
				m.logRecord(indexer.Index(), rec)
			}
			for _, c := range collisions {
				d := c.Diagnostic()
				result.Collisions = append(result.Collisions, c)
				result.Diagnostics = append(result.Diagnostics, d)
				m.logDiagnostic(d)
			}
		}
	}

	result.Index = indexer.Index()
	return result, nil
}

// Run executes both passes and returns the run report. Unreadable or
// non-text files are skipped; a failed write stops the run.
func (m *Migrator) Run(ctx context.Context) (*Report, error) {
	ir, err := m.Index(ctx)
	if err != nil {
		return nil, err
	}
	report := newReport(ir, m.dryRun)

	sources, err := m.discovery.Sources(ctx)
	if err != nil {
		return report, issue.NewErrorContext().
			WithOperation("enumerate source files").
			WithResource(m.fs.Root()).
			Wrap(err).
			BuildError()
	}

	rw := m.Rewriter(ir.Index)
	for _, f := range sources {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		text, skip := m.readText(ctx, f)
		if skip != nil {
			report.FilesSkipped++
			report.Diagnostics = append(report.Diagnostics, *skip)
			m.logDiagnostic(*skip)
			continue
		}

		res := rw.RewriteFile(f.Path, text)
		report.addResult(res)
		for _, d := range res.Diagnostics {
			m.logDiagnostic(d)
		}
		if !res.Changed {
			continue
		}
		for _, e := range res.Edits {
			m.logger.Debug("rewrote reference", "path", f.Path, "line", e.Line, "from", e.Old, "to", e.New)
		}
		if m.dryRun {
			continue
		}
		if err := m.fs.Write(ctx, f, res.Text); err != nil {
			return report, &WriteError{Path: f.Path, Err: err}
		}
		m.logger.Info("updated", "path", f.Path, "edits", len(res.Edits))
	}

	return report, nil
}

// Rewriter returns the configured rewriter over idx.
func (m *Migrator) Rewriter(idx *index.SourceIndex) *rewrite.Rewriter {
	return rewrite.NewRewriter(m.cfg.Resolver(), idx,
		rewrite.WithPolicy(m.cfg.Policy()),
		rewrite.WithCallSites(m.cfg.CallSites),
	)
}

// readText returns f's content, or the diagnostic explaining why f is skipped.
func (m *Migrator) readText(ctx context.Context, f workspace.File) ([]byte, *issue.Diagnostic) {
	content, err := m.fs.Read(ctx, f)
	if err != nil {
		d := issue.NewDebug(issue.CodeSourceReadFailed, f.Path, "file could not be read, skipped").WithCause(err)
		return nil, &d
	}
	if !utf8.Valid(content) {
		err := &DecodeError{Path: f.Path}
		d := issue.NewDebug(issue.CodeSourceDecodeFailed, f.Path, "file is not UTF-8 text, skipped").WithCause(err)
		return nil, &d
	}
	return content, nil
}

func (m *Migrator) logRecord(idx *index.SourceIndex, rec declare.Record) {
	dir := path.Dir(rec.Descriptor)
	for _, entry := range rec.Entries {
		source := path.Join(dir, entry)
		if resource, ok := idx.Resource(source); ok {
			m.logger.Debug("mapped", "source", source, "resource", resource)
		}
	}
}

func (m *Migrator) logDiagnostic(d issue.Diagnostic) {
	if d.IsWarning() {
		m.logger.Warn(d.Message, "at", d.Location(), "code", d.Code)
		return
	}
	m.logger.Debug(d.Message, "at", d.Location(), "code", d.Code)
}

// IsFatalDeclaration reports whether err stopped the descriptor pass.
func IsFatalDeclaration(err error) bool {
	var mde *declare.MalformedDeclarationError
	return errors.As(err, &mde) && mde.Fatal
}
