// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/modrewrite/modrewrite/internal/config"
	"github.com/modrewrite/modrewrite/internal/issue"
	"github.com/modrewrite/modrewrite/internal/workspace"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. All Cobra command
	// handlers receive an App reference.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer

		// verbose and configPath are bound to the global flags.
		verbose    bool
		configPath string
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// loadOptions returns the config lookup inputs for a project rooted at baseDir.
func (a *App) loadOptions(baseDir string) config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.configPath, BaseDir: baseDir}
}

// loadConfig loads the configuration for a project rooted at baseDir.
func (a *App) loadConfig(ctx context.Context, baseDir string) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, a.loadOptions(baseDir))
	if err != nil {
		return nil, newServiceError(err, issue.ConfigLoadFailedId, "")
	}
	return cfg, nil
}

// newLogger returns the run logger. --verbose forces debug output.
func (a *App) newLogger(cfg *config.Config) *log.Logger {
	level, err := log.ParseLevel(string(cfg.Log.Level))
	if err != nil {
		level = log.InfoLevel
	}
	if a.verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stdout, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

// openWorkspace opens the project tree at root.
func (a *App) openWorkspace(ctx context.Context, root string) (*workspace.Storage, error) {
	fs, err := workspace.New(ctx, root)
	if err != nil {
		return nil, newServiceError(err, issue.ProjectRootNotFoundId, "")
	}
	return fs, nil
}

// fail renders err for the user and converts it into an ExitError.
func (a *App) fail(err error) error {
	svcErr := classifyRunError(err)
	renderServiceError(a.stderr, svcErr)
	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(svcErr.Err, a.verbose))
	return &ExitError{Code: exitCodeFor(err), Err: err}
}

// projectRoot returns the absolute project root named by args, defaulting
// to the working directory.
func projectRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve project root %q: %w", root, err)
	}
	return abs, nil
}
