// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/modrewrite/modrewrite/internal/issue"
	"github.com/modrewrite/modrewrite/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// errUsage marks invalid flag values detected by the handlers.
var errUsage = errors.New("invalid usage")

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the modrewrite command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "modrewrite",
		Short: "Rewrite module identifiers after a source tree reorganisation",
		Long: TitleStyle.Render("modrewrite") + SubtitleStyle.Render(" - Rewrite module identifiers after a source tree reorganisation") + `

modrewrite reads the build descriptors of a project to learn where every
module now lives, then rewrites the identifiers passed to import and
require calls so they point at the new locations.

` + SubtitleStyle.Render("Examples:") + `
  modrewrite run                 Rewrite the project in the working directory
  modrewrite run --dry-run src   Report what would change below src
  modrewrite index --format yaml Print the module index
  modrewrite resolve devtools/shared/event-emitter
  modrewrite config show         Show current configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable debug logging and full error chains")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/modrewrite/config.cue, then ./modrewrite.cue)")

	rootCmd.AddCommand(newRunCommand(app))
	rootCmd.AddCommand(newIndexCommand(app))
	rootCmd.AddCommand(newResolveCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the command tree and exits with the resulting code.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitUsage))
	}
}

// errorHandler prints errors that the command handlers did not render themselves.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// exitCodeFor maps a handler error to the process exit code.
func exitCodeFor(err error) types.ExitCode {
	switch {
	case err == nil:
		return types.ExitSuccess
	case errors.Is(err, errUsage):
		return types.ExitUsage
	default:
		return types.ExitFailure
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
