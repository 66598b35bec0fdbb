// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/modrewrite/modrewrite/internal/migrate"
	"github.com/modrewrite/modrewrite/internal/rewrite"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

type runOptions struct {
	dryRun    bool
	showEdits bool
}

func newRunCommand(app *App) *cobra.Command {
	opts := &runOptions{}
	runCmd := &cobra.Command{
		Use:   "run [root]",
		Short: "Index build descriptors and rewrite module identifiers",
		Long: `Index the build descriptors below the module directory, then rewrite every
import and require call in the project tree whose identifier moved.

Files are rewritten in place. Use --dry-run to only report the changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd, app, args, opts)
		},
	}
	runCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report changes without writing files")
	runCmd.Flags().BoolVar(&opts.showEdits, "show-edits", false, "list every rewritten identifier")
	return runCmd
}

func runMigration(cmd *cobra.Command, app *App, args []string, opts *runOptions) error {
	ctx := cmd.Context()
	root, err := projectRoot(args)
	if err != nil {
		return app.fail(err)
	}
	cfg, err := app.loadConfig(ctx, root)
	if err != nil {
		return app.fail(err)
	}
	fs, err := app.openWorkspace(ctx, root)
	if err != nil {
		return app.fail(err)
	}

	logger := app.newLogger(cfg)
	logger.Debug("starting", "root", root, "dry_run", opts.dryRun)

	m := migrate.New(cfg, fs, migrate.WithLogger(logger), migrate.WithDryRun(opts.dryRun))
	report, err := m.Run(ctx)
	if report != nil {
		renderReport(app.stdout, report, opts.showEdits)
	}
	if err != nil {
		return app.fail(err)
	}
	return nil
}

// renderReport prints the run summary.
func renderReport(w io.Writer, r *migrate.Report, showEdits bool) {
	title := "Migration summary"
	if r.DryRun {
		title += " (dry run)"
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render(title))

	row := func(label string, n int) {
		fmt.Fprintf(w, "  %s%s\n", summaryLabelStyle.Render(label), summaryCountStyle.Render(strconv.Itoa(n)))
	}
	row("descriptors", r.Descriptors)
	row("records", r.Records)
	row("mappings", r.Mappings)
	row("collisions", r.Collisions)
	row("files scanned", r.FilesScanned)
	row("files changed", r.FilesChanged)
	row("files skipped", r.FilesSkipped)
	row("references", r.References)
	row("rewrites", r.Rewrites)

	if len(r.Skips) > 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("  untouched references"))
		reasons := make([]rewrite.SkipReason, 0, len(r.Skips))
		for reason := range r.Skips {
			reasons = append(reasons, reason)
		}
		slices.Sort(reasons)
		for _, reason := range reasons {
			row("  "+string(reason), r.Skips[reason])
		}
	}

	if warnings := r.Warnings(); len(warnings) > 0 {
		fmt.Fprintf(w, "  %s\n", WarningStyle.Render(fmt.Sprintf("%d warning(s)", len(warnings))))
	}

	if showEdits {
		for _, change := range r.Changes {
			fmt.Fprintln(w, CmdStyle.Render(change.Path))
			for _, e := range change.Edits {
				fmt.Fprintf(w, "  %s %s -> %s\n",
					VerboseStyle.Render(fmt.Sprintf("%d:", e.Line)), e.Old, SuccessStyle.Render(e.New))
			}
		}
	}

	if r.FilesChanged == 0 {
		fmt.Fprintln(w, SuccessStyle.Render("✓")+" Nothing to rewrite")
	} else if !r.DryRun {
		fmt.Fprintf(w, "%s Rewrote %d file(s)\n", SuccessStyle.Render("✓"), r.FilesChanged)
	}
}
