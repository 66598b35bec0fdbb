// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/modrewrite/modrewrite/internal/config"
	"github.com/modrewrite/modrewrite/internal/index"
	"github.com/modrewrite/modrewrite/internal/migrate"
	"github.com/modrewrite/modrewrite/pkg/namespace"

	"github.com/spf13/cobra"
)

func newResolveCommand(app *App) *cobra.Command {
	var root string
	resolveCmd := &cobra.Command{
		Use:   "resolve <id>...",
		Short: "Print the canonical form of module identifiers",
		Long: `Resolve each identifier through the namespace table and print its canonical
form. With --root, the module index of that project is built and the physical
path each identifier is exported from is printed too.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			baseDir, err := projectRoot(optionalArg(root))
			if err != nil {
				return app.fail(err)
			}
			cfg, err := app.loadConfig(ctx, baseDir)
			if err != nil {
				return app.fail(err)
			}

			var idx *index.SourceIndex
			if root != "" {
				fs, err := app.openWorkspace(ctx, baseDir)
				if err != nil {
					return app.fail(err)
				}
				logger := app.newLogger(cfg)
				logger.SetOutput(app.stderr)
				ir, err := migrate.New(cfg, fs, migrate.WithLogger(logger)).Index(ctx)
				if err != nil {
					return app.fail(err)
				}
				idx = ir.Index
			}

			writeResolved(app.stdout, cfg, idx, args)
			return nil
		},
	}
	resolveCmd.Flags().StringVar(&root, "root", "", "project root whose module index is consulted")
	return resolveCmd
}

func optionalArg(v string) []string {
	if v == "" {
		return nil
	}
	return []string{v}
}

// writeResolved prints one line per identifier. idx may be nil.
func writeResolved(w io.Writer, cfg *config.Config, idx *index.SourceIndex, ids []string) {
	resolver := cfg.Resolver()
	for _, raw := range ids {
		canonical, err := resolver.Resolve(raw)
		if err != nil {
			msg := err.Error()
			if errors.Is(err, namespace.ErrNoMapping) {
				msg = "no mapping"
			}
			fmt.Fprintf(w, "%s %s\n", raw, WarningStyle.Render("! "+msg))
			continue
		}

		line := fmt.Sprintf("%s -> %s", raw, SuccessStyle.Render(canonical.String()))
		if idx != nil {
			line += " " + lookupSource(cfg, idx, canonical)
		}
		fmt.Fprintln(w, line)
	}
}

// lookupSource renders the physical path of canonical, trying the fallback
// root once.
func lookupSource(cfg *config.Config, idx *index.SourceIndex, canonical namespace.CanonicalID) string {
	if src, ok := idx.Source(canonical.String()); ok {
		return CmdStyle.Render("(" + src + ")")
	}
	if cfg.Fallback.From != "" && canonical.HasPrefix(cfg.Fallback.From) {
		alt := strings.Replace(canonical.String(), cfg.Fallback.From, cfg.Fallback.To, 1)
		if src, ok := idx.Source(alt); ok {
			return CmdStyle.Render("(" + src + ")")
		}
	}
	return SubtitleStyle.Render("(not indexed)")
}
