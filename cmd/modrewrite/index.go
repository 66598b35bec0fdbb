// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/modrewrite/modrewrite/internal/index"
	"github.com/modrewrite/modrewrite/internal/migrate"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"
)

// indexDump is the document written by the index command.
type indexDump struct {
	Mappings []index.Mapping `json:"mappings" yaml:"mappings" toml:"mappings"`
}

func newIndexCommand(app *App) *cobra.Command {
	var format string
	indexCmd := &cobra.Command{
		Use:   "index [root]",
		Short: "Print the module index built from the build descriptors",
		Long: `Read the build descriptors below the module directory and print every
physical path with the canonical identifier it is exported under.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return app.fail(err)
			}
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
			logger.SetOutput(app.stderr)
			ir, err := migrate.New(cfg, fs, migrate.WithLogger(logger)).Index(ctx)
			if err != nil {
				return app.fail(err)
			}
			if err := writeIndex(app.stdout, ir.Index, format); err != nil {
				return app.fail(err)
			}
			return nil
		},
	}
	indexCmd.Flags().StringVar(&format, "format", formatJSON, "output format: json, yaml or toml")
	return indexCmd
}

func checkFormat(format string) error {
	switch format {
	case formatJSON, formatYAML, formatTOML:
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q (want json, yaml or toml)", errUsage, format)
	}
}

// writeIndex encodes idx to w in format.
func writeIndex(w io.Writer, idx *index.SourceIndex, format string) error {
	dump := indexDump{Mappings: idx.Mappings()}
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dump)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(dump); err != nil {
			return err
		}
		return enc.Close()
	case formatTOML:
		return toml.NewEncoder(w).Encode(dump)
	default:
		return checkFormat(format)
	}
}
