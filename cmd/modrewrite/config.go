// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/modrewrite/modrewrite/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `modrewrite config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage modrewrite configuration",
		Long: `Manage modrewrite configuration.

Configuration is read from the first of:
  - the file named by --config
  - Linux: ~/.config/modrewrite/config.cue
    macOS: ~/Library/Application Support/modrewrite/config.cue
    Windows: %APPDATA%\modrewrite\config.cue
  - ./modrewrite.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := showConfig(cmd.Context(), app); err != nil {
				return app.fail(err)
			}
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), ".")
			if err != nil {
				return app.fail(err)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	var local bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(app, local); err != nil {
				return app.fail(err)
			}
			return nil
		},
	}
	initCmd.Flags().BoolVar(&local, "local", false, "write ./"+config.LocalConfigFileName+" instead of the user config file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := showConfigPath(app); err != nil {
				return app.fail(err)
			}
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.loadConfig(ctx, ".")
	if err != nil {
		return err
	}
	used, err := config.Locate(app.loadOptions("."))
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	w := app.stdout

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if used != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), used)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	value := func(key, v string) {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render(key), valueStyle.Render(v))
	}
	value("module_dir", cfg.ModuleDir)
	value("client_dir", cfg.ClientDir)
	value("descriptor_name", cfg.DescriptorName)
	value("array_marker", cfg.ArrayMarker)
	value("scheme", cfg.Scheme)
	value("default_extension", cfg.DefaultExtension)
	value("roots.general", cfg.Roots.General)
	value("roots.client", cfg.Roots.Client)
	value("fallback", cfg.Fallback.From+" -> "+cfg.Fallback.To)
	value("project_marker", cfg.ProjectMarker)
	value("bootstrap", cfg.Bootstrap.Name+" in "+cfg.Bootstrap.Dir)
	value("vendored_roots", strings.Join(cfg.VendoredRoots, ", "))
	value("excluded_sources", strings.Join(cfg.ExcludedSources, ", "))
	value("prune", strings.Join(append(append([]string(nil), cfg.Prune.Names...), prefixPatterns(cfg.Prune.Prefixes)...), ", "))
	value("log.level", string(cfg.Log.Level))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("namespaces"))
	for _, e := range cfg.Namespaces {
		fmt.Fprintf(w, "  %s -> %s\n", valueStyle.Render(e.Prefix), e.Root)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("call_sites"))
	for _, site := range cfg.CallSites {
		fmt.Fprintf(w, "  %s %s\n", valueStyle.Render(site.Keyword), SubtitleStyle.Render(site.Kind.String()))
	}

	return nil
}

func prefixPatterns(prefixes []string) []string {
	patterns := make([]string, len(prefixes))
	for i, p := range prefixes {
		patterns[i] = p + "*"
	}
	return patterns
}

func initConfig(app *App, local bool) error {
	path, err := defaultConfigPath(local)
	if err != nil {
		return err
	}

	created, err := config.CreateDefaultConfig(path)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func defaultConfigPath(local bool) (string, error) {
	if local {
		return filepath.Abs(config.LocalConfigFileName)
	}
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt), nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	used, err := config.Locate(app.loadOptions("."))
	if err != nil {
		return err
	}
	local, err := filepath.Abs(config.LocalConfigFileName)
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	fmt.Fprintf(app.stdout, "Project file: %s\n", local)
	if used != "" {
		fmt.Fprintf(app.stdout, "In use: %s\n", used)
	} else {
		fmt.Fprintf(app.stdout, "In use: %s\n", SubtitleStyle.Render("(defaults)"))
	}
	return nil
}
