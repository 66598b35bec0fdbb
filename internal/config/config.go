// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/modrewrite/modrewrite/internal/issue"
	"github.com/modrewrite/modrewrite/pkg/cueutil"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "modrewrite"
	// ConfigFileName is the name of the user config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// LocalConfigFileName is the project-local config file.
	LocalConfigFileName = AppName + "." + ConfigFileExt
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the modrewrite configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Locate returns the config file that loading with opts would read, or ""
// when only defaults apply.
func Locate(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath, nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	if cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt); fileExists(cuePath) {
		return cuePath, nil
	}
	if localPath := filepath.Join(opts.BaseDir, LocalConfigFileName); fileExists(localPath) {
		return localPath, nil
	}
	return "", nil
}

// Load is loadWithOptions for callers that also report the file used.
func Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	return loadWithOptions(ctx, opts)
}

func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	if opts.ConfigFilePath != "" && !fileExists(opts.ConfigFilePath) {
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(opts.ConfigFilePath).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Check that the file exists and is readable").
			WithSuggestion("Use 'modrewrite config show' to see the default configuration").
			Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
			BuildError()
	}

	resolvedPath, err := Locate(opts)
	if err != nil {
		return nil, "", err
	}
	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("See 'modrewrite config --help' for configuration options").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Namespace roots must start with the configured scheme").
			WithSuggestion("Each namespace prefix and call-site keyword may appear only once").
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func setDefaults(v *viper.Viper, defaults *Config) {
	v.SetDefault("module_dir", defaults.ModuleDir)
	v.SetDefault("client_dir", defaults.ClientDir)
	v.SetDefault("descriptor_name", defaults.DescriptorName)
	v.SetDefault("array_marker", defaults.ArrayMarker)
	v.SetDefault("scheme", defaults.Scheme)
	v.SetDefault("default_extension", defaults.DefaultExtension)
	v.SetDefault("roots.general", defaults.Roots.General)
	v.SetDefault("roots.client", defaults.Roots.Client)
	v.SetDefault("fallback.from", defaults.Fallback.From)
	v.SetDefault("fallback.to", defaults.Fallback.To)
	v.SetDefault("project_marker", defaults.ProjectMarker)
	v.SetDefault("bootstrap.name", defaults.Bootstrap.Name)
	v.SetDefault("bootstrap.dir", defaults.Bootstrap.Dir)
	v.SetDefault("namespaces", defaults.Namespaces)
	v.SetDefault("vendored_roots", defaults.VendoredRoots)
	v.SetDefault("excluded_sources", defaults.ExcludedSources)
	v.SetDefault("prune.names", defaults.Prune.Names)
	v.SetDefault("prune.prefixes", defaults.Prune.Prefixes)
	v.SetDefault("call_sites", defaults.CallSites)
	v.SetDefault("log.level", defaults.Log.Level)
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper validates a CUE file against #Config and merges it into
// Viper. Fields are optional, so the file decodes to a map on top of the
// defaults instead of a struct.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := cueutil.ParseAndDecodeString[map[string]any](
		configSchema,
		data,
		"#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*result.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration to path unless a file
// already exists there. It reports whether a file was written.
func CreateDefaultConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// modrewrite configuration file\n")
	sb.WriteString("// Every field is optional; omitted fields keep their defaults.\n\n")

	fmt.Fprintf(&sb, "module_dir: %q\n", cfg.ModuleDir)
	fmt.Fprintf(&sb, "client_dir: %q\n", cfg.ClientDir)
	fmt.Fprintf(&sb, "descriptor_name: %q\n", cfg.DescriptorName)
	fmt.Fprintf(&sb, "array_marker: %q\n", cfg.ArrayMarker)
	fmt.Fprintf(&sb, "scheme: %q\n", cfg.Scheme)
	fmt.Fprintf(&sb, "default_extension: %q\n", cfg.DefaultExtension)
	fmt.Fprintf(&sb, "project_marker: %q\n", cfg.ProjectMarker)

	sb.WriteString("\nroots: {\n")
	fmt.Fprintf(&sb, "\tgeneral: %q\n", cfg.Roots.General)
	fmt.Fprintf(&sb, "\tclient: %q\n", cfg.Roots.Client)
	sb.WriteString("}\n")

	sb.WriteString("\nfallback: {\n")
	fmt.Fprintf(&sb, "\tfrom: %q\n", cfg.Fallback.From)
	fmt.Fprintf(&sb, "\tto: %q\n", cfg.Fallback.To)
	sb.WriteString("}\n")

	sb.WriteString("\nbootstrap: {\n")
	fmt.Fprintf(&sb, "\tname: %q\n", cfg.Bootstrap.Name)
	fmt.Fprintf(&sb, "\tdir: %q\n", cfg.Bootstrap.Dir)
	sb.WriteString("}\n")

	sb.WriteString("\nnamespaces: [\n")
	for _, e := range cfg.Namespaces {
		fmt.Fprintf(&sb, "\t{prefix: %q, root: %q},\n", e.Prefix, e.Root)
	}
	sb.WriteString("]\n")

	writeStringList(&sb, "vendored_roots", cfg.VendoredRoots)
	writeStringList(&sb, "excluded_sources", cfg.ExcludedSources)

	sb.WriteString("\nprune: {\n")
	fmt.Fprintf(&sb, "\tnames: %s\n", cueList(cfg.Prune.Names))
	fmt.Fprintf(&sb, "\tprefixes: %s\n", cueList(cfg.Prune.Prefixes))
	sb.WriteString("}\n")

	sb.WriteString("\ncall_sites: [\n")
	for _, s := range cfg.CallSites {
		if s.Accessor {
			fmt.Fprintf(&sb, "\t{keyword: %q, kind: %q, accessor: true},\n", s.Keyword, s.Kind)
		} else {
			fmt.Fprintf(&sb, "\t{keyword: %q, kind: %q},\n", s.Keyword, s.Kind)
		}
	}
	sb.WriteString("]\n")

	sb.WriteString("\nlog: {\n")
	fmt.Fprintf(&sb, "\tlevel: %q\n", cfg.Log.Level)
	sb.WriteString("}\n")

	return sb.String()
}

func writeStringList(sb *strings.Builder, key string, values []string) {
	fmt.Fprintf(sb, "\n%s: [\n", key)
	for _, v := range values {
		fmt.Fprintf(sb, "\t%q,\n", v)
	}
	sb.WriteString("]\n")
}

func cueList(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, fmt.Sprintf("%q", v))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
