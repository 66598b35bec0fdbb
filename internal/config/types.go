// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/modrewrite/modrewrite/internal/declare"
	"github.com/modrewrite/modrewrite/internal/discovery"
	"github.com/modrewrite/modrewrite/internal/rewrite"
	"github.com/modrewrite/modrewrite/pkg/namespace"
)

const (
	// LogLevelDebug traces every mapping and rewritten call site.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo reports progress and the run summary.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn reports only recoverable problems.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError reports only failures.
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidNamespace is the sentinel error wrapped by InvalidNamespaceError.
	ErrInvalidNamespace = errors.New("invalid namespace entry")
	// ErrInvalidCallSite is the sentinel error wrapped by InvalidCallSiteError.
	ErrInvalidCallSite = errors.New("invalid call site")
	// ErrInvalidModuleDir is returned when module_dir is empty or absolute.
	ErrInvalidModuleDir = errors.New("invalid module dir")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level written by the run logger.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	// It wraps ErrInvalidLogLevel for errors.Is() compatibility.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidNamespaceError is returned when a namespace entry is unusable.
	// It wraps ErrInvalidNamespace for errors.Is() compatibility.
	InvalidNamespaceError struct {
		Index  int
		Prefix string
		Reason string
	}

	// InvalidCallSiteError is returned when a call-site entry is unusable.
	// It wraps ErrInvalidCallSite for errors.Is() compatibility.
	InvalidCallSiteError struct {
		Index   int
		Keyword string
		Reason  string
	}

	// InvalidModuleDirError is returned when module_dir is empty or absolute.
	InvalidModuleDirError struct {
		Value string
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// ModuleDir is the subtree scanned for build descriptors
		ModuleDir string `json:"module_dir" mapstructure:"module_dir"`
		// ClientDir is the second path segment of client descriptors
		ClientDir string `json:"client_dir" mapstructure:"client_dir"`
		// DescriptorName is the build descriptor file name
		DescriptorName string `json:"descriptor_name" mapstructure:"descriptor_name"`
		// ArrayMarker opens a build-array block in a descriptor
		ArrayMarker string `json:"array_marker" mapstructure:"array_marker"`
		// Scheme marks identifiers that are already canonical
		Scheme string `json:"scheme" mapstructure:"scheme"`
		// DefaultExtension is appended to extensionless canonical ids
		DefaultExtension string `json:"default_extension" mapstructure:"default_extension"`
		// Roots are the canonical roots of general and client files
		Roots RootsConfig `json:"roots" mapstructure:"roots"`
		// Fallback is retried when a canonical id is not indexed
		Fallback FallbackConfig `json:"fallback" mapstructure:"fallback"`
		// ProjectMarker must appear in a canonical id for it to be rewritten
		ProjectMarker string `json:"project_marker" mapstructure:"project_marker"`
		// Bootstrap is the identifier reserved inside one subtree
		Bootstrap BootstrapConfig `json:"bootstrap" mapstructure:"bootstrap"`
		// Namespaces is the prefix table used to resolve identifiers
		Namespaces []namespace.Entry `json:"namespaces" mapstructure:"namespaces"`
		// VendoredRoots are canonical prefixes left untouched
		VendoredRoots []string `json:"vendored_roots" mapstructure:"vendored_roots"`
		// ExcludedSources are physical path prefixes left untouched
		ExcludedSources []string `json:"excluded_sources" mapstructure:"excluded_sources"`
		// Prune selects directories skipped while enumerating sources
		Prune discovery.Prune `json:"prune" mapstructure:"prune"`
		// CallSites are the calls whose identifiers are rewritten
		CallSites []rewrite.CallSite `json:"call_sites" mapstructure:"call_sites"`
		// Log configures the run logger
		Log LogConfig `json:"log" mapstructure:"log"`
	}

	// RootsConfig holds the canonical roots, without trailing slashes.
	RootsConfig struct {
		General string `json:"general" mapstructure:"general"`
		Client  string `json:"client" mapstructure:"client"`
	}

	// FallbackConfig replaces one canonical prefix with another.
	FallbackConfig struct {
		From string `json:"from" mapstructure:"from"`
		To   string `json:"to" mapstructure:"to"`
	}

	// BootstrapConfig names an identifier that stays untouched in Dir.
	BootstrapConfig struct {
		Name string `json:"name" mapstructure:"name"`
		Dir  string `json:"dir" mapstructure:"dir"`
	}

	// LogConfig configures the run logger.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}
)

// DefaultConfig returns the configuration for migrating a devtools tree.
func DefaultConfig() *Config {
	policy := rewrite.DefaultPolicy()
	prune := discovery.DefaultPrune()
	return &Config{
		ModuleDir:        discovery.DefaultModuleDir,
		ClientDir:        declare.DefaultClientDir,
		DescriptorName:   discovery.DefaultDescriptorName,
		ArrayMarker:      declare.DefaultMarker,
		Scheme:           namespace.DefaultScheme,
		DefaultExtension: namespace.DefaultExtension,
		Roots: RootsConfig{
			General: declare.DefaultGeneralRoot,
			Client:  declare.DefaultClientRoot,
		},
		Fallback: FallbackConfig{
			From: policy.Fallback.From,
			To:   policy.Fallback.To,
		},
		ProjectMarker: policy.Marker,
		Bootstrap: BootstrapConfig{
			Name: policy.Bootstrap.Name,
			Dir:  policy.Bootstrap.Dir,
		},
		Namespaces:      namespace.DefaultEntries(),
		VendoredRoots:   policy.VendoredRoots,
		ExcludedSources: policy.ExcludedSources,
		Prune:           prune,
		CallSites:       rewrite.DefaultCallSites(),
		Log:             LogConfig{Level: LogLevelInfo},
	}
}

// DeclareOptions returns the descriptor parsing options.
func (c *Config) DeclareOptions() declare.Options {
	return declare.Options{
		Marker:      c.ArrayMarker,
		ClientDir:   c.ClientDir,
		GeneralRoot: strings.TrimRight(c.Roots.General, "/"),
		ClientRoot:  strings.TrimRight(c.Roots.Client, "/"),
	}
}

// Resolver returns the identifier resolver over the configured namespace table.
func (c *Config) Resolver() *namespace.Resolver {
	return namespace.NewResolver(
		namespace.NewTable(c.Namespaces),
		namespace.WithScheme(c.Scheme),
		namespace.WithDefaultExtension(c.DefaultExtension),
	)
}

// Policy returns the rewrite rules.
func (c *Config) Policy() rewrite.Policy {
	return rewrite.Policy{
		VendoredRoots:   c.VendoredRoots,
		ExcludedSources: c.ExcludedSources,
		Marker:          c.ProjectMarker,
		Bootstrap:       rewrite.Bootstrap{Name: c.Bootstrap.Name, Dir: c.Bootstrap.Dir},
		ClientPrefix:    strings.Trim(c.ModuleDir, "/") + "/" + c.ClientDir,
		GeneralRoot:     strings.TrimRight(c.Roots.General, "/") + "/",
		ClientRoot:      strings.TrimRight(c.Roots.Client, "/") + "/",
		Fallback:        rewrite.Fallback{From: c.Fallback.From, To: c.Fallback.To},
	}
}

// DiscoveryOptions returns the descriptor and source enumeration options.
func (c *Config) DiscoveryOptions() []discovery.Option {
	return []discovery.Option{
		discovery.WithModuleDir(c.ModuleDir),
		discovery.WithDescriptorName(c.DescriptorName),
		discovery.WithPrune(c.Prune),
	}
}

// IsValid returns whether the Config has valid fields.
func (c *Config) IsValid() (bool, []error) {
	var errs []error

	if dir := strings.TrimSpace(c.ModuleDir); dir == "" || strings.HasPrefix(dir, "/") {
		errs = append(errs, &InvalidModuleDirError{Value: c.ModuleDir})
	}
	if valid, fieldErrs := c.Log.Level.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	errs = append(errs, validateNamespaces(c.Namespaces, c.Scheme)...)
	errs = append(errs, validateCallSites(c.CallSites)...)

	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// validateNamespaces checks that every root carries the scheme and that
// prefixes are unique.
func validateNamespaces(entries []namespace.Entry, scheme string) []error {
	var errs []error
	seen := make(map[string]int)
	for i, e := range entries {
		if !strings.HasPrefix(e.Root, scheme) {
			errs = append(errs, &InvalidNamespaceError{Index: i, Prefix: e.Prefix, Reason: fmt.Sprintf("root %q does not start with %q", e.Root, scheme)})
		}
		if first, dup := seen[e.Prefix]; dup {
			errs = append(errs, &InvalidNamespaceError{Index: i, Prefix: e.Prefix, Reason: fmt.Sprintf("duplicate prefix (same as namespaces[%d])", first)})
			continue
		}
		seen[e.Prefix] = i
	}
	return errs
}

func validateCallSites(sites []rewrite.CallSite) []error {
	var errs []error
	seen := make(map[string]int)
	for i, s := range sites {
		if strings.TrimSpace(s.Keyword) == "" {
			errs = append(errs, &InvalidCallSiteError{Index: i, Reason: "empty keyword"})
		}
		if valid, _ := s.Kind.IsValid(); !valid {
			errs = append(errs, &InvalidCallSiteError{Index: i, Keyword: s.Keyword, Reason: fmt.Sprintf("unknown kind %q", s.Kind)})
		}
		if first, dup := seen[s.Keyword]; dup {
			errs = append(errs, &InvalidCallSiteError{Index: i, Keyword: s.Keyword, Reason: fmt.Sprintf("duplicate keyword (same as call_sites[%d])", first)})
			continue
		}
		seen[s.Keyword] = i
	}
	return errs
}

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels,
// and a list of validation errors if it is not.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Error implements the error interface.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// Error implements the error interface.
func (e *InvalidNamespaceError) Error() string {
	return fmt.Sprintf("namespaces[%d] (prefix %q): %s", e.Index, e.Prefix, e.Reason)
}

// Unwrap returns ErrInvalidNamespace for errors.Is() compatibility.
func (e *InvalidNamespaceError) Unwrap() error { return ErrInvalidNamespace }

// Error implements the error interface.
func (e *InvalidCallSiteError) Error() string {
	return fmt.Sprintf("call_sites[%d] (keyword %q): %s", e.Index, e.Keyword, e.Reason)
}

// Unwrap returns ErrInvalidCallSite for errors.Is() compatibility.
func (e *InvalidCallSiteError) Unwrap() error { return ErrInvalidCallSite }

// Error implements the error interface.
func (e *InvalidModuleDirError) Error() string {
	return fmt.Sprintf("invalid module dir %q: must be a non-empty relative path", e.Value)
}

// Unwrap returns ErrInvalidModuleDir for errors.Is() compatibility.
func (e *InvalidModuleDirError) Unwrap() error { return ErrInvalidModuleDir }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %d field error(s): %s", len(e.FieldErrors), strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }
