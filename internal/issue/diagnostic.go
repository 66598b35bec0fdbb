// SPDX-License-Identifier: MPL-2.0

package issue

import "fmt"

const (
	// SeverityDebug marks trace-level conditions (skipped binaries, unresolvable ids).
	SeverityDebug Severity = "debug"
	// SeverityWarning marks a recoverable condition worth the user's attention.
	SeverityWarning Severity = "warning"
)

const (
	// CodeDeclarationMalformed: a build-array entry line has no quoted path.
	CodeDeclarationMalformed = "declaration_entry_malformed"
	// CodeIndexCollision: a canonical id or source path was declared twice.
	CodeIndexCollision = "index_collision"
	// CodeReferenceUnmapped: a resolved canonical id has no indexed source.
	CodeReferenceUnmapped = "reference_unmapped"
	// CodeReferenceNoMapping: no namespace entry matched the identifier.
	CodeReferenceNoMapping = "reference_no_mapping"
	// CodeSourceDecodeFailed: file content is not valid UTF-8 text.
	CodeSourceDecodeFailed = "source_decode_failed"
	// CodeSourceReadFailed: file vanished or could not be read after enumeration.
	CodeSourceReadFailed = "source_read_failed"
	// CodeModuleDirMissing: the module directory does not exist, nothing was indexed.
	CodeModuleDirMissing = "module_dir_missing"
)

type (
	// Severity is the diagnostic level.
	Severity string

	// Diagnostic is a recoverable condition returned to callers rather than
	// written directly, so the CLI owns the rendering policy.
	Diagnostic struct {
		// Severity is the diagnostic level.
		Severity Severity
		// Code is a machine-readable identifier (e.g., "reference_unmapped").
		Code string
		// Message is the human-readable description.
		Message string
		// Path is the file associated with this diagnostic (optional).
		Path string
		// Line is the 1-based line number within Path (optional).
		Line int
		// Cause is the underlying error (optional).
		Cause error
	}
)

// NewWarning creates a warning diagnostic.
func NewWarning(code, path, message string) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Code: code, Path: path, Message: message}
}

// NewDebug creates a debug diagnostic.
func NewDebug(code, path, message string) Diagnostic {
	return Diagnostic{Severity: SeverityDebug, Code: code, Path: path, Message: message}
}

// WithLine returns a copy of d positioned at line.
func (d Diagnostic) WithLine(line int) Diagnostic {
	d.Line = line
	return d
}

// WithCause returns a copy of d carrying cause.
func (d Diagnostic) WithCause(cause error) Diagnostic {
	d.Cause = cause
	return d
}

// Location returns "path:line", "path", or "" depending on what is set.
func (d Diagnostic) Location() string {
	switch {
	case d.Path != "" && d.Line > 0:
		return fmt.Sprintf("%s:%d", d.Path, d.Line)
	default:
		return d.Path
	}
}

// String renders the diagnostic on a single line.
func (d Diagnostic) String() string {
	if loc := d.Location(); loc != "" {
		return fmt.Sprintf("%s: %s [%s]", loc, d.Message, d.Code)
	}
	return fmt.Sprintf("%s [%s]", d.Message, d.Code)
}

// IsWarning reports whether the diagnostic is warning level.
func (d Diagnostic) IsWarning() bool { return d.Severity == SeverityWarning }
