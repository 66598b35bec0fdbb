// SPDX-License-Identifier: MPL-2.0

package rewrite

import (
	"errors"
	"fmt"
)

const (
	// EagerImport loads a module immediately and expects a canonical url.
	EagerImport Kind = "eager_import"
	// LazyImport defers loading behind an accessor and expects a canonical url.
	LazyImport Kind = "lazy_import"
	// DependencyRequire loads a module through the require family, which
	// accepts extensionless source-tree paths.
	DependencyRequire Kind = "dependency_require"
)

// ErrInvalidKind is the sentinel error wrapped by InvalidKindError.
var ErrInvalidKind = errors.New("invalid reference kind")

type (
	// Kind classifies a reference by how its target is loaded.
	Kind string

	// InvalidKindError is returned when a Kind value is not recognized.
	// It wraps ErrInvalidKind for errors.Is() compatibility.
	InvalidKindError struct {
		Value Kind
	}
)

// IsImportLike reports whether references of this kind are rewritten to
// canonical urls rather than bare source paths.
func (k Kind) IsImportLike() bool { return k != DependencyRequire }

// String returns the string representation of the Kind.
func (k Kind) String() string { return string(k) }

// IsValid returns whether the Kind is one of the defined kinds,
// and a list of validation errors if it is not.
func (k Kind) IsValid() (bool, []error) {
	switch k {
	case EagerImport, LazyImport, DependencyRequire:
		return true, nil
	default:
		return false, []error{&InvalidKindError{Value: k}}
	}
}

// Error implements the error interface.
func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid reference kind %q (valid: eager_import, lazy_import, dependency_require)", e.Value)
}

// Unwrap returns ErrInvalidKind for errors.Is() compatibility.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }
