// SPDX-License-Identifier: MPL-2.0

package namespace

import (
	"errors"
	"fmt"
)

// ErrNoMapping is the sentinel error wrapped by NoMappingError.
var ErrNoMapping = errors.New("no namespace mapping")

// NoMappingError is returned when an identifier matches no table entry and is
// not already in canonical form. It wraps ErrNoMapping for errors.Is().
type NoMappingError struct {
	ID string
}

// Error implements the error interface.
func (e *NoMappingError) Error() string {
	return fmt.Sprintf("no mapping found for %q", e.ID)
}

// Unwrap returns ErrNoMapping for errors.Is() compatibility.
func (e *NoMappingError) Unwrap() error { return ErrNoMapping }
