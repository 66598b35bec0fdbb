// SPDX-License-Identifier: MPL-2.0

package migrate

import (
	"errors"
	"fmt"
)

var (
	// ErrNotText is the sentinel error wrapped by DecodeError.
	ErrNotText = errors.New("file is not UTF-8 text")
	// ErrWriteFailed is the sentinel error wrapped by WriteError.
	ErrWriteFailed = errors.New("failed to write rewritten file")
)

type (
	// DecodeError reports a file that cannot be treated as text. Such files
	// are skipped.
	DecodeError struct {
		Path string
	}

	// WriteError reports a rewritten file that could not be saved. It stops
	// the run.
	WriteError struct {
		Path string
		Err  error
	}
)

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, ErrNotText)
}

// Unwrap returns ErrNotText for errors.Is() compatibility.
func (e *DecodeError) Unwrap() error { return ErrNotText }

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

// Unwrap returns both ErrWriteFailed and the underlying cause.
func (e *WriteError) Unwrap() []error { return []error{ErrWriteFailed, e.Err} }
