// SPDX-License-Identifier: MPL-2.0

package declare

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultMarker opens a build-array block.
	DefaultMarker = "EXTRA_JS_MODULES"
	// DefaultClientDir is the second path segment that marks client descriptors.
	DefaultClientDir = "client"
	// DefaultGeneralRoot is the canonical root for non-client descriptors.
	DefaultGeneralRoot = "resource://gre/modules"
	// DefaultClientRoot is the canonical root for client descriptors.
	DefaultClientRoot = "resource:///modules"
)

// ErrMalformedDeclaration is the sentinel error wrapped by MalformedDeclarationError.
var ErrMalformedDeclaration = errors.New("malformed declaration")

type (
	// Options controls how descriptor text is interpreted.
	Options struct {
		// Marker is the token a block header line starts with.
		Marker string
		// ClientDir is matched against the second segment of the descriptor path.
		ClientDir string
		// GeneralRoot prefixes declared roots of non-client descriptors.
		GeneralRoot string
		// ClientRoot prefixes declared roots of client descriptors.
		ClientRoot string
	}

	// Record is one build-array block of a descriptor.
	Record struct {
		// Descriptor is the slash-separated descriptor path relative to the project root.
		Descriptor string
		// Line is the 1-based line of the block header.
		Line int
		// Client reports whether the descriptor lives under the client subtree.
		Client bool
		// Root is the declared canonical root, without a trailing slash.
		Root string
		// Entries are the quoted relative paths in declaration order.
		Entries []string
	}

	// MalformedDeclarationError describes a descriptor line that could not be
	// interpreted. Header failures are Fatal: the caller must stop rather than
	// map a whole subtree to the wrong root.
	MalformedDeclarationError struct {
		Descriptor string
		Line       int
		Text       string
		Reason     string
		Fatal      bool
	}
)

// DefaultOptions returns the options for the devtools tree layout.
func DefaultOptions() Options {
	return Options{
		Marker:      DefaultMarker,
		ClientDir:   DefaultClientDir,
		GeneralRoot: DefaultGeneralRoot,
		ClientRoot:  DefaultClientRoot,
	}
}

// Error implements the error interface.
func (e *MalformedDeclarationError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %q", e.Descriptor, e.Line, e.Reason, strings.TrimSpace(e.Text))
}

// Unwrap returns ErrMalformedDeclaration for errors.Is() compatibility.
func (e *MalformedDeclarationError) Unwrap() error { return ErrMalformedDeclaration }

// IsClient reports whether the descriptor path's second segment is clientDir,
// e.g. "devtools/client/inspector/moz.build".
func IsClient(descriptor, clientDir string) bool {
	segments := strings.Split(descriptor, "/")
	return len(segments) > 1 && segments[1] == clientDir
}

func (o Options) root(client bool) string {
	if client {
		return o.ClientRoot
	}
	return o.GeneralRoot
}
