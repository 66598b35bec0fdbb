// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/modrewrite/modrewrite/internal/declare"
	"github.com/modrewrite/modrewrite/internal/issue"
	"github.com/modrewrite/modrewrite/internal/migrate"
	"github.com/modrewrite/modrewrite/internal/workspace"
)

func TestNewServiceError_PanicsOnNilErr(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on nil Err, got none")
		}
		if msg, ok := r.(string); !ok || msg != "ServiceError: Err must not be nil" {
			t.Fatalf("unexpected panic value: %v", r)
		}
	}()

	newServiceError(nil, 0, "")
}

func TestServiceError_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	underlying := errors.New("underlying error")
	svcErr := newServiceError(underlying, issue.ConfigLoadFailedId, "")

	if svcErr.Error() != "underlying error" {
		t.Errorf("Error() = %q, want %q", svcErr.Error(), "underlying error")
	}
	if !errors.Is(svcErr, underlying) {
		t.Error("errors.Is should find underlying error via Unwrap")
	}
}

func TestClassifyRunError(t *testing.T) {
	t.Parallel()

	header := issue.NewErrorContext().
		WithOperation("index build descriptors").
		Wrap(&declare.MalformedDeclarationError{Descriptor: "devtools/moz.build", Line: 1, Fatal: true}).
		BuildError()
	preset := newServiceError(errors.New("config"), issue.ConfigLoadFailedId, "")

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"fatal declaration", header, issue.DescriptorHeaderInvalidId},
		{"write failure", &migrate.WriteError{Path: "a.js", Err: errors.New("read-only")}, issue.SourceWriteFailedId},
		{"root not a directory", fmt.Errorf("/tmp/x: %w", workspace.ErrRootNotDirectory), issue.ProjectRootNotFoundId},
		{"service error kept", preset, issue.ConfigLoadFailedId},
		{"unclassified", errors.New("boom"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := classifyRunError(tt.err).IssueID; got != tt.want {
				t.Errorf("IssueID = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRenderServiceError_NilServiceError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderServiceError(&buf, nil)

	if buf.Len() != 0 {
		t.Errorf("expected no output for nil ServiceError, got %q", buf.String())
	}
}

func TestRenderServiceError_WithIssueID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderServiceError(&buf, newServiceError(errors.New("test"), issue.SourceWriteFailedId, "styled: "))

	if output := buf.String(); len(output) <= len("styled: ") {
		t.Errorf("expected styled message + issue content, got only %q", output)
	}
}

func TestRenderServiceError_ZeroIssueIDSkipsCatalog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderServiceError(&buf, newServiceError(errors.New("test"), 0, "only this"))

	if buf.String() != "only this" {
		t.Errorf("output = %q, want %q", buf.String(), "only this")
	}
}
