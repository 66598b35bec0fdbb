// SPDX-License-Identifier: MPL-2.0

package declare

import (
	"errors"
	"strings"

	"github.com/modrewrite/modrewrite/internal/issue"

	"github.com/viant/parsly"
)

// header is the parsed form of a block header line.
type header struct {
	path    string   // "/devtools/shared" for EXTRA_JS_MODULES.devtools.shared
	entries []string // entries that follow '[' on the header line itself
	closed  bool     // the array also closed on the header line
	broken  bool     // an inline entry was not a quoted literal
}

// Parse extracts the declaration records of one descriptor.
//
// Entry lines without a quoted path drop their whole record and are reported
// as warning diagnostics; parsing continues with the next block. A header
// line that cannot be parsed returns a fatal *MalformedDeclarationError.
func Parse(descriptor string, content []byte, opts Options) ([]Record, []issue.Diagnostic, error) {
	client := IsClient(descriptor, opts.ClientDir)

	var (
		records     []Record
		diagnostics []issue.Diagnostic
		current     *Record
		malformed   bool
	)

	finish := func() {
		if current != nil && !malformed {
			records = append(records, *current)
		}
		current = nil
		malformed = false
	}

	for i, line := range strings.Split(string(content), "\n") {
		lineNo := i + 1
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case isHeader(line, opts.Marker):
			finish()
			h, err := parseHeader(line, opts.Marker)
			if err != nil {
				return nil, diagnostics, &MalformedDeclarationError{
					Descriptor: descriptor,
					Line:       lineNo,
					Text:       line,
					Reason:     err.Error(),
					Fatal:      true,
				}
			}
			current = &Record{
				Descriptor: descriptor,
				Line:       lineNo,
				Client:     client,
				Root:       opts.root(client) + h.path,
				Entries:    h.entries,
			}
			if h.broken {
				malformed = true
				diagnostics = append(diagnostics, malformedEntry(descriptor, lineNo, line))
			}
			if h.closed {
				finish()
			}
		case trimmed == "]":
			finish()
		case current != nil:
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}
			entries, ok := parseEntries([]byte(line))
			if !ok {
				if !malformed {
					diagnostics = append(diagnostics, malformedEntry(descriptor, lineNo, line))
				}
				malformed = true
				continue
			}
			current.Entries = append(current.Entries, entries...)
		}
	}
	finish()

	return records, diagnostics, nil
}

func malformedEntry(descriptor string, line int, text string) issue.Diagnostic {
	cause := &MalformedDeclarationError{
		Descriptor: descriptor,
		Line:       line,
		Text:       text,
		Reason:     "entry has no quoted path",
	}
	return issue.NewWarning(issue.CodeDeclarationMalformed, descriptor,
		"build-array entry has no quoted path, record skipped").WithLine(line).WithCause(cause)
}

// isHeader reports whether line starts with marker as a whole token.
func isHeader(line, marker string) bool {
	if marker == "" || !strings.HasPrefix(line, marker) {
		return false
	}
	rest := line[len(marker):]
	return rest == "" || !isNameByte(rest[0])
}

func parseHeader(line, marker string) (*header, error) {
	cursor := parsly.NewCursor("", []byte(line), 0)
	cursor.Pos = len(marker)

	h := &header{}
	var path strings.Builder
segments:
	for {
		matched := cursor.MatchAfterOptional(whitespaceMatcher, dotSegmentMatcher, bracketSegmentMatcher, appendMatcher, assignMatcher)
		switch matched.Code {
		case dotSegmentToken:
			path.WriteString("/")
			path.WriteString(matched.Text(cursor)[1:])
		case bracketSegmentToken:
			text := matched.Text(cursor)
			path.WriteString("/")
			path.WriteString(text[2 : len(text)-2])
		case appendToken, assignToken:
			break segments
		default:
			return nil, errors.New("expected .name, ['name'] or += after build-array marker")
		}
	}
	h.path = path.String()

	if matched := cursor.MatchAfterOptional(whitespaceMatcher, openArrayMatcher); matched.Code != openArrayToken {
		return nil, errors.New("expected '[' after assignment")
	}

	for cursor.Pos < cursor.InputSize {
		matched := cursor.MatchAfterOptional(whitespaceMatcher, quotedMatcher, commaMatcher, closeArrayMatcher, commentMatcher)
		switch matched.Code {
		case quotedToken:
			h.entries = append(h.entries, unquote(matched.Text(cursor)))
		case commaToken, commentToken:
		case closeArrayToken:
			h.closed = true
			return h, nil
		case parsly.EOF:
			return h, nil
		default:
			h.broken = true
			return h, nil
		}
	}
	return h, nil
}

// parseEntries returns the quoted literals of a block line. A line whose
// first token is not a quoted literal is malformed.
func parseEntries(line []byte) ([]string, bool) {
	cursor := parsly.NewCursor("", line, 0)
	var entries []string
	for cursor.Pos < cursor.InputSize {
		matched := cursor.MatchAfterOptional(whitespaceMatcher, quotedMatcher, commaMatcher, commentMatcher)
		switch matched.Code {
		case quotedToken:
			entries = append(entries, unquote(matched.Text(cursor)))
		case commaToken, commentToken:
		default:
			return entries, len(entries) > 0
		}
	}
	return entries, len(entries) > 0
}

func unquote(literal string) string {
	return literal[1 : len(literal)-1]
}
