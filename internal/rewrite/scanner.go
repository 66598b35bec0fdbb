// SPDX-License-Identifier: MPL-2.0

package rewrite

import (
	"bytes"
	"strings"

	"github.com/viant/parsly"
	"golang.org/x/exp/slices"
)

type (
	// Span is a half-open byte range [Start, End) within a file.
	Span struct {
		Start int `json:"start"`
		End   int `json:"end"`
	}

	// Reference is one module identifier found at a call site.
	Reference struct {
		// RawID is the identifier text between the quotes.
		RawID string
		// Kind is the call site's classification.
		Kind Kind
		// Keyword is the matched call-site keyword.
		Keyword string
		// Accessor reports a lazy getter reference.
		Accessor bool
		// Site spans the callee through the identifier literal or closing paren.
		Site Span
		// ID spans RawID, excluding its quotes.
		ID Span
		// Line is the 1-based line of the identifier.
		Line int
	}

	// Scanner locates references in source text.
	Scanner struct {
		sites []CallSite
	}
)

// NewScanner creates a Scanner for sites. Longer keywords are tried first
// so "Components.utils.import" wins over a configured "import".
func NewScanner(sites []CallSite) *Scanner {
	sorted := slices.Clone(sites)
	slices.SortStableFunc(sorted, func(a, b CallSite) int {
		return len(b.Keyword) - len(a.Keyword)
	})
	return &Scanner{sites: sorted}
}

// Len returns the length of the span.
func (s Span) Len() int { return s.End - s.Start }

// Scan returns the references in text in order of appearance.
func (s *Scanner) Scan(text []byte) []Reference {
	var refs []Reference
	cursor := parsly.NewCursor("", text, 0)
	for cursor.Pos < cursor.InputSize {
		matched := cursor.MatchOne(calleeMatcher)
		if matched.Code != calleeToken {
			cursor.Pos++
			continue
		}
		start := matched.Offset
		site, ok := s.match(matched.Text(cursor))
		if !ok {
			continue
		}
		var ref *Reference
		if site.Accessor {
			ref = scanAccessor(cursor, site)
		} else {
			ref = scanDirect(cursor, site)
		}
		if ref == nil {
			continue
		}
		ref.Site.Start = start
		ref.Line = bytes.Count(text[:ref.ID.Start], []byte{'\n'}) + 1
		refs = append(refs, *ref)
	}
	return refs
}

// match finds the call site whose keyword ends callee at a segment boundary.
func (s *Scanner) match(callee string) (CallSite, bool) {
	for _, site := range s.sites {
		if callee == site.Keyword || strings.HasSuffix(callee, "."+site.Keyword) {
			return site, true
		}
	}
	return CallSite{}, false
}

// scanDirect matches `( 'id'` after the callee.
func scanDirect(cursor *parsly.Cursor, site CallSite) *Reference {
	pos := cursor.Pos
	if matched := cursor.MatchAfterOptional(whitespaceMatcher, openParenMatcher); matched.Code != openParenToken {
		cursor.Pos = pos
		return nil
	}
	matched := cursor.MatchAfterOptional(whitespaceMatcher, quotedMatcher)
	if matched.Code != quotedToken {
		cursor.Pos = pos
		return nil
	}
	literal := matched.Text(cursor)
	return &Reference{
		RawID:   literal[1 : len(literal)-1],
		Kind:    site.Kind,
		Keyword: site.Keyword,
		Site:    Span{End: cursor.Pos},
		ID:      Span{Start: matched.Offset + 1, End: cursor.Pos - 1},
	}
}

// scanAccessor matches a balanced argument block whose third argument is a
// quoted literal.
func scanAccessor(cursor *parsly.Cursor, site CallSite) *Reference {
	pos := cursor.Pos
	matched := cursor.MatchAfterOptional(whitespaceMatcher, argumentBlockMatcher)
	if matched.Code != argumentBlockToken {
		cursor.Pos = pos
		return nil
	}
	args := splitArguments(cursor.Input, matched.Offset+1, cursor.Pos-1)
	if len(args) < 3 {
		cursor.Pos = pos
		return nil
	}
	arg := trimSpan(cursor.Input, args[2])
	if arg.Len() < 2 || quotedLen(cursor.Input, arg.Start, arg.End) != arg.Len() {
		cursor.Pos = pos
		return nil
	}
	return &Reference{
		RawID:    string(cursor.Input[arg.Start+1 : arg.End-1]),
		Kind:     site.Kind,
		Keyword:  site.Keyword,
		Accessor: true,
		Site:     Span{End: cursor.Pos},
		ID:       Span{Start: arg.Start + 1, End: arg.End - 1},
	}
}

// splitArguments splits input[start:end] at top-level commas.
func splitArguments(input []byte, start, end int) []Span {
	var args []Span
	depth := 0
	argStart := start
	for i := start; i < end; i++ {
		switch input[i] {
		case '\'', '"', '`':
			if n := stringLen(input, i, end); n > 0 {
				i += n - 1
			}
		case '/':
			if n := commentLen(input, i, end); n > 0 {
				i += n - 1
			}
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, Span{Start: argStart, End: i})
				argStart = i + 1
			}
		}
	}
	return append(args, Span{Start: argStart, End: end})
}

// trimSpan drops the whitespace and comments around an argument.
func trimSpan(input []byte, s Span) Span {
	start, last := -1, -1
	for i := s.Start; i < s.End; i++ {
		if isSpace(input[i]) {
			continue
		}
		if n := commentLen(input, i, s.End); n > 0 {
			i += n - 1
			continue
		}
		if start < 0 {
			start = i
		}
		switch input[i] {
		case '\'', '"', '`':
			if n := stringLen(input, i, s.End); n > 0 {
				i += n - 1
			}
		}
		last = i
	}
	if start < 0 {
		return Span{Start: s.End, End: s.End}
	}
	return Span{Start: start, End: last + 1}
}
