// SPDX-License-Identifier: MPL-2.0

package declare

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceToken = iota
	dotSegmentToken
	bracketSegmentToken
	appendToken
	assignToken
	openArrayToken
	closeArrayToken
	quotedToken
	commaToken
	commentToken
)

var whitespaceMatcher = parsly.NewToken(whitespaceToken, "Whitespace", matcher.NewWhiteSpace())
var dotSegmentMatcher = parsly.NewToken(dotSegmentToken, ".name", &dotSegmentMatch{})
var bracketSegmentMatcher = parsly.NewToken(bracketSegmentToken, "['name']", &bracketSegmentMatch{})
var appendMatcher = parsly.NewToken(appendToken, "+=", matcher.NewFragment("+="))
var assignMatcher = parsly.NewToken(assignToken, "=", matcher.NewByte('='))
var openArrayMatcher = parsly.NewToken(openArrayToken, "[", matcher.NewByte('['))
var closeArrayMatcher = parsly.NewToken(closeArrayToken, "]", matcher.NewByte(']'))
var quotedMatcher = parsly.NewToken(quotedToken, "quoted path", &quotedMatch{})
var commaMatcher = parsly.NewToken(commaToken, ",", matcher.NewByte(','))
var commentMatcher = parsly.NewToken(commentToken, "# comment", &commentMatch{})

// dotSegmentMatch matches ".name".
type dotSegmentMatch struct{}

func (d *dotSegmentMatch) Match(cursor *parsly.Cursor) int {
	pos := cursor.Pos
	if pos >= cursor.InputSize || cursor.Input[pos] != '.' {
		return 0
	}
	n := nameLen(cursor.Input, pos+1, cursor.InputSize)
	if n == 0 {
		return 0
	}
	return 1 + n
}

// bracketSegmentMatch matches ['name'] or ["name"].
type bracketSegmentMatch struct{}

func (b *bracketSegmentMatch) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	if pos+1 >= size || input[pos] != '[' {
		return 0
	}
	quote := input[pos+1]
	if quote != '\'' && quote != '"' {
		return 0
	}
	n := nameLen(input, pos+2, size)
	end := pos + 2 + n
	if n == 0 || end+1 >= size || input[end] != quote || input[end+1] != ']' {
		return 0
	}
	return end + 2 - pos
}

// quotedMatch matches a single-line '...' or "..." literal.
type quotedMatch struct{}

func (q *quotedMatch) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	if pos >= size {
		return 0
	}
	quote := input[pos]
	if quote != '\'' && quote != '"' {
		return 0
	}
	for i := pos + 1; i < size; i++ {
		switch input[i] {
		case '\\':
			i++
		case '\n':
			return 0
		case quote:
			return i + 1 - pos
		}
	}
	return 0
}

// commentMatch matches a '#' comment up to the end of the line.
type commentMatch struct{}

func (c *commentMatch) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	if pos >= size || input[pos] != '#' {
		return 0
	}
	i := pos
	for i < size && input[i] != '\n' {
		i++
	}
	return i - pos
}

func nameLen(input []byte, from, size int) int {
	i := from
	for i < size && isNameByte(input[i]) {
		i++
	}
	return i - from
}

func isNameByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_' || b == '-'
}
