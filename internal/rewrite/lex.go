// SPDX-License-Identifier: MPL-2.0

package rewrite

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceToken = iota
	calleeToken
	openParenToken
	quotedToken
	argumentBlockToken
)

var whitespaceMatcher = parsly.NewToken(whitespaceToken, "Whitespace", matcher.NewWhiteSpace())
var calleeMatcher = parsly.NewToken(calleeToken, "callee", &calleeMatch{})
var openParenMatcher = parsly.NewToken(openParenToken, "(", matcher.NewByte('('))
var quotedMatcher = parsly.NewToken(quotedToken, "quoted identifier", &quotedMatch{})
var argumentBlockMatcher = parsly.NewToken(argumentBlockToken, "(...)", &argumentBlockMatch{})

// calleeMatch matches a dotted identifier chain such as Components.utils.import.
type calleeMatch struct{}

func (c *calleeMatch) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	i := pos
	for i < size {
		n := 0
		for i+n < size && isIdentByte(input[i+n]) {
			n++
		}
		if n == 0 {
			break
		}
		i += n
		if i+1 < size && input[i] == '.' && isIdentByte(input[i+1]) {
			i++
			continue
		}
		break
	}
	return i - pos
}

// quotedMatch matches a single-line '...' or "..." literal.
type quotedMatch struct{}

func (q *quotedMatch) Match(cursor *parsly.Cursor) int {
	return quotedLen(cursor.Input, cursor.Pos, cursor.InputSize)
}

// argumentBlockMatch matches a balanced parenthesised block that may span
// lines. Brackets inside string literals and comments are not counted.
type argumentBlockMatch struct{}

func (a *argumentBlockMatch) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	if pos >= size || input[pos] != '(' {
		return 0
	}
	depth := 0
	for i := pos; i < size; i++ {
		switch input[i] {
		case '\'', '"', '`':
			n := stringLen(input, i, size)
			if n == 0 {
				return 0
			}
			i += n - 1
		case '/':
			if n := commentLen(input, i, size); n > 0 {
				i += n - 1
			}
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return i + 1 - pos
			}
		}
	}
	return 0
}

// commentLen returns the length of the // or /* */ comment opened at pos, or 0.
// A line comment ends before its newline; an unclosed block comment runs to size.
func commentLen(input []byte, pos, size int) int {
	if pos+1 >= size || input[pos] != '/' {
		return 0
	}
	switch input[pos+1] {
	case '/':
		i := pos + 2
		for i < size && input[i] != '\n' {
			i++
		}
		return i - pos
	case '*':
		for i := pos + 2; i+1 < size; i++ {
			if input[i] == '*' && input[i+1] == '/' {
				return i + 2 - pos
			}
		}
		return size - pos
	}
	return 0
}

// quotedLen returns the length of the single-line quoted literal at pos, or 0.
func quotedLen(input []byte, pos, size int) int {
	if pos >= size || (input[pos] != '\'' && input[pos] != '"') {
		return 0
	}
	return stringLen(input, pos, size)
}

// stringLen returns the length of the string literal opened at pos, or 0 when
// it does not close. Only template literals may span lines.
func stringLen(input []byte, pos, size int) int {
	quote := input[pos]
	for i := pos + 1; i < size; i++ {
		switch input[i] {
		case '\\':
			i++
		case '\n':
			if quote != '`' {
				return 0
			}
		case quote:
			return i + 1 - pos
		}
	}
	return 0
}

func isIdentByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_' || b == '$'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
