package internal

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position represents a location in the source template
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number, counted in runes
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// scanner walks the source byte by byte and tracks line and column.
// Only the leading byte of a UTF-8 sequence moves the column.
type scanner struct {
	source string
	pos    int
	line   int
	column int
}

func newScanner(source string) scanner {
	return scanner{
		source: source,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (s *scanner) isAtEnd() bool {
	return s.pos >= len(s.source)
}

func (s *scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.pos]
}

func (s *scanner) advance() byte {
	if s.isAtEnd() {
		return 0
	}
	ch := s.source[s.pos]
	s.pos++
	if ch == CharNewline {
		s.line++
		s.column = 1
	} else if utf8.RuneStart(ch) {
		s.column++
	}
	return ch
}

func (s *scanner) advanceN(n int) {
	for i := 0; i < n && !s.isAtEnd(); i++ {
		s.advance()
	}
}

// matchStr returns true if the remaining source starts with str
func (s *scanner) matchStr(str string) bool {
	return strings.HasPrefix(s.source[s.pos:], str)
}

func (s *scanner) currentPosition() Position {
	return Position{
		Offset: s.pos,
		Line:   s.line,
		Column: s.column,
	}
}

func (s *scanner) skipWhitespace() {
	for !s.isAtEnd() && isWhitespace(s.peek()) {
		s.advance()
	}
}

// scanWhile consumes bytes while keep returns true and returns the consumed slice
func (s *scanner) scanWhile(keep func(byte) bool) string {
	start := s.pos
	for !s.isAtEnd() && keep(s.peek()) {
		s.advance()
	}
	return s.source[start:s.pos]
}

// Character classification helpers

func isWhitespace(ch byte) bool {
	return ch == CharSpace || ch == CharTab || ch == CharNewline || ch == CharCarriageRet
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
