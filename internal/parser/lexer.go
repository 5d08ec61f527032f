package parser

import "strings"

// lexer is a byte-stream cursor over the source. There is no token stream:
// the parser asks for exactly the token it wants next, and a failed match
// leaves the cursor where it was. A candidate whose final character is
// alphanumeric only matches when the following byte is not alphanumeric, so
// "int" never matches inside "internal".
type lexer struct {
	source string
	pos    int
}

func newLexer(source string) *lexer {
	return &lexer{source: source}
}

func (l *lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

// peekByte returns the byte under the cursor without consuming it, or 0 at
// end of input.
func (l *lexer) peekByte() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.pos]
}

func (l *lexer) skipWhitespace() {
	for !l.isAtEnd() {
		switch l.source[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		default:
			return
		}
	}
}

// matchAt reports whether tok matches at the cursor, honoring the
// word-boundary rule. The cursor is not moved.
func (l *lexer) matchAt(tok string, foldCase bool) bool {
	end := l.pos + len(tok)
	if end > len(l.source) {
		return false
	}
	candidate := l.source[l.pos:end]
	if foldCase {
		if !strings.EqualFold(candidate, tok) {
			return false
		}
	} else if candidate != tok {
		return false
	}
	last := tok[len(tok)-1]
	if isAlphaNumeric(last) && end < len(l.source) && isAlphaNumeric(l.source[end]) {
		return false
	}
	return true
}

// tryPeek reports whether tok is next, after whitespace, without consuming.
func (l *lexer) tryPeek(tok string) bool {
	l.skipWhitespace()
	return l.matchAt(tok, false)
}

// tryRead consumes tok if it is next and reports whether it did.
func (l *lexer) tryRead(tok string) bool {
	l.skipWhitespace()
	if !l.matchAt(tok, false) {
		return false
	}
	l.pos += len(tok)
	return true
}

// mustRead consumes tok or fails with a syntax error.
func (l *lexer) mustRead(tok string) error {
	if !l.tryRead(tok) {
		return &ParseError{
			Message:  "expected " + quote(tok),
			Position: l.position(),
			Err:      &SyntaxError{Expected: quote(tok)},
		}
	}
	return nil
}

// readName consumes an identifier and returns it, or "" when the next
// input is not an identifier start.
func (l *lexer) readName() string {
	l.skipWhitespace()
	start := l.pos
	if l.isAtEnd() || !isAlpha(l.source[l.pos]) {
		return ""
	}
	for !l.isAtEnd() && isAlphaNumeric(l.source[l.pos]) {
		l.pos++
	}
	return l.source[start:l.pos]
}

// readNumber consumes a decimal integer literal. ok is false when the next
// input is not a digit.
func (l *lexer) readNumber() (value int64, ok bool) {
	l.skipWhitespace()
	if l.isAtEnd() || !isDigit(l.source[l.pos]) {
		return 0, false
	}
	for !l.isAtEnd() && isDigit(l.source[l.pos]) {
		value = value*10 + int64(l.source[l.pos]-'0')
		l.pos++
	}
	return value, true
}

// position computes the line and column of the cursor. Errors are rare and
// terminal, so this scans the prefix rather than tracking lines eagerly.
func (l *lexer) position() Position {
	return l.positionAt(l.pos)
}

func (l *lexer) positionAt(offset int) Position {
	line, column := 1, 1
	for i := 0; i < offset && i < len(l.source); i++ {
		if l.source[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return Position{Line: line, Column: column, Offset: offset}
}

func quote(tok string) string {
	return "'" + tok + "'"
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
