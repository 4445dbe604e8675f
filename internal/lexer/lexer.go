// Package lexer tokenizes Valve 220 map source text.
package lexer

import "fmt"

// Lexer is a single-pass cursor over map source text. Tokens are produced
// lazily; line numbers are tracked for diagnostics. Not safe for
// concurrent use.
type Lexer struct {
	src          string
	pos          int
	line         int
	ignoreDelims bool
}

// New returns a lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// SetIgnoreDelimiters toggles treating delimiter characters as ordinary
// token characters, so a token such as a material path containing slashes
// or braces reads as one opaque unit. Returns the previous setting; the
// caller must restore it immediately after the read.
func (l *Lexer) SetIgnoreDelimiters(on bool) bool {
	prev := l.ignoreDelims
	l.ignoreDelims = on
	return prev
}

// Next returns the next token, or the empty string at end of input.
func (l *Lexer) Next() string {
	l.skipBlank()
	if l.pos >= len(l.src) {
		return ""
	}
	c := l.src[l.pos]
	if c == '"' {
		return l.readQuoted()
	}
	if !l.ignoreDelims && isDelim(c) {
		l.pos++
		return string(c)
	}
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isSpace(c) || c == '"' {
			break
		}
		if !l.ignoreDelims && isDelim(c) {
			break
		}
		l.pos++
	}
	return l.src[start:l.pos]
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() string {
	save := *l
	tok := l.Next()
	*l = save
	return tok
}

// Expect reports whether the upcoming token equals want, consuming it on
// a match when consume is true.
func (l *Lexer) Expect(want string, consume bool) bool {
	save := *l
	if l.Next() != want {
		*l = save
		return false
	}
	if !consume {
		*l = save
	}
	return true
}

// IsEnd reports whether only whitespace and comments remain.
func (l *Lexer) IsEnd() bool {
	l.skipBlank()
	return l.pos >= len(l.src)
}

// Line returns the current 1-based line number.
func (l *Lexer) Line() int {
	return l.line
}

// LineInfo returns a human-readable position for error messages.
func (l *Lexer) LineInfo() string {
	return fmt.Sprintf("line %d", l.line)
}

func (l *Lexer) skipBlank() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\n' {
			l.line++
			l.pos++
			continue
		}
		if isSpace(c) {
			l.pos++
			continue
		}
		if c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		return
	}
}

func (l *Lexer) readQuoted() string {
	l.pos++ // opening quote
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '"' {
		if l.src[l.pos] == '\n' {
			l.line++
		}
		l.pos++
	}
	tok := l.src[start:l.pos]
	if l.pos < len(l.src) {
		l.pos++ // closing quote
	}
	return tok
}
