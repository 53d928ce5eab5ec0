// Package driver implements a standalone lexer.Lexer over an in-memory
// source file, tracking byte offsets and 1-based line/column positions so
// a host program can report diagnostics the way a real parser driver
// would. It exists for cmd/htmlxscan and for anything else that wants to
// exercise the scanner packages outside of a generated parser.
package driver

import (
	"unicode/utf8"

	"github.com/dpotapov/go-htmlx-scanner/internal/diag"
)

// Lexer is a lexer.Lexer backed by a byte slice, decoding UTF-8 on the
// fly. Unlike internal/testlexer, it tracks line and column so token
// spans can be reported back to a user.
type Lexer struct {
	src []byte
	pos int // byte offset of the lookahead rune

	line, col int // position of the lookahead rune, both 1-based

	end     int // byte offset MarkEnd last recorded
	endLine int
	endCol  int
}

// New returns a Lexer positioned at the start of src.
func New(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1, endLine: 1, endCol: 1}
}

func (l *Lexer) Lookahead() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.src[l.pos:])
	return r
}

func (l *Lexer) Advance(skip bool) {
	if l.pos >= len(l.src) {
		return
	}
	r, size := utf8.DecodeRune(l.src[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *Lexer) MarkEnd() {
	l.end, l.endLine, l.endCol = l.pos, l.line, l.col
}

func (l *Lexer) EOF() bool {
	return l.pos >= len(l.src)
}

// Token returns the span from start (a byte offset the caller recorded
// before requesting a token) up to the last MarkEnd call; Line and Column
// are those of start.
func (l *Lexer) Token(start int) diag.Span {
	line, col := 1, 1
	for _, r := range string(l.src[:start]) {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return diag.Span{
		Offset: start,
		Length: l.end - start,
		Line:   line,
		Column: col,
	}
}

// Pos reports the current raw byte offset of the lookahead rune.
func (l *Lexer) Pos() int {
	return l.pos
}

// MarkPos reports the byte offset of the last MarkEnd call.
func (l *Lexer) MarkPos() int {
	return l.end
}

// Line and Col report the 1-based position of the last MarkEnd call —
// where a caller should point a human at when describing the token that
// was just scanned.
func (l *Lexer) Line() int { return l.endLine }
func (l *Lexer) Col() int  { return l.endCol }

// Text returns the source bytes between two byte offsets.
func (l *Lexer) Text(from, to int) string {
	return string(l.src[from:to])
}
