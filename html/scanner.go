// Package html implements the base-dialect external scanner: the layer
// that owns the open-element stack and handles tag names, raw text,
// comments, self-closing delimiters, and implicit end-tag insertion. The
// htmlx package embeds a Scanner (and svelte embeds htmlx in turn) and
// calls its exported stack accessors and Scan method rather than reaching
// into its fields, so the stack has exactly one owner no matter how many
// dialect layers wrap it.
package html

import (
	"github.com/dpotapov/go-htmlx-scanner/internal/wire"
	"github.com/dpotapov/go-htmlx-scanner/lexer"
	"github.com/dpotapov/go-htmlx-scanner/tagtable"
)

// Symbol identifies one of the tokens this scanner can produce. Its
// ordinals are private to this package: an outer dialect renumbers
// compatibly with its own generated parser table rather than reusing
// these values directly.
type Symbol int

const (
	StartTagName Symbol = iota
	ScriptStartTagName
	StyleStartTagName
	TextareaStartTagName
	TitleStartTagName
	EndTagName
	ErroneousEndTagName
	SelfClosingTagDelimiter
	ImplicitEndTag
	RawText
	Comment
)

// ValidSymbols reports which of this scanner's tokens the parser's current
// state can accept. A scanner must never return a symbol whose field here
// is false.
type ValidSymbols struct {
	StartTagName         bool
	ScriptStartTagName   bool
	StyleStartTagName    bool
	TextareaStartTagName bool
	TitleStartTagName    bool
	EndTagName           bool
	ErroneousEndTagName  bool
	SelfClosing          bool
	ImplicitEndTag       bool
	RawText              bool
	Comment              bool
}

func (v ValidSymbols) anyStartTag() bool {
	return v.StartTagName || v.ScriptStartTagName || v.StyleStartTagName ||
		v.TextareaStartTagName || v.TitleStartTagName
}

// Scanner holds the open-element stack, the only state this layer needs
// between calls.
type Scanner struct {
	stack []tagtable.Tag
}

// New returns a Scanner with an empty stack.
func New() *Scanner {
	return &Scanner{}
}

// Push opens a new element.
func (s *Scanner) Push(t tagtable.Tag) {
	s.stack = append(s.stack, t)
}

// Pop closes the innermost open element. It is a no-op on an empty stack.
func (s *Scanner) Pop() (tagtable.Tag, bool) {
	if len(s.stack) == 0 {
		return tagtable.Tag{}, false
	}
	i := len(s.stack) - 1
	t := s.stack[i]
	s.stack = s.stack[:i]
	return t, true
}

// Top returns the innermost open element without closing it.
func (s *Scanner) Top() (tagtable.Tag, bool) {
	if len(s.stack) == 0 {
		return tagtable.Tag{}, false
	}
	return s.stack[len(s.stack)-1], true
}

// Len reports how many elements are currently open.
func (s *Scanner) Len() int {
	return len(s.stack)
}

// Stack exposes the current open-element stack, outermost first. Callers
// must treat it as read-only.
func (s *Scanner) Stack() []tagtable.Tag {
	return s.stack
}

// SetStack replaces the open-element stack wholesale; used by Deserialize,
// and by outer dialect layers restoring their own serialized state.
func (s *Scanner) SetStack(stack []tagtable.Tag) {
	s.stack = stack
}

// Serialize writes the open-element stack into buf, truncating if it
// doesn't fit, and returns the number of bytes written.
func (s *Scanner) Serialize(buf []byte) uint32 {
	return uint32(wire.EncodeStack(buf, 0, s.stack))
}

// Deserialize restores the open-element stack from a buffer previously
// produced by Serialize (possibly by a different Scanner instance, as
// tree-sitter reparsing requires).
func (s *Scanner) Deserialize(buf []byte) {
	if len(buf) == 0 {
		s.stack = nil
		return
	}
	stack, _ := wire.DecodeStack(buf, 0)
	s.stack = stack
}

func isHTMLSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 0x20
	}
	return r
}

func isAlpha(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// isTagNameChar matches the byte set this dialect scans a tag name with:
// ASCII letters, digits, '-' and ':'. Note the absence of '_': the base
// dialect has no use for it, unlike the HTMLX identifier scanner.
func isTagNameChar(r rune) bool {
	return isAlpha(r) || (r >= '0' && r <= '9') || r == '-' || r == ':'
}

// Scan implements the full dispatch this package's tokens support: raw
// text mode, whitespace, comments, implicit end tags, self-closing
// delimiters, and tag names. It is used directly when this package is the
// active top-level dialect, and by htmlx/svelte as their final fallback
// for whichever token neither of them special-cased.
func (s *Scanner) Scan(lex lexer.Lexer, valid ValidSymbols) (Symbol, bool) {
	anyStart := valid.anyStartTag()

	// 1. Raw text mode: entered only when the grammar offers nothing but
	// RAW_TEXT, i.e. it has already committed to the element's body.
	if valid.RawText && !anyStart && !valid.EndTagName {
		if s.scanRawText(lex) {
			return RawText, true
		}
		return 0, false
	}

	for !lex.EOF() && isHTMLSpace(lex.Lookahead()) {
		lex.Advance(true)
	}

	if !lex.EOF() && lex.Lookahead() == '<' {
		lex.MarkEnd()
		lex.Advance(false)
		if lex.Lookahead() == '!' {
			lex.Advance(false)
			if valid.Comment && s.scanComment(lex) {
				return Comment, true
			}
			return 0, false
		}
		if valid.ImplicitEndTag && s.scanImplicitEndTag(lex, false) {
			return ImplicitEndTag, true
		}
		return 0, false
	}

	if lex.EOF() {
		if valid.ImplicitEndTag && s.scanImplicitEndTag(lex, true) {
			return ImplicitEndTag, true
		}
		return 0, false
	}

	if lex.Lookahead() == '/' && valid.SelfClosing {
		lex.MarkEnd()
		if s.scanSelfClose(lex) {
			return SelfClosingTagDelimiter, true
		}
		return 0, false
	}

	if anyStart {
		if tag, ok := s.scanStartTag(lex); ok {
			return startSymbolFor(tag), true
		}
	}

	if valid.EndTagName {
		if matched, ok := s.scanEndTag(lex); ok {
			if matched {
				return EndTagName, true
			}
			if valid.ErroneousEndTagName {
				return ErroneousEndTagName, true
			}
		}
	}

	return 0, false
}

func startSymbolFor(tag tagtable.Tag) Symbol {
	switch tag.Name {
	case tagtable.Script:
		return ScriptStartTagName
	case tagtable.Style:
		return StyleStartTagName
	case tagtable.Textarea:
		return TextareaStartTagName
	case tagtable.Title:
		return TitleStartTagName
	default:
		return StartTagName
	}
}

// rawTextDelimiter returns the literal closing-tag prefix (already
// uppercased, without the trailing '>') that terminates name's raw-text
// body, if name is a raw-text or escapable-raw-text element.
func rawTextDelimiter(name tagtable.Name) (string, bool) {
	switch name {
	case tagtable.Script:
		return "</SCRIPT", true
	case tagtable.Style:
		return "</STYLE", true
	case tagtable.Textarea:
		return "</TEXTAREA", true
	case tagtable.Title:
		return "</TITLE", true
	default:
		return "", false
	}
}

// scanRawText consumes everything up to, but not including, the literal
// closing tag of the innermost open element. It matches the delimiter
// ASCII-case-insensitively byte-by-byte with no backtracking: on a
// mismatch it simply moves the committed boundary forward past the byte
// that broke the match, since every byte advanced so far — delimiter
// prefix included — turns out to have been ordinary content after all.
func (s *Scanner) scanRawText(lex lexer.Lexer) bool {
	top, ok := s.Top()
	if !ok {
		return false
	}
	delim, ok := rawTextDelimiter(top.Name)
	if !ok {
		return false
	}

	lex.MarkEnd()
	di := 0
	for !lex.EOF() {
		c := lex.Lookahead()
		if asciiUpper(c) == rune(delim[di]) {
			lex.Advance(false)
			di++
			if di == len(delim) {
				// Full match: stop without consuming the delimiter itself,
				// i.e. without moving mark_end any further. The closing
				// tag remains in the stream for the next Scan call.
				return true
			}
			continue
		}
		lex.Advance(false)
		di = 0
		lex.MarkEnd()
	}
	return true
}

// scanComment consumes a comment body once the caller has already advanced
// past "<!". It requires "--" to open, then watches for a run of at least
// two dashes immediately followed by '>' to close — deliberately lenient
// about "--" appearing elsewhere in the body, matching how browsers
// recover from the technically-invalid-but-common `<!-- a -- b -->`.
func (s *Scanner) scanComment(lex lexer.Lexer) bool {
	if lex.Lookahead() != '-' {
		return false
	}
	lex.Advance(false)
	if lex.Lookahead() != '-' {
		return false
	}
	lex.Advance(false)

	dashes := 0
	for !lex.EOF() {
		switch lex.Lookahead() {
		case '-':
			dashes++
			lex.Advance(false)
		case '>':
			if dashes >= 2 {
				lex.Advance(false)
				lex.MarkEnd()
				return true
			}
			dashes = 0
			lex.Advance(false)
		default:
			dashes = 0
			lex.Advance(false)
		}
	}
	return false
}

// scanSelfClose consumes "/>" once the caller has positioned lookahead at
// '/', closing the tag that was just opened.
func (s *Scanner) scanSelfClose(lex lexer.Lexer) bool {
	lex.Advance(false)
	if lex.Lookahead() != '>' {
		return false
	}
	lex.Advance(false)
	lex.MarkEnd()
	s.Pop()
	return true
}

func (s *Scanner) scanStartTag(lex lexer.Lexer) (tagtable.Tag, bool) {
	if !isAlpha(lex.Lookahead()) {
		return tagtable.Tag{}, false
	}
	var buf []byte
	for isTagNameChar(lex.Lookahead()) {
		buf = append(buf, byte(asciiUpper(lex.Lookahead())))
		lex.Advance(false)
	}
	lex.MarkEnd()
	tag := tagtable.Classify(buf)
	s.Push(tag)
	return tag, true
}

// scanEndTag scans a name and reports whether it matched the innermost
// open element (in which case it has already been popped) or not (an
// erroneous end tag, left for the grammar to recover from). The second
// return value is false only when there wasn't even an identifier to scan.
func (s *Scanner) scanEndTag(lex lexer.Lexer) (matched bool, ok bool) {
	if !isAlpha(lex.Lookahead()) {
		return false, false
	}
	var buf []byte
	for isTagNameChar(lex.Lookahead()) {
		buf = append(buf, byte(asciiUpper(lex.Lookahead())))
		lex.Advance(false)
	}
	lex.MarkEnd()
	tag := tagtable.Classify(buf)
	if top, okTop := s.Top(); okTop && top.Name == tag.Name {
		s.Pop()
		return true, true
	}
	return false, true
}

func scanName(lex lexer.Lexer) []byte {
	var buf []byte
	for isTagNameChar(lex.Lookahead()) {
		buf = append(buf, byte(asciiUpper(lex.Lookahead())))
		lex.Advance(false)
	}
	return buf
}

// scanImplicitEndTag implements the lookahead procedure of §13.1.2.4: it
// peeks at the tag that's about to start (or, at EOF, the absence of one)
// and decides whether to synthesize a zero-width close for the current
// top of stack. It never consumes the introducing '<' or '</' as part of
// the emitted token — MarkEnd is never called here, so on success the
// token spans nothing and the grammar re-enters to scan the real tag.
func (s *Scanner) scanImplicitEndTag(lex lexer.Lexer, atEOF bool) bool {
	closing := false
	if !atEOF && lex.Lookahead() == '/' {
		closing = true
		lex.Advance(false)
	}

	if !closing {
		if top, ok := s.Top(); ok && top.Category() == tagtable.Void {
			s.Pop()
			return true
		}
	}

	var next tagtable.Tag
	if !atEOF {
		name := scanName(lex)
		next = tagtable.Classify(name)
	}

	if closing {
		top, ok := s.Top()
		if !ok {
			return false
		}
		if top.Name == next.Name {
			// Exact match: let the grammar consume it as a normal end tag.
			return false
		}
		for i := len(s.stack) - 1; i >= 0; i-- {
			if s.stack[i].Name == next.Name {
				s.Pop()
				return true
			}
		}
		return false
	}

	top, ok := s.Top()
	if !ok {
		return false
	}
	if atEOF {
		if top.Name == tagtable.Html || top.Name == tagtable.Head || top.Name == tagtable.Body {
			s.Pop()
			return true
		}
		return false
	}
	if !tagtable.CanContain(top, next) {
		s.Pop()
		return true
	}
	return false
}
