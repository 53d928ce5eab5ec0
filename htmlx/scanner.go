// Package htmlx extends the base html dialect with the constructs that
// turn a static HTML document into a component template: namespaced and
// dotted tag names, brace-delimited JS/TS expressions, a lang="ts" marker
// that makes expression scanning sticky for the remainder of the
// document, and the directive/member-access tokens a component framework
// layers on top of plain attributes. It owns no state of its own beyond
// two flags; the open-element stack still belongs to the embedded html.Scanner.
package htmlx

import (
	"github.com/dpotapov/go-htmlx-scanner/html"
	"github.com/dpotapov/go-htmlx-scanner/lexer"
	"github.com/dpotapov/go-htmlx-scanner/tagtable"
)

// Symbol identifies one of this package's tokens. Ordinals are private;
// an embedding dialect (svelte) renumbers its own copies.
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
	TagNamespace
	TagLocalName
	TSLangMarker
	ExpressionJS
	ExpressionTS
	DirectiveMarker
	MemberTagObject
	MemberTagProperty
	Text
)

// ValidSymbols mirrors Symbol as a set of named flags.
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
	TagNamespace         bool
	TagLocalName         bool
	TSLangMarker         bool
	ExpressionJS         bool
	ExpressionTS         bool
	DirectiveMarker      bool
	MemberTagObject      bool
	MemberTagProperty    bool
	Text                 bool
}

func (v ValidSymbols) anyStartTag() bool {
	return v.StartTagName || v.ScriptStartTagName || v.StyleStartTagName ||
		v.TextareaStartTagName || v.TitleStartTagName
}

func (v ValidSymbols) toHTML() html.ValidSymbols {
	return html.ValidSymbols{
		StartTagName:         v.StartTagName,
		ScriptStartTagName:   v.ScriptStartTagName,
		StyleStartTagName:    v.StyleStartTagName,
		TextareaStartTagName: v.TextareaStartTagName,
		TitleStartTagName:    v.TitleStartTagName,
		EndTagName:           v.EndTagName,
		ErroneousEndTagName:  v.ErroneousEndTagName,
		SelfClosing:          v.SelfClosing,
		ImplicitEndTag:       v.ImplicitEndTag,
		RawText:              v.RawText,
		Comment:              v.Comment,
	}
}

func fromHTML(sym html.Symbol) Symbol {
	switch sym {
	case html.StartTagName:
		return StartTagName
	case html.ScriptStartTagName:
		return ScriptStartTagName
	case html.StyleStartTagName:
		return StyleStartTagName
	case html.TextareaStartTagName:
		return TextareaStartTagName
	case html.TitleStartTagName:
		return TitleStartTagName
	case html.EndTagName:
		return EndTagName
	case html.ErroneousEndTagName:
		return ErroneousEndTagName
	case html.SelfClosingTagDelimiter:
		return SelfClosingTagDelimiter
	case html.ImplicitEndTag:
		return ImplicitEndTag
	case html.RawText:
		return RawText
	default:
		return Comment
	}
}

// Scanner wraps an html.Scanner, adding the dialect's own state: whether a
// namespaced tag's local name is still pending, and whether a lang="ts"
// attribute has made expression scanning sticky for the rest of the
// document — both flags survive exactly as the underlying stack does,
// across Serialize/Deserialize calls.
type Scanner struct {
	inner             *html.Scanner
	awaitingLocalName bool
	isTypescript      bool
}

// New returns a Scanner with an empty stack and JS-mode expressions.
func New() *Scanner {
	return &Scanner{inner: html.New()}
}

// Inner exposes the embedded base-dialect scanner for callers (such as
// cmd/htmlxscan) that need to inspect its stack directly.
func (s *Scanner) Inner() *html.Scanner {
	return s.inner
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

// identChar is the character set HTMLX scans a bare identifier with
// before deciding whether it's followed by ':' (namespace) or '.'
// (member access): letters, digits, '-' and '_' — notably not ':' or '.'
// themselves, which are the delimiters this layer is checking for.
func identChar(r rune) bool {
	return isAlpha(r) || (r >= '0' && r <= '9') || r == '-' || r == '_'
}

// Scan implements the dispatch order this package adds on top of html.Scan:
// a TS language marker, brace expressions, directive markers and bare
// text (gated by valid_symbols so a non-Svelte HTMLX grammar simply never
// offers them), a pending namespaced local name, self-closing, member tag
// properties, then namespaced/dotted/plain tag scanning — falling through
// to the embedded html.Scanner for whatever none of that handled.
func (s *Scanner) Scan(lex lexer.Lexer, valid ValidSymbols) (Symbol, bool) {
	if valid.TSLangMarker {
		if s.scanTSLangMarker(lex) {
			return TSLangMarker, true
		}
	}

	if valid.ExpressionJS || valid.ExpressionTS {
		if sym, ok := s.scanExpression(lex); ok {
			return sym, true
		}
	}

	if valid.DirectiveMarker {
		switch checkDirectiveMarker(lex) {
		case 1:
			return DirectiveMarker, true
		case -1:
			return 0, false
		}
	}

	if valid.Text {
		if scanHtmlxText(lex) {
			return Text, true
		}
		if lex.Lookahead() == '{' {
			return 0, false
		}
	}

	anyStart := valid.anyStartTag()

	if valid.RawText && !anyStart && !valid.EndTagName {
		sym, ok := s.inner.Scan(lex, valid.toHTML())
		if !ok {
			return 0, false
		}
		return fromHTML(sym), true
	}

	if s.awaitingLocalName && valid.TagLocalName {
		if s.scanLocalName(lex) {
			return TagLocalName, true
		}
	}

	if lex.Lookahead() == '/' && valid.SelfClosing {
		lex.MarkEnd()
		if s.scanSelfClose(lex) {
			return SelfClosingTagDelimiter, true
		}
		return 0, false
	}

	if valid.MemberTagProperty {
		if s.scanMemberTagProperty(lex) {
			return MemberTagProperty, true
		}
	}

	if isAlpha(lex.Lookahead()) {
		if anyStart || valid.TagNamespace || valid.MemberTagObject {
			if sym, ok := s.scanStartTag(lex, valid); ok {
				return sym, true
			}
		}
		if valid.EndTagName || valid.TagNamespace || valid.MemberTagObject {
			if sym, ok := s.scanEndTag(lex, valid); ok {
				return sym, true
			}
		}
	}

	sym, ok := s.inner.Scan(lex, valid.toHTML())
	if !ok {
		return 0, false
	}
	return fromHTML(sym), true
}

func (s *Scanner) scanStartTag(lex lexer.Lexer, valid ValidSymbols) (Symbol, bool) {
	var buf []byte
	for identChar(lex.Lookahead()) {
		buf = append(buf, byte(asciiUpper(lex.Lookahead())))
		lex.Advance(false)
	}
	if lex.Lookahead() == ':' && valid.TagNamespace {
		lex.MarkEnd()
		s.awaitingLocalName = true
		return TagNamespace, true
	}
	if lex.Lookahead() == '.' && valid.MemberTagObject {
		lex.MarkEnd()
		return MemberTagObject, true
	}
	if len(buf) > 0 && valid.anyStartTag() {
		lex.MarkEnd()
		tag := tagtable.Classify(buf)
		s.inner.Push(tag)
		return startSymbolFor(tag), true
	}
	return 0, false
}

func (s *Scanner) scanEndTag(lex lexer.Lexer, valid ValidSymbols) (Symbol, bool) {
	var buf []byte
	for identChar(lex.Lookahead()) {
		buf = append(buf, byte(asciiUpper(lex.Lookahead())))
		lex.Advance(false)
	}
	if lex.Lookahead() == ':' && valid.TagNamespace {
		lex.MarkEnd()
		s.awaitingLocalName = true
		return TagNamespace, true
	}
	if lex.Lookahead() == '.' && valid.MemberTagObject {
		lex.MarkEnd()
		return MemberTagObject, true
	}
	if len(buf) == 0 {
		return 0, false
	}
	if !valid.EndTagName {
		return 0, false
	}
	lex.MarkEnd()
	tag := tagtable.Classify(buf)
	if top, ok := s.inner.Top(); ok && top.Name == tag.Name {
		s.inner.Pop()
		return EndTagName, true
	}
	if valid.ErroneousEndTagName {
		return ErroneousEndTagName, true
	}
	return 0, false
}

func (s *Scanner) scanLocalName(lex lexer.Lexer) bool {
	if !isAlpha(lex.Lookahead()) {
		return false
	}
	for identChar(lex.Lookahead()) {
		lex.Advance(false)
	}
	lex.MarkEnd()
	s.awaitingLocalName = false
	return true
}

func (s *Scanner) scanMemberTagProperty(lex lexer.Lexer) bool {
	for isSpace(lex.Lookahead()) {
		lex.Advance(true)
	}
	if !isAlpha(lex.Lookahead()) {
		return false
	}
	for identChar(lex.Lookahead()) {
		lex.Advance(false)
	}
	lex.MarkEnd()
	return true
}

func (s *Scanner) scanSelfClose(lex lexer.Lexer) bool {
	lex.Advance(false)
	if lex.Lookahead() != '>' {
		return false
	}
	lex.Advance(false)
	lex.MarkEnd()
	s.inner.Pop()
	return true
}

func (s *Scanner) scanTSLangMarker(lex lexer.Lexer) bool {
	lex.MarkEnd()
	if !checkTSLangAttr(lex) {
		return false
	}
	s.isTypescript = true
	return true
}

func (s *Scanner) scanExpression(lex lexer.Lexer) (Symbol, bool) {
	for isSpace(lex.Lookahead()) {
		lex.Advance(true)
	}
	switch lex.Lookahead() {
	case '#', ':', '@', '/':
		return 0, false
	}
	if !scanBalancedExpr(lex) {
		return 0, false
	}
	if s.isTypescript {
		return ExpressionTS, true
	}
	return ExpressionJS, true
}

// Serialize writes a one-byte flag field (bit 0: awaitingLocalName, bit 1:
// isTypescript) followed by the embedded scanner's stack encoding.
func (s *Scanner) Serialize(buf []byte) uint32 {
	if len(buf) == 0 {
		return 0
	}
	var flags byte
	if s.awaitingLocalName {
		flags |= 1
	}
	if s.isTypescript {
		flags |= 2
	}
	buf[0] = flags
	n := s.inner.Serialize(buf[1:])
	return 1 + n
}

// Deserialize is the inverse of Serialize.
func (s *Scanner) Deserialize(buf []byte) {
	if len(buf) == 0 {
		s.awaitingLocalName = false
		s.isTypescript = false
		s.inner.SetStack(nil)
		return
	}
	flags := buf[0]
	s.awaitingLocalName = flags&1 != 0
	s.isTypescript = flags&2 != 0
	s.inner.Deserialize(buf[1:])
}
