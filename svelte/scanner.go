// Package svelte extends htmlx with the block-expression tokens Svelte
// layers on top of a component template: the iterator expression of
// {#each ... as item} and {#await ... then value}, a destructuring
// binding pattern, a {#key ...} expression, and the generic tag
// expression shared by {#if}, {:else if}, and similar block openers. It
// embeds an htmlx.Scanner and delegates everything else to it, the same
// way htmlx delegates to html.
package svelte

import (
	"github.com/dpotapov/go-htmlx-scanner/htmlx"
	"github.com/dpotapov/go-htmlx-scanner/lexer"
)

// Symbol identifies one of this package's tokens.
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
	IteratorExpression
	BindingPattern
	KeyExpression
	TagExpression
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
	IteratorExpression   bool
	BindingPattern       bool
	KeyExpression        bool
	TagExpression        bool
}

func (v ValidSymbols) toHTMLX() htmlx.ValidSymbols {
	return htmlx.ValidSymbols{
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
		TagNamespace:         v.TagNamespace,
		TagLocalName:         v.TagLocalName,
		TSLangMarker:         v.TSLangMarker,
		ExpressionJS:         v.ExpressionJS,
		ExpressionTS:         v.ExpressionTS,
		DirectiveMarker:      v.DirectiveMarker,
		MemberTagObject:      v.MemberTagObject,
		MemberTagProperty:    v.MemberTagProperty,
		Text:                 v.Text,
	}
}

func fromHTMLX(sym htmlx.Symbol) Symbol {
	switch sym {
	case htmlx.StartTagName:
		return StartTagName
	case htmlx.ScriptStartTagName:
		return ScriptStartTagName
	case htmlx.StyleStartTagName:
		return StyleStartTagName
	case htmlx.TextareaStartTagName:
		return TextareaStartTagName
	case htmlx.TitleStartTagName:
		return TitleStartTagName
	case htmlx.EndTagName:
		return EndTagName
	case htmlx.ErroneousEndTagName:
		return ErroneousEndTagName
	case htmlx.SelfClosingTagDelimiter:
		return SelfClosingTagDelimiter
	case htmlx.ImplicitEndTag:
		return ImplicitEndTag
	case htmlx.RawText:
		return RawText
	case htmlx.Comment:
		return Comment
	case htmlx.TagNamespace:
		return TagNamespace
	case htmlx.TagLocalName:
		return TagLocalName
	case htmlx.TSLangMarker:
		return TSLangMarker
	case htmlx.ExpressionJS:
		return ExpressionJS
	case htmlx.ExpressionTS:
		return ExpressionTS
	case htmlx.DirectiveMarker:
		return DirectiveMarker
	case htmlx.MemberTagObject:
		return MemberTagObject
	case htmlx.MemberTagProperty:
		return MemberTagProperty
	default:
		return Text
	}
}

// Scanner wraps an htmlx.Scanner, adding nothing to its persisted state:
// the block-expression tokens below are all zero-width-safe,
// re-entrant scans with no memory between calls.
type Scanner struct {
	inner *htmlx.Scanner
}

// New returns a Scanner with an empty stack and JS-mode expressions.
func New() *Scanner {
	return &Scanner{inner: htmlx.New()}
}

// Scan checks for this package's own block-expression tokens first —
// exactly one can be valid at a time in the generated grammar, since each
// belongs to a distinct block-header production — then falls through to
// the embedded htmlx.Scanner for everything else.
func (s *Scanner) Scan(lex lexer.Lexer, valid ValidSymbols) (Symbol, bool) {
	switch {
	case valid.IteratorExpression:
		if scanIterator(lex) {
			return IteratorExpression, true
		}
		return 0, false
	case valid.BindingPattern:
		if scanBinding(lex) {
			return BindingPattern, true
		}
		return 0, false
	case valid.KeyExpression:
		if scanKey(lex) {
			return KeyExpression, true
		}
		return 0, false
	case valid.TagExpression:
		if scanTagExpression(lex) {
			return TagExpression, true
		}
		return 0, false
	}

	sym, ok := s.inner.Scan(lex, valid.toHTMLX())
	if !ok {
		return 0, false
	}
	return fromHTMLX(sym), true
}

// Serialize delegates entirely to the embedded scanner; this layer has no
// state of its own to persist.
func (s *Scanner) Serialize(buf []byte) uint32 {
	return s.inner.Serialize(buf)
}

// Deserialize is the inverse of Serialize.
func (s *Scanner) Deserialize(buf []byte) {
	s.inner.Deserialize(buf)
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// scanBalanced consumes a balanced expression body, stopping at depth 0
// when it sees stopChar, an unmatched closing delimiter, or — when
// stopComma is set — a comma. It's the shared primitive behind binding
// patterns ("up to the first top-level ',' or '('") and key expressions
// ("up to the matching ')'").
func scanBalanced(lex lexer.Lexer, stopChar rune, stopComma bool) bool {
	depth := 0
	hasContent := false

	for !lex.EOF() {
		c := lex.Lookahead()

		if depth == 0 {
			if c == stopChar || c == '}' {
				break
			}
			if stopComma && c == ',' {
				break
			}
		}

		if htmlx.SkipString(lex) {
			hasContent = true
			continue
		}

		switch c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth < 0 {
				return hasContent
			}
		}

		lex.Advance(false)
		hasContent = true
	}

	return hasContent
}

// checkKeyword matches a literal keyword at the current position and
// requires it to be followed by whitespace or '{' — the boundary that
// distinguishes the "as"/"then"/"catch" iterator-expression terminators
// from an identifier that merely starts with the same letters (e.g. a
// variable named "asLabel").
func checkKeyword(lex lexer.Lexer, keyword string) bool {
	for _, want := range keyword {
		if lex.Lookahead() != want {
			return false
		}
		lex.Advance(false)
	}
	return isSpace(lex.Lookahead()) || lex.Lookahead() == '{'
}

// scanIterator consumes the iterable expression of an {#each} or {#await}
// block header, stopping (without consuming) at the "as", "then", or
// "catch" keyword that introduces the bound name — or at the closing '}'
// if none of those appear, for a bare {#each items}.
func scanIterator(lex lexer.Lexer) bool {
	depth := 0
	hasContent := false

	for isSpace(lex.Lookahead()) {
		lex.Advance(true)
	}

	for !lex.EOF() {
		c := lex.Lookahead()
		if depth == 0 && c == '}' {
			break
		}

		if depth == 0 && isSpace(c) {
			lex.MarkEnd()
			for isSpace(lex.Lookahead()) {
				lex.Advance(false)
			}
			switch lex.Lookahead() {
			case 'a':
				lex.Advance(false)
				if lex.Lookahead() == 's' && checkKeyword(lex, "s") {
					return hasContent
				}
			case 't':
				if checkKeyword(lex, "then") {
					return hasContent
				}
			case 'c':
				if checkKeyword(lex, "catch") {
					return hasContent
				}
			}
			hasContent = true
			continue
		}

		if htmlx.SkipString(lex) {
			hasContent = true
			continue
		}

		switch c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}
		lex.Advance(false)
		hasContent = true
	}

	if hasContent {
		lex.MarkEnd()
	}
	return hasContent
}

// scanBinding consumes the destructuring pattern that follows "as" in an
// {#each items as [first, ...rest]} block, stopping at the first
// top-level ',' (the start of an optional index binding) or '(' (the
// start of an optional keyed-each expression).
func scanBinding(lex lexer.Lexer) bool {
	for isSpace(lex.Lookahead()) {
		lex.Advance(false)
	}
	if !scanBalanced(lex, '(', true) {
		return false
	}
	lex.MarkEnd()
	return true
}

// scanKey consumes the key expression inside the parentheses of a keyed
// {#each items as item, i (item.id)} block.
func scanKey(lex lexer.Lexer) bool {
	for isSpace(lex.Lookahead()) {
		lex.Advance(false)
	}
	if !scanBalanced(lex, ')', false) {
		return false
	}
	lex.MarkEnd()
	return true
}

// scanTagExpression consumes the condition of a {#if}/{:else if} header or
// similar block-opener expression, requiring at least one space after the
// keyword that introduced it and at least one token of content.
func scanTagExpression(lex lexer.Lexer) bool {
	hasSpace := false
	for isSpace(lex.Lookahead()) {
		lex.Advance(true)
		hasSpace = true
	}
	if lex.Lookahead() == '}' {
		return false
	}
	if !hasSpace {
		return false
	}
	if !scanBalanced(lex, '}', false) {
		return false
	}
	lex.MarkEnd()
	return true
}
