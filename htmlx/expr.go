package htmlx

import "github.com/dpotapov/go-htmlx-scanner/lexer"

// SkipString consumes a quoted string starting at the current lookahead —
// '"', '\'', or a backtick template literal — if one is present, honoring
// backslash escapes. A backtick string additionally recurses into
// ${...} interpolations, which may themselves contain nested quoted
// strings or braces, e.g. `${a + {b:1}.b}`. It reports whether a string
// was found at all; a false result leaves the lexer untouched.
func SkipString(lex lexer.Lexer) bool {
	quote := lex.Lookahead()
	if quote != '"' && quote != '\'' && quote != '`' {
		return false
	}
	lex.Advance(false)

	for !lex.EOF() && lex.Lookahead() != quote {
		c := lex.Lookahead()
		switch {
		case c == '\\':
			lex.Advance(false)
			if !lex.EOF() {
				lex.Advance(false)
			}
		case quote == '`' && c == '$':
			lex.Advance(false)
			if lex.Lookahead() == '{' {
				lex.Advance(false)
				skipInterpolation(lex)
			}
		default:
			lex.Advance(false)
		}
	}
	if lex.Lookahead() == quote {
		lex.Advance(false)
	}
	return true
}

// skipInterpolation consumes the body of a `${...}` template interpolation
// after its opening brace has already been advanced past, tracking nested
// braces and recursing into any quoted strings it contains.
func skipInterpolation(lex lexer.Lexer) {
	depth := 1
	for !lex.EOF() && depth > 0 {
		c := lex.Lookahead()
		switch c {
		case '"', '\'', '`':
			SkipString(lex)
			continue
		case '{':
			depth++
		case '}':
			depth--
		}
		lex.Advance(false)
	}
}

// scanBalancedExpr consumes a brace-delimited expression body up to (but
// not including) the '}' that closes it at nesting depth 0, honoring
// strings via SkipString. Depth-0 whitespace that only precedes the closing
// '}' is excluded from the emitted span: MarkEnd is called just before each
// depth-0 whitespace run, and again when the loop ends only if content was
// consumed after the last such run, so whitespace between two pieces of
// content stays inside the span.
func scanBalancedExpr(lex lexer.Lexer) bool {
	depth := 0
	hasContent := false
	needsMark := false

loop:
	for !lex.EOF() {
		c := lex.Lookahead()
		switch {
		case depth == 0 && c == '}':
			break loop
		case SkipString(lex):
			hasContent = true
			needsMark = true
			continue
		case depth == 0 && isSpace(c):
			if needsMark {
				lex.MarkEnd()
				needsMark = false
			}
			for {
				lex.Advance(false)
				if !isSpace(lex.Lookahead()) {
					break
				}
			}
			continue
		}

		switch c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth < 0 {
				break loop
			}
		}
		lex.Advance(false)
		hasContent = true
		needsMark = true
	}

	if needsMark {
		lex.MarkEnd()
	}
	return hasContent
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '$'
}

func isIdentChar(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

// checkTSLangAttr performs a non-committing lookahead for `lang="ts"`,
// `lang='typescript'`, and the mixed-quote equivalents, starting right
// after the attribute name that introduced it would have been scanned by
// the grammar — in practice, it is probed at the point where a `lang`
// attribute might begin. Every byte examined is still advanced through
// (a scanner can't truly peek without consuming in this model), but since
// the caller never calls MarkEnd on failure, a failed probe leaves no
// trace in the emitted token stream: the next Scan call simply starts
// over from the same place.
func checkTSLangAttr(lex lexer.Lexer) bool {
	for isSpace(lex.Lookahead()) {
		lex.Advance(false)
	}
	for _, want := range "lang" {
		if asciiLower(lex.Lookahead()) != want {
			return false
		}
		lex.Advance(false)
	}
	for isSpace(lex.Lookahead()) {
		lex.Advance(false)
	}
	if lex.Lookahead() != '=' {
		return false
	}
	lex.Advance(false)
	for isSpace(lex.Lookahead()) {
		lex.Advance(false)
	}
	quote := lex.Lookahead()
	if quote != '"' && quote != '\'' {
		return false
	}
	lex.Advance(false)
	if asciiLower(lex.Lookahead()) != 't' {
		return false
	}
	lex.Advance(false)
	if asciiLower(lex.Lookahead()) == 's' {
		lex.Advance(false)
		return lex.Lookahead() == quote
	}
	for _, want := range "ypescript" {
		if asciiLower(lex.Lookahead()) != want {
			return false
		}
		lex.Advance(false)
	}
	return lex.Lookahead() == quote
}

func asciiLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 0x20
	}
	return r
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

// checkDirectiveMarker probes for a bare identifier immediately followed
// by ':', the Svelte directive syntax (on:click, bind:value, ...). It
// returns 1 when the identifier is followed by ':' (DIRECTIVE_MARKER
// matched), 0 when lookahead isn't even an identifier start, and -1 when
// an identifier was present but NOT followed by ':'. The -1 case is
// distinguished from 0 so the caller can refuse to fall through to other
// alternatives: having committed to reading an identifier, treating it as
// anything else (e.g. the start of a bare attribute name) would be wrong.
//
// The marker is zero-width: MarkEnd is called once, before the identifier
// is scanned, so the grammar consumes the identifier and colon itself via
// its own inline rules — this token exists only to disambiguate which
// grammar path to take.
func checkDirectiveMarker(lex lexer.Lexer) int {
	for isSpace(lex.Lookahead()) {
		lex.Advance(true)
	}
	lex.MarkEnd()
	if !isIdentStart(lex.Lookahead()) {
		return 0
	}
	for isIdentChar(lex.Lookahead()) {
		lex.Advance(false)
	}
	if lex.Lookahead() != ':' {
		return -1
	}
	return 1
}

// scanHtmlxText accumulates plain text content up to the next '<', '&', or
// '{'. It reports false without marking anything if no content was found
// at all, leaving the grammar to decide what a bare '{' or '<' means.
func scanHtmlxText(lex lexer.Lexer) bool {
	has := false
	for !lex.EOF() {
		c := lex.Lookahead()
		if c == '<' || c == '&' || c == '{' {
			break
		}
		lex.Advance(false)
		has = true
	}
	if has {
		lex.MarkEnd()
	}
	return has
}
