// Command htmlxscan drives the html, htmlx, and svelte scanners over a
// file and logs the token stream they produce. It is not a parser: a
// real grammar decides, at every position, exactly which symbols are
// valid and reconciles the scanner's token against its own inline rules.
// This driver instead makes a simple, fixed choice of valid symbols at
// each position, good enough to exercise every scanner code path and
// produce a readable trace for development and bug reports.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/expr-lang/expr/parser"
	"golang.org/x/net/html/atom"

	"github.com/dpotapov/go-htmlx-scanner/html"
	"github.com/dpotapov/go-htmlx-scanner/htmlx"
	"github.com/dpotapov/go-htmlx-scanner/internal/diag"
	"github.com/dpotapov/go-htmlx-scanner/internal/driver"
	"github.com/dpotapov/go-htmlx-scanner/svelte"
	"github.com/dpotapov/go-htmlx-scanner/tagtable"
)

func main() {
	dialect := flag.String("dialect", "htmlx", "scanner dialect: html, htmlx, or svelte")
	verbose := flag.Bool("v", false, "log at debug level")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: htmlxscan [-dialect html|htmlx|svelte] [-v] <file>")
		os.Exit(2)
	}

	src, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		logger.Error("read source file", "error", err)
		os.Exit(1)
	}

	var count int
	switch *dialect {
	case "html":
		count = driveHTML(logger, flag.Arg(0), src)
	case "htmlx":
		count = driveHTMLX(logger, flag.Arg(0), src)
	case "svelte":
		count = driveSvelte(logger, flag.Arg(0), src)
	default:
		logger.Error("unknown dialect", "dialect", *dialect)
		os.Exit(2)
	}

	logger.Info("scan complete", "file", flag.Arg(0), "dialect", *dialect, "tokens", count)
}

// logToken emits one structured line per token: its kind, its source
// span, and the literal text it covers.
func logToken(logger *slog.Logger, file string, kind string, span diag.Span, text string) {
	logger.Debug("token",
		"kind", kind,
		"file", file,
		"line", span.Line,
		"col", span.Column,
		"len", span.Length,
		"text", text,
	)
}

// checkTagAgainstAtom cross-references our tag catalogue against
// golang.org/x/net/html/atom's: a tag we classified as CustomTag that
// atom still recognizes as a standard element name is worth a warning —
// it likely means our own catalogue is missing an entry, not that the
// document used a genuine custom element.
func checkTagAgainstAtom(logger *slog.Logger, name string) {
	tag := tagtable.Classify([]byte(strings.ToUpper(name)))
	if tag.Category() != tagtable.Custom {
		return
	}
	if a := atom.Lookup([]byte(strings.ToLower(name))); a != 0 {
		logger.Warn("tag classified as custom but recognized by golang.org/x/net/html/atom",
			"tag", name, "atom", a.String())
	}
}

// checkExpression parses an HTMLX/Svelte expression token with
// expr-lang/expr as a heuristic syntax check. expr's grammar isn't
// identical to JS/TS, so a failure here is a hint worth logging, not
// proof the expression is actually invalid.
func checkExpression(logger *slog.Logger, file, text string, span diag.Span) {
	if _, err := parser.Parse(text); err != nil {
		logger.Debug("expression did not parse as an expr-lang expression (informational only)",
			"file", file, "line", span.Line, "col", span.Column, "text", text, "error", err)
	}
}

func driveHTML(logger *slog.Logger, file string, src []byte) int {
	s := html.New()
	lex := driver.New(src)
	count := 0

	for !lex.EOF() {
		start := lex.Pos()
		valid := html.ValidSymbols{
			StartTagName: true, ScriptStartTagName: true, StyleStartTagName: true,
			TextareaStartTagName: true, TitleStartTagName: true,
			EndTagName: true, ErroneousEndTagName: true,
			SelfClosing: true, ImplicitEndTag: true, Comment: true,
		}
		if top, ok := s.Top(); ok {
			if _, raw := rawTextDelimiter(top.Name); raw {
				valid = html.ValidSymbols{RawText: true}
			}
		}

		sym, ok := s.Scan(lex, valid)
		if !ok {
			if lex.EOF() {
				break
			}
			lex.Advance(false) // plain text content the grammar would consume inline
			continue
		}
		count++
		span := lex.Token(start)
		text := lex.Text(start, start+span.Length)
		logToken(logger, file, symbolName(sym), span, text)
		if sym == html.StartTagName || sym == html.ScriptStartTagName ||
			sym == html.StyleStartTagName || sym == html.TextareaStartTagName ||
			sym == html.TitleStartTagName {
			checkTagAgainstAtom(logger, text)
		}
	}
	return count
}

func driveHTMLX(logger *slog.Logger, file string, src []byte) int {
	s := htmlx.New()
	lex := driver.New(src)
	count := 0

	for !lex.EOF() {
		start := lex.Pos()
		valid := htmlx.ValidSymbols{
			StartTagName: true, ScriptStartTagName: true, StyleStartTagName: true,
			TextareaStartTagName: true, TitleStartTagName: true,
			EndTagName: true, ErroneousEndTagName: true,
			SelfClosing: true, ImplicitEndTag: true, Comment: true,
			TagNamespace: true, TagLocalName: true, MemberTagObject: true, MemberTagProperty: true,
			TSLangMarker: true, DirectiveMarker: true, Text: true,
			ExpressionJS: true,
		}
		if top, ok := s.Inner().Top(); ok {
			if _, raw := rawTextDelimiter(top.Name); raw {
				valid = htmlx.ValidSymbols{RawText: true}
			}
		}

		sym, ok := s.Scan(lex, valid)
		if !ok {
			if lex.EOF() {
				break
			}
			lex.Advance(false)
			continue
		}
		count++
		span := lex.Token(start)
		text := lex.Text(start, start+span.Length)
		logToken(logger, file, htmlxSymbolName(sym), span, text)

		switch sym {
		case htmlx.StartTagName:
			checkTagAgainstAtom(logger, text)
		case htmlx.ExpressionJS, htmlx.ExpressionTS:
			checkExpression(logger, file, text, span)
		}
	}
	return count
}

func driveSvelte(logger *slog.Logger, file string, src []byte) int {
	s := svelte.New()
	lex := driver.New(src)
	count := 0

	for !lex.EOF() {
		start := lex.Pos()
		valid := svelte.ValidSymbols{
			StartTagName: true, ScriptStartTagName: true, StyleStartTagName: true,
			TextareaStartTagName: true, TitleStartTagName: true,
			EndTagName: true, ErroneousEndTagName: true,
			SelfClosing: true, ImplicitEndTag: true, Comment: true,
			TagNamespace: true, TagLocalName: true, MemberTagObject: true, MemberTagProperty: true,
			TSLangMarker: true, DirectiveMarker: true, Text: true,
			ExpressionJS: true,
		}

		sym, ok := s.Scan(lex, valid)
		if !ok {
			if lex.EOF() {
				break
			}
			lex.Advance(false)
			continue
		}
		count++
		span := lex.Token(start)
		text := lex.Text(start, start+span.Length)
		logToken(logger, file, svelteSymbolName(sym), span, text)

		switch sym {
		case svelte.StartTagName:
			checkTagAgainstAtom(logger, text)
		case svelte.ExpressionJS, svelte.ExpressionTS, svelte.IteratorExpression,
			svelte.BindingPattern, svelte.KeyExpression, svelte.TagExpression:
			checkExpression(logger, file, text, span)
		}
	}
	return count
}

func rawTextDelimiter(name tagtable.Name) (string, bool) {
	switch name {
	case tagtable.Script, tagtable.Style, tagtable.Textarea, tagtable.Title:
		return "raw", true
	default:
		return "", false
	}
}

func symbolName(sym html.Symbol) string {
	names := []string{
		"StartTagName", "ScriptStartTagName", "StyleStartTagName", "TextareaStartTagName",
		"TitleStartTagName", "EndTagName", "ErroneousEndTagName", "SelfClosingTagDelimiter",
		"ImplicitEndTag", "RawText", "Comment",
	}
	if int(sym) < len(names) {
		return names[sym]
	}
	return "Unknown"
}

func htmlxSymbolName(sym htmlx.Symbol) string {
	names := []string{
		"StartTagName", "ScriptStartTagName", "StyleStartTagName", "TextareaStartTagName",
		"TitleStartTagName", "EndTagName", "ErroneousEndTagName", "SelfClosingTagDelimiter",
		"ImplicitEndTag", "RawText", "Comment", "TagNamespace", "TagLocalName", "TSLangMarker",
		"ExpressionJS", "ExpressionTS", "DirectiveMarker", "MemberTagObject", "MemberTagProperty",
		"Text",
	}
	if int(sym) < len(names) {
		return names[sym]
	}
	return "Unknown"
}

func svelteSymbolName(sym svelte.Symbol) string {
	names := []string{
		"StartTagName", "ScriptStartTagName", "StyleStartTagName", "TextareaStartTagName",
		"TitleStartTagName", "EndTagName", "ErroneousEndTagName", "SelfClosingTagDelimiter",
		"ImplicitEndTag", "RawText", "Comment", "TagNamespace", "TagLocalName", "TSLangMarker",
		"ExpressionJS", "ExpressionTS", "DirectiveMarker", "MemberTagObject", "MemberTagProperty",
		"Text", "IteratorExpression", "BindingPattern", "KeyExpression", "TagExpression",
	}
	if int(sym) < len(names) {
		return names[sym]
	}
	return "Unknown"
}
