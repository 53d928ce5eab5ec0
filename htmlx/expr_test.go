package htmlx

import (
	"testing"

	"github.com/dpotapov/go-htmlx-scanner/internal/testlexer"
)

func TestSkipStringHandlesEscapes(t *testing.T) {
	l := testlexer.New(`"a\"b"rest`)
	if !SkipString(l) {
		t.Fatal("expected a string to be recognized")
	}
	if l.Pos() != len(`"a\"b"`) {
		t.Errorf("Pos() = %d, want %d (just past the closing quote)", l.Pos(), len(`"a\"b"`))
	}
	if l.Remaining() != "rest" {
		t.Errorf("Remaining() = %q, want rest", l.Remaining())
	}
}

func TestSkipStringNotAString(t *testing.T) {
	l := testlexer.New("nope")
	if SkipString(l) {
		t.Fatal("expected no string to be recognized")
	}
}

func TestSkipStringTemplateInterpolation(t *testing.T) {
	l := testlexer.New("`a${ {b:1}.b + `${1}` }c`rest")
	if !SkipString(l) {
		t.Fatal("expected a template string to be recognized")
	}
	if l.Remaining() != "rest" {
		t.Errorf("Remaining() = %q, want rest", l.Remaining())
	}
}

func TestScanBalancedExprStopsAtDepthZeroBrace(t *testing.T) {
	l := testlexer.New("a + fn(1, [2, 3]) }tail")
	if !scanBalancedExpr(l) {
		t.Fatal("expected expression content")
	}
	if l.Consumed() != "a + fn(1, [2, 3])" {
		t.Errorf("Consumed() = %q, want %q", l.Consumed(), "a + fn(1, [2, 3])")
	}
	if l.Rest() != " }tail" {
		t.Errorf("Rest() = %q, want %q", l.Rest(), " }tail")
	}
}

func TestScanBalancedExprExcludesTrailingWhitespace(t *testing.T) {
	l := testlexer.New("a + b   }")
	if !scanBalancedExpr(l) {
		t.Fatal("expected expression content")
	}
	if l.Consumed() != "a + b" {
		t.Errorf("Consumed() = %q, want %q (trailing space excluded)", l.Consumed(), "a + b")
	}
}

func TestScanBalancedExprHonorsStringContents(t *testing.T) {
	l := testlexer.New(`"}" + 1}`)
	if !scanBalancedExpr(l) {
		t.Fatal("expected expression content")
	}
	if l.Consumed() != `"}" + 1` {
		t.Errorf("Consumed() = %q, want %q", l.Consumed(), `"}" + 1`)
	}
}

func TestScanBalancedExprEmptyIsNoMatch(t *testing.T) {
	l := testlexer.New("}")
	if scanBalancedExpr(l) {
		t.Fatal("an empty expression body should not match")
	}
}

func TestCheckTSLangAttrDoubleQuoted(t *testing.T) {
	l := testlexer.New(`lang="ts"`)
	if !checkTSLangAttr(l) {
		t.Fatal("expected lang=\"ts\" to match")
	}
}

func TestCheckTSLangAttrLongForm(t *testing.T) {
	l := testlexer.New(`lang='typescript'`)
	if !checkTSLangAttr(l) {
		t.Fatal("expected lang='typescript' to match")
	}
}

func TestCheckTSLangAttrRejectsOtherLang(t *testing.T) {
	l := testlexer.New(`lang="en"`)
	if checkTSLangAttr(l) {
		t.Fatal("lang=\"en\" must not match the TS marker")
	}
}

func TestCheckDirectiveMarkerStates(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"on:click", 1},
		{"disabled", -1},
		{"123", 0},
		{"", 0},
	}
	for _, tc := range tests {
		l := testlexer.New(tc.in)
		if got := checkDirectiveMarker(l); got != tc.want {
			t.Errorf("checkDirectiveMarker(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestScanHtmlxTextStopsAtAmpersand(t *testing.T) {
	l := testlexer.New("a &amp; b")
	if !scanHtmlxText(l) {
		t.Fatal("expected text content")
	}
	if l.Consumed() != "a " {
		t.Errorf("Consumed() = %q, want %q", l.Consumed(), "a ")
	}
}

func TestScanHtmlxTextEmptyAtDelimiter(t *testing.T) {
	l := testlexer.New("<div>")
	if scanHtmlxText(l) {
		t.Fatal("text scan at an immediate '<' should report no content")
	}
}
