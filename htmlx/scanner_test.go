package htmlx

import (
	"testing"

	"github.com/dpotapov/go-htmlx-scanner/internal/testlexer"
	"github.com/dpotapov/go-htmlx-scanner/tagtable"
)

var startTagValid = ValidSymbols{
	StartTagName: true, ScriptStartTagName: true, StyleStartTagName: true,
	TextareaStartTagName: true, TitleStartTagName: true,
	TagNamespace: true, MemberTagObject: true,
}

func TestScanPlainStartTag(t *testing.T) {
	s := New()
	l := testlexer.New("div")
	sym, ok := s.Scan(l, startTagValid)
	if !ok || sym != StartTagName {
		t.Fatalf("Scan(div) = (%v, %v), want (StartTagName, true)", sym, ok)
	}
	if top, ok := s.Inner().Top(); !ok || top.Name != tagtable.Div {
		t.Errorf("top = %+v, want DIV pushed", top)
	}
}

func TestScanNamespacedTag(t *testing.T) {
	s := New()
	l := testlexer.New("svelte:component")
	sym, ok := s.Scan(l, startTagValid)
	if !ok || sym != TagNamespace {
		t.Fatalf("Scan(namespace) = (%v, %v), want (TagNamespace, true)", sym, ok)
	}
	if l.Consumed() != "svelte" {
		t.Errorf("Consumed() = %q, want svelte", l.Consumed())
	}
	if !s.awaitingLocalName {
		t.Fatal("expected awaitingLocalName to be set after namespace")
	}

	l.Reset()
	l.Advance(false) // grammar consumes the ':' terminal itself
	localValid := ValidSymbols{TagLocalName: true}
	sym, ok = s.Scan(l, localValid)
	if !ok || sym != TagLocalName {
		t.Fatalf("Scan(local name) = (%v, %v), want (TagLocalName, true)", sym, ok)
	}
	if s.awaitingLocalName {
		t.Error("awaitingLocalName should clear after local name scanned")
	}
}

func TestScanMemberTagObjectAndProperty(t *testing.T) {
	s := New()
	l := testlexer.New("this.Foo")
	sym, ok := s.Scan(l, startTagValid)
	if !ok || sym != MemberTagObject {
		t.Fatalf("Scan(object) = (%v, %v), want (MemberTagObject, true)", sym, ok)
	}
	if l.Consumed() != "this" {
		t.Errorf("Consumed() = %q, want this", l.Consumed())
	}

	l.Reset()
	l.Advance(false) // grammar consumes the '.' terminal itself
	propValid := ValidSymbols{MemberTagProperty: true}
	sym, ok = s.Scan(l, propValid)
	if !ok || sym != MemberTagProperty {
		t.Fatalf("Scan(property) = (%v, %v), want (MemberTagProperty, true)", sym, ok)
	}
	if l.Rest() != "" {
		t.Errorf("Rest() = %q, want fully consumed", l.Rest())
	}
}

func TestScanExpressionJS(t *testing.T) {
	s := New()
	l := testlexer.New("count + 1} rest")
	valid := ValidSymbols{ExpressionJS: true}
	sym, ok := s.Scan(l, valid)
	if !ok || sym != ExpressionJS {
		t.Fatalf("Scan(expr) = (%v, %v), want (ExpressionJS, true)", sym, ok)
	}
	if l.Consumed() != "count + 1" {
		t.Errorf("Consumed() = %q, want %q", l.Consumed(), "count + 1")
	}
}

func TestScanExpressionBecomesTSAfterLangMarker(t *testing.T) {
	s := New()
	s.isTypescript = true
	l := testlexer.New("x as Foo}")
	valid := ValidSymbols{ExpressionTS: true}
	sym, ok := s.Scan(l, valid)
	if !ok || sym != ExpressionTS {
		t.Fatalf("Scan(expr) = (%v, %v), want (ExpressionTS, true)", sym, ok)
	}
}

func TestScanTSLangMarker(t *testing.T) {
	s := New()
	l := testlexer.New(`lang="ts"`)
	valid := ValidSymbols{TSLangMarker: true}
	sym, ok := s.Scan(l, valid)
	if !ok || sym != TSLangMarker {
		t.Fatalf("Scan(lang marker) = (%v, %v), want (TSLangMarker, true)", sym, ok)
	}
	if !s.isTypescript {
		t.Error("expected isTypescript to become sticky")
	}
}

func TestScanDirectiveMarker(t *testing.T) {
	s := New()
	l := testlexer.New("on:click")
	valid := ValidSymbols{DirectiveMarker: true}
	sym, ok := s.Scan(l, valid)
	if !ok || sym != DirectiveMarker {
		t.Fatalf("Scan(directive) = (%v, %v), want (DirectiveMarker, true)", sym, ok)
	}
	if l.Consumed() != "" {
		t.Errorf("directive marker must be zero-width, got %q", l.Consumed())
	}
}

func TestScanDirectiveMarkerRefusesFallthroughOnBareIdent(t *testing.T) {
	s := New()
	l := testlexer.New("disabled")
	valid := ValidSymbols{DirectiveMarker: true, StartTagName: true}
	_, ok := s.Scan(l, valid)
	if ok {
		t.Error("a bare identifier with no colon must not match any symbol here")
	}
}

func TestScanTextStopsAtBrace(t *testing.T) {
	s := New()
	l := testlexer.New("hello {name}")
	valid := ValidSymbols{Text: true}
	sym, ok := s.Scan(l, valid)
	if !ok || sym != Text {
		t.Fatalf("Scan(text) = (%v, %v), want (Text, true)", sym, ok)
	}
	if l.Consumed() != "hello " {
		t.Errorf("Consumed() = %q, want %q", l.Consumed(), "hello ")
	}
}

func TestScanFallsThroughToInnerRawText(t *testing.T) {
	s := New()
	s.inner.Push(tagtable.Tag{Name: tagtable.Script})
	l := testlexer.New("var x = 1;</script>")
	valid := ValidSymbols{RawText: true}
	sym, ok := s.Scan(l, valid)
	if !ok || sym != RawText {
		t.Fatalf("Scan(raw text) = (%v, %v), want (RawText, true)", sym, ok)
	}
	if l.Consumed() != "var x = 1;" {
		t.Errorf("Consumed() = %q, want %q", l.Consumed(), "var x = 1;")
	}
}

func TestSerializeDeserializeRoundTripsFlags(t *testing.T) {
	s := New()
	s.isTypescript = true
	s.awaitingLocalName = true
	s.inner.Push(tagtable.Tag{Name: tagtable.Div})

	buf := make([]byte, 64)
	n := s.Serialize(buf)

	restored := New()
	restored.Deserialize(buf[:n])
	if restored.isTypescript != true || restored.awaitingLocalName != true {
		t.Errorf("flags not restored: typescript=%v awaitingLocalName=%v",
			restored.isTypescript, restored.awaitingLocalName)
	}
	if restored.inner.Len() != 1 {
		t.Errorf("inner stack not restored, len = %d", restored.inner.Len())
	}
}
