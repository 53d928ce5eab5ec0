package svelte

import (
	"testing"

	"github.com/dpotapov/go-htmlx-scanner/internal/testlexer"
)

func TestScanIteratorStopsAtAsKeyword(t *testing.T) {
	l := testlexer.New("items as item}")
	valid := ValidSymbols{IteratorExpression: true}
	s := New()
	sym, ok := s.Scan(l, valid)
	if !ok || sym != IteratorExpression {
		t.Fatalf("Scan(iterator) = (%v, %v), want (IteratorExpression, true)", sym, ok)
	}
	if l.Consumed() != "items" {
		t.Errorf("Consumed() = %q, want %q", l.Consumed(), "items")
	}
	if l.Rest() != " as item}" {
		t.Errorf("Rest() = %q, want %q", l.Rest(), " as item}")
	}
}

func TestScanIteratorStopsAtThenKeyword(t *testing.T) {
	l := testlexer.New("fetchData() then result}")
	valid := ValidSymbols{IteratorExpression: true}
	s := New()
	sym, ok := s.Scan(l, valid)
	if !ok || sym != IteratorExpression {
		t.Fatalf("Scan(iterator) = (%v, %v), want (IteratorExpression, true)", sym, ok)
	}
	if l.Consumed() != "fetchData()" {
		t.Errorf("Consumed() = %q, want %q", l.Consumed(), "fetchData()")
	}
}

func TestScanIteratorDoesNotStopOnIdentifierPrefix(t *testing.T) {
	// "asLabel" merely starts with "as" but isn't the keyword: the iterator
	// expression should swallow it as ordinary content.
	l := testlexer.New("asLabel}")
	valid := ValidSymbols{IteratorExpression: true}
	s := New()
	sym, ok := s.Scan(l, valid)
	if !ok || sym != IteratorExpression {
		t.Fatalf("Scan(iterator) = (%v, %v), want (IteratorExpression, true)", sym, ok)
	}
	if l.Consumed() != "asLabel" {
		t.Errorf("Consumed() = %q, want %q", l.Consumed(), "asLabel")
	}
}

func TestScanIteratorBareEachHasNoAs(t *testing.T) {
	l := testlexer.New("items}")
	valid := ValidSymbols{IteratorExpression: true}
	s := New()
	sym, ok := s.Scan(l, valid)
	if !ok || sym != IteratorExpression {
		t.Fatalf("Scan(iterator) = (%v, %v), want (IteratorExpression, true)", sym, ok)
	}
	if l.Consumed() != "items" {
		t.Errorf("Consumed() = %q, want %q", l.Consumed(), "items")
	}
}

func TestScanBindingStopsAtParen(t *testing.T) {
	l := testlexer.New("item (item.id)}")
	valid := ValidSymbols{BindingPattern: true}
	s := New()
	sym, ok := s.Scan(l, valid)
	if !ok || sym != BindingPattern {
		t.Fatalf("Scan(binding) = (%v, %v), want (BindingPattern, true)", sym, ok)
	}
	if l.Consumed() != "item " {
		t.Errorf("Consumed() = %q, want %q", l.Consumed(), "item ")
	}
}

func TestScanBindingStopsAtComma(t *testing.T) {
	l := testlexer.New("item, i}")
	valid := ValidSymbols{BindingPattern: true}
	s := New()
	sym, ok := s.Scan(l, valid)
	if !ok || sym != BindingPattern {
		t.Fatalf("Scan(binding) = (%v, %v), want (BindingPattern, true)", sym, ok)
	}
	if l.Consumed() != "item" {
		t.Errorf("Consumed() = %q, want %q", l.Consumed(), "item")
	}
}

func TestScanKeyConsumesUpToParen(t *testing.T) {
	l := testlexer.New("item.id)}")
	valid := ValidSymbols{KeyExpression: true}
	s := New()
	sym, ok := s.Scan(l, valid)
	if !ok || sym != KeyExpression {
		t.Fatalf("Scan(key) = (%v, %v), want (KeyExpression, true)", sym, ok)
	}
	if l.Consumed() != "item.id" {
		t.Errorf("Consumed() = %q, want %q", l.Consumed(), "item.id")
	}
}

func TestScanTagExpressionRequiresLeadingSpace(t *testing.T) {
	l := testlexer.New("condition}")
	valid := ValidSymbols{TagExpression: true}
	s := New()
	_, ok := s.Scan(l, valid)
	if ok {
		t.Fatal("a tag expression with no leading space after the keyword must not match")
	}
}

func TestScanTagExpressionConsumesCondition(t *testing.T) {
	l := testlexer.New(" count > 0}")
	valid := ValidSymbols{TagExpression: true}
	s := New()
	sym, ok := s.Scan(l, valid)
	if !ok || sym != TagExpression {
		t.Fatalf("Scan(tag expr) = (%v, %v), want (TagExpression, true)", sym, ok)
	}
	if l.Consumed() != " count > 0" {
		t.Errorf("Consumed() = %q, want %q", l.Consumed(), " count > 0")
	}
}

func TestScanTagExpressionEmptyFails(t *testing.T) {
	l := testlexer.New(" }")
	valid := ValidSymbols{TagExpression: true}
	s := New()
	_, ok := s.Scan(l, valid)
	if ok {
		t.Fatal("an empty tag expression body must not match")
	}
}

func TestScanFallsThroughToEmbeddedHtmlx(t *testing.T) {
	l := testlexer.New("div")
	valid := ValidSymbols{StartTagName: true}
	s := New()
	sym, ok := s.Scan(l, valid)
	if !ok || sym != StartTagName {
		t.Fatalf("Scan(div) = (%v, %v), want (StartTagName, true)", sym, ok)
	}
}
