package tagtable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyCatalogued(t *testing.T) {
	cases := []struct {
		name string
		tag  Name
		cat  Category
	}{
		{"IMG", Img, Void},
		{"BR", Br, Void},
		{"SCRIPT", Script, RawText},
		{"STYLE", Style, RawText},
		{"TEXTAREA", Textarea, EscapableRawText},
		{"TITLE", Title, EscapableRawText},
		{"DIV", Div, Normal},
		{"P", P, Normal},
		{"BLOCKQUOTE", Blockquote, Normal}, // exactly 10 bytes, still catalogued
	}
	for _, c := range cases {
		got := Classify([]byte(c.name))
		if got.Name != c.tag {
			t.Errorf("Classify(%q).Name = %v, want %v", c.name, got.Name, c.tag)
		}
		if got.Category() != c.cat {
			t.Errorf("Classify(%q).Category() = %v, want %v", c.name, got.Category(), c.cat)
		}
	}
}

func TestClassifyCustom(t *testing.T) {
	cases := []string{
		"MY-COMPONENT",  // hyphenated
		"ABCDEFGHIJK",   // 11 bytes, too long
		"1FOO",          // doesn't start with a letter
		"",              // empty
		"NOTATAGATALL1", // not in catalogue and too long
	}
	for _, name := range cases {
		got := Classify([]byte(name))
		if got.Name != CustomTag {
			t.Errorf("Classify(%q).Name = %v, want CustomTag", name, got.Name)
		}
		if got.Category() != Custom {
			t.Errorf("Classify(%q).Category() = %v, want Custom", name, got.Category())
		}
		if got.CustomName != name {
			t.Errorf("Classify(%q).CustomName = %q, want %q", name, got.CustomName, name)
		}
	}
}

func TestClassifyUnknownCatalogedLength(t *testing.T) {
	// Same first letter and length as a real entry, but not a match: must
	// still fall through to custom rather than mis-hit a neighbor bucket.
	got := Classify([]byte("DIVX"))
	if got.Name != CustomTag {
		t.Errorf("Classify(DIVX).Name = %v, want CustomTag", got.Name)
	}
}

func TestCanContainP(t *testing.T) {
	p := Tag{Name: P}
	if CanContain(p, Tag{Name: Div}) {
		t.Error("p should not contain div")
	}
	if !CanContain(p, Tag{Name: Span}) {
		t.Error("p should contain span")
	}
}

func TestCanContainListItems(t *testing.T) {
	li := Tag{Name: Li}
	if CanContain(li, Tag{Name: Li}) {
		t.Error("li should not contain another li")
	}
	if !CanContain(li, Tag{Name: Div}) {
		t.Error("li should contain div")
	}
}

func TestCanContainTableStructure(t *testing.T) {
	tr := Tag{Name: Tr}
	if CanContain(tr, Tag{Name: Tr}) {
		t.Error("tr should not contain another tr")
	}
	td := Tag{Name: Td}
	if CanContain(td, Tag{Name: Tr}) {
		t.Error("td should not contain a sibling tr")
	}
	if !CanContain(td, Tag{Name: Span}) {
		t.Error("td should contain span")
	}
}

func TestCanContainColgroup(t *testing.T) {
	cg := Tag{Name: Colgroup}
	if !CanContain(cg, Tag{Name: Col}) {
		t.Error("colgroup should contain col")
	}
	if CanContain(cg, Tag{Name: Div}) {
		t.Error("colgroup should not contain div")
	}
}

func TestCanContainDefault(t *testing.T) {
	if !CanContain(Tag{Name: Div}, Tag{Name: CustomTag, CustomName: "MY-WIDGET"}) {
		t.Error("div should contain an arbitrary custom element")
	}
}

func TestClassifyVoidElementsAreNeverCustom(t *testing.T) {
	for _, name := range []string{"AREA", "BASE", "BR", "COL", "EMBED", "HR",
		"IMG", "INPUT", "LINK", "META", "SOURCE", "TRACK", "WBR"} {
		tag := Classify([]byte(name))
		require.NotEqual(t, CustomTag, tag.Name, "%q classified as custom", name)
		require.Equal(t, Void, tag.Category())
	}
}
