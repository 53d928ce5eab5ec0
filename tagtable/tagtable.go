// Package tagtable holds the static tag catalogue shared by every dialect
// scanner: the name-to-category lookup, and the content-model predicate
// that drives implicit end-tag insertion. The catalogue is read-only and
// safe for concurrent use by any number of scanners.
package tagtable

// Category partitions catalogued tags by how their content is scanned.
type Category int

const (
	// Void tags never have an end tag and never contain children.
	Void Category = iota
	// RawText tags (script, style) have content scanned verbatim up to
	// their literal closing tag, with no entity or tag recognition.
	RawText
	// EscapableRawText tags (textarea, title) scan verbatim content but
	// still recognize character references.
	EscapableRawText
	// Normal tags follow ordinary start/end tag nesting rules.
	Normal
	// Custom covers any name that fails the catalogue lookup: hyphenated
	// names, names longer than 10 ASCII characters, and anything that
	// doesn't match a known entry.
	Custom
)

func (c Category) String() string {
	switch c {
	case Void:
		return "void"
	case RawText:
		return "raw-text"
	case EscapableRawText:
		return "escapable-raw-text"
	case Normal:
		return "normal"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// Name identifies a specific catalogued tag. Its ordinal falls within one
// of four contiguous ranges, so Category is a range test rather than a
// stored field — exactly as in the C tag_type enum this catalogue is
// modeled on, where sentinel values mark the end of each partition.
type Name uint8

const (
	// Empty is the zero value, reserved for padding entries produced when
	// Scanner.Deserialize reconstructs a stack from a truncated buffer. It
	// is never returned by Classify.
	Empty Name = iota

	Area
	Base
	Br
	Col
	Embed
	Hr
	Img
	Input
	Link
	Meta
	Source
	Track
	Wbr
	endVoid

	Script
	Style
	endRawText

	Textarea
	Title
	endEscapableRawText

	A
	Abbr
	Address
	Article
	Aside
	Audio
	B
	Bdi
	Bdo
	Blockquote
	Body
	Button
	Canvas
	Caption
	Cite
	Code
	Colgroup
	Data
	Datalist
	Dd
	Del
	Details
	Dfn
	Dialog
	Div
	Dl
	Dt
	Em
	Fieldset
	Figcaption
	Figure
	Footer
	Form
	H1
	H2
	H3
	H4
	H5
	H6
	Head
	Header
	Hgroup
	Html
	I
	Iframe
	Ins
	Kbd
	Label
	Legend
	Li
	Main
	Map
	Mark
	Math
	Menu
	Meter
	Nav
	Noscript
	Object
	Ol
	Optgroup
	Option
	Output
	P
	Picture
	Pre
	Progress
	Q
	Rb
	Rp
	Rt
	Rtc
	Ruby
	S
	Samp
	Search
	Section
	Select
	Slot
	Small
	Span
	Strong
	Sub
	Summary
	Sup
	Svg
	Table
	Tbody
	Td
	Template
	Tfoot
	Th
	Thead
	Time
	Tr
	U
	Ul
	Var
	Video
	endNormal

	// CustomTag marks a Tag whose name didn't resolve to a catalogue entry.
	// Tag.CustomName holds the original (uppercased) spelling.
	CustomTag
)

// Category derives the coarse partition a Name belongs to via a range
// test against the sentinel values above.
func (n Name) Category() Category {
	switch {
	case n == Empty:
		return Custom
	case n < endVoid:
		return Void
	case n < endRawText:
		return RawText
	case n < endEscapableRawText:
		return EscapableRawText
	case n < endNormal:
		return Normal
	default:
		return Custom
	}
}

// Tag is an entry on the open-element stack: a catalogued identity, plus
// the original spelling when that identity is CustomTag.
type Tag struct {
	Name       Name
	CustomName string
}

// Category reports the content-scanning partition of t.
func (t Tag) Category() Category {
	return t.Name.Category()
}

const maxCatalogLen = 10

// Classify resolves an ASCII tag name (assumed already uppercased by the
// caller, as the scanners do while they read it byte-by-byte) to its
// catalogue entry. Names longer than 10 bytes, names containing a hyphen,
// and names whose first byte isn't a letter are CUSTOM without a catalogue
// probe — no real HTML5 tag name is hyphenated or exceeds 10 characters.
func Classify(name []byte) Tag {
	if len(name) == 0 || len(name) > maxCatalogLen {
		return Tag{Name: CustomTag, CustomName: string(name)}
	}
	first := name[0]
	if first < 'A' || first > 'Z' {
		return Tag{Name: CustomTag, CustomName: string(name)}
	}
	for _, b := range name {
		if b == '-' {
			return Tag{Name: CustomTag, CustomName: string(name)}
		}
	}
	b := buckets[first-'A']
	for _, e := range catalog[b.start:b.end] {
		if len(e.name) == len(name) && e.name == string(name) {
			return Tag{Name: e.tag}
		}
	}
	return Tag{Name: CustomTag, CustomName: string(name)}
}

type entry struct {
	name string
	tag  Name
}

// catalog is bucketed by first letter: entries sharing a first byte are
// contiguous, which lets buckets narrow a lookup to one [start,end) slice
// before the length-prefiltered linear scan in Classify.
var catalog = []entry{
	{"A", A}, {"ABBR", Abbr}, {"ADDRESS", Address}, {"AREA", Area},
	{"ARTICLE", Article}, {"ASIDE", Aside}, {"AUDIO", Audio},

	{"B", B}, {"BASE", Base}, {"BDI", Bdi}, {"BDO", Bdo},
	{"BLOCKQUOTE", Blockquote}, {"BODY", Body}, {"BR", Br}, {"BUTTON", Button},

	{"CANVAS", Canvas}, {"CAPTION", Caption}, {"CITE", Cite}, {"CODE", Code},
	{"COL", Col}, {"COLGROUP", Colgroup},

	{"DATA", Data}, {"DATALIST", Datalist}, {"DD", Dd}, {"DEL", Del},
	{"DETAILS", Details}, {"DFN", Dfn}, {"DIALOG", Dialog}, {"DIV", Div},
	{"DL", Dl}, {"DT", Dt},

	{"EM", Em}, {"EMBED", Embed},

	{"FIELDSET", Fieldset}, {"FIGCAPTION", Figcaption}, {"FIGURE", Figure},
	{"FOOTER", Footer}, {"FORM", Form},

	{"H1", H1}, {"H2", H2}, {"H3", H3}, {"H4", H4}, {"H5", H5}, {"H6", H6},
	{"HEAD", Head}, {"HEADER", Header}, {"HGROUP", Hgroup}, {"HR", Hr},
	{"HTML", Html},

	{"I", I}, {"IFRAME", Iframe}, {"IMG", Img}, {"INPUT", Input},
	{"INS", Ins},

	{"KBD", Kbd},

	{"LABEL", Label}, {"LEGEND", Legend}, {"LI", Li}, {"LINK", Link},

	{"MAIN", Main}, {"MAP", Map}, {"MARK", Mark}, {"MATH", Math},
	{"MENU", Menu}, {"META", Meta}, {"METER", Meter},

	{"NAV", Nav}, {"NOSCRIPT", Noscript},

	{"OBJECT", Object}, {"OL", Ol}, {"OPTGROUP", Optgroup},
	{"OPTION", Option}, {"OUTPUT", Output},

	{"P", P}, {"PICTURE", Picture}, {"PRE", Pre}, {"PROGRESS", Progress},

	{"Q", Q},

	{"RB", Rb}, {"RP", Rp}, {"RT", Rt}, {"RTC", Rtc}, {"RUBY", Ruby},

	{"S", S}, {"SAMP", Samp}, {"SCRIPT", Script}, {"SEARCH", Search},
	{"SECTION", Section}, {"SELECT", Select}, {"SLOT", Slot},
	{"SMALL", Small}, {"SOURCE", Source}, {"SPAN", Span}, {"STRONG", Strong},
	{"STYLE", Style}, {"SUB", Sub}, {"SUMMARY", Summary}, {"SUP", Sup},
	{"SVG", Svg},

	{"TABLE", Table}, {"TBODY", Tbody}, {"TD", Td}, {"TEMPLATE", Template},
	{"TEXTAREA", Textarea}, {"TFOOT", Tfoot}, {"TH", Th}, {"THEAD", Thead},
	{"TIME", Time}, {"TITLE", Title}, {"TR", Tr}, {"TRACK", Track},

	{"U", U}, {"UL", Ul},

	{"VAR", Var}, {"VIDEO", Video},

	{"WBR", Wbr},
}

type bucket struct{ start, end int }

var buckets [26]bucket

func init() {
	i := 0
	for letter := byte('A'); letter <= 'Z'; letter++ {
		start := i
		for i < len(catalog) && catalog[i].name[0] == letter {
			i++
		}
		buckets[letter-'A'] = bucket{start: start, end: i}
	}
}

// pClosing lists the elements whose start tag implicitly closes an open P
// element, per the WHATWG "act as described in the 'generate implied end
// tags' entry" construction for <p>.
var pClosing = map[Name]bool{
	Address: true, Article: true, Aside: true, Blockquote: true,
	Details: true, Div: true, Dl: true, Fieldset: true, Figcaption: true,
	Figure: true, Footer: true, Form: true, H1: true, H2: true, H3: true,
	H4: true, H5: true, H6: true, Header: true, Hgroup: true, Hr: true,
	Main: true, Menu: true, Nav: true, Ol: true, P: true, Pre: true,
	Section: true, Table: true, Ul: true,
}

var rubyNames = map[Name]bool{Rb: true, Rp: true, Rt: true, Rtc: true}

// CanContain reports whether parent may remain open when child is about to
// be opened inside it. A false result means the implicit end-tag procedure
// should close parent first. It implements the small, fixed set of
// content-model exceptions the HTML living standard carves out for P, list
// items, definition lists, table sections/cells, caption, ruby, option
// groups, column groups, and head; every other combination is permitted.
func CanContain(parent, child Tag) bool {
	switch parent.Name {
	case P:
		return !pClosing[child.Name]
	case Li:
		return child.Name != Li
	case Dt, Dd:
		return child.Name != Dt && child.Name != Dd
	case Tr:
		return child.Name != Tr
	case Td, Th:
		return child.Name != Td && child.Name != Th && child.Name != Tr
	case Thead, Tbody, Tfoot:
		return child.Name != Thead && child.Name != Tbody && child.Name != Tfoot
	case Caption:
		switch child.Name {
		case Thead, Tbody, Tfoot, Tr, Td, Th, Colgroup:
			return false
		}
		return true
	case Rb, Rp, Rt, Rtc:
		return !rubyNames[child.Name]
	case Optgroup:
		return child.Name != Optgroup
	case Option:
		return child.Name != Option && child.Name != Optgroup
	case Colgroup:
		return child.Name == Col || child.Name == Template
	case Head:
		return child.Name != Body
	default:
		return true
	}
}
