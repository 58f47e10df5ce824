package highlight

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/dpinela/cshl/internal/color"
)

type styledDoc []StyledRegion

func (st styledDoc) String() string {
	sb := strings.Builder{}
	for _, piece := range st {
		fmt.Fprintf(&sb, "style=%+v text=(%d)[%d:%d]\n", *piece.Style, piece.Line, piece.Start, piece.End)
	}
	return sb.String()
}

type testSource []string

func (ts testSource) SliceLines(i, j int) []string { return ts[i:min(j, len(ts))] }

var csCode = testSource{
	"class Greeter {\n",
	"    string s = \"\"\"hello\n",
	"world\"\"\";\n",
	"}",
}

var testPalette = DefaultPalette.Copy()

func init() {
	testPalette[Comment].Foreground = &color.Color{R: 0, G: 200, B: 0}
}

func TestDocumentRegions(t *testing.T) {
	p := testPalette
	want := []StyledRegion{
		{Line: 0, Start: 0, End: 5, Style: p.Style(Keyword)},
		{Line: 0, Start: 6, End: 13, Style: p.Style(DefClass)},
		{Line: 0, Start: 14, End: 15, Style: p.Style(Brace)},
		{Line: 1, Start: 4, End: 10, Style: p.Style(Keyword)},
		{Line: 1, Start: 13, End: 14, Style: p.Style(Operator)},
		{Line: 1, Start: 15, End: 23, Style: p.Style(String2)},
		{Line: 2, Start: 0, End: 8, Style: p.Style(String2)},
		{Line: 3, Start: 0, End: 1, Style: p.Style(Brace)},
	}
	doc := NewDocument(csCode, CSharp, p)
	if got := doc.Regions(0, len(csCode)); !reflect.DeepEqual(got, want) {
		t.Errorf("got:\n%v\nwant:\n%v", styledDoc(got), styledDoc(want))
	}
	if got := doc.Regions(2, len(csCode)); !reflect.DeepEqual(got, want[6:]) {
		t.Errorf("from line 2, got:\n%v\nwant:\n%v", styledDoc(got), styledDoc(want[6:]))
	}
	for y, s := range []State{Clean, InTripleDouble, Clean, Clean} {
		if got, ok := doc.State(y); !ok || got != s {
			t.Errorf("line %d ends in state %d (%v), want %d", y, got, ok, s)
		}
	}
	if _, ok := doc.State(len(csCode)); ok {
		t.Error("got a state for a line past the end")
	}
}

func TestDocumentInvalidate(t *testing.T) {
	src := append(testSource(nil), csCode...)
	p := testPalette
	doc := NewDocument(src, CSharp, p)
	doc.Regions(0, len(src))

	src[2] = "world\n"
	doc.Invalidate(2)
	if _, ok := doc.State(2); ok {
		t.Error("line 2 still has a state after invalidation")
	}
	want := []StyledRegion{
		{Line: 2, Start: 0, End: 5, Style: p.Style(String2)},
		{Line: 3, Start: 0, End: 1, Style: p.Style(String2)},
	}
	if got := doc.Regions(2, len(src)); !reflect.DeepEqual(got, want) {
		t.Errorf("got:\n%v\nwant:\n%v", styledDoc(got), styledDoc(want))
	}
	if s, _ := doc.State(3); s != InTripleDouble {
		t.Errorf("last line ends in state %d, want %d", s, InTripleDouble)
	}
}

func TestPaletteChangesApply(t *testing.T) {
	p := DefaultPalette.Copy()
	doc := NewDocument(testSource{"// hi"}, CSharp, p)
	rs := doc.Regions(0, 1)
	if len(rs) != 1 {
		t.Fatalf("got %d regions, want 1", len(rs))
	}
	p[Comment].Bold = true
	if !rs[0].Bold {
		t.Error("palette change not reflected in computed region")
	}
	if DefaultPalette[Comment].Bold {
		t.Error("Copy shares styles with the default palette")
	}
}

func TestDefaultPalette(t *testing.T) {
	cases := []struct {
		c            Class
		fg           color.Color
		bold, italic bool
	}{
		{Keyword, color.Color{R: 0, G: 128, B: 0}, false, false},
		{DefClass, color.Color{R: 0, G: 0, B: 255}, true, false},
		{Comment, color.Color{R: 70, G: 130, B: 180}, false, true},
		{Self, color.Color{}, false, true},
		{Numbers, color.Color{R: 165, G: 42, B: 42}, false, false},
	}
	for _, tt := range cases {
		s := DefaultPalette.Style(tt.c)
		if s.Foreground == nil || *s.Foreground != tt.fg || s.Bold != tt.bold || s.Italic != tt.italic {
			t.Errorf("%v: got %+v, want fg %v bold %v italic %v", tt.c, s, tt.fg, tt.bold, tt.italic)
		}
	}
	if s := DefaultPalette.Style(Plain); *s != (Style{}) {
		t.Errorf("plain style is %+v, want zero", s)
	}
}

func TestParseClass(t *testing.T) {
	for c := Plain; c < numClasses; c++ {
		if got, ok := ParseClass(c.String()); !ok || got != c {
			t.Errorf("ParseClass(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if _, ok := ParseClass("bogus"); ok {
		t.Error("ParseClass(bogus) succeeded")
	}
}
