package highlight

import (
	"fmt"

	"github.com/dpinela/cshl/internal/color"
)

// A Class names the kind of text a rule recognizes, and thereby the style slot
// of a Palette it is displayed with.
type Class uint8

// The style classes, in palette order.
const (
	Plain Class = iota
	Keyword
	Operator
	Brace
	DefClass
	String
	String2
	Comment
	Self
	Numbers
	numClasses
)

var classNames = [numClasses]string{
	Plain:    "plain",
	Keyword:  "keyword",
	Operator: "operator",
	Brace:    "brace",
	DefClass: "defclass",
	String:   "string",
	String2:  "string2",
	Comment:  "comment",
	Self:     "self",
	Numbers:  "numbers",
}

func (c Class) String() string {
	if c < numClasses {
		return classNames[c]
	}
	return fmt.Sprintf("Class(%d)", uint8(c))
}

// ParseClass returns the class with the given name, as used in configuration files.
func ParseClass(name string) (Class, bool) {
	for c, n := range classNames {
		if n == name {
			return Class(c), true
		}
	}
	return Plain, false
}

// A Style describes the appearance of a chunk of text.
// The zero Style means non-bold, non-underline text with the default colors
// for the output device.
type Style struct {
	Foreground, Background  *color.Color
	Bold, Italic, Underline bool
}

// A Palette defines the styles to be used to display each class of text.
// Typically, the Plain slot will be left blank, to use the output device's defaults.
type Palette [numClasses]Style

// Style returns a pointer to the style for c. The pointer stays valid as long as
// the palette does, so modifying the palette changes the styles of regions
// already computed from it.
func (p *Palette) Style(c Class) *Style {
	if c >= numClasses {
		c = Plain
	}
	return &p[c]
}

type styleDef struct {
	class        Class
	fg           color.Spec
	bold, italic bool
}

var defaultStyles = []styleDef{
	{Keyword, color.Named("green"), false, false},
	{Operator, color.Named("blue"), false, false},
	{Brace, color.Named("black"), false, false},
	{DefClass, color.Named("blue"), true, false},
	{String, color.Named("magenta"), false, false},
	{String2, color.Named("red"), false, false},
	{Comment, color.Named("steelblue"), false, true},
	{Self, color.Named("black"), false, true},
	{Numbers, color.Named("brown"), false, false},
}

// DefaultPalette is the built-in style table. It must not be modified; use Copy
// to obtain a palette that can be customized.
var DefaultPalette = buildPalette(defaultStyles)

func buildPalette(defs []styleDef) *Palette {
	var p Palette
	for _, d := range defs {
		fg := d.fg.MustResolve()
		p[d.class] = Style{Foreground: &fg, Bold: d.bold, Italic: d.italic}
	}
	return &p
}

// Copy returns a palette with the same styles as p that shares no colors with it.
func (p *Palette) Copy() *Palette {
	var out Palette
	for i, s := range p {
		out[i] = s
		if s.Foreground != nil {
			fg := *s.Foreground
			out[i].Foreground = &fg
		}
		if s.Background != nil {
			bg := *s.Background
			out[i].Background = &bg
		}
	}
	return &out
}
