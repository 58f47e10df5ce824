// Package color parses and resolves the colors used by highlighting styles.
package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Color is a 8-bit-per-channel RGB color.
type Color struct {
	R, G, B uint8
}

// String returns the hex color code for c.
func (c Color) String() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// Parse returns the RGB values corresponding to the color described by s.
// The string may be a CSS-style hex code (#ABCDEF) or one of the CSS/SVG color
// keywords (steelblue, magenta, ...), matched case-insensitively.
func Parse(s string) (Color, error) {
	if c, ok := named[strings.ToLower(s)]; ok {
		return c, nil
	}
	if !(len(s) == 7 && s[0] == '#') {
		return Color{}, fmt.Errorf("color: parse %q: not a valid hex string or color name", s)
	}
	n, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Color{}, errors.WithMessage(err, fmt.Sprintf("color: parse %q", s))
	}
	return Color{uint8(n >> 16), uint8(n >> 8), uint8(n)}, nil
}

func (c *Color) UnmarshalText(b []byte) (err error) {
	in, err := Parse(string(b))
	if err == nil {
		*c = in
	}
	return
}

// A Spec describes a color either by name or by its RGB components.
// It is resolved to a concrete Color once, when a style table is built.
type Spec struct {
	name  string
	rgb   Color
	named bool
}

// Named returns a Spec for the color with the given name or hex code.
func Named(name string) Spec { return Spec{name: name, named: true} }

// RGB returns a Spec for the given components.
func RGB(r, g, b uint8) Spec { return Spec{rgb: Color{r, g, b}} }

// Resolve returns the concrete color described by s.
func (s Spec) Resolve() (Color, error) {
	if !s.named {
		return s.rgb, nil
	}
	return Parse(s.name)
}

// MustResolve is like Resolve, but panics if the color name is unknown.
// It is meant for tables built at package initialization.
func (s Spec) MustResolve() Color {
	c, err := s.Resolve()
	if err != nil {
		panic(err)
	}
	return c
}

func (s Spec) String() string {
	if s.named {
		return s.name
	}
	return s.rgb.String()
}
