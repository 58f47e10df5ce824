package termesc

import (
	"strconv"

	"github.com/dpinela/cshl/internal/color"
)

type GraphicFlag int

// Constants for non-color graphic attributes.
const (
	StyleNone         GraphicFlag = 0
	StyleBold         GraphicFlag = 1
	StyleItalic       GraphicFlag = 3
	StyleUnderline    GraphicFlag = 4
	StyleNotBold      GraphicFlag = 22
	StyleNotItalic    GraphicFlag = 23
	StyleNotUnderline GraphicFlag = 24
)

// Constants for the 3-bit ANSI color palette.
const (
	ColorBlack GraphicFlag = 30 + iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// Resets the foreground or background to the terminal's default color.
const (
	ColorDefault           GraphicFlag = 39
	ColorDefaultBackground GraphicFlag = 49
)

func (c GraphicFlag) forEachSGRCode(f func(int)) { f(int(c)) }

// OutputColor is a 24-bit foreground color.
type OutputColor color.Color

func (c OutputColor) forEachSGRCode(f func(int)) {
	f(38)
	f(2)
	f(int(c.R))
	f(int(c.G))
	f(int(c.B))
}

// OutputColorBackground is a 24-bit background color.
type OutputColorBackground color.Color

func (c OutputColorBackground) forEachSGRCode(f func(int)) {
	f(48)
	f(2)
	f(int(c.R))
	f(int(c.G))
	f(int(c.B))
}

type GraphicAttribute interface {
	forEachSGRCode(func(int))
}

// SetGraphicAttributes returns the SGR escape sequence that applies all of attrs.
func SetGraphicAttributes(attrs ...GraphicAttribute) string {
	b := make([]byte, len(csi), 64)
	copy(b, csi)
	for _, attr := range attrs {
		attr.forEachSGRCode(func(x int) {
			if len(b) > len(csi) {
				b = append(b, ';')
			}
			b = strconv.AppendInt(b, int64(x), 10)
		})
	}
	return string(append(b, 'm'))
}
