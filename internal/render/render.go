// Package render writes highlighted text to terminals and HTML documents.
package render

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dpinela/cshl/internal/buffer"
	"github.com/dpinela/cshl/internal/highlight"
	"github.com/dpinela/cshl/internal/termesc"
)

// A Format selects the kind of output produced by Render.
type Format int

const (
	Plain Format = iota
	ANSI
	HTML
)

func (f Format) String() string {
	switch f {
	case ANSI:
		return "ansi"
	case HTML:
		return "html"
	default:
		return "plain"
	}
}

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "plain":
		return Plain, nil
	case "ansi":
		return ANSI, nil
	case "html":
		return HTML, nil
	}
	return Plain, fmt.Errorf("render: unknown format %q", s)
}

type Options struct {
	Format      Format
	LineNumbers bool
	TabWidth    int // Only used by ANSI output; zero means 4.
}

// Render writes lines to w, styled according to regions.
// The regions must be sorted and must not overlap, as returned by highlight.Document.
// Lines may end in a newline, which is preserved.
func Render(w io.Writer, lines []string, regions []highlight.StyledRegion, opts Options) error {
	tf := textFormatter{src: lines, highlightedRegions: regions, opts: opts}
	if opts.TabWidth <= 0 {
		tf.opts.TabWidth = 4
	}
	if opts.LineNumbers {
		tf.gutterWidth = runewidth.StringWidth(strconv.Itoa(len(lines))) + 1
	}
	var buf []byte
	if opts.Format == HTML {
		buf = append(buf, `<pre class="cshl">`...)
	}
	for y := range lines {
		buf = tf.formatLine(buf, y)
		if _, err := w.Write(buf); err != nil {
			return err
		}
		buf = buf[:0]
	}
	if opts.Format == HTML {
		buf = append(buf, "</pre>\n"...)
	}
	_, err := w.Write(buf)
	return err
}

type textFormatter struct {
	src                []string
	currentHighlight   *highlight.StyledRegion
	highlightedRegions []highlight.StyledRegion
	gutterWidth        int
	opts               Options
}

// Pre-compute the SGR escape sequences used in formatLine to avoid the expense of recomputing them repeatedly.
var (
	styleResetToWhite = termesc.SetGraphicAttributes(termesc.StyleNone, termesc.ColorWhite)
	styleReset        = termesc.SetGraphicAttributes(termesc.StyleNone)
)

func (tf *textFormatter) formatLine(buf []byte, y int) []byte {
	line := tf.src[y]
	newline := strings.HasSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\n")
	if newline && tf.opts.Format == ANSI {
		// The terminal handles CRLF itself; don't show the CR as a control picture.
		line = strings.TrimSuffix(line, "\r")
	}
	if tf.gutterWidth > 0 {
		buf = tf.appendGutter(buf, y)
	}
	for bx := 0; bx < len(line); {
		if tf.currentHighlight != nil && (y > tf.currentHighlight.Line || bx >= tf.currentHighlight.End) {
			buf = tf.endRegion(buf)
		}
		if tf.currentHighlight == nil {
			// Find the next highlighted region that covers the current point,
			// dropping the ones that were left behind.
			for len(tf.highlightedRegions) > 0 {
				r := &tf.highlightedRegions[0]
				if y < r.Line || (y == r.Line && bx < r.Start) {
					break
				}
				tf.highlightedRegions = tf.highlightedRegions[1:]
				if y == r.Line && bx < r.End {
					tf.currentHighlight = r
					buf = tf.startRegion(buf, r.Style)
					break
				}
			}
		}
		n := buffer.NextCharBoundary(line[bx:])
		buf = tf.appendChar(buf, line[bx:bx+n])
		bx += n
	}
	if tf.currentHighlight != nil {
		buf = tf.endRegion(buf)
	}
	if newline {
		buf = append(buf, '\n')
	}
	return buf
}

func (tf *textFormatter) appendGutter(buf []byte, y int) []byte {
	num := strconv.Itoa(y + 1)
	pad := tf.gutterWidth - 1 - runewidth.StringWidth(num)
	switch tf.opts.Format {
	case ANSI:
		buf = append(buf, styleResetToWhite...)
		buf = appendSpaces(buf, pad)
		buf = append(buf, num...)
		buf = append(buf, styleReset...)
		return append(buf, ' ')
	case HTML:
		buf = append(buf, `<span class="ln">`...)
		buf = appendSpaces(buf, pad)
		buf = append(buf, num...)
		return append(buf, " </span>"...)
	default:
		buf = appendSpaces(buf, pad)
		buf = append(buf, num...)
		return append(buf, ' ')
	}
}

func (tf *textFormatter) appendChar(buf []byte, c string) []byte {
	switch tf.opts.Format {
	case ANSI:
		switch {
		case c == "\t":
			return appendSpaces(buf, tf.opts.TabWidth)
		case len(c) == 1 && c[0] < ' ':
			return append(buf, string('\u2400'+rune(c[0]))...)
		case c == "\x7f":
			return append(buf, "\u2421"...)
		}
		return append(buf, c...)
	case HTML:
		return append(buf, html.EscapeString(c)...)
	default:
		return append(buf, c...)
	}
}

func (tf *textFormatter) startRegion(buf []byte, s *highlight.Style) []byte {
	switch tf.opts.Format {
	case ANSI:
		return append(buf, makeSGRString(s)...)
	case HTML:
		return append(buf, makeSpanTag(s)...)
	}
	return buf
}

func (tf *textFormatter) endRegion(buf []byte) []byte {
	tf.currentHighlight = nil
	switch tf.opts.Format {
	case ANSI:
		return append(buf, styleReset...)
	case HTML:
		return append(buf, "</span>"...)
	}
	return buf
}

func appendSpaces(b []byte, n int) []byte {
	for i := 0; i < n; i++ {
		b = append(b, ' ')
	}
	return b
}

func makeSGRString(s *highlight.Style) string {
	var params []termesc.GraphicAttribute
	// At the end of each highlighted region, these flags are all reset,
	// so at the start of this one we know that they're all off.
	if fg := s.Foreground; fg != nil {
		params = append(params, termesc.OutputColor(*fg))
	}
	if bg := s.Background; bg != nil {
		params = append(params, termesc.OutputColorBackground(*bg))
	}
	if s.Bold {
		params = append(params, termesc.StyleBold)
	}
	if s.Italic {
		params = append(params, termesc.StyleItalic)
	}
	if s.Underline {
		params = append(params, termesc.StyleUnderline)
	}
	return termesc.SetGraphicAttributes(params...)
}

func makeSpanTag(s *highlight.Style) string {
	var css []string
	if fg := s.Foreground; fg != nil {
		css = append(css, "color:"+fg.String())
	}
	if bg := s.Background; bg != nil {
		css = append(css, "background-color:"+bg.String())
	}
	if s.Bold {
		css = append(css, "font-weight:bold")
	}
	if s.Italic {
		css = append(css, "font-style:italic")
	}
	if s.Underline {
		css = append(css, "text-decoration:underline")
	}
	return `<span style="` + strings.Join(css, ";") + `">`
}
