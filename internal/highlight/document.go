package highlight

import (
	"sort"
	"strings"
)

// LineSource is the interface used to fetch lines to be highlighted.
// It is implemented by *buffer.Buffer.
type LineSource interface {
	SliceLines(i, j int) []string
}

// A StyledRegion is a region of text that should be rendered with the associated style.
// The indexes reference the slice of strings that was passed to the highlighter.
type StyledRegion struct {
	Line       int
	Start, End int // Measured in bytes
	*Style
}

// A Document keeps the highlighting of a whole text, computed lazily from the top
// and invalidated from the first changed line downwards.
type Document struct {
	// state contains the state at the end of each input line.
	// len(state) equals the number of lines - starting at the top - that currently have
	// highlights computed.
	state   []State
	regions []StyledRegion

	table   *Table
	palette *Palette
	src     LineSource
}

// NewDocument returns a Document that highlights the lines of src using the rules in t.
// The styles returned by Regions point to fields of the given palette;
// modifying the palette will change these styles automatically.
func NewDocument(src LineSource, t *Table, pal *Palette) *Document {
	return &Document{src: src, table: t, palette: pal}
}

// Invalidate notifies the document that the source text starting at line ty
// has changed.
func (d *Document) Invalidate(ty int) {
	if ty < 0 {
		ty = 0
	}
	if ty < len(d.state) {
		d.state = d.state[:ty]
	}
	d.regions = d.regions[:regionIndexForLine(d.regions, ty)]
}

// Regions returns all highlighted regions belonging to lines in the interval
// [startY, endY[. It may also return additional regions past the end of that interval.
// Callers should not modify the returned slice.
func (d *Document) Regions(startY, endY int) []StyledRegion {
	if endY > len(d.state) {
		d.run(len(d.state), d.src.SliceLines(len(d.state), endY))
	}
	return d.regions[regionIndexForLine(d.regions, startY):]
}

// State returns the state line y ends in, if it has been highlighted already.
func (d *Document) State(y int) (State, bool) {
	if y < 0 || y >= len(d.state) {
		return Clean, false
	}
	return d.state[y], true
}

func (d *Document) currentState() State {
	if len(d.state) == 0 {
		return Clean
	}
	return d.state[len(d.state)-1]
}

func (d *Document) run(startY int, lines []string) {
	prev := d.currentState()
	for j, line := range lines {
		line = strings.TrimSuffix(line, "\n")
		formats, cur := d.table.Scan(line, prev)
		for _, sp := range Resolve(formats, len(line)) {
			d.regions = appendRegion(d.regions, StyledRegion{Line: startY + j, Start: sp.Start, End: sp.End, Style: d.palette.Style(sp.Class)})
		}
		d.state = append(d.state, cur)
		prev = cur
	}
}

// appendRegion appends r to out, coalescing it with the last region in out
// if they're adjacent and share a style. It returns the extended slice, just like append.
func appendRegion(out []StyledRegion, r StyledRegion) []StyledRegion {
	if r.Start == r.End {
		return out
	}
	if n := len(out); n != 0 && out[n-1].Line == r.Line && out[n-1].End == r.Start && out[n-1].Style == r.Style {
		out[n-1].End = r.End
		return out
	}
	return append(out, r)
}

// regionIndexForLine returns the index of the first region in rs whose line >= ty, or
// len(rs) if no such region exists.
func regionIndexForLine(rs []StyledRegion, ty int) int {
	return sort.Search(len(rs), func(j int) bool { return rs[j].Line >= ty })
}
