// Package highlight implements line-by-line syntax highlighting driven by tables
// of regular expressions.
//
// Each line (block) is scanned independently, given only its text and the state
// the previous line ended in, so hosts can re-highlight single lines as they are
// edited and only continue onto following lines while their states change.
package highlight

import "regexp"

// A State records whether a line ends inside a multi-line construct, and which one.
// The zero State, Clean, means it doesn't; it is also the state before the first line.
type State int

// A Format assigns a style class to a span of a line, measured in bytes.
// Formats are applied in order, each one overriding the classes of earlier ones
// where they overlap.
type Format struct {
	Start, Length int
	Class         Class
}

// End returns the index just past the span of f.
func (f Format) End() int { return f.Start + f.Length }

// Scan highlights one line of text that follows a line which ended in state prev.
// It returns the formats to apply, in order, and the state the line ends in.
// It is a pure function of its arguments.
func (t *Table) Scan(text string, prev State) ([]Format, State) {
	var out []Format
	for _, r := range t.rules {
		for _, m := range r.Pattern.FindAllStringSubmatchIndex(text, -1) {
			// An optional group that didn't participate has index -1.
			if start, end := m[2*r.Group], m[2*r.Group+1]; start >= 0 {
				out = appendFormat(out, Format{start, end - start, r.Class})
			}
		}
	}
	cur := Clean
	for i := range t.multiline {
		var inside bool
		if out, inside = t.multiline[i].match(out, text, prev); inside {
			cur = t.multiline[i].State
			break
		}
	}
	return out, cur
}

// match highlights the spans of text delimited by mr and reports whether text
// ends inside one of them.
func (mr *MultilineRule) match(out []Format, text string, prev State) ([]Format, bool) {
	// start is the beginning of the current span and add the width of its
	// opening delimiter, which is zero if the span began on an earlier line.
	var start, add int
	if prev != mr.State {
		loc := mr.Delimiter.FindStringIndex(text)
		if loc == nil {
			return out, false
		}
		start, add = loc[0], loc[1]-loc[0]
	}
	for {
		closing := indexFrom(mr.Delimiter, text, start+add)
		if closing == nil {
			return appendFormat(out, Format{start, len(text) - start, mr.Class}), true
		}
		end := closing[1]
		out = appendFormat(out, Format{start, end - start, mr.Class})
		if end == start {
			end++
		}
		next := indexFrom(mr.Delimiter, text, end)
		if next == nil {
			return out, false
		}
		start, add = next[0], next[1]-next[0]
	}
}

// indexFrom returns the location of the first match of re in text at or after
// offset i, or nil if there is none. Anchors in re are relative to i.
func indexFrom(re *regexp.Regexp, text string, i int) []int {
	if i > len(text) {
		return nil
	}
	loc := re.FindStringIndex(text[i:])
	if loc == nil {
		return nil
	}
	return []int{loc[0] + i, loc[1] + i}
}

func appendFormat(out []Format, f Format) []Format {
	if f.Length <= 0 {
		return out
	}
	return append(out, f)
}

// A Block is the host's view of the line being highlighted. It exposes the
// state persisted for the previous line and for the current one, and receives
// the formats computed for the current line.
type Block interface {
	PreviousBlockState() State
	CurrentBlockState() State
	SetCurrentBlockState(State)
	SetFormat(start, length int, c Class)
}

// A Highlighter applies a Table to the blocks of a host document.
type Highlighter struct {
	table *Table
}

// New returns a Highlighter for the rules in t.
func New(t *Table) *Highlighter { return &Highlighter{table: t} }

// HighlightBlock highlights text, the contents of b, and stores the state it ends
// in as b's current state. It reports whether that state differs from the one b
// had before, in which case the host should also re-highlight the next block.
func (h *Highlighter) HighlightBlock(b Block, text string) bool {
	formats, cur := h.table.Scan(text, b.PreviousBlockState())
	for _, f := range formats {
		b.SetFormat(f.Start, f.Length, f.Class)
	}
	changed := b.CurrentBlockState() != cur
	b.SetCurrentBlockState(cur)
	return changed
}

// A Span is a run of bytes [Start, End[ displayed with a single style class.
type Span struct {
	Start, End int
	Class      Class
}

// Resolve applies formats in order to a line of n bytes and returns the resulting
// non-overlapping, non-Plain spans, sorted by position. Adjacent spans with
// the same class are merged. Formats reaching past n are clipped.
func Resolve(formats []Format, n int) []Span {
	if len(formats) == 0 || n <= 0 {
		return nil
	}
	layer := make([]Class, n)
	for _, f := range formats {
		start, end := max(f.Start, 0), min(f.End(), n)
		for i := start; i < end; i++ {
			layer[i] = f.Class
		}
	}
	var spans []Span
	for i := 0; i < n; {
		j := i + 1
		for j < n && layer[j] == layer[i] {
			j++
		}
		if layer[i] != Plain {
			spans = append(spans, Span{i, j, layer[i]})
		}
		i = j
	}
	return spans
}
