// Package buffer holds the lines of a source file for highlighting.
package buffer

import (
	"bufio"
	"io"
)

// Buffer is a text buffer that support efficient access to individual lines of text.
// It implements the io.ReaderFrom and io.WriterTo interfaces.
// Each line keeps its trailing newline, if it has one.
type Buffer struct {
	lines []string
}

func New() *Buffer { return &Buffer{lines: []string{""}} }

// ReadFrom replaces the content of the buffer with data read from r until EOF.
func (b *Buffer) ReadFrom(r io.Reader) (n int64, err error) {
	b.lines = nil
	br := bufio.NewReader(r)
	for {
		var line string
		line, err = br.ReadString('\n')
		b.lines = append(b.lines, line)
		n += int64(len(line))
		if err != nil {
			if err == io.EOF {
				err = nil
			}
			return
		}
	}
}

// Reload is like ReadFrom, but also returns the index of the first line that differs
// from the previous content, or -1 if the content didn't change at all.
func (b *Buffer) Reload(r io.Reader) (firstChanged int, err error) {
	old := b.lines
	if _, err := b.ReadFrom(r); err != nil {
		b.lines = old
		return 0, err
	}
	n := min(len(old), len(b.lines))
	for i := 0; i < n; i++ {
		if old[i] != b.lines[i] {
			return i, nil
		}
	}
	if len(old) == len(b.lines) {
		return -1, nil
	}
	return n, nil
}

// WriteTo writes the full content of the buffer to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, line := range b.lines {
		nw, err := io.WriteString(w, line)
		n += int64(nw)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// SliceLines returns the lines of the buffer in the interval [i, j[.
// j is clamped to the number of lines.
func (b *Buffer) SliceLines(i, j int) []string {
	if j > len(b.lines) {
		j = len(b.lines)
	}
	if i > j {
		i = j
	}
	return b.lines[i:j]
}

// LineCount returns the number of lines in the buffer.
func (b *Buffer) LineCount() int { return len(b.lines) }
