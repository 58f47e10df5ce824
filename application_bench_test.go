package main

import (
	"io"
	"strings"
	"testing"

	"github.com/dpinela/cshl/internal/render"
)

func BenchmarkHighlight(b *testing.B) {
	app, _ := newTestApplication(b, strings.Repeat(testDocument+"\n", 50))
	n := app.buf.LineCount()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		app.doc.Invalidate(0)
		app.doc.Regions(0, n)
	}
}

func BenchmarkRender(b *testing.B) {
	app, _ := newTestApplication(b, strings.Repeat(testDocument+"\n", 50))
	app.console = io.Discard
	app.opts = render.Options{Format: render.ANSI, LineNumbers: true}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := app.emit(); err != nil {
			b.Fatal(err)
		}
	}
}
