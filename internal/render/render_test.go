package render

import (
	"strings"
	"testing"

	"github.com/dpinela/cshl/internal/highlight"
)

type testSource []string

func (ts testSource) SliceLines(i, j int) []string { return ts[i:min(j, len(ts))] }

func renderString(t *testing.T, lines []string, opts Options) string {
	t.Helper()
	doc := highlight.NewDocument(testSource(lines), highlight.CSharp, highlight.DefaultPalette)
	var sb strings.Builder
	if err := Render(&sb, lines, doc.Regions(0, len(lines)), opts); err != nil {
		t.Fatal(err)
	}
	return sb.String()
}

var renderTests = []struct {
	name  string
	lines []string
	opts  Options
	want  string
}{
	{
		name:  "Plain",
		lines: []string{"class A {\n", "}"},
		opts:  Options{Format: Plain, LineNumbers: true},
		want:  "1 class A {\n2 }",
	},
	{
		name:  "HTML",
		lines: []string{"class A {\n", "x < y"},
		opts:  Options{Format: HTML},
		want: `<pre class="cshl"><span style="color:#008000">class</span> ` +
			`<span style="color:#0000ff;font-weight:bold">A</span> ` +
			`<span style="color:#000000">{</span>` + "\n" +
			`x <span style="color:#0000ff">&lt;</span> y</pre>` + "\n",
	},
	{
		name:  "ANSI",
		lines: []string{"class A {\n", "}"},
		opts:  Options{Format: ANSI},
		want: "\x1B[38;2;0;128;0mclass\x1B[0m \x1B[38;2;0;0;255;1mA\x1B[0m \x1B[38;2;0;0;0m{\x1B[0m\n" +
			"\x1B[38;2;0;0;0m}\x1B[0m",
	},
	{
		name:  "ANSIControlChars",
		lines: []string{"\tx\x01"},
		opts:  Options{Format: ANSI, TabWidth: 2},
		want:  "  x\u2401",
	},
	{
		name:  "ANSICRLF",
		lines: []string{"x\r\n", "y\r"},
		opts:  Options{Format: ANSI},
		want:  "x\ny␍",
	},
	{
		name:  "ANSIGutter",
		lines: []string{"a\n", "b\n", "c\n", "d\n", "e\n", "f\n", "g\n", "h\n", "i\n", "j"},
		opts:  Options{Format: ANSI, LineNumbers: true},
		want: "\x1B[0;37m 1\x1B[0m a\n\x1B[0;37m 2\x1B[0m b\n\x1B[0;37m 3\x1B[0m c\n\x1B[0;37m 4\x1B[0m d\n" +
			"\x1B[0;37m 5\x1B[0m e\n\x1B[0;37m 6\x1B[0m f\n\x1B[0;37m 7\x1B[0m g\n\x1B[0;37m 8\x1B[0m h\n" +
			"\x1B[0;37m 9\x1B[0m i\n\x1B[0;37m10\x1B[0m j",
	},
}

func TestRender(t *testing.T) {
	for _, tt := range renderTests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderString(t, tt.lines, tt.opts); got != tt.want {
				t.Errorf("got:\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestRenderMultilineString(t *testing.T) {
	lines := []string{"s = \"\"\"a\n", "b\"\"\";"}
	got := renderString(t, lines, Options{Format: HTML})
	want := `<pre class="cshl">s <span style="color:#0000ff">=</span> <span style="color:#ff0000">&#34;&#34;&#34;a</span>` + "\n" +
		`<span style="color:#ff0000">b&#34;&#34;&#34;</span>;</pre>` + "\n"
	if got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range []Format{Plain, ANSI, HTML} {
		if got, err := ParseFormat(f.String()); err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %v, %v", f.String(), got, err)
		}
	}
	if _, err := ParseFormat("rtf"); err == nil {
		t.Error("ParseFormat(rtf) succeeded")
	}
}
