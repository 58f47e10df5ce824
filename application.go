package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/dpinela/cshl/internal/atomicwrite"
	"github.com/dpinela/cshl/internal/buffer"
	"github.com/dpinela/cshl/internal/config"
	"github.com/dpinela/cshl/internal/highlight"
	"github.com/dpinela/cshl/internal/pathwatch"
	"github.com/dpinela/cshl/internal/render"
	"github.com/dpinela/cshl/internal/termesc"
)

// An application highlights one file and writes the result to its output,
// possibly repeatedly as the file changes.
type application struct {
	filename string
	output   string // Empty for the console
	console  io.Writer
	buf      *buffer.Buffer
	doc      *highlight.Document
	opts     render.Options
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(expandPath(flags.config))
	if err != nil {
		if flags.config != "" {
			return err
		}
		fmt.Fprintln(os.Stderr, "cshl:", err)
	}
	if flags.strict {
		cfg.Strict = true
	}
	pal, err := cfg.Palette()
	if err != nil {
		return errors.WithMessage(err, "config")
	}
	app := newApplication(expandPath(args[0]), expandPath(flags.output), os.Stdout, cfg.Table(), pal)
	app.opts.LineNumbers = flags.lineNumbers
	app.opts.TabWidth = cfg.TabWidth
	if app.opts.Format, err = chooseFormat(flags.format, app.output, isConsole(os.Stdout)); err != nil {
		return err
	}
	if err := app.load(); err != nil {
		return err
	}
	if err := app.emit(); err != nil {
		return err
	}
	if !flags.watch {
		return nil
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return app.watch(ctx)
}

func newApplication(filename, output string, console io.Writer, t *highlight.Table, pal *highlight.Palette) *application {
	buf := buffer.New()
	return &application{
		filename: filename,
		output:   output,
		console:  console,
		buf:      buf,
		doc:      highlight.NewDocument(buf, t, pal),
	}
}

// chooseFormat returns the output format named by flag, or picks one suited to
// the output if flag is empty.
func chooseFormat(flag, output string, console bool) (render.Format, error) {
	switch {
	case flag != "":
		return render.ParseFormat(flag)
	case output == "" && console:
		return render.ANSI, nil
	case strings.EqualFold(filepath.Ext(output), ".html"), strings.EqualFold(filepath.Ext(output), ".htm"):
		return render.HTML, nil
	default:
		return render.Plain, nil
	}
}

func isConsole(f *os.File) bool { return terminal.IsTerminal(int(f.Fd())) }

// load reads the file from disk again, keeping the highlighting of the lines
// before the first one that changed.
func (app *application) load() error {
	f, err := os.Open(app.filename)
	if err != nil {
		return err
	}
	defer f.Close()
	first, err := app.buf.Reload(f)
	if err != nil {
		return errors.Wrapf(err, "read %s", app.filename)
	}
	if first >= 0 {
		app.doc.Invalidate(first)
	}
	return nil
}

func (app *application) render(w io.Writer) error {
	n := app.buf.LineCount()
	return render.Render(w, app.buf.SliceLines(0, n), app.doc.Regions(0, n), app.opts)
}

func (app *application) emit() error {
	if app.output == "" {
		return app.render(app.console)
	}
	return atomicwrite.Write(app.output, app.render)
}

func (app *application) watch(ctx context.Context) (err error) {
	w, err := pathwatch.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	changes := make(chan struct{}, 1)
	if err := w.Add(app.filename, changes); err != nil {
		return err
	}
	redraw := app.output == "" && app.opts.Format == render.ANSI
	if redraw {
		if _, err := io.WriteString(app.console, termesc.EnterAlternateScreen); err != nil {
			return err
		}
		defer func() {
			if _, exitErr := io.WriteString(app.console, termesc.ExitAlternateScreen); err == nil {
				err = exitErr
			}
		}()
		if err := app.redraw(); err != nil {
			return err
		}
	}
	for {
		select {
		case <-changes:
			if err := app.load(); err != nil {
				// The file may be in the middle of being replaced; wait for the next change.
				fmt.Fprintln(os.Stderr, "cshl:", err)
				continue
			}
			if redraw {
				err = app.redraw()
			} else {
				err = app.emit()
			}
			if err != nil {
				return err
			}
		case err := <-w.Errors():
			fmt.Fprintln(os.Stderr, "cshl:", err)
		case <-ctx.Done():
			return nil
		}
	}
}

// redraw replaces the contents of the console's screen with the highlighted file.
func (app *application) redraw() error {
	if _, err := io.WriteString(app.console, termesc.ClearScreen+termesc.SetCursorPos(1, 1)); err != nil {
		return err
	}
	return app.emit()
}

func expandPath(path string) string {
	path = os.ExpandEnv(path)
	if p := strings.TrimPrefix(path, "~"+string(filepath.Separator)); len(p) != len(path) {
		// In the unlikely event that the lookup fails, leave the tilde unexpanded; it will be easier
		// to detect the problem that way.
		if u, err := currentUser(); err == nil {
			path = filepath.Join(u.HomeDir, p)
		}
	}
	return path
}

// This is a variable so that it can be mocked for tests.
var currentUser = user.Current
