// Package config defines configuration settings for cshl and functions for loading them from a file.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/dpinela/cshl/internal/color"
	"github.com/dpinela/cshl/internal/highlight"

	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type Config struct {
	TabWidth int
	// Strict disables the rules the C# highlighter inherited from its Python
	// ancestor: triple-quoted strings, self and def.
	Strict    bool
	TextStyle map[string]Style
}

// A Style overrides the default style of one class of text.
// Colors may be given as hex codes or CSS color names.
type Style struct {
	Foreground, Background  *color.Color
	Bold, Italic, Underline bool
}

func defaultConfig() *Config { return &Config{TabWidth: 4} }

// Table returns the highlighting rules selected by c.
func (c *Config) Table() *highlight.Table {
	if c.Strict {
		return highlight.CSharpStrict
	}
	return highlight.CSharp
}

// Palette returns a copy of the default palette with the styles in c applied to it.
// It fails if c names a class of text that doesn't exist.
func (c *Config) Palette() (*highlight.Palette, error) {
	pal := highlight.DefaultPalette.Copy()
	names := make([]string, 0, len(c.TextStyle))
	for name := range c.TextStyle {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cl, ok := highlight.ParseClass(strings.ToLower(name))
		if !ok {
			return pal, fmt.Errorf("unknown text style %q", name)
		}
		s := c.TextStyle[name]
		*pal.Style(cl) = highlight.Style{Foreground: s.Foreground, Background: s.Background,
			Bold: s.Bold, Italic: s.Italic, Underline: s.Underline}
	}
	return pal, nil
}

// Path returns the location of the primary configuration file for the current user,
// according to the XDG base directory specification for configuration files.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cshl", "config.toml"), nil
}

// Load reads the configuration file at path, or the primary configuration file for the
// current user if path is empty. It always returns a usable *Config, even if it also
// returns a non-nil error. A missing primary configuration file is not an error.
func Load(path string) (c *Config, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error loading config file: %w", err)
		}
	}()
	c = defaultConfig()
	explicit := path != ""
	if !explicit {
		if path, err = Path(); err != nil {
			return c, err
		}
	}
	f, err := os.Open(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return c, nil
		}
		return c, err
	}
	defer f.Close()
	return c, Decode(f, c)
}

// Decode reads a TOML configuration from r into c, keeping the values in c for
// any settings r doesn't mention.
func Decode(r io.Reader, c *Config) error {
	md, err := toml.NewDecoder(r).Decode(c)
	if err != nil {
		return err
	}
	if c.TabWidth <= 0 {
		c.TabWidth = defaultConfig().TabWidth
	}
	if keys := md.Undecoded(); len(keys) != 0 {
		return fmt.Errorf("unknown setting %q", keys[0].String())
	}
	return nil
}
