// Cshl prints C# source files with syntax highlighting.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flags struct {
	config      string
	format      string
	output      string
	lineNumbers bool
	watch       bool
	strict      bool
}

var rootCmd = &cobra.Command{
	Use:   "cshl [flags] FILE",
	Short: "Print C# source code with syntax highlighting",
	Long: `cshl highlights a C# source file for a terminal or a web page.

Styles and other settings are read from cshl/config.toml in the user's
configuration directory, unless --config names another file.`,
	Args:          cobra.ExactArgs(1),
	RunE:          run,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flags.config, "config", "", "config file (default: <user config dir>/cshl/config.toml)")
	f.StringVarP(&flags.format, "format", "f", "", "output format: ansi, html or plain (default: ansi on a terminal, html for .html outputs, plain otherwise)")
	f.StringVarP(&flags.output, "output", "o", "", "write to this file instead of standard output")
	f.BoolVarP(&flags.lineNumbers, "line-numbers", "n", false, "show line numbers")
	f.BoolVarP(&flags.watch, "watch", "w", false, "keep running and re-highlight the file whenever it changes")
	f.BoolVar(&flags.strict, "strict", false, "disable triple-quoted strings and the self and def rules")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cshl:", err)
		os.Exit(2)
	}
}
