// Package runner orchestrates the parse -> format -> output pipeline.
package runner

import (
	"fmt"
	"io"
	"os"

	"github.com/donaldgifford/spfmt/internal/config"
	"github.com/donaldgifford/spfmt/internal/syntax"
	"github.com/donaldgifford/spfmt/internal/writer"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitFormatDiff = 1
	ExitError      = 2
)

// Options configures the runner behavior.
type Options struct {
	Files      []string
	Check      bool
	Diff       bool
	Write      bool
	ConfigPath string
	Quiet      bool
	Verbose    bool
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
}

// Run executes the format pipeline and returns an exit code.
func Run(opts *Options) int {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		writeErr(opts.Stderr, "spfmt: %v\n", err)
		return ExitError
	}

	// stdin mode: no files given.
	if len(opts.Files) == 0 {
		return runStdin(opts, cfg)
	}

	exitCode := ExitOK
	for _, path := range opts.Files {
		code := runFile(opts, cfg, path)
		if code > exitCode {
			exitCode = code
		}
	}
	return exitCode
}

func runStdin(opts *Options, cfg *config.Config) int {
	src, err := io.ReadAll(opts.Stdin)
	if err != nil {
		writeErr(opts.Stderr, "spfmt: reading stdin: %v\n", err)
		return ExitError
	}

	const name = "<stdin>"
	input := string(src)
	output, err := formatInput(opts, name, input, &cfg.Formatter)
	if err != nil {
		writeErr(opts.Stderr, "spfmt: %s: %v\n", name, err)
		return ExitError
	}

	if opts.Check {
		if input != output {
			return ExitFormatDiff
		}
		return ExitOK
	}

	if opts.Diff {
		return writeDiff(opts, name, input, output)
	}

	writeOut(opts.Stdout, output)
	return ExitOK
}

func runFile(opts *Options, cfg *config.Config, path string) int {
	if pattern, ok := cfg.ExcludedBy(path); ok {
		if opts.Verbose {
			writeErr(opts.Stderr, "skipping %s (matches %q)\n", path, pattern)
		}
		return ExitOK
	}

	src, err := os.ReadFile(path)
	if err != nil {
		writeErr(opts.Stderr, "spfmt: %v\n", err)
		return ExitError
	}

	fcfg, err := cfg.Formatter.ForFile(path)
	if err != nil {
		writeErr(opts.Stderr, "spfmt: %v\n", err)
		return ExitError
	}

	if opts.Verbose {
		writeErr(opts.Stderr, "%s\n", path)
	}

	input := string(src)
	output, err := formatInput(opts, path, input, &fcfg)
	if err != nil {
		writeErr(opts.Stderr, "spfmt: %s: %v\n", path, err)
		return ExitError
	}

	if opts.Check {
		if input != output {
			if !opts.Quiet {
				writeErr(opts.Stderr, "%s\n", path)
			}
			return ExitFormatDiff
		}
		return ExitOK
	}

	if opts.Diff {
		return writeDiff(opts, path, input, output)
	}

	// Write mode (default for file args).
	if input == output {
		return ExitOK
	}

	if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
		writeErr(opts.Stderr, "spfmt: writing %s: %v\n", path, err)
		return ExitError
	}

	return ExitOK
}

// formatInput parses and formats input, reporting writer diagnostics as
// warnings on stderr.
func formatInput(opts *Options, name, input string, fcfg *config.FormatterConfig) (string, error) {
	tree, err := syntax.Parse([]byte(input))
	if err != nil {
		return "", err
	}

	res, err := writer.Format(tree, writer.Options{
		Indent:        fcfg.IndentUnit(),
		MaxBlankLines: fcfg.MaxBlankLines,
	})
	if !opts.Quiet {
		report(opts.Stderr, name, res.Diagnostics)
	}
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// report writes diagnostics in the compiler warning format editors parse.
func report(w io.Writer, name string, diags []writer.Diagnostic) {
	for _, d := range diags {
		writeErr(w, "%s:%d:%d: warning: unexpected %s in %s\n",
			name, d.Line, d.Col, d.Kind, d.Context)
	}
}

func writeDiff(opts *Options, name, input, output string) int {
	if input == output {
		return ExitOK
	}

	d, err := unified(name, input, output)
	if err != nil {
		writeErr(opts.Stderr, "spfmt: diffing %s: %v\n", name, err)
		return ExitError
	}
	if isTerminal(opts.Stdout) {
		d = colorize(d)
	}
	writeOut(opts.Stdout, d)
	return ExitFormatDiff
}

// writeOut writes to stdout.
func writeOut(w io.Writer, s string) {
	fmt.Fprint(w, s)
}

// writeErr formats and writes to stderr.
func writeErr(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
