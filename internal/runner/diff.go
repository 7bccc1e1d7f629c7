package runner

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of unchanged lines shown around each hunk.
const contextLines = 3

const (
	colorReset = "\x1b[0m"
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorCyan  = "\x1b[36m"
)

// unified returns a unified diff between the original and formatted text.
func unified(name, original, formatted string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(formatted),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  contextLines,
	})
}

// colorize wraps removed, added and hunk header lines in ANSI colors.
func colorize(d string) string {
	lines := strings.SplitAfter(d, "\n")
	var b strings.Builder
	for _, line := range lines {
		color := ""
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		case strings.HasPrefix(line, "@@"):
			color = colorCyan
		case strings.HasPrefix(line, "-"):
			color = colorRed
		case strings.HasPrefix(line, "+"):
			color = colorGreen
		}
		if color == "" {
			b.WriteString(line)
			continue
		}
		body, nl := strings.CutSuffix(line, "\n")
		b.WriteString(color)
		b.WriteString(body)
		b.WriteString(colorReset)
		if nl {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// isTerminal reports whether w is a terminal, so colors are only written
// for interactive use.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
