// Package writer emits canonical SourcePawn text for variable declarations.
package writer

import (
	"strings"

	"github.com/donaldgifford/spfmt/internal/syntax"
)

// Options controls indentation and blank line handling.
type Options struct {
	// Indent is the text written once per indent level.
	Indent string
	// MaxBlankLines caps the number of blank source lines preserved
	// between top-level items.
	MaxBlankLines int
}

// DefaultOptions returns four-space indentation with one preserved blank
// line.
func DefaultOptions() Options {
	return Options{Indent: "    ", MaxBlankLines: 1}
}

// Writer is the output sink for one formatting pass. It is not safe for
// concurrent use; each pass owns its own Writer.
type Writer struct {
	src   []byte
	opts  Options
	out   strings.Builder
	level int
	diags []Diagnostic
}

// New returns a Writer over the source the tree was parsed from.
func New(src []byte, opts Options) *Writer {
	return &Writer{src: src, opts: opts}
}

// String returns everything written so far.
func (w *Writer) String() string {
	return w.out.String()
}

// Diagnostics returns the soft failures recorded during the pass.
func (w *Writer) Diagnostics() []Diagnostic {
	return w.diags
}

// WriteString appends s to the output.
func (w *Writer) WriteString(s string) {
	w.out.WriteString(s)
}

// writeByte appends c to the output.
func (w *Writer) writeByte(c byte) {
	w.out.WriteByte(c)
}

// EndsWith reports whether the output currently ends with c.
func (w *Writer) EndsWith(c byte) bool {
	s := w.out.String()
	return len(s) > 0 && s[len(s)-1] == c
}

// AtLineStart reports whether the next byte starts a new line.
func (w *Writer) AtLineStart() bool {
	return w.out.Len() == 0 || w.EndsWith('\n')
}

// Break ends the current line.
func (w *Writer) Break() {
	w.out.WriteByte('\n')
}

// WriteIndent writes the prefix for the current indent level.
func (w *Writer) WriteIndent() {
	for i := 0; i < w.level; i++ {
		w.out.WriteString(w.opts.Indent)
	}
}

// Indent increases the indent level by one.
func (w *Writer) Indent() {
	w.level++
}

// Dedent decreases the indent level by one.
func (w *Writer) Dedent() {
	if w.level > 0 {
		w.level--
	}
}

// WriteNode appends the literal source text of n.
func (w *Writer) WriteNode(n *syntax.Node) error {
	text, err := n.Text(w.src)
	if err != nil {
		return err
	}
	w.out.WriteString(text)
	return nil
}

// text returns the literal source text of n.
func (w *Writer) text(n *syntax.Node) (string, error) {
	return n.Text(w.src)
}
