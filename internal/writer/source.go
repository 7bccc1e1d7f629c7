package writer

import (
	"github.com/donaldgifford/spfmt/internal/syntax"
)

// Result is the outcome of formatting one tree.
type Result struct {
	Output      string
	Diagnostics []Diagnostic
}

// Format writes the canonical text of tree. On error, Output holds what
// was written before the failing node.
func Format(tree *syntax.Tree, opts Options) (Result, error) {
	w := New(tree.Source, opts)
	err := w.writeItems(tree.Root)
	return Result{Output: w.String(), Diagnostics: w.Diagnostics()}, err
}

// writeItems writes the children of a source file or block.
func (w *Writer) writeItems(parent *syntax.Node) error {
	var prev *syntax.Node
	for _, n := range parent.Children {
		if n.Kind == syntax.KindLBrace || n.Kind == syntax.KindRBrace {
			continue
		}
		if prev != nil {
			w.writeBlankLines(prev, n)
		}

		var err error
		switch n.Kind {
		case syntax.KindComment:
			err = w.writeCommentLine(n, prev)
		case syntax.KindBlock:
			err = w.writeBlock(n)
		default:
			fn, ok := items[n.Kind]
			if !ok {
				w.unexpected(n, parent.Kind.String())
				continue
			}
			err = fn(n, w)
		}
		if err != nil {
			return err
		}
		prev = n
	}
	return nil
}

// writeBlankLines keeps up to MaxBlankLines of the blank source lines
// between two items.
func (w *Writer) writeBlankLines(prev, n *syntax.Node) {
	if !w.AtLineStart() {
		return
	}
	gap := min(n.Line-prev.EndLine-1, w.opts.MaxBlankLines)
	for i := 0; i < gap; i++ {
		w.Break()
	}
}

// writeCommentLine writes a comment standing between items. A comment
// starting on the line where prev ended stays on that line.
func (w *Writer) writeCommentLine(n, prev *syntax.Node) error {
	if prev != nil && prev.EndLine == n.Line && !w.AtLineStart() {
		w.writeByte(' ')
	} else {
		w.WriteIndent()
	}
	if err := w.WriteNode(n); err != nil {
		return err
	}
	w.Break()
	return nil
}

func (w *Writer) writeBlock(n *syntax.Node) error {
	w.WriteIndent()
	w.writeByte('{')
	w.Break()

	w.Indent()
	if err := w.writeItems(n); err != nil {
		return err
	}
	w.Dedent()

	w.WriteIndent()
	w.writeByte('}')
	w.Break()
	return nil
}
