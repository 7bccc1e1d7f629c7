package writer

import (
	"fmt"

	"github.com/donaldgifford/spfmt/internal/syntax"
)

// Diagnostic records a node the writers did not expect in its position.
// The node is skipped (or copied verbatim in statements) and formatting
// continues.
type Diagnostic struct {
	Line    int
	Col     int
	Kind    syntax.Kind // Kind of the unexpected node.
	Context string      // Writer that met the node.
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: unexpected %s in %s", d.Line, d.Col, d.Kind, d.Context)
}

// unexpected records a diagnostic for n met inside context.
func (w *Writer) unexpected(n *syntax.Node, context string) {
	w.diags = append(w.diags, Diagnostic{
		Line:    n.Line,
		Col:     n.Col,
		Kind:    n.Kind,
		Context: context,
	})
}
