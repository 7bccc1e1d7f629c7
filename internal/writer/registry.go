package writer

import (
	"github.com/donaldgifford/spfmt/internal/syntax"
)

// ItemFunc writes one item of a source file or block, including the line
// break that ends it.
type ItemFunc func(n *syntax.Node, w *Writer) error

var items = map[syntax.Kind]ItemFunc{}

// Register sets the writer used for items of the given kind. Writers for
// constructs outside declarations hook in here.
func Register(kind syntax.Kind, fn ItemFunc) {
	items[kind] = fn
}

func init() {
	Register(syntax.KindGlobalVariableDeclaration, WriteGlobalVariableDeclaration)
	Register(syntax.KindOldGlobalVariableDeclaration, WriteOldGlobalVariableDeclaration)

	Register(syntax.KindVariableDeclarationStatement, func(n *syntax.Node, w *Writer) error {
		if err := WriteVariableDeclarationStatement(n, w, true); err != nil {
			return err
		}
		insertBreak(n, w)
		return nil
	})
	Register(syntax.KindOldVariableDeclarationStatement, func(n *syntax.Node, w *Writer) error {
		return WriteOldVariableDeclarationStatement(n, w, true)
	})
}
