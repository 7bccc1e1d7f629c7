package writer

import (
	"github.com/donaldgifford/spfmt/internal/syntax"
)

// grammar captures what differs between the modern and legacy declaration
// forms. The assemblers below run one loop for both; a construct is
// written entirely under one grammar, so the forms never mix.
type grammar struct {
	// typed allows a leading type token and dimensions attached to it.
	typed bool
	// marked allows the "new" and "decl" markers.
	marked bool

	declarator      syntax.Kind
	writeDeclarator func(n *syntax.Node, w *Writer) error

	// globalBreak ends a global declaration.
	globalBreak func(n *syntax.Node, w *Writer)
	// statementBreak makes indented statements end their own line.
	statementBreak bool
}

var (
	modernGrammar = grammar{
		typed:           true,
		declarator:      syntax.KindVariableDeclaration,
		writeDeclarator: writeVariableDeclaration,
		globalBreak:     insertBreak,
	}

	legacyGrammar = grammar{
		marked:          true,
		declarator:      syntax.KindOldVariableDeclaration,
		writeDeclarator: writeOldVariableDeclaration,
		globalBreak:     func(_ *syntax.Node, w *Writer) { w.Break() },
		statementBreak:  true,
	}
)

// WriteGlobalVariableDeclaration writes a modern file-scope declaration
// such as "static const int a, b[10];" followed by a structural break.
func WriteGlobalVariableDeclaration(n *syntax.Node, w *Writer) error {
	return writeGlobal(&modernGrammar, n, w)
}

// WriteOldGlobalVariableDeclaration writes a legacy file-scope declaration
// such as "new Float:x = 1.0, y;" followed by a line break.
func WriteOldGlobalVariableDeclaration(n *syntax.Node, w *Writer) error {
	return writeGlobal(&legacyGrammar, n, w)
}

// WriteVariableDeclarationStatement writes a modern block-scoped
// declaration. With indent set, the statement is indented and always
// terminated by ";". The caller ends the line.
func WriteVariableDeclarationStatement(n *syntax.Node, w *Writer, indent bool) error {
	return writeStatement(&modernGrammar, n, w, indent)
}

// WriteOldVariableDeclarationStatement writes a legacy block-scoped
// declaration. With indent set, the statement is indented, terminated by
// ";" and ends its line.
func WriteOldVariableDeclarationStatement(n *syntax.Node, w *Writer, indent bool) error {
	return writeStatement(&legacyGrammar, n, w, indent)
}

// writePrefix handles the children shared by globals and statements:
// modifiers, markers, the type and its dimensions, comments, declarators
// and commas. It reports false for kinds it does not handle.
func (g *grammar) writePrefix(c *syntax.Node, w *Writer) (bool, error) {
	switch c.Kind {
	case syntax.KindVariableStorageClass:
		return true, writeVariableStorageClass(c, w)
	case syntax.KindNew, syntax.KindDecl:
		if !g.marked {
			return false, nil
		}
		return true, writeKeyword(c, w)
	case syntax.KindType:
		if !g.typed {
			return false, nil
		}
		return true, writeType(c, w)
	case syntax.KindDimension, syntax.KindFixedDimension:
		if !g.typed {
			return false, nil
		}
		return true, writeDimension(c, w, true)
	case syntax.KindComment:
		return true, writeComment(c, w)
	case syntax.KindComma:
		w.WriteString(", ")
		return true, nil
	case g.declarator:
		return true, g.writeDeclarator(c, w)
	}
	return false, nil
}

func writeGlobal(g *grammar, n *syntax.Node, w *Writer) error {
	for _, c := range n.Children {
		switch c.Kind {
		case syntax.KindVariableVisibility:
			if err := writeKeyword(c, w); err != nil {
				return err
			}
			continue
		case syntax.KindSemicolon:
			continue
		}

		ok, err := g.writePrefix(c, w)
		if err != nil {
			return err
		}
		if !ok {
			w.unexpected(c, n.Kind.String())
		}
	}

	w.writeByte(';')
	g.globalBreak(n, w)
	return nil
}

func writeStatement(g *grammar, n *syntax.Node, w *Writer, indent bool) error {
	if indent {
		w.WriteIndent()
	}

	for _, c := range n.Children {
		if c.Kind == syntax.KindSemicolon {
			w.writeByte(';')
			continue
		}

		ok, err := g.writePrefix(c, w)
		if err != nil {
			return err
		}
		if !ok {
			w.unexpected(c, n.Kind.String())
			if err := w.WriteNode(c); err != nil {
				return err
			}
		}
	}

	if indent && !w.EndsWith(';') {
		w.writeByte(';')
	}
	if indent && g.statementBreak {
		w.Break()
	}
	return nil
}

// writeType writes a type token. A space follows unless the next sibling
// is a dimension, which binds to the type: "int[5] x".
func writeType(n *syntax.Node, w *Writer) error {
	if err := w.WriteNode(n); err != nil {
		return err
	}
	if !n.NextSiblingKind().IsDimension() {
		w.writeByte(' ')
	}
	return nil
}

// writeVariableStorageClass writes "const" and "static" in source order,
// each followed by one space.
func writeVariableStorageClass(n *syntax.Node, w *Writer) error {
	for _, c := range n.Children {
		var err error
		switch c.Kind {
		case syntax.KindConst, syntax.KindStatic:
			err = writeKeyword(c, w)
		default:
			err = w.WriteNode(c)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// writeVariableDeclaration writes one modern declarator: symbol,
// dimensions and an optional initializer.
func writeVariableDeclaration(n *syntax.Node, w *Writer) error {
	for _, c := range n.Children {
		var err error
		switch {
		case c.Kind == syntax.KindSymbol:
			err = w.WriteNode(c)
		case c.Kind.IsDimension():
			err = writeDimension(c, w, false)
		case c.Kind == syntax.KindAssign:
			writeAssign(w)
		case c.Kind == syntax.KindComment:
			err = writeComment(c, w)
		case c.Kind == syntax.KindDynamicArray:
			err = writeDynamicArray(c, w)
		case c.Kind.IsExpression():
			err = writeExpression(c, w)
		default:
			w.unexpected(c, n.Kind.String())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// writeOldVariableDeclaration writes one legacy declarator: optional tag,
// symbol, dimensions and an optional initializer.
func writeOldVariableDeclaration(n *syntax.Node, w *Writer) error {
	for _, c := range n.Children {
		var err error
		switch {
		case c.Kind == syntax.KindOldType:
			err = writeOldType(c, w)
		case c.Kind.IsDimension():
			err = writeDimension(c, w, false)
		case c.Kind == syntax.KindSymbol:
			err = w.WriteNode(c)
		case c.Kind == syntax.KindAssign:
			writeAssign(w)
		case c.Kind == syntax.KindComment:
			err = writeComment(c, w)
		case c.Kind.IsExpression():
			err = writeExpression(c, w)
		default:
			w.unexpected(c, n.Kind.String())
		}
		if err != nil {
			return err
		}
	}
	return nil
}
