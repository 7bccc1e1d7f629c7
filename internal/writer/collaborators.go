package writer

import (
	"strings"

	"github.com/donaldgifford/spfmt/internal/syntax"
)

// needsSpace reports whether a separating space is required before the
// next token.
func (w *Writer) needsSpace() bool {
	if w.AtLineStart() {
		return false
	}
	switch w.out.String()[w.out.Len()-1] {
	case ' ', '\t', '(', '[', '{':
		return false
	}
	return true
}

// writeComment writes a comment found inside a declaration. Line comments
// continue the declaration on the next line at the current indent.
func writeComment(n *syntax.Node, w *Writer) error {
	text, err := w.text(n)
	if err != nil {
		return err
	}

	if w.needsSpace() {
		w.writeByte(' ')
	}
	w.WriteString(text)

	if strings.HasPrefix(text, "//") {
		w.Break()
		w.WriteIndent()
		return nil
	}

	switch n.NextSiblingKind() {
	case syntax.KindInvalid,
		syntax.KindSemicolon,
		syntax.KindComma,
		syntax.KindRParen,
		syntax.KindRBracket,
		syntax.KindRBrace:
	default:
		w.writeByte(' ')
	}
	return nil
}

// writeDimension writes "[]" or "[size]". Inline dimensions follow a type
// and are separated from the declarator by one space.
func writeDimension(n *syntax.Node, w *Writer, inline bool) error {
	w.writeByte('[')
	for _, c := range n.Children {
		switch {
		case c.Kind == syntax.KindLBracket || c.Kind == syntax.KindRBracket:
		case c.Kind.IsExpression():
			if err := writeExpression(c, w); err != nil {
				return err
			}
		default:
			w.unexpected(c, n.Kind.String())
		}
	}
	w.writeByte(']')

	if inline && !n.NextSiblingKind().IsDimension() {
		w.writeByte(' ')
	}
	return nil
}

// writeDynamicArray writes "new type[size]".
func writeDynamicArray(n *syntax.Node, w *Writer) error {
	for _, c := range n.Children {
		var err error
		switch c.Kind {
		case syntax.KindNew:
			err = writeKeyword(c, w)
		case syntax.KindType:
			err = writeType(c, w)
		case syntax.KindFixedDimension, syntax.KindDimension:
			err = writeDimension(c, w, false)
		default:
			w.unexpected(c, n.Kind.String())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// writeOldType writes a legacy tag such as "Float:".
func writeOldType(n *syntax.Node, w *Writer) error {
	for _, c := range n.Children {
		switch c.Kind {
		case syntax.KindSymbol, syntax.KindPunctuation:
			if err := w.WriteNode(c); err != nil {
				return err
			}
		default:
			w.unexpected(c, n.Kind.String())
		}
	}
	return nil
}

// writeAssign writes "=" with one space on each side. A comment before
// it may already have supplied the leading space.
func writeAssign(w *Writer) {
	if w.needsSpace() {
		w.writeByte(' ')
	}
	w.WriteString("= ")
}

// writeKeyword writes a modifier or marker keyword and one space.
func writeKeyword(n *syntax.Node, w *Writer) error {
	if err := w.WriteNode(n); err != nil {
		return err
	}
	w.writeByte(' ')
	return nil
}

// insertBreak ends a top-level declaration, unless a comment follows on
// the same source line; the driver then appends it to this line.
func insertBreak(n *syntax.Node, w *Writer) {
	if next := n.NextSibling(); next != nil && next.Kind == syntax.KindComment && next.Line == n.EndLine {
		return
	}
	w.Break()
}

// writeExpression writes an expression with canonical spacing and no
// surrounding whitespace.
func writeExpression(n *syntax.Node, w *Writer) error {
	switch n.Kind {
	case syntax.KindSymbol,
		syntax.KindIntLiteral,
		syntax.KindFloatLiteral,
		syntax.KindCharLiteral,
		syntax.KindStringLiteral,
		syntax.KindBoolLiteral,
		syntax.KindNull,
		syntax.KindThis:
		return w.WriteNode(n)

	case syntax.KindBinaryExpression, syntax.KindTernaryExpression:
		for _, c := range n.Children {
			if c.Kind == syntax.KindOperator {
				w.writeByte(' ')
				if err := w.WriteNode(c); err != nil {
					return err
				}
				w.writeByte(' ')
				continue
			}
			if err := writeExpression(c, w); err != nil {
				return err
			}
		}
		return nil

	case syntax.KindUnaryExpression:
		return writeUnary(n, w)

	case syntax.KindArgumentList, syntax.KindArrayLiteral:
		return writeList(n, w)

	case syntax.KindParenthesizedExpression,
		syntax.KindCallExpression,
		syntax.KindArrayIndexedAccess,
		syntax.KindFieldAccess,
		syntax.KindViewAs:
		for _, c := range n.Children {
			var err error
			if c.Kind.IsExpression() || c.Kind == syntax.KindArgumentList {
				err = writeExpression(c, w)
			} else {
				err = w.WriteNode(c)
			}
			if err != nil {
				return err
			}
		}
		return nil
	}

	w.unexpected(n, "expression")
	return w.WriteNode(n)
}

func writeUnary(n *syntax.Node, w *Writer) error {
	if len(n.Children) != 2 {
		w.unexpected(n, "expression")
		return w.WriteNode(n)
	}
	op, operand := n.Children[0], n.Children[1]

	opText, err := w.text(op)
	if err != nil {
		return err
	}
	w.WriteString(opText)

	// "- -x" must not collapse into the "--" token.
	if operand.Kind == syntax.KindUnaryExpression && len(operand.Children) > 0 {
		inner, err := w.text(operand.Children[0])
		if err != nil {
			return err
		}
		if (opText == "-" || opText == "+") && inner == opText {
			w.writeByte(' ')
		}
	}
	return writeExpression(operand, w)
}

// writeList writes a delimited list as "(a, b)" or "{a, b}". A trailing
// comma in the source is dropped. Comments stay between the elements they
// were written between.
func writeList(n *syntax.Node, w *Writer) error {
	sep := false
	for _, c := range n.Children {
		var err error
		switch {
		case c.Kind == syntax.KindComma:
		case c.Kind == syntax.KindComment:
			if sep && followedByElement(c) {
				w.WriteString(", ")
				sep = false
			}
			err = writeComment(c, w)
		case c.Kind.IsExpression():
			if sep {
				w.WriteString(", ")
			}
			sep = true
			err = writeExpression(c, w)
		default:
			err = w.WriteNode(c)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// followedByElement reports whether the next sibling of n, skipping
// comments, is a list element rather than a comma or closing delimiter.
func followedByElement(n *syntax.Node) bool {
	for s := n.NextSibling(); s != nil; s = s.NextSibling() {
		if s.Kind == syntax.KindComment {
			continue
		}
		return s.Kind.IsExpression()
	}
	return false
}
