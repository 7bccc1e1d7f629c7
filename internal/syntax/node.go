package syntax

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrDecode is returned when a node's source slice is not valid UTF-8.
var ErrDecode = errors.New("invalid utf-8 in source")

// Node is a single element of a parsed syntax tree. Nodes are created by
// the parser and must not be modified afterwards.
type Node struct {
	Kind     Kind
	Start    int // Byte offset of the first byte.
	End      int // Byte offset one past the last byte.
	Line     int // 1-indexed line of Start.
	Col      int // 1-indexed column of Start.
	EndLine  int // 1-indexed line of the last byte.
	Children []*Node

	parent *Node
	index  int
}

// Tree is the result of parsing one source file.
type Tree struct {
	Source []byte
	Root   *Node
}

// Parent returns the node's parent, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// NextSibling returns the node following n under the same parent, or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil || n.index+1 >= len(n.parent.Children) {
		return nil
	}
	return n.parent.Children[n.index+1]
}

// PrevSibling returns the node preceding n under the same parent, or nil.
func (n *Node) PrevSibling() *Node {
	if n.parent == nil || n.index == 0 {
		return nil
	}
	return n.parent.Children[n.index-1]
}

// NextSiblingKind returns the kind of the next sibling, or KindInvalid
// when n is the last child.
func (n *Node) NextSiblingKind() Kind {
	if next := n.NextSibling(); next != nil {
		return next.Kind
	}
	return KindInvalid
}

// Text returns the source text covered by n.
func (n *Node) Text(src []byte) (string, error) {
	if n.Start < 0 || n.End > len(src) || n.Start > n.End {
		return "", fmt.Errorf("%s at %d:%d: span [%d,%d) outside source", n.Kind, n.Line, n.Col, n.Start, n.End)
	}
	b := src[n.Start:n.End]
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%s at %d:%d: %w", n.Kind, n.Line, n.Col, ErrDecode)
	}
	return string(b), nil
}

// appendChild adds c as the last child of n and widens n's span.
func (n *Node) appendChild(c *Node) {
	c.parent = n
	c.index = len(n.Children)
	n.Children = append(n.Children, c)

	if len(n.Children) == 1 && n.End == 0 {
		n.Start, n.Line, n.Col = c.Start, c.Line, c.Col
	}
	if c.End > n.End {
		n.End = c.End
		n.EndLine = c.EndLine
	}
}

// Relink restores parent and sibling links below n. It is only needed for
// trees assembled by hand rather than by Parse.
func Relink(n *Node) {
	for i, c := range n.Children {
		c.parent = n
		c.index = i
		Relink(c)
	}
}
