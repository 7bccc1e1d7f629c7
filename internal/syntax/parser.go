package syntax

import "fmt"

// reserved words may not be used as variable or type names.
var reserved = map[string]bool{
	"new":     true,
	"decl":    true,
	"const":   true,
	"static":  true,
	"public":  true,
	"stock":   true,
	"view_as": true,
	"true":    true,
	"false":   true,
	"null":    true,
	"this":    true,
}

// binaryPrec maps binary operators to their binding strength.
var binaryPrec = map[string]int{
	"||": 1,
	"&&": 2,
	"|":  3,
	"^":  4,
	"&":  5,
	"==": 6, "!=": 6,
	"<": 7, ">": 7, "<=": 7, ">=": 7,
	"<<": 8, ">>": 8, ">>>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
}

// unaryOps are the supported prefix operators.
var unaryOps = map[string]bool{
	"-": true,
	"+": true,
	"!": true,
	"~": true,
}

// Parse converts SourcePawn source into a syntax tree. The accepted
// language is variable declarations (modern and legacy), comments, and
// brace blocks holding block-scoped declarations.
func Parse(src []byte) (*Tree, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	root := &Node{Kind: KindSourceFile}
	if err := p.parseItems(root, false); err != nil {
		return nil, err
	}

	root.Start, root.End = 0, len(src)
	root.Line, root.Col = 1, 1
	root.EndLine = toks[len(toks)-1].line

	return &Tree{Source: src, Root: root}, nil
}

// parser is a recursive-descent parser over a token slice.
type parser struct {
	toks    []token
	pos     int
	pending []token // Comments consumed while inside an expression.
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return &SyntaxError{Line: t.line, Col: t.col, Msg: fmt.Sprintf(format, args...)}
}

// peekAt returns the n-th upcoming non-comment token without consuming.
func (p *parser) peekAt(n int) token {
	for i := p.pos; i < len(p.toks); i++ {
		if p.toks[i].kind == tokComment {
			continue
		}
		if n == 0 || p.toks[i].kind == tokEOF {
			return p.toks[i]
		}
		n--
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) peek() token {
	return p.peekAt(0)
}

// next consumes the next non-comment token. Skipped comments are kept in
// pending until the enclosing declaration attaches them.
func (p *parser) next() token {
	for p.toks[p.pos].kind == tokComment {
		p.pending = append(p.pending, p.toks[p.pos])
		p.pos++
	}
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// attachComments moves pending and upcoming comments into parent.
func (p *parser) attachComments(parent *Node) {
	for p.toks[p.pos].kind == tokComment {
		p.pending = append(p.pending, p.toks[p.pos])
		p.pos++
	}
	p.flushPending(parent)
}

func (p *parser) flushPending(parent *Node) {
	for _, t := range p.pending {
		parent.appendChild(nodeFromToken(KindComment, t))
	}
	p.pending = p.pending[:0]
}

func (p *parser) leaf(kind Kind) *Node {
	return nodeFromToken(kind, p.next())
}

func (p *parser) expect(text string, kind Kind) (*Node, error) {
	if t := p.peek(); !t.is(text) {
		return nil, p.errorf(t, "expected %q, found %s", text, t.describe())
	}
	return p.leaf(kind), nil
}

func nodeFromToken(kind Kind, t token) *Node {
	return &Node{
		Kind:    kind,
		Start:   t.start,
		End:     t.end,
		Line:    t.line,
		Col:     t.col,
		EndLine: t.endLine,
	}
}

func (t token) is(text string) bool {
	return (t.kind == tokPunct || t.kind == tokIdent) && t.text == text
}

func (t token) isName() bool {
	return t.kind == tokIdent && !reserved[t.text]
}

func (t token) describe() string {
	if t.kind == tokEOF {
		return "end of file"
	}
	return fmt.Sprintf("%q", t.text)
}

// parseItems parses comments, blocks and declarations into parent until
// end of file, or until the closing brace when inBlock is set.
func (p *parser) parseItems(parent *Node, inBlock bool) error {
	for {
		t := p.toks[p.pos]
		switch {
		case t.kind == tokEOF:
			if inBlock {
				return p.errorf(t, "unterminated block")
			}
			return nil
		case t.kind == tokComment:
			parent.appendChild(nodeFromToken(KindComment, t))
			p.pos++
		case t.is("{"):
			if err := p.parseBlock(parent); err != nil {
				return err
			}
		case t.is("}"):
			if !inBlock {
				return p.errorf(t, "unexpected \"}\"")
			}
			return nil
		default:
			if err := p.parseDeclaration(parent, inBlock); err != nil {
				return err
			}
		}
	}
}

func (p *parser) parseBlock(parent *Node) error {
	block := &Node{Kind: KindBlock}
	block.appendChild(p.leaf(KindLBrace))
	if err := p.parseItems(block, true); err != nil {
		return err
	}
	block.appendChild(p.leaf(KindRBrace))
	parent.appendChild(block)
	return nil
}

// parseDeclaration parses one modern or legacy variable declaration.
func (p *parser) parseDeclaration(parent *Node, local bool) error {
	decl := &Node{}
	legacy := false
	modified := false

modifiers:
	for {
		p.attachComments(decl)
		t := p.peek()
		switch {
		case t.is("public") || t.is("stock"):
			if local {
				return p.errorf(t, "visibility %q not allowed in a local declaration", t.text)
			}
			decl.appendChild(p.leaf(KindVariableVisibility))
		case t.is("const") || t.is("static"):
			decl.appendChild(p.parseStorageClass())
		case t.is("new") || t.is("decl"):
			if legacy {
				return p.errorf(t, "unexpected %q", t.text)
			}
			legacy = true
			kind := KindNew
			if t.text == "decl" {
				kind = KindDecl
			}
			decl.appendChild(p.leaf(kind))
		default:
			break modifiers
		}
		modified = true
	}

	t := p.peek()
	if !t.isName() {
		return p.errorf(t, "expected declaration, found %s", t.describe())
	}
	if !legacy {
		switch {
		case p.peekAt(1).is(":"):
			legacy = true
		case p.startsModernDeclarator():
		case modified:
			legacy = true
		default:
			return p.errorf(t, "expected declaration, found %s", t.describe())
		}
	}

	var err error
	if legacy {
		decl.Kind = KindOldGlobalVariableDeclaration
		if local {
			decl.Kind = KindOldVariableDeclarationStatement
		}
		err = p.parseDeclarators(decl, p.parseOldVariableDeclarator)
	} else {
		decl.Kind = KindGlobalVariableDeclaration
		if local {
			decl.Kind = KindVariableDeclarationStatement
		}
		err = p.parseModern(decl)
	}
	if err != nil {
		return err
	}

	if p.peek().is(";") {
		p.attachComments(decl)
		decl.appendChild(p.leaf(KindSemicolon))
	} else {
		p.flushPending(decl)
	}

	parent.appendChild(decl)
	return nil
}

// startsModernDeclarator reports whether the upcoming name is a type: it
// is followed, after any dimensions, by another name.
func (p *parser) startsModernDeclarator() bool {
	i := 1
	for p.peekAt(i).is("[") {
		depth := 0
		for {
			t := p.peekAt(i)
			if t.kind == tokEOF {
				return false
			}
			i++
			if t.is("[") {
				depth++
			} else if t.is("]") {
				depth--
				if depth == 0 {
					break
				}
			}
		}
	}
	return p.peekAt(i).isName()
}

func (p *parser) parseStorageClass() *Node {
	sc := &Node{Kind: KindVariableStorageClass}
	for {
		switch t := p.peek(); {
		case t.is("const"):
			sc.appendChild(p.leaf(KindConst))
		case t.is("static"):
			sc.appendChild(p.leaf(KindStatic))
		default:
			return sc
		}
	}
}

func (p *parser) parseModern(decl *Node) error {
	p.attachComments(decl)
	decl.appendChild(p.leaf(KindType))

	for p.peek().is("[") {
		p.attachComments(decl)
		dim, err := p.parseDimension()
		if err != nil {
			return err
		}
		decl.appendChild(dim)
	}

	return p.parseDeclarators(decl, p.parseVariableDeclarator)
}

// parseDeclarators parses a comma separated declarator list into decl.
func (p *parser) parseDeclarators(decl *Node, declarator func() (*Node, error)) error {
	for {
		p.attachComments(decl)
		d, err := declarator()
		if err != nil {
			return err
		}
		decl.appendChild(d)

		if !p.peek().is(",") {
			return nil
		}
		p.attachComments(decl)
		decl.appendChild(p.leaf(KindComma))
	}
}

func (p *parser) parseSymbol() (*Node, error) {
	if t := p.peek(); !t.isName() {
		return nil, p.errorf(t, "expected variable name, found %s", t.describe())
	}
	return p.leaf(KindSymbol), nil
}

func (p *parser) parseVariableDeclarator() (*Node, error) {
	d := &Node{Kind: KindVariableDeclaration}
	sym, err := p.parseSymbol()
	if err != nil {
		return nil, err
	}
	d.appendChild(sym)

	if err := p.parseDeclaratorDimensions(d); err != nil {
		return nil, err
	}

	if !p.peek().is("=") {
		return d, nil
	}
	p.attachComments(d)
	d.appendChild(p.leaf(KindAssign))
	p.attachComments(d)

	var init *Node
	if p.peek().is("new") {
		init, err = p.parseDynamicArray()
	} else {
		init, err = p.parseExpression()
	}
	if err != nil {
		return nil, err
	}
	d.appendChild(init)
	p.flushPending(d)
	return d, nil
}

func (p *parser) parseOldVariableDeclarator() (*Node, error) {
	d := &Node{Kind: KindOldVariableDeclaration}

	if t := p.peek(); t.isName() && p.peekAt(1).is(":") {
		tag := &Node{Kind: KindOldType}
		tag.appendChild(p.leaf(KindSymbol))
		tag.appendChild(p.leaf(KindPunctuation))
		d.appendChild(tag)
	}

	sym, err := p.parseSymbol()
	if err != nil {
		return nil, err
	}
	d.appendChild(sym)

	if err := p.parseDeclaratorDimensions(d); err != nil {
		return nil, err
	}

	if !p.peek().is("=") {
		return d, nil
	}
	p.attachComments(d)
	d.appendChild(p.leaf(KindAssign))
	p.attachComments(d)

	init, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	d.appendChild(init)
	p.flushPending(d)
	return d, nil
}

// parseDeclaratorDimensions parses the dimensions after a declarator
// name. Comments before each dimension stay in the declarator.
func (p *parser) parseDeclaratorDimensions(d *Node) error {
	for p.peek().is("[") {
		p.attachComments(d)
		dim, err := p.parseDimension()
		if err != nil {
			return err
		}
		d.appendChild(dim)
	}
	return nil
}

// parseDimension parses "[]" into a dimension and "[expr]" into a
// fixed_dimension.
func (p *parser) parseDimension() (*Node, error) {
	dim := &Node{Kind: KindDimension}
	dim.appendChild(p.leaf(KindLBracket))

	if !p.peek().is("]") {
		dim.Kind = KindFixedDimension
		size, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		dim.appendChild(size)
	}

	rb, err := p.expect("]", KindRBracket)
	if err != nil {
		return nil, err
	}
	dim.appendChild(rb)
	return dim, nil
}

// parseDynamicArray parses "new type[size]...".
func (p *parser) parseDynamicArray() (*Node, error) {
	arr := &Node{Kind: KindDynamicArray}
	arr.appendChild(p.leaf(KindNew))

	if t := p.peek(); !t.isName() {
		return nil, p.errorf(t, "expected type after \"new\", found %s", t.describe())
	}
	arr.appendChild(p.leaf(KindType))

	if t := p.peek(); !t.is("[") {
		return nil, p.errorf(t, "expected array size, found %s", t.describe())
	}
	for p.peek().is("[") {
		dim, err := p.parseDimension()
		if err != nil {
			return nil, err
		}
		if dim.Kind != KindFixedDimension {
			return nil, p.errorf(p.peek(), "dynamic array requires a size")
		}
		arr.appendChild(dim)
	}
	return arr, nil
}

func (p *parser) parseExpression() (*Node, error) {
	cond, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	if !p.peek().is("?") {
		return cond, nil
	}

	tern := &Node{Kind: KindTernaryExpression}
	tern.appendChild(cond)
	tern.appendChild(p.leaf(KindOperator))
	then, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	tern.appendChild(then)
	colon, err := p.expect(":", KindOperator)
	if err != nil {
		return nil, err
	}
	tern.appendChild(colon)
	els, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	tern.appendChild(els)
	return tern, nil
}

func (p *parser) parseBinary(minPrec int) (*Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		t := p.peek()
		prec, ok := binaryPrec[t.text]
		if t.kind != tokPunct || !ok || prec < minPrec {
			return left, nil
		}
		op := p.leaf(KindOperator)
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		bin := &Node{Kind: KindBinaryExpression}
		bin.appendChild(left)
		bin.appendChild(op)
		bin.appendChild(right)
		left = bin
	}
}

func (p *parser) parseUnary() (*Node, error) {
	if t := p.peek(); t.kind == tokPunct && unaryOps[t.text] {
		un := &Node{Kind: KindUnaryExpression}
		un.appendChild(p.leaf(KindOperator))
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		un.appendChild(operand)
		return un, nil
	}

	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfix(x)
}

func (p *parser) parsePrimary() (*Node, error) {
	t := p.peek()
	switch t.kind {
	case tokInt:
		return p.leaf(KindIntLiteral), nil
	case tokFloat:
		return p.leaf(KindFloatLiteral), nil
	case tokChar:
		return p.leaf(KindCharLiteral), nil
	case tokString:
		return p.leaf(KindStringLiteral), nil
	case tokIdent:
		switch t.text {
		case "true", "false":
			return p.leaf(KindBoolLiteral), nil
		case "null":
			return p.leaf(KindNull), nil
		case "this":
			return p.leaf(KindThis), nil
		case "view_as":
			return p.parseViewAs()
		}
		if t.isName() {
			return p.leaf(KindSymbol), nil
		}
	case tokPunct:
		switch t.text {
		case "(":
			paren := &Node{Kind: KindParenthesizedExpression}
			paren.appendChild(p.leaf(KindLParen))
			inner, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			paren.appendChild(inner)
			rp, err := p.expect(")", KindRParen)
			if err != nil {
				return nil, err
			}
			paren.appendChild(rp)
			return paren, nil
		case "{":
			return p.parseList(KindArrayLiteral, "{", "}", KindLBrace, KindRBrace)
		}
	}
	return nil, p.errorf(t, "expected expression, found %s", t.describe())
}

// parseList parses an open-delimited, comma separated expression list. A
// trailing comma is accepted. Comments become children of the list.
func (p *parser) parseList(kind Kind, open, closing string, openKind, closeKind Kind) (*Node, error) {
	list := &Node{Kind: kind}
	lb, err := p.expect(open, openKind)
	if err != nil {
		return nil, err
	}
	list.appendChild(lb)

	for {
		p.attachComments(list)
		if p.peek().is(closing) {
			break
		}
		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		list.appendChild(elem)
		if !p.peek().is(",") {
			break
		}
		p.attachComments(list)
		list.appendChild(p.leaf(KindComma))
	}

	p.attachComments(list)
	rb, err := p.expect(closing, closeKind)
	if err != nil {
		return nil, err
	}
	list.appendChild(rb)
	return list, nil
}

func (p *parser) parsePostfix(x *Node) (*Node, error) {
	for {
		var wrapped *Node
		switch t := p.peek(); {
		case t.is("("):
			args, err := p.parseList(KindArgumentList, "(", ")", KindLParen, KindRParen)
			if err != nil {
				return nil, err
			}
			wrapped = &Node{Kind: KindCallExpression}
			wrapped.appendChild(x)
			wrapped.appendChild(args)

		case t.is("["):
			wrapped = &Node{Kind: KindArrayIndexedAccess}
			wrapped.appendChild(x)
			wrapped.appendChild(p.leaf(KindLBracket))
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			wrapped.appendChild(index)
			rb, err := p.expect("]", KindRBracket)
			if err != nil {
				return nil, err
			}
			wrapped.appendChild(rb)

		case t.is("."):
			wrapped = &Node{Kind: KindFieldAccess}
			wrapped.appendChild(x)
			wrapped.appendChild(p.leaf(KindPunctuation))
			field, err := p.parseSymbol()
			if err != nil {
				return nil, err
			}
			wrapped.appendChild(field)

		default:
			return x, nil
		}
		x = wrapped
	}
}

// parseViewAs parses "view_as<Type>(expr)".
func (p *parser) parseViewAs() (*Node, error) {
	va := &Node{Kind: KindViewAs}
	va.appendChild(p.leaf(KindPunctuation))

	lt, err := p.expect("<", KindPunctuation)
	if err != nil {
		return nil, err
	}
	va.appendChild(lt)

	if t := p.peek(); !t.isName() {
		return nil, p.errorf(t, "expected type, found %s", t.describe())
	}
	va.appendChild(p.leaf(KindType))

	gt, err := p.expect(">", KindPunctuation)
	if err != nil {
		return nil, err
	}
	va.appendChild(gt)

	lp, err := p.expect("(", KindLParen)
	if err != nil {
		return nil, err
	}
	va.appendChild(lp)
	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	va.appendChild(inner)
	rp, err := p.expect(")", KindRParen)
	if err != nil {
		return nil, err
	}
	va.appendChild(rp)
	return va, nil
}
