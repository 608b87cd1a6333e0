package formula

import "fmt"

// Grammar:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = "-" unary | primary
//	primary = NUMBER | IDENT | IDENT "(" [ expr { "," expr } ] ")" | "(" expr ")"
type node interface{ pos() int }

type numberNode struct {
	at  int
	val float64
}

type identNode struct {
	at   int
	raw  string // as written in the formula
	name string // sanitized lookup key
}

type unaryNode struct {
	at      int
	operand node
}

type binaryNode struct {
	at          int
	op          tokenKind
	left, right node
}

type callNode struct {
	at   int
	name string
	args []node
}

func (n *numberNode) pos() int { return n.at }
func (n *identNode) pos() int  { return n.at }
func (n *unaryNode) pos() int  { return n.at }
func (n *binaryNode) pos() int { return n.at }
func (n *callNode) pos() int   { return n.at }

type parser struct {
	toks []token
	i    int
}

func parse(src string) (node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	root, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %s at position %d", tok.kind, tok.pos)
	}
	return root, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	tok := p.toks[p.i]
	if tok.kind != tokEOF {
		p.i++
	}
	return tok
}

func (p *parser) expr() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokPlus && tok.kind != tokMinus {
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{at: tok.pos, op: tok.kind, left: left, right: right}
	}
}

func (p *parser) term() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokStar && tok.kind != tokSlash {
			return left, nil
		}
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{at: tok.pos, op: tok.kind, left: left, right: right}
	}
}

func (p *parser) unary() (node, error) {
	if tok := p.peek(); tok.kind == tokMinus {
		p.next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{at: tok.pos, operand: operand}, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		return &numberNode{at: tok.pos, val: tok.num}, nil
	case tokIdent:
		if p.peek().kind == tokLParen {
			return p.call(tok)
		}
		return &identNode{at: tok.pos, raw: tok.text, name: Sanitize(tok.text)}, nil
	case tokLParen:
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, fmt.Errorf("expected ) at position %d, got %s", closing.pos, closing.kind)
		}
		return inner, nil
	case tokEOF:
		return nil, fmt.Errorf("unexpected end of formula")
	default:
		return nil, fmt.Errorf("unexpected %s at position %d", tok.kind, tok.pos)
	}
}

func (p *parser) call(name token) (node, error) {
	p.next() // consume "("
	call := &callNode{at: name.pos, name: Sanitize(name.text)}
	if p.peek().kind == tokRParen {
		p.next()
		return call, nil
	}
	for {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		call.args = append(call.args, arg)
		switch tok := p.next(); tok.kind {
		case tokComma:
			continue
		case tokRParen:
			return call, nil
		default:
			return nil, fmt.Errorf("expected , or ) at position %d, got %s", tok.pos, tok.kind)
		}
	}
}
