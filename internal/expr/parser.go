package expr

import (
	"fmt"
	"regexp"
	"strconv"
)

type parser struct {
	src   string
	toks  []token
	pos   int
	known func(string) bool
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return &SyntaxError{Src: p.src, Pos: t.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) isWord(word string) bool {
	t := p.peek()
	return t.kind == tokIdent && t.text == word
}

func (p *parser) isOp(op string) bool {
	t := p.peek()
	return t.kind == tokOp && t.text == op
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isWord("or") || p.isOp("||") {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &logicalNode{and: false, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isWord("and") || p.isOp("&&") {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &logicalNode{and: true, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.isWord("not") || p.isOp("!") {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &notNode{x: x}, nil
	}
	return p.parseCompare()
}

var compareOps = map[string]bool{
	"<": true, "<=": true, ">": true, ">=": true, "==": true, "!=": true,
	"=~": true, "!~": true,
}

func (p *parser) parseCompare() (node, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	t := p.peek()
	var op string
	switch {
	case t.kind == tokOp && compareOps[t.text]:
		op = t.text
	case p.isWord("in"):
		op = "in"
	default:
		return left, nil
	}
	p.next()
	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	cn := &compareNode{op: op, left: left, right: right}
	if op == "=~" || op == "!~" {
		if lit, ok := right.(*literalNode); ok {
			if lit.v.kind != kindString {
				return nil, p.errorf(t, "%s needs a string pattern", op)
			}
			re, err := regexp.Compile(lit.v.s)
			if err != nil {
				return nil, p.errorf(t, "invalid regular expression %q: %v", lit.v.s, err)
			}
			cn.re = re
		}
	}
	return cn, nil
}

func (p *parser) parseOperand() (node, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokLBrack {
		open := p.next()
		neg := false
		if p.isOp("-") {
			p.next()
			neg = true
		}
		t := p.next()
		if t.kind != tokInt {
			return nil, p.errorf(t, "expected index, found %s", t)
		}
		i, err := strconv.Atoi(t.text)
		if err != nil {
			return nil, p.errorf(t, "bad index %s", t.text)
		}
		if neg {
			i = -i
		}
		if c := p.next(); c.kind != tokRBrack {
			return nil, p.errorf(open, "unclosed [")
		}
		x = &indexNode{target: x, i: i}
	}
	return x, nil
}

func (p *parser) parsePrimary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokLParen:
		x, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			return nil, p.errorf(c, "expected ), found %s", c)
		}
		return x, nil
	case tokLBrack:
		return p.parseList(t)
	case tokString:
		return &literalNode{v: String(t.text)}, nil
	case tokInt:
		return p.intLiteral(t, false)
	case tokOp:
		if t.text == "-" {
			n := p.next()
			if n.kind != tokInt {
				return nil, p.errorf(n, "expected number after -")
			}
			return p.intLiteral(n, true)
		}
	case tokIdent:
		switch t.text {
		case "true":
			return &literalNode{v: Bool(true)}, nil
		case "false":
			return &literalNode{v: Bool(false)}, nil
		case "and", "or", "not", "in":
			return nil, p.errorf(t, "unexpected %s", t)
		}
		if p.known != nil && !p.known(t.text) {
			return nil, p.errorf(t, "unknown field %s", t)
		}
		return &fieldNode{name: t.text}, nil
	}
	return nil, p.errorf(t, "unexpected %s", t)
}

func (p *parser) intLiteral(t token, negative bool) (node, error) {
	n, err := strconv.ParseInt(t.text, 10, 64)
	if err != nil {
		return nil, p.errorf(t, "number out of range: %s", t.text)
	}
	if negative {
		n = -n
	}
	return &literalNode{v: Int(n)}, nil
}

func (p *parser) parseList(open token) (node, error) {
	ln := &listNode{}
	if p.peek().kind == tokRBrack {
		p.next()
		return ln, nil
	}
	for {
		item, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		ln.items = append(ln.items, item)
		t := p.next()
		switch t.kind {
		case tokComma:
			continue
		case tokRBrack:
			return ln, nil
		}
		return nil, p.errorf(open, "unclosed [")
	}
}
