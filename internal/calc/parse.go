package calc

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

type nodeKind int

// Node kinds double as the evaluator's whitelist.
const (
	nodeNumber nodeKind = iota
	nodeAdd
	nodeSub
	nodeMul
	nodeDiv
	nodePow
	nodeNeg
)

type node struct {
	kind  nodeKind
	value float64 // nodeNumber only
	left  *node
	right *node // nil for nodeNeg
}

// Grammar (precedence low to high, power right-associative):
//
//	expr    := term (('+' | '-') term)*
//	term    := unary (('*' | '/') unary)*
//	unary   := '-' unary | power
//	power   := primary ('^' unary)?
//	primary := number | '(' expr ')'
//
// Unary minus binds looser than power on the left and is allowed in the
// exponent, so -2^2 = -4 and 2^-1 = 0.5.
type parser struct {
	input string
	pos   int
}

func parse(expr string) (*node, error) {
	p := &parser{input: expr}
	p.skipSpaces()
	if p.eof() {
		return nil, &ParseError{Detail: "empty expression"}
	}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if !p.eof() {
		return nil, p.errUnexpected()
	}
	return n, nil
}

func (p *parser) parseExpr() (*node, error) {
	n, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpaces()
		var kind nodeKind
		switch {
		case p.accept('+'):
			kind = nodeAdd
		case p.accept('-'):
			kind = nodeSub
		default:
			return n, nil
		}
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		n = &node{kind: kind, left: n, right: rhs}
	}
}

func (p *parser) parseTerm() (*node, error) {
	n, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpaces()
		var kind nodeKind
		switch {
		case p.accept('*'):
			kind = nodeMul
		case p.accept('/'):
			kind = nodeDiv
		default:
			return n, nil
		}
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		n = &node{kind: kind, left: n, right: rhs}
	}
}

func (p *parser) parseUnary() (*node, error) {
	p.skipSpaces()
	if p.accept('-') {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeNeg, left: operand}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (*node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if !p.accept('^') {
		return base, nil
	}
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &node{kind: nodePow, left: base, right: exp}, nil
}

func (p *parser) parsePrimary() (*node, error) {
	p.skipSpaces()
	if p.eof() {
		return nil, &ParseError{Detail: "unexpected end of expression"}
	}
	if p.accept('(') {
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.skipSpaces()
		if !p.accept(')') {
			return nil, &ParseError{Detail: "missing closing parenthesis"}
		}
		return n, nil
	}
	return p.parseNumber()
}

func (p *parser) parseNumber() (*node, error) {
	start := p.pos
	for !p.eof() {
		c := p.input[p.pos]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		p.pos++
	}
	lit := p.input[start:p.pos]
	if !strings.ContainsAny(lit, "0123456789") {
		p.pos = start
		return nil, p.errUnexpected()
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, &ParseError{Detail: fmt.Sprintf("bad number %q", lit)}
	}
	return &node{kind: nodeNumber, value: v}, nil
}

func (p *parser) eof() bool { return p.pos >= len(p.input) }

func (p *parser) skipSpaces() {
	for !p.eof() && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) accept(c byte) bool {
	if p.eof() || p.input[p.pos] != c {
		return false
	}
	p.pos++
	return true
}

func (p *parser) errUnexpected() *ParseError {
	if p.eof() {
		return &ParseError{Detail: "unexpected end of expression"}
	}
	r, _ := utf8.DecodeRuneInString(p.input[p.pos:])
	return &ParseError{Detail: fmt.Sprintf("unexpected %q at position %d", r, p.pos)}
}
