package eval

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

func ParseString(str string) (Expression, error) {
	return Parse(strings.NewReader(str))
}

// Parse returns the first expression found in r.
func Parse(r io.Reader) (Expression, error) {
	return NewParser(r).Parse()
}

type Parser struct {
	scan *Scanner
	curr Token
	peek Token

	prefix map[rune]func() (Expression, error)
	infix  map[rune]func(Expression) (Expression, error)
}

func NewParser(r io.Reader) *Parser {
	p := Parser{
		scan:   Scan(r),
		infix:  make(map[rune]func(Expression) (Expression, error)),
		prefix: make(map[rune]func() (Expression, error)),
	}
	p.registerInfix(Add, p.parseBinary)
	p.registerInfix(Sub, p.parseBinary)
	p.registerInfix(Mul, p.parseBinary)
	p.registerInfix(Div, p.parseBinary)
	p.registerInfix(Mod, p.parseBinary)
	p.registerInfix(And, p.parseBinary)
	p.registerInfix(Or, p.parseBinary)
	p.registerInfix(Eq, p.parseRelational)
	p.registerInfix(Ne, p.parseRelational)
	p.registerInfix(Lt, p.parseRelational)
	p.registerInfix(Le, p.parseRelational)
	p.registerInfix(Gt, p.parseRelational)
	p.registerInfix(Ge, p.parseRelational)

	p.registerPrefix(Ident, p.parseIdentifier)
	p.registerPrefix(Number, p.parseNumber)
	p.registerPrefix(Boolean, p.parseBool)
	p.registerPrefix(Lparen, p.parseGroup)
	p.registerPrefix(Not, p.parseUnary)
	p.registerPrefix(Keyword, p.parseKeyword)

	p.next()
	p.next()
	return &p
}

// Parse consumes one expression per call and reports io.EOF once the
// input is exhausted.
func (p *Parser) Parse() (Expression, error) {
	p.skip(EOL)
	if p.done() {
		return nil, io.EOF
	}
	e, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	if !p.done() && !p.eol() {
		return nil, p.unexpected()
	}
	p.skip(EOL)
	return e, nil
}

func (p *Parser) parseBinary(left Expression) (Expression, error) {
	b := Binary{
		Op:       p.curr.Type,
		Left:     left,
		Position: p.curr.Position,
	}
	p.next()
	right, err := p.parseExpression(bindings[b.Op])
	if err != nil {
		return nil, err
	}
	b.Right = right
	return b, nil
}

func (p *Parser) parseRelational(left Expression) (Expression, error) {
	rel := Relational{
		Op:       p.curr.Type,
		Left:     left,
		Position: p.curr.Position,
	}
	p.next()
	right, err := p.parseExpression(bindings[rel.Op])
	if err != nil {
		return nil, err
	}
	rel.Right = right
	return rel, nil
}

func (p *Parser) parseIdentifier() (Expression, error) {
	defer p.next()
	return createVariable(p.curr.Literal, p.curr.Position), nil
}

func (p *Parser) parseNumber() (Expression, error) {
	defer p.next()
	if strings.ContainsRune(p.curr.Literal, dot) {
		f, err := strconv.ParseFloat(p.curr.Literal, 64)
		if err != nil {
			return nil, err
		}
		return createReal(f, p.curr.Position), nil
	}
	n, err := strconv.ParseInt(p.curr.Literal, 10, 64)
	if err != nil {
		return nil, err
	}
	return createInt(n, p.curr.Position), nil
}

func (p *Parser) parseBool() (Expression, error) {
	defer p.next()
	b, err := strconv.ParseBool(p.curr.Literal)
	if err != nil {
		return nil, err
	}
	return createBool(b, p.curr.Position), nil
}

func (p *Parser) parseGroup() (Expression, error) {
	if err := p.expect(Lparen); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	return expr, p.expect(Rparen)
}

func (p *Parser) parseUnary() (Expression, error) {
	u := Unary{
		Op:       p.curr.Type,
		Position: p.curr.Position,
	}
	p.next()
	right, err := p.parseExpression(powUnary)
	if err != nil {
		return nil, err
	}
	u.Expr = right
	return u, nil
}

func (p *Parser) parseKeyword() (Expression, error) {
	if p.curr.Literal != "let" {
		return nil, p.unexpected()
	}
	return p.parseLet()
}

func (p *Parser) parseLet() (Expression, error) {
	let := Let{
		Position: p.curr.Position,
	}
	p.next()
	if !p.is(Ident) {
		return nil, p.unexpected()
	}
	let.Ident = p.curr.Literal
	p.next()
	if err := p.expect(Assign); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	let.Expr = expr
	if p.eol() && p.peekIsKeyword("in") {
		p.next()
	}
	if !p.isKeyword("in") {
		return let, nil
	}
	p.next()
	p.skip(EOL)
	let.Body, err = p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	return let, nil
}

func (p *Parser) parseExpression(pow int) (Expression, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for !p.done() && !p.eol() && pow < bindings[p.curr.Type] {
		left, err = p.parseInfix(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) parseInfix(left Expression) (Expression, error) {
	fn, ok := p.infix[p.curr.Type]
	if !ok {
		return nil, p.unexpected()
	}
	return fn(left)
}

func (p *Parser) parsePrefix() (Expression, error) {
	fn, ok := p.prefix[p.curr.Type]
	if !ok {
		return nil, p.unexpected()
	}
	return fn()
}

func (p *Parser) registerInfix(kind rune, fn func(Expression) (Expression, error)) {
	p.infix[kind] = fn
}

func (p *Parser) registerPrefix(kind rune, fn func() (Expression, error)) {
	p.prefix[kind] = fn
}

func (p *Parser) skip(kind rune) {
	for p.is(kind) {
		p.next()
	}
}

func (p *Parser) expect(kind rune) error {
	if !p.is(kind) {
		return p.unexpected()
	}
	p.next()
	return nil
}

func (p *Parser) unexpected() error {
	return fmt.Errorf("line %d: unexpected token %s", p.curr.Line, p.curr)
}

func (p *Parser) is(kind rune) bool {
	return p.curr.Type == kind
}

func (p *Parser) isKeyword(kw string) bool {
	return p.is(Keyword) && p.curr.Literal == kw
}

func (p *Parser) peekIsKeyword(kw string) bool {
	return p.peek.Type == Keyword && p.peek.Literal == kw
}

func (p *Parser) eol() bool {
	return p.is(EOL)
}

func (p *Parser) done() bool {
	return p.is(EOF)
}

func (p *Parser) next() {
	p.curr = p.peek
	p.peek = p.scan.Scan()
	for p.curr.Type == Comment {
		p.curr = p.peek
		p.peek = p.scan.Scan()
	}
}

const (
	powLowest int = iota
	powLogical
	powEqual
	powCompare
	powAdd
	powMul
	powUnary
)

var bindings = map[rune]int{
	And: powLogical,
	Or:  powLogical,
	Eq:  powEqual,
	Ne:  powEqual,
	Lt:  powCompare,
	Le:  powCompare,
	Gt:  powCompare,
	Ge:  powCompare,
	Add: powAdd,
	Sub: powAdd,
	Mul: powMul,
	Div: powMul,
	Mod: powMul,
}
