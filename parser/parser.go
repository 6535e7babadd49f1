package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/takoeight0821/arith/ast"
	"github.com/takoeight0821/arith/token"
	"github.com/takoeight0821/arith/utils"
)

// DefaultMaxDepth bounds the nesting of expressions and groups.
const DefaultMaxDepth = 1000

type Parser struct {
	tokens   []token.Token
	current  int
	depth    int
	maxDepth int
}

type Option func(*Parser)

// WithMaxDepth sets the recursion limit. Values below 1 select DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n < 1 {
			n = DefaultMaxDepth
		}
		p.maxDepth = n
	}
}

// NewParser takes the output of lexer.Lex. A missing EOF terminator is added.
func NewParser(tokens []token.Token, opts ...Option) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		column := 1
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			column = last.Column + len([]rune(last.Lexeme))
		}
		tokens = append(tokens[:len(tokens):len(tokens)], token.Token{Kind: token.EOF, Column: column})
	}
	p := &Parser{tokens: tokens, current: 0, depth: 0, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses a whole input: it must start an expression and nothing may follow it.
func (p *Parser) Parse() (ast.Node, error) {
	if !p.match(token.INTEGER) && !p.match(token.LEFTPAREN) {
		return nil, unexpectedToken(p.peek(), "integer", "`(`")
	}

	node, err := p.expr()
	if err != nil {
		return nil, err
	}

	if !p.IsAtEnd() {
		return nil, unexpectedToken(p.peek(), "operator", "end of input")
	}

	return node, nil
}

// ParseExpr parses one expression starting at the current token and leaves the rest unread.
func (p *Parser) ParseExpr() (ast.Node, error) {
	return p.expr()
}

// expr = atomic (OPERATOR expr)? ;
// Every operator has the same strength and associates to the right.
func (p *Parser) expr() (ast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	lhs, err := p.atomic()
	if err != nil {
		return nil, err
	}

	if !p.match(token.OPERATOR) {
		return lhs, nil
	}

	return p.binary(lhs)
}

func (p *Parser) binary(lhs ast.Node) (ast.Node, error) {
	op, err := p.operator()
	if err != nil {
		return nil, err
	}

	rhs, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &ast.Binary{Left: lhs, Op: op, Right: rhs}, nil
}

// atomic = INTEGER | group ;
func (p *Parser) atomic() (ast.Node, error) {
	//exhaustive:ignore
	switch tok := p.peek(); tok.Kind {
	case token.INTEGER:
		p.advance()

		return integer(tok)
	case token.LEFTPAREN:
		return p.group()
	default:
		return nil, unexpectedToken(tok, "integer", "`(`")
	}
}

func integer(tok token.Token) (ast.Node, error) {
	value, err := strconv.ParseInt(tok.Lexeme, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, utils.ErrorAt(tok, InvalidIntegerError{Reason: "out of range"})
		}
		return nil, utils.ErrorAt(tok, InvalidIntegerError{Reason: "not a number"})
	}

	return &ast.Integer{Token: tok, Value: int32(value)}, nil
}

// group = "(" expr ")" ;
// The tokens between the parentheses are cut out and parsed as a separate input.
func (p *Parser) group() (ast.Node, error) {
	open := p.advance()

	end, ok := p.matchingParen()
	if !ok {
		return nil, utils.ErrorAt(open, UnterminatedGroupError{})
	}
	if end == p.current {
		return nil, unexpectedToken(p.tokens[end], "expression")
	}

	body := make([]token.Token, 0, end-p.current+1)
	body = append(body, p.tokens[p.current:end]...)
	body = append(body, token.Token{Kind: token.EOF, Column: p.tokens[end].Column})

	sub := &Parser{tokens: body, current: 0, depth: p.depth, maxDepth: p.maxDepth}
	expr, err := sub.expr()
	if err != nil {
		return nil, err
	}
	if !sub.IsAtEnd() {
		return nil, unexpectedToken(sub.peek(), "operator", "`)`")
	}

	p.current = end + 1

	return &ast.Paren{Open: open, Expr: expr}, nil
}

// matchingParen returns the index of the RIGHTPAREN closing the group whose body starts at p.current.
func (p Parser) matchingParen() (int, bool) {
	depth := 0
	for i := p.current; i < len(p.tokens); i++ {
		//exhaustive:ignore
		switch p.tokens[i].Kind {
		case token.LEFTPAREN:
			depth++
		case token.RIGHTPAREN:
			if depth == 0 {
				return i, true
			}
			depth--
		case token.EOF:
			return 0, false
		}
	}

	return 0, false
}

func (p *Parser) operator() (token.Token, error) {
	tok := p.peek()
	if tok.Kind != token.OPERATOR || tok.Sign == token.NoSign {
		return tok, unexpectedToken(tok, "operator")
	}

	return p.advance(), nil
}

func (p *Parser) enter() error {
	if p.depth >= p.maxDepth {
		return utils.ErrorAt(p.peek(), TooDeepError{Limit: p.maxDepth})
	}
	p.depth++

	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p Parser) peek() token.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

func (p *Parser) advance() token.Token {
	if !p.IsAtEnd() {
		p.current++
	}

	return p.previous()
}

func (p Parser) previous() token.Token {
	if p.current == 0 {
		return p.peek()
	}
	return p.tokens[p.current-1]
}

func (p Parser) IsAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p Parser) match(kind token.Kind) bool {
	if p.IsAtEnd() {
		return false
	}

	return p.peek().Kind == kind
}

type UnexpectedTokenError struct {
	Expected []string
}

func (e UnexpectedTokenError) Error() string {
	var msg string
	if len(e.Expected) >= 1 {
		msg = e.Expected[0]
		for _, ex := range e.Expected[1:] {
			msg = msg + ", " + ex
		}
	}

	return "unexpected token: expected " + msg
}

func (e UnexpectedTokenError) Is(target error) bool {
	return target == utils.ErrSyntax
}

type UnterminatedGroupError struct{}

func (e UnterminatedGroupError) Error() string {
	return "unterminated group: missing `)`"
}

func (e UnterminatedGroupError) Is(target error) bool {
	return target == utils.ErrSyntax
}

type InvalidIntegerError struct {
	Reason string
}

func (e InvalidIntegerError) Error() string {
	return "invalid integer literal: " + e.Reason
}

func (e InvalidIntegerError) Is(target error) bool {
	return target == utils.ErrSyntax
}

type TooDeepError struct {
	Limit int
}

func (e TooDeepError) Error() string {
	return fmt.Sprintf("expression nested deeper than %d levels", e.Limit)
}

func (e TooDeepError) Is(target error) bool {
	return target == utils.ErrSyntax
}

func unexpectedToken(t token.Token, expected ...string) error {
	return utils.PosError{Where: t, Err: UnexpectedTokenError{Expected: expected}}
}
