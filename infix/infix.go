package infix

import (
	"fmt"

	"github.com/takoeight0821/arith/ast"
	"github.com/takoeight0821/arith/token"
	"github.com/takoeight0821/arith/utils"
)

// After parsing, every operator has the same precedence and associates to the right.
// The Resolver rebuilds each operator chain according to a fixity table.

type Assoc int

const (
	Left Assoc = iota
	Right
)

func (a Assoc) String() string {
	switch a {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Assoc(%d)", int(a))
	}
}

func ParseAssoc(s string) (Assoc, error) {
	switch s {
	case "", "left", "infixl":
		return Left, nil
	case "right", "infixr":
		return Right, nil
	default:
		return Left, fmt.Errorf("unknown associativity %q", s)
	}
}

type Fixity struct {
	Prec  int
	Assoc Assoc
}

type Table map[token.Sign]Fixity

// Flat gives every operator equal strength and right associativity.
// Resolving under Flat leaves the parser's tree unchanged.
func Flat() Table {
	return Table{
		token.Plus:  {Prec: 0, Assoc: Right},
		token.Minus: {Prec: 0, Assoc: Right},
		token.Mult:  {Prec: 0, Assoc: Right},
		token.Div:   {Prec: 0, Assoc: Right},
	}
}

// Conventional binds * and / tighter than + and -, all left associative.
func Conventional() Table {
	return Table{
		token.Plus:  {Prec: 6, Assoc: Left},
		token.Minus: {Prec: 6, Assoc: Left},
		token.Mult:  {Prec: 7, Assoc: Left},
		token.Div:   {Prec: 7, Assoc: Left},
	}
}

func (t Table) fixity(op token.Token) Fixity {
	if f, ok := t[op.Sign]; ok {
		return f
	}
	return Fixity{Prec: 0, Assoc: Right}
}

type InfixResolver struct {
	table Table
}

func NewInfixResolver(table Table) *InfixResolver {
	if table == nil {
		table = Flat()
	}
	return &InfixResolver{table: table}
}

func (r *InfixResolver) Init(ast.Node) error {
	return nil
}

func (r *InfixResolver) Run(node ast.Node) (ast.Node, error) {
	return r.resolve(node)
}

// resolve works bottom-up. A Paren is kept so that the chain inside a group
// is never merged with the chain around it.
func (r *InfixResolver) resolve(node ast.Node) (ast.Node, error) {
	switch n := node.(type) {
	case *ast.Binary:
		left, err := r.resolve(n.Left)
		if err != nil {
			return node, err
		}
		right, err := r.resolve(n.Right)
		if err != nil {
			return node, err
		}
		return r.mkBinary(n.Op, left, right)
	case *ast.Paren:
		expr, err := r.resolve(n.Expr)
		if err != nil {
			return node, err
		}
		return &ast.Paren{Open: n.Open, Expr: expr}, nil
	default:
		return node, nil
	}
}

// mkBinary builds `left op right` where right is already resolved.
func (r *InfixResolver) mkBinary(op token.Token, left, right ast.Node) (ast.Node, error) {
	if right, ok := right.(*ast.Binary); ok {
		// left op (right.Left right.Op right.Right)
		rotate, err := r.assocLeft(op, right.Op)
		if err != nil {
			return nil, err
		}
		if rotate {
			// (left op right.Left) right.Op right.Right
			newLeft, err := r.mkBinary(op, left, right.Left)
			if err != nil {
				return nil, err
			}
			return &ast.Binary{Left: newLeft, Op: right.Op, Right: right.Right}, nil
		}
	}
	return &ast.Binary{Left: left, Op: op, Right: right}, nil
}

// assocLeft reports whether op1 in `a op1 b op2 c` takes b first.
func (r *InfixResolver) assocLeft(op1, op2 token.Token) (bool, error) {
	f1 := r.table.fixity(op1)
	f2 := r.table.fixity(op2)
	if f1.Prec > f2.Prec {
		return true, nil
	} else if f1.Prec < f2.Prec {
		return false, nil
	}
	// same precedence
	if f1.Assoc != f2.Assoc {
		return false, MixedAssocError{Left: op1, Right: op2}
	}
	return f1.Assoc == Left, nil
}

type MixedAssocError struct {
	Left, Right token.Token
}

func (e MixedAssocError) Error() string {
	return fmt.Sprintf("at %d: cannot mix `%s` and `%s` of equal precedence and different associativity; need parentheses",
		e.Right.Column, e.Left.Lexeme, e.Right.Lexeme)
}

func (e MixedAssocError) Is(target error) bool {
	return target == utils.ErrSyntax
}
