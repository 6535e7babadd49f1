package ast

import (
	"fmt"

	"github.com/takoeight0821/arith/token"
)

// Repr is a bottom-up interpretation of a tree.
type Repr[T any] interface {
	Integer(value token.Token, v int32) T
	Binary(left T, op token.Token, right T) T
	Paren(open token.Token, expr T) T
}

// Fold interprets n with r, children first.
func Fold[T any](n Node, r Repr[T]) T {
	switch n := n.(type) {
	case *Integer:
		return r.Integer(n.Token, n.Value)
	case *Binary:
		return r.Binary(Fold(n.Left, r), n.Op, Fold(n.Right, r))
	case *Paren:
		return r.Paren(n.Open, Fold(n.Expr, r))
	default:
		panic(fmt.Sprintf("ast.Fold: unexpected node %T", n))
	}
}

type infixPrinter struct{}

var _ Repr[string] = infixPrinter{}

func (infixPrinter) Integer(_ token.Token, v int32) string {
	return fmt.Sprintf("%d", v)
}

func (infixPrinter) Binary(left string, op token.Token, right string) string {
	return "(" + left + " " + op.Sign.String() + " " + right + ")"
}

func (infixPrinter) Paren(_ token.Token, expr string) string {
	return expr
}

// Infix renders n in infix notation with every operation parenthesized,
// which makes the grouping chosen by the parser and the passes explicit.
func Infix(n Node) string {
	return Fold[string](n, infixPrinter{})
}
