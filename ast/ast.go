package ast

import (
	"fmt"
	"strings"

	"github.com/takoeight0821/arith/token"
)

// AST

type Node interface {
	fmt.Stringer
	Base() token.Token
	// Plate applies the given function to each child node.
	// If f returns an error, f also must return the original argument n.
	// It is similar to Visitor pattern.
	// FYI: https://hackage.haskell.org/package/lens-5.2.3/docs/Control-Lens-Plated.html
	Plate(error, func(Node, error) (Node, error)) (Node, error)
}

// Integer is a leaf holding the value of an INTEGER token.
type Integer struct {
	Token token.Token
	Value int32
}

func (i Integer) String() string {
	return fmt.Sprintf("%d", i.Value)
}

func (i *Integer) Base() token.Token {
	return i.Token
}

func (i *Integer) Plate(err error, _ func(Node, error) (Node, error)) (Node, error) {
	return i, err
}

var _ Node = &Integer{}

// Binary owns both operands; the parser never returns one with a nil child.
type Binary struct {
	Left  Node
	Op    token.Token
	Right Node
}

func (b Binary) String() string {
	return parenthesize(b.Op.Sign.String(), b.Left, b.Right).String()
}

func (b *Binary) Base() token.Token {
	return b.Op
}

func (b *Binary) Plate(err error, f func(Node, error) (Node, error)) (Node, error) {
	b.Left, err = f(b.Left, err)
	b.Right, err = f(b.Right, err)
	return b, err
}

var _ Node = &Binary{}

// Paren marks a parenthesized group. It evaluates to Expr and keeps
// operator resolution from reaching across the group boundary.
type Paren struct {
	Open token.Token
	Expr Node
}

func (p Paren) String() string {
	return parenthesize("paren", p.Expr).String()
}

func (p *Paren) Base() token.Token {
	return p.Open
}

func (p *Paren) Plate(err error, f func(Node, error) (Node, error)) (Node, error) {
	p.Expr, err = f(p.Expr, err)
	return p, err
}

var _ Node = &Paren{}

// parenthesize takes a head string and a variadic number of nodes that implement the fmt.Stringer interface.
// It returns a fmt.Stringer that represents a string where each node is parenthesized and separated by a space.
// If the head string is not empty, it is added at the beginning of the string.
func parenthesize(head string, elems ...fmt.Stringer) fmt.Stringer {
	var b strings.Builder
	b.WriteString("(")
	elemsStr := concat(elems).String()
	if head != "" {
		b.WriteString(head)
	}
	if elemsStr != "" {
		if head != "" {
			b.WriteString(" ")
		}
		b.WriteString(elemsStr)
	}
	b.WriteString(")")
	return &b
}

// concat takes a slice of nodes that implement the fmt.Stringer interface.
// It returns a fmt.Stringer that represents a string where each node is separated by a space.
func concat[T fmt.Stringer](elems []T) fmt.Stringer {
	var b strings.Builder
	for i, elem := range elems {
		// ignore empty string
		// e.g. concat({}) == ""
		str := elem.String()
		if str == "" {
			continue
		}
		if i != 0 {
			b.WriteString(" ")
		}
		b.WriteString(str)
	}
	return &b
}

// Traverse the [Node] in depth-first order.
// f is called for each node.
// If f returns an error, f also must return the original argument n.
// Traverse modifies each child before n.
func Traverse(n Node, f func(Node, error) (Node, error)) (Node, error) {
	n, err := n.Plate(nil, func(n Node, err error) (Node, error) {
		if err != nil {
			return n, err
		}
		return Traverse(n, f)
	})
	if err != nil {
		return n, err
	}
	return f(n, err)
}

func Children(n Node) []Node {
	var children []Node
	_, err := n.Plate(nil, func(n Node, _ error) (Node, error) {
		children = append(children, n)
		return n, nil
	})
	if err != nil {
		panic(fmt.Errorf("unexpected error: %w", err))
	}
	return children
}

func Universe(n Node) []Node {
	var nodes []Node
	_, err := Traverse(n, func(n Node, _ error) (Node, error) {
		nodes = append(nodes, n)
		return n, nil
	})
	if err != nil {
		panic(fmt.Errorf("unexpected error: %w", err))
	}
	return nodes
}

// Depth is the height of the tree rooted at n; a leaf has depth 1.
func Depth(n Node) int {
	deepest := 0
	for _, child := range Children(n) {
		if d := Depth(child); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
