package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/takoeight0821/arith/ast"
	"github.com/takoeight0821/arith/token"
)

func integer(v int32) *ast.Integer {
	return &ast.Integer{Token: token.Token{Kind: token.INTEGER}, Value: v}
}

func binary(sign token.Sign, left, right ast.Node) *ast.Binary {
	return &ast.Binary{Left: left, Op: token.Token{Kind: token.OPERATOR, Sign: sign, Lexeme: sign.String()}, Right: right}
}

// 1 + (2 * 3) - 4, grouped as parsed: 1 + ((2 * 3) - 4)
func sample() ast.Node {
	return binary(token.Plus, integer(1),
		binary(token.Minus, &ast.Paren{Expr: binary(token.Mult, integer(2), integer(3))}, integer(4)))
}

func TestString(t *testing.T) {
	t.Parallel()

	if actual := sample().String(); actual != "(+ 1 (- (paren (* 2 3)) 4))" {
		t.Errorf("String() = %s", actual)
	}
}

func TestInfix(t *testing.T) {
	t.Parallel()

	if actual := ast.Infix(sample()); actual != "(1 + ((2 * 3) - 4))" {
		t.Errorf("Infix() = %s", actual)
	}
	if actual := ast.Infix(&ast.Paren{Expr: integer(5)}); actual != "5" {
		t.Errorf("Infix() = %s", actual)
	}
}

func TestDepth(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		node     ast.Node
		expected int
	}{
		{integer(1), 1},
		{binary(token.Plus, integer(1), integer(2)), 2},
		{sample(), 5},
	}
	for _, testcase := range testcases {
		if actual := ast.Depth(testcase.node); actual != testcase.expected {
			t.Errorf("Depth(%v) = %d, expected %d", testcase.node, actual, testcase.expected)
		}
	}
}

func TestUniverse(t *testing.T) {
	t.Parallel()

	var visited []string
	for _, n := range ast.Universe(sample()) {
		visited = append(visited, ast.Infix(n))
	}

	// Children come before their parent.
	expected := []string{"1", "2", "3", "(2 * 3)", "(2 * 3)", "4", "((2 * 3) - 4)", "(1 + ((2 * 3) - 4))"}
	if diff := cmp.Diff(expected, visited); diff != "" {
		t.Errorf("Universe mismatch (-want +got):\n%s", diff)
	}
}

type countRepr struct{}

func (countRepr) Integer(token.Token, int32) int { return 0 }
func (countRepr) Binary(left int, _ token.Token, right int) int { return left + right + 1 }
func (countRepr) Paren(_ token.Token, expr int) int { return expr }

func TestFold(t *testing.T) {
	t.Parallel()

	if actual := ast.Fold[int](sample(), countRepr{}); actual != 3 {
		t.Errorf("Fold counted %d operators, expected 3", actual)
	}
}
