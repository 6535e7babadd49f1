// Package eval reduces an expression tree to a 32-bit integer.
package eval

import (
	"errors"
	"fmt"
	"math"

	"github.com/takoeight0821/arith/ast"
	"github.com/takoeight0821/arith/token"
	"github.com/takoeight0821/arith/utils"
)

// ErrArithmetic is matched by every evaluation failure.
var ErrArithmetic = errors.New("arithmetic fault")

// Policy decides what + - * / do when the exact result does not fit in int32.
type Policy int

const (
	// Checked reports overflow as an ArithmeticError.
	Checked Policy = iota
	// Wrapping keeps the low 32 bits (two's complement).
	Wrapping
	// Saturating clamps to math.MinInt32 or math.MaxInt32.
	Saturating
)

func (p Policy) String() string {
	switch p {
	case Checked:
		return "checked"
	case Wrapping:
		return "wrapping"
	case Saturating:
		return "saturating"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "checked":
		return Checked, nil
	case "wrapping":
		return Wrapping, nil
	case "saturating":
		return Saturating, nil
	default:
		return Checked, fmt.Errorf("unknown overflow policy %q", s)
	}
}

// Evaluator evaluates a tree produced by the parser.
type Evaluator struct {
	policy Policy
}

// NewEvaluator creates a new Evaluator.
func NewEvaluator(policy Policy) *Evaluator {
	return &Evaluator{policy: policy}
}

func (ev *Evaluator) Eval(node ast.Node) (int32, error) {
	switch n := node.(type) {
	case *ast.Integer:
		return n.Value, nil
	case *ast.Paren:
		return ev.Eval(n.Expr)
	case *ast.Binary:
		lhs, err := ev.Eval(n.Left)
		if err != nil {
			return 0, err
		}
		rhs, err := ev.Eval(n.Right)
		if err != nil {
			return 0, err
		}
		return ev.apply(n.Op, lhs, rhs)
	default:
		return 0, fmt.Errorf("unexpected node %T", node)
	}
}

func (ev *Evaluator) apply(op token.Token, lhs, rhs int32) (int32, error) {
	a, b := int64(lhs), int64(rhs)

	var exact int64
	switch op.Sign {
	case token.Plus:
		exact = a + b
	case token.Minus:
		exact = a - b
	case token.Mult:
		exact = a * b
	case token.Div:
		if b == 0 {
			return 0, evalError(op, DivisionByZero)
		}
		// Go truncates toward zero.
		exact = a / b
	default:
		return 0, evalError(op, UnknownOperator)
	}

	if exact >= math.MinInt32 && exact <= math.MaxInt32 {
		return int32(exact), nil
	}

	switch ev.policy {
	case Wrapping:
		return int32(exact), nil
	case Saturating:
		if exact < 0 {
			return math.MinInt32, nil
		}
		return math.MaxInt32, nil
	default:
		return 0, evalError(op, Overflow)
	}
}

type Fault int

const (
	DivisionByZero Fault = iota
	Overflow
	UnknownOperator
)

type ArithmeticError struct {
	Fault Fault
}

func (e ArithmeticError) Error() string {
	switch e.Fault {
	case DivisionByZero:
		return "division by zero"
	case Overflow:
		return "integer overflow"
	default:
		return "unknown operator"
	}
}

func (e ArithmeticError) Is(target error) bool {
	return target == ErrArithmetic
}

func evalError(where token.Token, fault Fault) error {
	return utils.ErrorAt(where, ArithmeticError{Fault: fault})
}
