package infix_test

import (
	"errors"
	"os"
	"testing"

	"github.com/takoeight0821/arith/driver"
	"github.com/takoeight0821/arith/infix"
	"github.com/takoeight0821/arith/token"
	"github.com/takoeight0821/arith/utils"
)

func completeInfix(t *testing.T, table infix.Table, input, expected string) {
	t.Helper()
	runner := driver.NewInterpreter()
	runner.AddPass(infix.NewInfixResolver(table))

	node, err := runner.RunSource(input)
	if err != nil {
		t.Errorf("RunSource(%q) returned error: %v", input, err)
		return
	}

	if actual := node.String(); actual != expected {
		t.Errorf("RunSource(%q) returned:\n%s\n\nexpected:\n%s", input, actual, expected)
	}
}

func TestInfix(t *testing.T) {
	t.Parallel()

	s, err := os.ReadFile("../testdata/testcase.yaml")
	if err != nil {
		t.Fatal(err)
	}
	testcases, err := utils.ReadTestData(s)
	if err != nil {
		t.Fatal(err)
	}

	for _, testcase := range testcases {
		if expected, ok := testcase.Expected["infix"]; ok {
			completeInfix(t, infix.Conventional(), testcase.Input, expected)
		}
	}
}

// Resolving under the flat table is the identity on parser output.
func TestFlatIsIdentity(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"1 - 2 - 3", "5 * 5 + 10", "1 + (2 * 3) / 4"} {
		node, err := driver.NewInterpreter().RunSource(input)
		if err != nil {
			t.Fatal(err)
		}
		completeInfix(t, infix.Flat(), input, node.String())
		completeInfix(t, nil, input, node.String())
	}
}

func TestCustomTable(t *testing.T) {
	t.Parallel()

	// + binds tighter than *, and - is right associative.
	table := infix.Table{
		token.Plus:  {Prec: 8, Assoc: infix.Left},
		token.Minus: {Prec: 6, Assoc: infix.Right},
		token.Mult:  {Prec: 7, Assoc: infix.Left},
		token.Div:   {Prec: 7, Assoc: infix.Left},
	}

	completeInfix(t, table, "2 * 3 + 4", "(* 2 (+ 3 4))")
	completeInfix(t, table, "10 - 4 - 3", "(- 10 (- 4 3))")
	completeInfix(t, table, "8 / 2 * 2", "(* (/ 8 2) 2)")
}

func TestMixedAssoc(t *testing.T) {
	t.Parallel()

	table := infix.Conventional()
	table[token.Minus] = infix.Fixity{Prec: 6, Assoc: infix.Right}

	runner := driver.NewInterpreter(driver.WithPass(infix.NewInfixResolver(table)))
	_, err := runner.RunSource("1 + 2 - 3")

	var mixed infix.MixedAssocError
	if !errors.As(err, &mixed) {
		t.Fatalf("expected MixedAssocError, got %v", err)
	}
	if !errors.Is(err, utils.ErrSyntax) {
		t.Errorf("MixedAssocError does not match ErrSyntax")
	}

	// Parentheses separate the chains.
	if _, err := runner.RunSource("1 + (2 - 3)"); err != nil {
		t.Errorf("RunSource returned error: %v", err)
	}
}

func TestParseAssoc(t *testing.T) {
	t.Parallel()

	for input, expected := range map[string]infix.Assoc{
		"":       infix.Left,
		"left":   infix.Left,
		"infixl": infix.Left,
		"right":  infix.Right,
		"infixr": infix.Right,
	} {
		actual, err := infix.ParseAssoc(input)
		if err != nil || actual != expected {
			t.Errorf("ParseAssoc(%q) = %v, %v; expected %v", input, actual, err, expected)
		}
	}
	if _, err := infix.ParseAssoc("both"); err == nil {
		t.Errorf("ParseAssoc(%q) succeeded", "both")
	}
}
