package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/takoeight0821/arith/driver"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestRunBatch(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"1 + 1",
		"",
		"  5 * 5 + 10  ",
		"1 / 0",
		"&",
		":tokens 1+2",
		":ast (1 + 2) * 3",
		":infix 1 - 2 - 3",
		":quit",
		"2 + 2",
	}, "\n")

	var out, errOut strings.Builder
	err := RunBatch(driver.NewInterpreter(), strings.NewReader(input), &out, &errOut)
	if err == nil || err.Error() != "2 expression(s) failed" {
		t.Errorf("RunBatch returned %v", err)
	}

	expectedOut := strings.Join([]string{
		"2",
		"75",
		`{INTEGER, "1", 1}`,
		`{OPERATOR(+), "+", 2}`,
		`{INTEGER, "2", 3}`,
		`{EOF, "", 4}`,
		"(* (paren (+ 1 2)) 3)",
		"(1 - (2 - 3))",
		"",
	}, "\n")
	if out.String() != expectedOut {
		t.Errorf("stdout:\n%s\nexpected:\n%s", out.String(), expectedOut)
	}

	expectedErr := strings.Join([]string{
		"Error: eval: at 3: `/`, division by zero",
		"Error: lex: at 1: `&`, invalid character '&'",
		"",
	}, "\n")
	if errOut.String() != expectedErr {
		t.Errorf("stderr:\n%s\nexpected:\n%s", errOut.String(), expectedErr)
	}
}

func TestEvalCommandErrors(t *testing.T) {
	t.Parallel()

	r := driver.NewInterpreter()
	for _, input := range []string{":tokens 1 $", ":ast 1 +"} {
		var out, errOut strings.Builder
		quit, ok := Eval(r, input, &out, &errOut)
		if quit || ok {
			t.Errorf("Eval(%q) = %v, %v", input, quit, ok)
		}
		if !strings.HasPrefix(errOut.String(), "Error: ") {
			t.Errorf("Eval(%q) wrote %q to stderr", input, errOut.String())
		}
		if out.Len() != 0 {
			t.Errorf("Eval(%q) wrote %q to stdout", input, out.String())
		}
	}
}

func TestRunFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("1 + 2\n3 * 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := RunFile(driver.NewInterpreter(), path); err != nil {
		t.Errorf("RunFile returned error: %v", err)
	}
	if err := RunFile(driver.NewInterpreter(), filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Errorf("RunFile succeeded on a missing file")
	}
}
