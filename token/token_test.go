package token_test

import (
	"testing"

	"github.com/takoeight0821/arith/token"
)

func TestSignOf(t *testing.T) {
	t.Parallel()

	for _, c := range "+-*/" {
		sign, ok := token.SignOf(c)
		if !ok {
			t.Errorf("SignOf(%q) failed", c)
			continue
		}
		if sign.String() != string(c) {
			t.Errorf("SignOf(%q) = %v", c, sign)
		}
	}

	for _, c := range "%^x(" {
		if sign, ok := token.SignOf(c); ok {
			t.Errorf("SignOf(%q) = %v, expected no sign", c, sign)
		}
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		token    token.Token
		expected string
	}{
		{token.Token{Kind: token.INTEGER, Lexeme: "42", Column: 3}, `{INTEGER, "42", 3}`},
		{token.Token{Kind: token.OPERATOR, Sign: token.Div, Lexeme: "/", Column: 1}, `{OPERATOR(/), "/", 1}`},
		{token.Token{Kind: token.EOF, Column: 9}, `{EOF, "", 9}`},
		{token.Token{Kind: token.Kind(99)}, `{Kind(99), "", 0}`},
	}
	for _, testcase := range testcases {
		if actual := testcase.token.String(); actual != testcase.expected {
			t.Errorf("String() = %s, expected %s", actual, testcase.expected)
		}
	}
}
