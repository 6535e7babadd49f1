package utils

import (
	"errors"
	"fmt"

	"github.com/takoeight0821/arith/token"
	"gopkg.in/yaml.v3"
)

// PosError attaches the offending token to an error.
type PosError struct {
	Where token.Token
	Err   error
}

func (e PosError) Error() string {
	if e.Where.Kind == token.EOF {
		return fmt.Sprintf("at end: %s", e.Err.Error())
	}
	return fmt.Sprintf("at %d: `%s`, %s", e.Where.Column, e.Where.Lexeme, e.Err.Error())
}

func (e PosError) Unwrap() error {
	return e.Err
}

func ErrorAt(where token.Token, err error) error {
	return PosError{Where: where, Err: err}
}

// TestData is one entry of testdata/testcase.yaml.
// Expected is keyed by stage: lexer, parser, infix, eval, error.
type TestData struct {
	Label    string
	Enable   bool
	Input    string
	Expected map[string]string
}

func ReadTestData(s []byte) ([]TestData, error) {
	var data []TestData
	if err := yaml.Unmarshal(s, &data); err != nil {
		return nil, fmt.Errorf("read test data: %w", err)
	}

	// Remove disabled test cases.
	i := 0
	for _, d := range data {
		if d.Enable {
			data[i] = d
			i++
		}
	}
	data = data[:i]

	return data, nil
}

// ErrSyntax is matched by every lexer and parser error.
var ErrSyntax = errors.New("syntax error")
