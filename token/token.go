package token

import "fmt"

type Kind int

const (
	EOF Kind = iota
	ILLEGAL

	// Single-character tokens.
	LEFTPAREN
	RIGHTPAREN

	// Literals and identifiers.
	INTEGER
	OPERATOR
	IDENT
	STRING
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case ILLEGAL:
		return "ILLEGAL"
	case LEFTPAREN:
		return "LEFTPAREN"
	case RIGHTPAREN:
		return "RIGHTPAREN"
	case INTEGER:
		return "INTEGER"
	case OPERATOR:
		return "OPERATOR"
	case IDENT:
		return "IDENT"
	case STRING:
		return "STRING"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sign is the arithmetic operation denoted by an OPERATOR token.
type Sign int

const (
	NoSign Sign = iota
	Plus
	Minus
	Mult
	Div
)

func (s Sign) String() string {
	switch s {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Mult:
		return "*"
	case Div:
		return "/"
	default:
		return "?"
	}
}

// SignOf maps an operator character to its Sign.
func SignOf(c rune) (Sign, bool) {
	switch c {
	case '+':
		return Plus, true
	case '-':
		return Minus, true
	case '*':
		return Mult, true
	case '/':
		return Div, true
	}

	return NoSign, false
}

// Token is never mutated after the lexer emits it.
// Column is the 1-based rune offset of the first character of Lexeme.
type Token struct {
	Kind   Kind
	Sign   Sign
	Lexeme string
	Column int
}

func (t Token) String() string {
	if t.Kind == OPERATOR {
		return fmt.Sprintf("{%v(%v), %q, %d}", t.Kind, t.Sign, t.Lexeme, t.Column)
	}
	return fmt.Sprintf("{%v, %q, %d}", t.Kind, t.Lexeme, t.Column)
}
