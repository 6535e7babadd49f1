package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/takoeight0821/arith/token"
	"github.com/takoeight0821/arith/utils"
)

// Lex scans source into tokens terminated by a single EOF token.
// It stops at the first character it cannot classify.
func Lex(source string) ([]token.Token, error) {
	lexer := lexer{
		source:  source,
		tokens:  []token.Token{},
		start:   0,
		current: 0,
		column:  1,
	}

	for !lexer.isAtEnd() {
		if err := lexer.scanToken(); err != nil {
			return nil, err
		}
	}

	lexer.tokens = append(lexer.tokens, token.Token{Kind: token.EOF, Lexeme: "", Column: lexer.column})

	return lexer.tokens, nil
}

type lexer struct {
	source string
	tokens []token.Token

	start       int // start of current lexeme
	startColumn int // column of start
	current     int // current position in source
	column      int // column of current
}

func (l lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l lexer) peek() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	runeValue, _ := utf8.DecodeRuneInString(l.source[l.current:])

	return runeValue
}

func (l *lexer) advance() rune {
	runeValue, width := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += width
	l.column++

	return runeValue
}

func (l *lexer) addToken(kind token.Kind, sign token.Sign) {
	text := l.source[l.start:l.current]
	l.tokens = append(l.tokens, token.Token{Kind: kind, Sign: sign, Lexeme: text, Column: l.startColumn})
}

func (l *lexer) here() token.Token {
	return token.Token{Kind: token.ILLEGAL, Lexeme: l.source[l.start:l.current], Column: l.startColumn}
}

type InvalidCharacterError struct {
	Char rune
}

func (e InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid character %q", e.Char)
}

func (e InvalidCharacterError) Is(target error) bool {
	return target == utils.ErrSyntax
}

func (l *lexer) scanToken() error {
	l.start = l.current
	l.startColumn = l.column
	char := l.advance()
	switch char {
	case ' ', '\t', '\r', '\n':
		// ignore whitespace
		return nil
	case '(':
		l.addToken(token.LEFTPAREN, token.NoSign)

		return nil
	case ')':
		l.addToken(token.RIGHTPAREN, token.NoSign)

		return nil
	case '"':
		return l.string()
	default:
		if sign, ok := token.SignOf(char); ok {
			l.addToken(token.OPERATOR, sign)

			return nil
		}
		if isDigit(char) {
			l.integer()

			return nil
		}
		if isAlpha(char) {
			l.identifier()

			return nil
		}
	}

	return utils.ErrorAt(l.here(), InvalidCharacterError{Char: char})
}

type UnterminatedStringError struct{}

func (e UnterminatedStringError) Error() string {
	return "unterminated string"
}

func (e UnterminatedStringError) Is(target error) bool {
	return target == utils.ErrSyntax
}

// string keeps the surrounding quotes in the lexeme.
func (l *lexer) string() error {
	for l.peek() != '"' && !l.isAtEnd() {
		if l.peek() == '\\' {
			l.advance()
			if l.isAtEnd() {
				break
			}
		}
		l.advance()
	}

	if l.isAtEnd() {
		return utils.ErrorAt(l.here(), UnterminatedStringError{})
	}

	l.advance()
	l.addToken(token.STRING, token.NoSign)

	return nil
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// integer leaves range checking to the parser, which owns the numeric type.
func (l *lexer) integer() {
	for isDigit(l.peek()) {
		l.advance()
	}

	l.addToken(token.INTEGER, token.NoSign)
}

func isAlpha(c rune) bool {
	return unicode.IsLetter(c)
}

func (l *lexer) identifier() {
	for isAlpha(l.peek()) {
		l.advance()
	}

	l.addToken(token.IDENT, token.NoSign)
}
