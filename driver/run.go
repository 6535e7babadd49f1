package driver

import (
	"fmt"
	"io"

	"github.com/takoeight0821/arith/ast"
	"github.com/takoeight0821/arith/config"
	"github.com/takoeight0821/arith/eval"
	"github.com/takoeight0821/arith/infix"
	"github.com/takoeight0821/arith/lexer"
	"github.com/takoeight0821/arith/parser"
	"github.com/takoeight0821/arith/token"
)

// Pass rewrites a parsed tree before evaluation.
type Pass interface {
	Init(ast.Node) error
	Run(ast.Node) (ast.Node, error)
}

// Interpreter threads source text through the lexer, the parser, the passes and the evaluator.
// It keeps no state between calls.
type Interpreter struct {
	passes    []Pass
	maxDepth  int
	evaluator *eval.Evaluator
	trace     io.Writer
}

type Option func(*Interpreter)

func WithMaxDepth(n int) Option {
	return func(r *Interpreter) {
		r.maxDepth = n
	}
}

func WithPolicy(policy eval.Policy) Option {
	return func(r *Interpreter) {
		r.evaluator = eval.NewEvaluator(policy)
	}
}

// WithTrace dumps tokens and trees to w as they are produced.
func WithTrace(w io.Writer) Option {
	return func(r *Interpreter) {
		r.trace = w
	}
}

// WithPass appends pass to the pass list.
func WithPass(pass Pass) Option {
	return func(r *Interpreter) {
		r.AddPass(pass)
	}
}

// NewInterpreter returns an interpreter with flat precedence and checked arithmetic
// unless opts say otherwise.
func NewInterpreter(opts ...Option) *Interpreter {
	r := &Interpreter{
		maxDepth:  parser.DefaultMaxDepth,
		evaluator: eval.NewEvaluator(eval.Checked),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FromConfig builds an interpreter from cfg. trace receives the dump when cfg.Trace is set.
func FromConfig(cfg config.Config, trace io.Writer) (*Interpreter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	table, err := cfg.Table()
	if err != nil {
		return nil, err
	}

	opts := []Option{WithMaxDepth(cfg.MaxDepth), WithPolicy(policy)}
	if cfg.Precedence == config.PrecedenceConventional {
		opts = append(opts, WithPass(infix.NewInfixResolver(table)))
	}
	if cfg.Trace && trace != nil {
		opts = append(opts, WithTrace(trace))
	}

	return NewInterpreter(opts...), nil
}

// AddPass adds a pass to the end of the pass list.
func (r *Interpreter) AddPass(pass Pass) {
	r.passes = append(r.passes, pass)
}

// Run executes passes in order.
// If an error occurs, it stops the execution and returns the current tree.
func (r *Interpreter) Run(node ast.Node) (ast.Node, error) {
	for _, pass := range r.passes {
		err := pass.Init(node)
		if err != nil {
			return node, fmt.Errorf("init: %w", err)
		}
		node, err = pass.Run(node)
		if err != nil {
			return node, fmt.Errorf("run: %w", err)
		}
		if r.trace != nil {
			r.tracef("%T: %v = %s\n", pass, node, ast.Infix(node))
		}
	}

	return node, nil
}

// Tokens lexes source.
func (r *Interpreter) Tokens(source string) ([]token.Token, error) {
	tokens, err := lexer.Lex(source)
	if err != nil {
		return nil, fmt.Errorf("lex: %w", err)
	}
	return tokens, nil
}

// RunSource parses the source code and executes passes in order.
func (r *Interpreter) RunSource(source string) (ast.Node, error) {
	tokens, err := r.Tokens(source)
	if err != nil {
		return nil, err
	}
	r.tracef("tokens: %v\n", tokens)

	node, err := parser.NewParser(tokens, parser.WithMaxDepth(r.maxDepth)).Parse()
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	r.tracef("parse: %v\n", node)

	return r.Run(node)
}

// Interpret evaluates source and returns its value or the first error encountered.
func (r *Interpreter) Interpret(source string) (int32, error) {
	node, err := r.RunSource(source)
	if err != nil {
		return 0, err
	}

	value, err := r.evaluator.Eval(node)
	if err != nil {
		return 0, fmt.Errorf("eval: %w", err)
	}

	return value, nil
}

// Interpret evaluates source with the default settings.
func Interpret(source string) (int32, error) {
	return NewInterpreter().Interpret(source)
}

func (r *Interpreter) tracef(format string, args ...any) {
	if r.trace != nil {
		fmt.Fprintf(r.trace, format, args...)
	}
}
