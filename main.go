package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/takoeight0821/arith/ast"
	"github.com/takoeight0821/arith/config"
	"github.com/takoeight0821/arith/driver"
)

func main() {
	const (
		inputUsage = "input file path, one expression per line"
	)
	var (
		inputPath  string
		configPath string
		precedence string
		overflow   string
		maxDepth   int
		trace      bool
	)
	flag.StringVar(&inputPath, "input", "", inputUsage)
	flag.StringVar(&inputPath, "i", "", inputUsage+" (shorthand)")
	flag.StringVar(&configPath, "config", config.DefaultPath(), "config file path")
	flag.StringVar(&precedence, "precedence", "", "operator precedence: flat or conventional")
	flag.StringVar(&overflow, "overflow", "", "overflow policy: checked, wrapping or saturating")
	flag.IntVar(&maxDepth, "max-depth", 0, "maximum expression nesting depth")
	flag.BoolVar(&trace, "trace", false, "print tokens and trees to stderr")

	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if precedence != "" {
		cfg.Precedence = precedence
	}
	if overflow != "" {
		cfg.Overflow = overflow
	}
	if maxDepth != 0 {
		cfg.MaxDepth = maxDepth
	}
	if trace {
		cfg.Trace = true
	}

	r, err := driver.FromConfig(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	switch {
	case inputPath != "":
		err = RunFile(r, inputPath)
	case isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()):
		err = RunPrompt(r)
	default:
		err = RunBatch(r, os.Stdin, os.Stdout, os.Stderr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var history = filepath.Join(xdg.DataHome, "arith", ".arith_history")

func RunPrompt(r *driver.Interpreter) error {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer func() {
		if err := os.MkdirAll(filepath.Dir(history), os.ModePerm); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if f, err := os.Create(history); err == nil {
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		line.Close()
	}()

	if f, err := os.Open(history); err == nil {
		defer f.Close()
		if _, err := line.ReadHistory(f); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	for {
		input, err := line.Prompt("> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if quit, _ := Eval(r, input, os.Stdout, os.Stderr); quit {
			return nil
		}
	}
}

// RunBatch evaluates each non-empty line of in and reports whether any failed.
func RunBatch(r *driver.Interpreter, in io.Reader, out, errOut io.Writer) error {
	scanner := bufio.NewScanner(in)
	failed := 0
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		quit, ok := Eval(r, input, out, errOut)
		if !ok {
			failed++
		}
		if quit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d expression(s) failed", failed)
	}
	return nil
}

func RunFile(r *driver.Interpreter, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return RunBatch(r, f, os.Stdout, os.Stderr)
}

var errorColor = color.New(color.FgRed, color.Bold)

// Eval handles one line: a `:` command or an expression.
// It reports whether the session should end and whether the line succeeded.
func Eval(r *driver.Interpreter, input string, out, errOut io.Writer) (quit bool, ok bool) {
	command, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	var err error
	switch command {
	case ":quit", ":q":
		return true, true
	case ":tokens":
		tokens, lexErr := r.Tokens(arg)
		err = lexErr
		for _, t := range tokens {
			fmt.Fprintln(out, t)
		}
	case ":ast":
		node, parseErr := r.RunSource(arg)
		err = parseErr
		if err == nil {
			fmt.Fprintln(out, node)
		}
	case ":infix":
		node, parseErr := r.RunSource(arg)
		err = parseErr
		if err == nil {
			fmt.Fprintln(out, ast.Infix(node))
		}
	default:
		value, evalErr := r.Interpret(input)
		err = evalErr
		if err == nil {
			fmt.Fprintln(out, value)
		}
	}

	if err != nil {
		errorColor.Fprint(errOut, "Error:")
		fmt.Fprintf(errOut, " %v\n", err)
		return false, false
	}
	return false, true
}
