package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/takoeight0821/arith/eval"
	"github.com/takoeight0821/arith/infix"
	"github.com/takoeight0821/arith/parser"
	"github.com/takoeight0821/arith/token"
	"gopkg.in/yaml.v3"
)

const (
	PrecedenceFlat         = "flat"
	PrecedenceConventional = "conventional"
)

type Fixity struct {
	Prec  int    `yaml:"prec"`
	Assoc string `yaml:"assoc"`
}

// Config is the on-disk configuration. Zero fields take their defaults.
type Config struct {
	Precedence string            `yaml:"precedence"`
	Overflow   string            `yaml:"overflow"`
	MaxDepth   int               `yaml:"max_depth"`
	Trace      bool              `yaml:"trace"`
	Fixity     map[string]Fixity `yaml:"fixity"`
}

func Default() Config {
	return Config{
		Precedence: PrecedenceFlat,
		Overflow:   eval.Checked.String(),
		MaxDepth:   parser.DefaultMaxDepth,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/arith/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "arith", "config.yaml")
}

// Load reads path on top of Default. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	bytes, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	if err := yaml.Unmarshal(bytes, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Precedence != PrecedenceFlat && c.Precedence != PrecedenceConventional {
		errs = append(errs, fmt.Errorf("unknown precedence %q", c.Precedence))
	}
	if _, err := eval.ParsePolicy(c.Overflow); err != nil {
		errs = append(errs, err)
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth))
	}
	if _, err := c.fixities(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Table returns the fixity table for the configured precedence mode.
// Fixity entries only apply in conventional mode.
func (c Config) Table() (infix.Table, error) {
	if c.Precedence != PrecedenceConventional {
		return infix.Flat(), nil
	}

	table := infix.Conventional()
	overrides, err := c.fixities()
	if err != nil {
		return nil, err
	}
	for sign, f := range overrides {
		table[sign] = f
	}
	return table, nil
}

func (c Config) Policy() (eval.Policy, error) {
	return eval.ParsePolicy(c.Overflow)
}

func (c Config) fixities() (infix.Table, error) {
	table := infix.Table{}
	for op, f := range c.Fixity {
		runes := []rune(op)
		if len(runes) != 1 {
			return nil, fmt.Errorf("fixity: unknown operator %q", op)
		}
		sign, ok := token.SignOf(runes[0])
		if !ok {
			return nil, fmt.Errorf("fixity: unknown operator %q", op)
		}
		assoc, err := infix.ParseAssoc(f.Assoc)
		if err != nil {
			return nil, fmt.Errorf("fixity %s: %w", op, err)
		}
		table[sign] = infix.Fixity{Prec: f.Prec, Assoc: assoc}
	}
	return table, nil
}
