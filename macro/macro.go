// Package macro holds LaTeX macro definitions and expands their parameters.
package macro

import (
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/goccy/go-yaml"
)

var paramPattern = regexp.MustCompile(`#([1-9])`)

// Definition is a macro body with Args parameters referenced as #1..#9.
type Definition struct {
	Args int    `yaml:"args,omitempty"`
	Def  string `yaml:"def"`
}

// Table maps macro names, without the leading backslash, to definitions.
type Table map[string]Definition

// Default returns the built-in macros.
func Default() Table {
	return Table{
		"R":             {Def: `\mathbb{R}`},
		"N":             {Def: `\mathbb{N}`},
		"Z":             {Def: `\mathbb{Z}`},
		"Q":             {Def: `\mathbb{Q}`},
		"C":             {Def: `\mathbb{C}`},
		"differentialD": {Def: `\mathrm{d}`},
		"exponentialE":  {Def: `\mathrm{e}`},
		"imaginaryI":    {Def: `\mathrm{i}`},
		"abs":           {Args: 1, Def: `\left|#1\right|`},
		"norm":          {Args: 1, Def: `\left\|#1\right\|`},
	}
}

// Lookup returns the definition of name.
func (t Table) Lookup(name string) (Definition, bool) {
	d, ok := t[name]
	return d, ok
}

// Merge returns a new table holding t overridden by other.
func (t Table) Merge(other Table) Table {
	res := make(Table, len(t)+len(other))
	for k, v := range t {
		res[k] = v
	}
	for k, v := range other {
		res[k] = v
	}
	return res
}

// Expand substitutes args into the definition. References past the
// supplied arguments are left in place.
func Expand(def Definition, args []string) string {
	if def.Args == 0 {
		return def.Def
	}
	return paramPattern.ReplaceAllStringFunc(def.Def, func(match string) string {
		n, err := strconv.Atoi(match[1:])
		if err != nil || n > len(args) || n > def.Args {
			return match
		}
		return args[n-1]
	})
}

// Load reads a YAML table such as
//
//	RR: {def: '\mathbb{R}'}
//	pair: {args: 2, def: '\left(#1, #2\right)'}
func Load(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading macros: %w", err)
	}
	t := Table{}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decoding macros: %w", err)
	}
	for name, d := range t {
		if d.Args < 0 || d.Args > 9 {
			return nil, fmt.Errorf("macro %q: %d arguments, want 0-9", name, d.Args)
		}
	}
	return t, nil
}
