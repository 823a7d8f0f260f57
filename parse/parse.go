// Package parse builds atom trees from LaTeX source.
//
// Every atom created from source keeps the text it was parsed from in its
// Latex field, and groups keep the text between their braces, so that the
// serializer can echo the source unchanged.
package parse

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/texatom/atom"
	"github.com/ByLCY/texatom/macro"
)

var (
	ErrUnbalanced   = errors.New("unbalanced braces")
	ErrUnterminated = errors.New("unterminated construct")
)

// Error is a parse failure at a position of the source.
type Error struct {
	Pos lexer.Position
	Msg string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

type options struct {
	macros macro.Table
	log    *slog.Logger
	mode   atom.Mode
}

// Option configures Parse.
type Option func(*options)

// WithMacros replaces the macro table. The default is macro.Default().
func WithMacros(t macro.Table) Option {
	return func(o *options) { o.macros = t }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMode sets the mode the source starts in.
func WithMode(m atom.Mode) Option {
	return func(o *options) { o.mode = m }
}

// Parse returns the root atom of src.
func Parse(src string, opts ...Option) (*atom.Atom, error) {
	o := buildOptions(opts)
	body, err := parseAtoms(src, o)
	if err != nil {
		return nil, err
	}
	return atom.MakeRoot(o.mode, body), nil
}

// ParseAtoms returns the top-level atoms of src.
func ParseAtoms(src string, opts ...Option) ([]*atom.Atom, error) {
	return parseAtoms(src, buildOptions(opts))
}

func buildOptions(opts []Option) *options {
	o := &options{
		macros: macro.Default(),
		log:    slog.Default(),
		mode:   atom.MathMode,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func parseAtoms(src string, o *options) ([]*atom.Atom, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, opts: o}
	return p.list(atom.Style{Mode: o.mode}, 0)
}
