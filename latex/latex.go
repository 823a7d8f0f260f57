// Package latex serializes atom trees to LaTeX.
//
// Serialization is two mutually recursive operations: Atom writes one node
// using the rule registered for its type, and Atoms writes a sequence,
// grouping consecutive atoms that share a style property so that each
// wrapping command (\textcolor, \mathbf, \text, ...) is emitted once per run.
//
// Atoms parsed from source keep their verbatim text; groups echo it unless
// macro expansion is requested, which keeps round trips lossless.
package latex

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/ByLCY/texatom/atom"
	"github.com/ByLCY/texatom/color"
)

// EmitFunc writes the type-specific part of an atom. Scripts are appended
// by the Serializer.
type EmitFunc func(s *Serializer, a *atom.Atom) string

// Serializer converts atoms to LaTeX. It is immutable once built and may be
// used from several goroutines.
type Serializer struct {
	expandMacro  bool
	outputStyles bool
	colors       ColorResolver
	log          *slog.Logger
	emitters     map[atom.Type]EmitFunc
	props        []property
}

// New returns a Serializer. By default styles are written, macros are not
// expanded and colors go through color.Default().
func New(opts ...Option) *Serializer {
	s := &Serializer{
		outputStyles: true,
		colors:       color.Default(),
		log:          slog.Default(),
		emitters:     defaultEmitters(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.props = styleProperties
	if !s.outputStyles {
		s.props = styleProperties[:1]
	}
	return s
}

// FromAtom serializes a single atom, typically a root.
func FromAtom(a *atom.Atom, opts ...Option) string {
	return New(opts...).Atom(a)
}

// FromAtoms serializes a sequence of atoms that has no parent.
func FromAtoms(atoms []*atom.Atom, opts ...Option) string {
	return New(opts...).Atoms(nil, atoms)
}

// Atom returns the LaTeX for a, including its superscript and subscript.
// Atoms of an unknown type produce no output and a warning.
func (s *Serializer) Atom(a *atom.Atom) string {
	if a == nil {
		return ""
	}
	var sb strings.Builder
	if emit, ok := s.emitters[a.Type]; ok {
		sb.WriteString(emit(s, a))
	} else {
		s.log.Warn("unexpected atom type", "type", string(a.Type), "latex", firstNonEmpty(a.Latex, a.Value))
	}
	sb.WriteString(s.scripts(a))
	return sb.String()
}

// Atoms returns the LaTeX for a sequence of siblings. parent is the atom
// owning the sequence, or nil; its color and background are not repeated
// on the children.
func (s *Serializer) Atoms(parent *atom.Atom, atoms []*atom.Atom) string {
	atoms = atom.StripFirst(atoms)
	if len(atoms) == 0 {
		return ""
	}
	return s.partition(parent, s.props, atoms, 0)
}

// Body returns the LaTeX for the body of a: its children when it has any,
// its literal value otherwise.
func (s *Serializer) Body(a *atom.Atom) string {
	if a.HasLiteralBody() {
		return literal(a.Value)
	}
	return s.Atoms(a, a.Body)
}

// groupBody chooses between the cached source of a group and its
// resynthesized body.
func (s *Serializer) groupBody(a *atom.Atom) string {
	if s.expandMacro || a.Latex == "" {
		return s.Body(a)
	}
	return a.Latex
}

func (s *Serializer) scripts(a *atom.Atom) string {
	var sb strings.Builder
	if a.Superscript != nil {
		sup := s.Atoms(a, a.Superscript)
		switch sup {
		case "′":
			sup = `\prime `
		case "″":
			sup = `\doubleprime `
		}
		sb.WriteString("^{" + sup + "}")
	}
	if a.Subscript != nil {
		sb.WriteString("_{" + s.Atoms(a, a.Subscript) + "}")
	}
	return sb.String()
}

func (s *Serializer) color(v string) string { return s.colors.ColorToString(v) }

// literal writes a bare string, replacing whitespace with ties.
func literal(v string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '~'
		}
		return r
	}, v)
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}
