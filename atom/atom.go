// Package atom defines the semantic tree of a math formula.
//
// An Atom is one elementary unit of a formula (a symbol, a fraction, a
// radical, a delimited group, an array ...). Atoms are created by the parser
// or by editing commands and are read by the serializers; none of the
// serializers mutate them.
package atom

// Type tags the structural kind of an atom.
type Type string

const (
	Group       Type = "group"
	Array       Type = "array"
	Root        Type = "root"
	Genfrac     Type = "genfrac"
	Surd        Type = "surd"
	LeftRight   Type = "leftright"
	Delim       Type = "delim"
	SizedDelim  Type = "sizeddelim"
	Rule        Type = "rule"
	Line        Type = "line"
	Overlap     Type = "overlap"
	Accent      Type = "accent"
	OverUnder   Type = "overunder"
	Mord        Type = "mord"
	Minner      Type = "minner"
	Mbin        Type = "mbin"
	Mrel        Type = "mrel"
	Mpunct      Type = "mpunct"
	Mopen       Type = "mopen"
	Mclose      Type = "mclose"
	Textord     Type = "textord"
	Text        Type = "" // a text-mode character
	Mop         Type = "mop"
	Box         Type = "box"
	Spacing     Type = "spacing"
	Enclose     Type = "enclose"
	MathStyle   Type = "mathstyle"
	Space       Type = "space"
	Placeholder Type = "placeholder"
	First       Type = "first"
	Command     Type = "command"
	Msubsup     Type = "msubsup"
	Variable    Type = "variable"
	Error       Type = "error"
)

var allTypes = []Type{
	Group, Array, Root, Genfrac, Surd, LeftRight, Delim, SizedDelim, Rule,
	Line, Overlap, Accent, OverUnder, Mord, Minner, Mbin, Mrel, Mpunct,
	Mopen, Mclose, Textord, Text, Mop, Box, Spacing, Enclose, MathStyle,
	Space, Placeholder, First, Command, Msubsup, Variable, Error,
}

// Types returns the closed set of known atom kinds.
func Types() []Type {
	res := make([]Type, len(allTypes))
	copy(res, allTypes)
	return res
}

// Known reports whether t is one of Types().
func (t Type) Known() bool {
	for _, k := range allTypes {
		if k == t {
			return true
		}
	}
	return false
}

// Mode is the parse mode of an atom.
type Mode string

const (
	MathMode Mode = "math"
	TextMode Mode = "text"
)

// ZeroWidthSpace is the body of atoms that only hold a position.
const ZeroWidthSpace = "\u200b"

// Style holds the per-atom style attributes. The empty string means unset.
type Style struct {
	Mode            Mode   `yaml:"mode,omitempty" json:"mode,omitempty"`
	Color           string `yaml:"color,omitempty" json:"color,omitempty"`
	BackgroundColor string `yaml:"backgroundColor,omitempty" json:"backgroundColor,omitempty"`
	FontSize        string `yaml:"fontSize,omitempty" json:"fontSize,omitempty"`
	FontFamily      string `yaml:"fontFamily,omitempty" json:"fontFamily,omitempty"`
	BaseFontFamily  string `yaml:"baseFontFamily,omitempty" json:"baseFontFamily,omitempty"`
	FontShape       string `yaml:"fontShape,omitempty" json:"fontShape,omitempty"`
	FontSeries      string `yaml:"fontSeries,omitempty" json:"fontSeries,omitempty"`
}

// ColumnFormat is one entry of an array column specification: either an
// alignment letter (l, c, r) or a vertical rule.
type ColumnFormat struct {
	Align string `yaml:"align,omitempty" json:"align,omitempty"`
	Rule  bool   `yaml:"rule,omitempty" json:"rule,omitempty"`
}

// BoxParams are the parameters of \bbox, \colorbox and \fcolorbox.
type BoxParams struct {
	FrameColor      string   `yaml:"framecolor,omitempty" json:"framecolor,omitempty"`
	BackgroundColor string   `yaml:"backgroundcolor,omitempty" json:"backgroundcolor,omitempty"`
	Padding         *float64 `yaml:"padding,omitempty" json:"padding,omitempty"`
	Border          string   `yaml:"border,omitempty" json:"border,omitempty"`
}

// EncloseParams are the parameters of \enclose and its shorthands.
// Notation lists the active notations in source order.
type EncloseParams struct {
	Notation        []string `yaml:"notation,omitempty" json:"notation,omitempty"`
	BorderStyle     string   `yaml:"borderStyle,omitempty" json:"borderStyle,omitempty"`
	StrokeColor     string   `yaml:"strokeColor,omitempty" json:"strokeColor,omitempty"`
	StrokeWidth     float64  `yaml:"strokeWidth,omitempty" json:"strokeWidth,omitempty"`
	StrokeStyle     string   `yaml:"strokeStyle,omitempty" json:"strokeStyle,omitempty"`
	Shadow          string   `yaml:"shadow,omitempty" json:"shadow,omitempty"`
	BackgroundColor string   `yaml:"backgroundcolor,omitempty" json:"backgroundcolor,omitempty"`
}

// Atom is a node of the formula tree.
//
// Body holds child atoms. Leaf atoms leave Body nil and carry their literal
// content in Value instead. Latex is the verbatim source the atom was parsed
// from, if any.
type Atom struct {
	Type  Type    `yaml:"type" json:"type"`
	Body  []*Atom `yaml:"body,omitempty" json:"body,omitempty"`
	Value string  `yaml:"value,omitempty" json:"value,omitempty"`
	Latex string  `yaml:"latex,omitempty" json:"latex,omitempty"`

	// Command is the command the atom was created with. It is only consulted
	// when Latex does not start with one.
	Command    string `yaml:"command,omitempty" json:"command,omitempty"`
	IsFunction bool   `yaml:"isFunction,omitempty" json:"isFunction,omitempty"`

	Style `yaml:",inline"`

	// genfrac
	Numer []*Atom `yaml:"numer,omitempty" json:"numer,omitempty"`
	Denom []*Atom `yaml:"denom,omitempty" json:"denom,omitempty"`

	// surd
	Index Sequence `yaml:"index,omitempty" json:"index,omitzero"`

	// leftright, delim, sizeddelim
	LeftDelim  string `yaml:"leftDelim,omitempty" json:"leftDelim,omitempty"`
	RightDelim string `yaml:"rightDelim,omitempty" json:"rightDelim,omitempty"`
	Inner      bool   `yaml:"inner,omitempty" json:"inner,omitempty"`
	Delim      string `yaml:"delim,omitempty" json:"delim,omitempty"`

	// rule, spacing (em)
	Width  float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Height float64 `yaml:"height,omitempty" json:"height,omitempty"`
	Shift  float64 `yaml:"shift,omitempty" json:"shift,omitempty"`

	// overunder
	Overscript  []*Atom `yaml:"overscript,omitempty" json:"overscript,omitempty"`
	Underscript []*Atom `yaml:"underscript,omitempty" json:"underscript,omitempty"`

	// array
	Env       string         `yaml:"env,omitempty" json:"env,omitempty"`
	ColFormat []ColumnFormat `yaml:"colFormat,omitempty" json:"colFormat,omitempty"`
	Array     [][][]*Atom    `yaml:"array,omitempty" json:"array,omitempty"`

	Enclose *EncloseParams `yaml:"enclose,omitempty" json:"enclose,omitempty"`
	Box     *BoxParams     `yaml:"box,omitempty" json:"box,omitempty"`

	// group
	CSSId      string `yaml:"cssId,omitempty" json:"cssId,omitempty"`
	CSSClass   string `yaml:"cssClass,omitempty" json:"cssClass,omitempty"`
	LatexOpen  string `yaml:"latexOpen,omitempty" json:"latexOpen,omitempty"`
	LatexClose string `yaml:"latexClose,omitempty" json:"latexClose,omitempty"`

	// mop
	Limits         string `yaml:"limits,omitempty" json:"limits,omitempty"`
	ExplicitLimits bool   `yaml:"explicitLimits,omitempty" json:"explicitLimits,omitempty"`

	// mathstyle
	MathStyle string `yaml:"mathstyle,omitempty" json:"mathstyle,omitempty"`

	// A non-nil script, even an empty one, is emitted.
	Superscript Sequence `yaml:"superscript,omitempty" json:"superscript,omitzero"`
	Subscript   Sequence `yaml:"subscript,omitempty" json:"subscript,omitzero"`
}

// Sequence is an optional branch whose presence matters even when empty:
// x^{} keeps its superscript. Tree files omit only absent sequences.
type Sequence []*Atom

// IsZero reports whether s is absent.
func (s Sequence) IsZero() bool { return s == nil }

// HasLiteralBody reports whether the atom's content is Value rather than Body.
func (a *Atom) HasLiteralBody() bool { return a.Body == nil }

// NewFirst returns the sentinel atom that may head a sequence.
func NewFirst() *Atom { return &Atom{Type: First} }

// MakeRoot returns an atom suitable for use as the root of a formula.
func MakeRoot(mode Mode, body []*Atom) *Atom {
	if body == nil {
		body = []*Atom{}
	}
	return &Atom{Type: Root, Style: Style{Mode: mode}, Body: body}
}

// StripFirst drops a leading first sentinel.
func StripFirst(atoms []*Atom) []*Atom {
	if len(atoms) > 0 && atoms[0] != nil && atoms[0].Type == First {
		return atoms[1:]
	}
	return atoms
}

// Branches returns the child sequences of a in a fixed order: body, numer,
// denom, index, overscript, underscript, array cells row by row, superscript
// and subscript.
func (a *Atom) Branches() [][]*Atom {
	var res [][]*Atom
	add := func(b []*Atom) {
		if b != nil {
			res = append(res, b)
		}
	}
	add(a.Body)
	add(a.Numer)
	add(a.Denom)
	add(a.Index)
	add(a.Overscript)
	add(a.Underscript)
	for _, row := range a.Array {
		for _, cell := range row {
			add(cell)
		}
	}
	add(a.Superscript)
	add(a.Subscript)
	return res
}

// Walk calls fn for a and every atom below it in pre-order. Returning false
// from fn skips the atom's children.
func (a *Atom) Walk(fn func(*Atom) bool) {
	if a == nil || !fn(a) {
		return
	}
	for _, b := range a.Branches() {
		for _, c := range b {
			c.Walk(fn)
		}
	}
}
