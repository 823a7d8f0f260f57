package latex

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ByLCY/texatom/atom"
)

const emphClass = "ML__emph"

var mathClassCommand = regexp.MustCompile(`^\\(mathbin|mathrel|mathopen|mathclose|mathpunct|mathord|mathinner)`)

func defaultEmitters() map[atom.Type]EmitFunc {
	m := map[atom.Type]EmitFunc{
		atom.Group:       emitGroup,
		atom.Array:       emitArray,
		atom.Root:        func(s *Serializer, a *atom.Atom) string { return s.Body(a) },
		atom.Genfrac:     emitGenfrac,
		atom.Surd:        emitSurd,
		atom.LeftRight:   emitLeftRight,
		atom.Delim:       emitDelim,
		atom.SizedDelim:  emitDelim,
		atom.Rule:        emitRule,
		atom.Line:        emitWrapped,
		atom.Overlap:     emitWrapped,
		atom.Accent:      emitWrapped,
		atom.OverUnder:   emitOverUnder,
		atom.Mop:         emitOperator,
		atom.Box:         emitBox,
		atom.Spacing:     emitSpacing,
		atom.Enclose:     emitEnclose,
		atom.MathStyle:   emitMathStyle,
		atom.Space:       func(_ *Serializer, a *atom.Atom) string { return a.Latex },
		atom.Placeholder: func(_ *Serializer, a *atom.Atom) string { return `\placeholder{` + a.Value + "}" },
		atom.Variable:    func(s *Serializer, a *atom.Atom) string { return `\variable{` + s.Body(a) + "}" },
		atom.Error:       func(_ *Serializer, a *atom.Atom) string { return a.Latex },
		atom.First:       emitNothing,
		atom.Command:     emitNothing,
		atom.Msubsup:     emitNothing,
	}
	for _, t := range []atom.Type{
		atom.Mord, atom.Minner, atom.Mbin, atom.Mrel, atom.Mpunct,
		atom.Mopen, atom.Mclose, atom.Textord, atom.Text,
	} {
		m[t] = emitSymbol
	}
	return m
}

func emitNothing(*Serializer, *atom.Atom) string { return "" }

func emitGroup(s *Serializer, a *atom.Atom) string {
	id := s.outputStyles && a.CSSId != ""
	class := s.outputStyles && a.CSSClass != ""

	open, close := "{", "}"
	if id || class {
		open, close = "", ""
	}
	if a.LatexOpen != "" {
		open = a.LatexOpen
	}
	if a.LatexClose != "" {
		close = a.LatexClose
	}

	var sb strings.Builder
	sb.WriteString(open)
	if id {
		sb.WriteString(`\cssId{` + a.CSSId + "}{")
	}
	switch {
	case class && a.CSSClass == emphClass:
		sb.WriteString(`\emph{` + s.Body(a) + "}")
	case class:
		sb.WriteString(`\class{` + a.CSSClass + "}{" + s.groupBody(a) + "}")
	default:
		sb.WriteString(s.groupBody(a))
	}
	if id {
		sb.WriteString("}")
	}
	sb.WriteString(close)
	return sb.String()
}

func emitArray(s *Serializer, a *atom.Atom) string {
	var sb strings.Builder
	sb.WriteString(`\begin{` + a.Env + "}")
	if a.Env == "array" {
		sb.WriteString("{")
		for _, col := range a.ColFormat {
			switch {
			case col.Align != "":
				sb.WriteString(col.Align)
			case col.Rule:
				sb.WriteString("|")
			}
		}
		sb.WriteString("}")
	}
	for i, row := range a.Array {
		for j, cell := range row {
			if j > 0 {
				sb.WriteString(" & ")
			}
			sb.WriteString(s.Atoms(a, cell))
		}
		if i < len(a.Array)-1 {
			sb.WriteString(` \\ `)
		}
	}
	sb.WriteString(`\end{` + a.Env + "}")
	return sb.String()
}

func emitGenfrac(s *Serializer, a *atom.Atom) string {
	numer, denom := s.Atoms(a, a.Numer), s.Atoms(a, a.Denom)
	switch a.Value {
	case "choose", "atop", "over":
		return "{" + numer + `\` + a.Value + " " + denom + "}"
	}
	return command(a, `\frac`) + "{" + numer + "}{" + denom + "}"
}

func emitSurd(s *Serializer, a *atom.Atom) string {
	var sb strings.Builder
	sb.WriteString(`\sqrt`)
	if a.Index != nil {
		sb.WriteString("[" + s.Atoms(a, a.Index) + "]")
	}
	sb.WriteString("{" + s.Body(a) + "}")
	return sb.String()
}

func emitLeftRight(s *Serializer, a *atom.Atom) string {
	var sb strings.Builder
	delim := func(cmd, d string) {
		if a.Inner {
			if d == "" {
				d = "."
			}
		} else if d == "" || d == "." {
			return
		}
		sb.WriteString(cmd + d)
		if utf8.RuneCountInString(d) > 1 {
			sb.WriteString(" ")
		}
	}
	if a.Inner {
		delim(`\left`, a.LeftDelim)
		sb.WriteString(s.Body(a))
		delim(`\right`, a.RightDelim)
	} else {
		delim(`\mleft`, a.LeftDelim)
		sb.WriteString(s.Body(a))
		delim(`\mright`, a.RightDelim)
	}
	return sb.String()
}

func emitDelim(_ *Serializer, a *atom.Atom) string {
	return command(a, "") + "{" + a.Delim + "}"
}

func emitRule(_ *Serializer, a *atom.Atom) string {
	var sb strings.Builder
	sb.WriteString(command(a, `\rule`))
	if a.Shift != 0 {
		sb.WriteString("[" + atom.FormatEm(a.Shift) + "em]")
	}
	sb.WriteString("{" + atom.FormatEm(a.Width) + "em}{" + atom.FormatEm(a.Height) + "em}")
	return sb.String()
}

// emitWrapped writes cmd{body} for line, overlap and accent atoms.
func emitWrapped(s *Serializer, a *atom.Atom) string {
	return command(a, "") + "{" + s.Body(a) + "}"
}

func emitOverUnder(s *Serializer, a *atom.Atom) string {
	script := a.Underscript
	if a.Overscript != nil {
		script = a.Overscript
	}
	return command(a, "") + "{" + s.Atoms(a, script) + "}{" + s.Atoms(a, a.Body) + "}"
}

func emitSymbol(s *Serializer, a *atom.Atom) string {
	cmd := command(a, "")
	switch {
	case mathClassCommand.MatchString(cmd):
		return cmd + "{" + s.Body(a) + "}"
	case cmd == `\char"`:
		return a.Latex + " "
	case cmd == `\unicode` && a.Value != "":
		r, _ := utf8.DecodeRuneInString(a.Value)
		return fmt.Sprintf(`\unicode{"%06X}`, r)
	}
	return s.symbol(a, cmd)
}

// symbol is the common fallback of symbols and operators: the cached
// source when it is a command, else the command, else the source or the
// literal body.
func (s *Serializer) symbol(a *atom.Atom, cmd string) string {
	switch {
	case strings.HasPrefix(a.Latex, `\`):
		return spaced(a.Latex)
	case cmd != "":
		return spaced(cmd)
	case a.Latex != "":
		return a.Latex
	case a.HasLiteralBody():
		if a.Value == atom.ZeroWidthSpace {
			return ""
		}
		return a.Value
	}
	return s.Body(a)
}

// spaced appends a space to src when it ends with a letter or digit so
// that a following letter is not read as part of the command name.
func spaced(src string) string {
	r, _ := utf8.DecodeLastRuneInString(src)
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return src + " "
	}
	return src
}

func emitOperator(s *Serializer, a *atom.Atom) string {
	var sb strings.Builder
	if !(a.HasLiteralBody() && a.Value == atom.ZeroWidthSpace) {
		cmd := command(a, "")
		switch cmd {
		case `\mathop`:
			sb.WriteString(cmd + "{" + s.Body(a) + "}")
		case `\operatorname`:
			name := a.Value
			if !a.HasLiteralBody() {
				name = s.Atoms(a, a.Body)
			}
			sb.WriteString(cmd + "{" + name + "}")
		default:
			sb.WriteString(s.symbol(a, cmd))
		}
	}
	if a.ExplicitLimits {
		switch a.Limits {
		case "limits":
			sb.WriteString(`\limits `)
		case "nolimits":
			sb.WriteString(`\nolimits `)
		}
	}
	return sb.String()
}

func emitBox(s *Serializer, a *atom.Atom) string {
	p := a.Box
	if p == nil {
		p = &atom.BoxParams{}
	}
	cmd := command(a, `\boxed`)
	var sb strings.Builder
	switch cmd {
	case `\bbox`:
		sb.WriteString(cmd)
		var params []string
		if p.Padding != nil && !math.IsNaN(*p.Padding) && !math.IsInf(*p.Padding, 0) {
			pad := math.Floor(100*(*p.Padding)) / 100
			params = append(params, atom.FormatEm(pad)+"em")
		}
		if p.Border != "" {
			params = append(params, "border:"+p.Border)
		}
		if p.BackgroundColor != "" {
			params = append(params, s.color(p.BackgroundColor))
		}
		if len(params) > 0 {
			sb.WriteString("[" + strings.Join(params, ",") + "]")
		}
	case `\boxed`:
		sb.WriteString(cmd)
	default:
		sb.WriteString(cmd)
		if p.FrameColor != "" {
			sb.WriteString("{" + s.color(p.FrameColor) + "}")
		}
		if p.BackgroundColor != "" {
			sb.WriteString("{" + s.color(p.BackgroundColor) + "}")
		}
	}
	sb.WriteString("{" + s.Body(a) + "}")
	return sb.String()
}

func emitSpacing(_ *Serializer, a *atom.Atom) string {
	cmd := command(a, "")
	if cmd == `\hspace` || cmd == `\hspace*` {
		return cmd + "{" + atom.FormatEm(a.Width) + "em}"
	}
	res := cmd + " "
	if a.Width != 0 {
		res += atom.FormatEm(a.Width) + "em "
	}
	return res
}

func emitEnclose(s *Serializer, a *atom.Atom) string {
	cmd := command(a, `\enclose`)
	var sb strings.Builder
	sb.WriteString(cmd)
	if cmd == `\enclose` {
		p := a.Enclose
		if p == nil {
			p = &atom.EncloseParams{}
		}
		var notations []string
		for _, n := range p.Notation {
			if n != "" {
				notations = append(notations, n)
			}
		}
		sb.WriteString("{" + strings.Join(notations, " ") + "}")

		var style []string
		if p.BackgroundColor != "" && p.BackgroundColor != "transparent" {
			style = append(style, `mathbackground="`+s.color(p.BackgroundColor)+`"`)
		}
		if p.Shadow != "" && p.Shadow != "auto" {
			style = append(style, `shadow="`+p.Shadow+`"`)
		}
		switch {
		case (p.StrokeWidth != 1 || p.StrokeStyle != "solid") && p.BorderStyle != "":
			style = append(style, p.BorderStyle)
		case p.StrokeColor != "" && p.StrokeColor != "currentColor":
			style = append(style, `mathcolor="`+s.color(p.StrokeColor)+`"`)
		}
		if len(style) > 0 {
			sb.WriteString("[" + strings.Join(style, ",") + "]")
		}
	}
	sb.WriteString("{" + s.Body(a) + "}")
	return sb.String()
}

func emitMathStyle(_ *Serializer, a *atom.Atom) string {
	name := a.MathStyle
	if name == "" {
		name = strings.TrimPrefix(command(a, ""), `\`)
	}
	if name == "" {
		return ""
	}
	return `\` + name + " "
}
