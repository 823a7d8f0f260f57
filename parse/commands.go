package parse

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/texatom/atom"
	"github.com/ByLCY/texatom/macro"
)

// command parses a command token and its arguments.
func (p *parser) command(ctx atom.Style) ([]*atom.Atom, error) {
	start := p.pos
	tok := p.advance()
	if tok.Type == charCodeType {
		a := newAtom(atom.Mord, ctx)
		a.Latex = tok.Value
		if n, err := strconv.ParseUint(strings.TrimPrefix(tok.Value, `\char"`), 16, 32); err == nil {
			a.Value = string(rune(n))
		}
		return one(a)
	}
	name := tok.Value[1:]

	if ctx.Mode == atom.TextMode {
		return p.textCommand(ctx, tok, name)
	}

	if def, ok := p.opts.macros.Lookup(name); ok {
		return p.macro(ctx, tok, def, start)
	}
	if change, ok := textFonts[name]; ok {
		return p.styled(ctx, atom.TextMode, change)
	}
	if change, ok := mathFonts[name]; ok {
		return p.styled(ctx, atom.MathMode, change)
	}
	if sym, ok := mathSymbols[name]; ok {
		a := newAtom(sym.typ, ctx)
		a.Value = sym.value
		a.Latex = tok.Value
		return one(a)
	}
	if v, ok := bigOperators[name]; ok {
		a := newAtom(atom.Mop, ctx)
		a.Value = v
		a.Latex = tok.Value
		return one(a)
	}
	if functions[name] {
		a := newAtom(atom.Mop, ctx)
		a.Value = name
		a.Latex = tok.Value
		a.IsFunction = true
		return one(a)
	}
	if typ, ok := mathClasses[name]; ok {
		body, err := p.arg(ctx)
		if err != nil {
			return nil, err
		}
		a := newAtom(typ, ctx)
		a.Body = body
		a.Latex = tok.Value
		return one(a)
	}
	if fractions[name] {
		return p.fraction(ctx, tok)
	}
	if spacings[name] {
		a := newAtom(atom.Spacing, ctx)
		a.Command = tok.Value
		a.Latex = tok.Value
		return one(a)
	}
	if lines[name] || accents[name] || overlaps[name] {
		typ := atom.Line
		switch {
		case accents[name]:
			typ = atom.Accent
		case overlaps[name]:
			typ = atom.Overlap
		}
		body, err := p.arg(ctx)
		if err != nil {
			return nil, err
		}
		a := newAtom(typ, ctx)
		a.Command = tok.Value
		a.Body = body
		a.Latex = tok.Value
		return one(a)
	}
	if mathStyles[name] {
		a := newAtom(atom.MathStyle, ctx)
		a.MathStyle = name
		a.Latex = tok.Value
		return one(a)
	}
	if sizedDelims[name] {
		d, err := p.delimiter(tok)
		if err != nil {
			return nil, err
		}
		a := newAtom(atom.SizedDelim, ctx)
		a.Latex = tok.Value
		a.Delim = d
		return one(a)
	}
	if notation, ok := cancels[name]; ok {
		body, err := p.arg(ctx)
		if err != nil {
			return nil, err
		}
		a := newAtom(atom.Enclose, ctx)
		a.Command = tok.Value
		a.Enclose = defaultEnclose()
		a.Enclose.Notation = strings.Fields(notation)
		a.Body = body
		a.Latex = tok.Value
		return one(a)
	}
	switch name {
	case "sqrt":
		index, err := p.optional(ctx)
		if err != nil {
			return nil, err
		}
		body, err := p.arg(ctx)
		if err != nil {
			return nil, err
		}
		a := newAtom(atom.Surd, ctx)
		a.Index = index
		a.Body = body
		a.Latex = tok.Value
		return one(a)
	case "left", "mleft":
		return p.leftRight(ctx, tok)
	case "middle":
		d, err := p.delimiter(tok)
		if err != nil {
			return nil, err
		}
		a := newAtom(atom.Delim, ctx)
		a.Command = tok.Value
		a.Delim = d
		return one(a)
	case "operatorname":
		return p.operatorName(ctx, tok)
	case "mathop":
		body, err := p.arg(ctx)
		if err != nil {
			return nil, err
		}
		a := newAtom(atom.Mop, ctx)
		a.Body = body
		a.Latex = tok.Value
		return one(a)
	case "unicode":
		raw, _, err := p.rawArg()
		if err != nil {
			return nil, err
		}
		a := newAtom(atom.Mord, ctx)
		a.Latex = p.since(start)
		a.Value = codePoint(raw)
		return one(a)
	case "overset", "underset", "stackrel":
		script, err := p.arg(ctx)
		if err != nil {
			return nil, err
		}
		body, err := p.arg(ctx)
		if err != nil {
			return nil, err
		}
		a := newAtom(atom.OverUnder, ctx)
		a.Command = tok.Value
		a.Body = body
		if name == "underset" {
			a.Underscript = script
		} else {
			a.Overscript = script
		}
		a.Latex = tok.Value
		return one(a)
	case "rule":
		return p.rule(ctx, tok)
	case "hspace":
		cmd := tok.Value
		if isChar(p.peek(), "*") {
			p.pos++
			cmd += "*"
		}
		raw, _, err := p.rawArg()
		if err != nil {
			return nil, err
		}
		a := newAtom(atom.Spacing, ctx)
		a.Command = cmd
		a.Width = length(raw)
		a.Latex = cmd
		return one(a)
	case " ":
		a := newAtom(atom.Space, ctx)
		a.Latex = tok.Value
		return one(a)
	case "textcolor":
		c, _, err := p.rawArg()
		if err != nil {
			return nil, err
		}
		inner := ctx
		inner.Color = c
		return p.arg(inner)
	case "colorbox", "fcolorbox", "bbox", "boxed":
		return p.box(ctx, tok, name)
	case "enclose":
		return p.enclose(ctx, tok)
	case "cssId", "class":
		v, _, err := p.rawArg()
		if err != nil {
			return nil, err
		}
		g, err := p.styledGroup(ctx)
		if err != nil {
			return nil, err
		}
		if name == "cssId" {
			g.CSSId = v
		} else {
			g.CSSClass = v
		}
		return one(g)
	case "emph":
		g, err := p.styledGroup(ctx)
		if err != nil {
			return nil, err
		}
		g.CSSClass = "ML__emph"
		return one(g)
	case "placeholder":
		if _, _, err := p.rawOptional(); err != nil {
			return nil, err
		}
		v, _, err := p.rawArg()
		if err != nil {
			return nil, err
		}
		a := newAtom(atom.Placeholder, ctx)
		a.Value = v
		a.Latex = tok.Value
		return one(a)
	case "variable":
		body, err := p.arg(ctx)
		if err != nil {
			return nil, err
		}
		a := newAtom(atom.Variable, ctx)
		a.Body = body
		a.Latex = tok.Value
		return one(a)
	case "begin":
		return p.environment(ctx, tok)
	}

	return one(p.errorAtom(ctx, tok))
}

func one(a *atom.Atom) ([]*atom.Atom, error) { return []*atom.Atom{a}, nil }

// textCommand handles the commands allowed in text mode.
func (p *parser) textCommand(ctx atom.Style, tok *lexer.Token, name string) ([]*atom.Atom, error) {
	if change, ok := textFonts[name]; ok {
		return p.styled(ctx, atom.TextMode, change)
	}
	if v, ok := textEscapes[tok.Value]; ok {
		a := newAtom(atom.Text, ctx)
		a.Value = v
		a.Latex = tok.Value
		return one(a)
	}
	switch name {
	case " ":
		a := newAtom(atom.Text, ctx)
		a.Value = " "
		a.Latex = tok.Value
		return one(a)
	case "textcolor":
		c, _, err := p.rawArg()
		if err != nil {
			return nil, err
		}
		inner := ctx
		inner.Color = c
		return p.arg(inner)
	}
	return one(p.errorAtom(ctx, tok))
}

// styled parses an argument in mode with a changed font. The atoms carry
// the font themselves; no wrapper atom is created.
func (p *parser) styled(ctx atom.Style, mode atom.Mode, change fontChange) ([]*atom.Atom, error) {
	inner := ctx
	inner.Mode = mode
	change(&inner)
	return p.arg(inner)
}

// styledGroup parses a braced argument into a group atom.
func (p *parser) styledGroup(ctx atom.Style) (*atom.Atom, error) {
	p.skipSpace()
	g := newAtom(atom.Group, ctx)
	if p.peek().Type != lbraceType {
		body, err := p.item(ctx)
		if err != nil {
			return nil, err
		}
		g.Body = body
		return g, nil
	}
	body, inner, err := p.braced(ctx)
	if err != nil {
		return nil, err
	}
	g.Body = body
	g.Latex = inner
	return g, nil
}

func (p *parser) fraction(ctx atom.Style, tok *lexer.Token) ([]*atom.Atom, error) {
	numer, err := p.arg(ctx)
	if err != nil {
		return nil, err
	}
	denom, err := p.arg(ctx)
	if err != nil {
		return nil, err
	}
	a := newAtom(atom.Genfrac, ctx)
	a.Command = tok.Value
	a.Numer = numer
	a.Denom = denom
	a.Latex = tok.Value
	return one(a)
}

// delimiter reads the delimiter following \left, \right, \middle or a
// \big command.
func (p *parser) delimiter(cmd *lexer.Token) (string, error) {
	p.skipSpace()
	tok := p.peek()
	if tok.EOF() {
		return "", p.fail(cmd, ErrUnterminated, "missing delimiter after "+cmd.Value)
	}
	if tok.Type == lbraceType {
		raw, open, err := p.rawArg()
		if err != nil {
			return "", err
		}
		if raw = strings.TrimSpace(raw); !delimiters[raw] {
			return "", p.fail(open, nil, "invalid delimiter "+raw)
		}
		return raw, nil
	}
	if !delimiters[tok.Value] {
		return "", p.fail(tok, nil, "invalid delimiter "+tok.Value)
	}
	p.pos++
	return tok.Value, nil
}

func (p *parser) leftRight(ctx atom.Style, open *lexer.Token) ([]*atom.Atom, error) {
	left, err := p.delimiter(open)
	if err != nil {
		return nil, err
	}
	body, err := p.list(ctx, stopRight)
	if err != nil {
		return nil, err
	}
	closer := p.advance()
	if closer.EOF() {
		return nil, p.fail(open, ErrUnterminated, "missing \\right")
	}
	right, err := p.delimiter(closer)
	if err != nil {
		return nil, err
	}
	a := newAtom(atom.LeftRight, ctx)
	a.Inner = open.Value == `\left`
	a.LeftDelim = left
	a.RightDelim = right
	a.Body = body
	a.Latex = open.Value
	return one(a)
}

func (p *parser) operatorName(ctx atom.Style, tok *lexer.Token) ([]*atom.Atom, error) {
	star := isChar(p.peek(), "*")
	if star {
		p.pos++
	}
	name, _, err := p.rawArg()
	if err != nil {
		return nil, err
	}
	a := newAtom(atom.Mop, ctx)
	a.Value = name
	a.IsFunction = true
	a.FontFamily = "cmr"
	cmd := tok.Value
	if star {
		a.Limits = "limits"
		cmd += "*"
	}
	a.Latex = cmd + "{" + name + "}"
	return one(a)
}

func (p *parser) rule(ctx atom.Style, tok *lexer.Token) ([]*atom.Atom, error) {
	shift, _, err := p.rawOptional()
	if err != nil {
		return nil, err
	}
	w, _, err := p.rawArg()
	if err != nil {
		return nil, err
	}
	h, _, err := p.rawArg()
	if err != nil {
		return nil, err
	}
	a := newAtom(atom.Rule, ctx)
	a.Command = tok.Value
	a.Shift = length(shift)
	a.Width = length(w)
	a.Height = length(h)
	a.Latex = tok.Value
	return one(a)
}

func (p *parser) box(ctx atom.Style, tok *lexer.Token, name string) ([]*atom.Atom, error) {
	params := &atom.BoxParams{}
	switch name {
	case "bbox":
		raw, ok, err := p.rawOptional()
		if err != nil {
			return nil, err
		}
		if ok {
			for _, part := range strings.Split(raw, ",") {
				part = strings.TrimSpace(part)
				if l, ok := atom.ParseLength(part); ok {
					pad := l.Em()
					params.Padding = &pad
				} else if b, ok := strings.CutPrefix(part, "border:"); ok {
					params.Border = strings.TrimSpace(b)
				} else if part != "" {
					params.BackgroundColor = part
				}
			}
		}
	case "colorbox":
		c, _, err := p.rawArg()
		if err != nil {
			return nil, err
		}
		params.BackgroundColor = c
	case "fcolorbox":
		frame, _, err := p.rawArg()
		if err != nil {
			return nil, err
		}
		bg, _, err := p.rawArg()
		if err != nil {
			return nil, err
		}
		params.FrameColor, params.BackgroundColor = frame, bg
	}
	body, err := p.arg(ctx)
	if err != nil {
		return nil, err
	}
	a := newAtom(atom.Box, ctx)
	a.Command = tok.Value
	a.Box = params
	a.Body = body
	a.Latex = tok.Value
	return one(a)
}

func defaultEnclose() *atom.EncloseParams {
	return &atom.EncloseParams{
		StrokeColor:     "currentColor",
		StrokeWidth:     1,
		StrokeStyle:     "solid",
		BackgroundColor: "transparent",
		Shadow:          "auto",
	}
}

func (p *parser) enclose(ctx atom.Style, tok *lexer.Token) ([]*atom.Atom, error) {
	notation, _, err := p.rawArg()
	if err != nil {
		return nil, err
	}
	params := defaultEnclose()
	params.Notation = strings.Fields(notation)
	style, _, err := p.rawOptional()
	if err != nil {
		return nil, err
	}
	for _, part := range strings.Split(style, ",") {
		part = strings.TrimSpace(part)
		key, value, ok := strings.Cut(part, "=")
		value = strings.Trim(strings.TrimSpace(value), `"`)
		switch {
		case part == "":
		case ok && strings.TrimSpace(key) == "mathbackground":
			params.BackgroundColor = value
		case ok && strings.TrimSpace(key) == "mathcolor":
			params.StrokeColor = value
		case ok && strings.TrimSpace(key) == "shadow":
			params.Shadow = value
		default:
			params.BorderStyle = part
			borderStyle(params, part)
		}
	}
	body, err := p.arg(ctx)
	if err != nil {
		return nil, err
	}
	a := newAtom(atom.Enclose, ctx)
	a.Command = tok.Value
	a.Enclose = params
	a.Body = body
	a.Latex = tok.Value
	return one(a)
}

// borderStyle reads width, style and color from a CSS border shorthand
// such as "2px dashed blue".
func borderStyle(params *atom.EncloseParams, v string) {
	for _, field := range strings.Fields(v) {
		switch field {
		case "none", "hidden", "dotted", "dashed", "solid", "double", "groove", "ridge", "inset", "outset":
			params.StrokeStyle = field
			continue
		}
		if w, ok := strings.CutSuffix(field, "px"); ok {
			if n, err := strconv.ParseFloat(w, 64); err == nil {
				params.StrokeWidth = n
				continue
			}
		}
		params.StrokeColor = field
	}
}

func (p *parser) environment(ctx atom.Style, begin *lexer.Token) ([]*atom.Atom, error) {
	name, _, err := p.rawArg()
	if err != nil {
		return nil, err
	}
	a := newAtom(atom.Array, ctx)
	a.Env = name
	if name == "array" {
		spec, _, err := p.rawArg()
		if err != nil {
			return nil, err
		}
		a.ColFormat = columnFormat(spec)
	}

	var rows [][][]*atom.Atom
	var row [][]*atom.Atom
	for {
		cell, err := p.list(ctx, stopCell|stopEnd)
		if err != nil {
			return nil, err
		}
		row = append(row, cell)
		tok := p.advance()
		switch {
		case tok.EOF():
			return nil, p.fail(begin, ErrUnterminated, `missing \end{`+name+"}")
		case isChar(tok, "&"):
			continue
		case tok.Value == `\\` || tok.Value == `\cr`:
			if _, _, err := p.rawOptional(); err != nil {
				return nil, err
			}
			rows = append(rows, row)
			row = nil
			continue
		}

		// \end
		end, endTok, err := p.rawArg()
		if err != nil {
			return nil, err
		}
		if end != name {
			return nil, p.fail(endTok, ErrUnbalanced, `\end{`+end+`} does not match \begin{`+name+"}")
		}
		rows = append(rows, row)
		break
	}
	// a trailing \\ leaves an empty last row
	if n := len(rows); n > 1 && len(rows[n-1]) == 1 && len(rows[n-1][0]) == 0 {
		rows = rows[:n-1]
	}
	a.Array = rows
	a.Latex = begin.Value
	return one(a)
}

func columnFormat(spec string) []atom.ColumnFormat {
	var res []atom.ColumnFormat
	for _, r := range spec {
		switch r {
		case 'l', 'c', 'r':
			res = append(res, atom.ColumnFormat{Align: string(r)})
		case '|':
			res = append(res, atom.ColumnFormat{Rule: true})
		}
	}
	return res
}

// macro expands a macro invocation into a group whose cached text is the
// invocation itself.
func (p *parser) macro(ctx atom.Style, tok *lexer.Token, def macro.Definition, start int) ([]*atom.Atom, error) {
	if p.depth >= maxMacroDepth {
		return nil, p.fail(tok, nil, "macro expansion too deep at "+tok.Value)
	}
	args := make([]string, def.Args)
	for i := range args {
		raw, _, err := p.rawArg()
		if err != nil {
			return nil, err
		}
		args[i] = raw
	}
	toks, err := tokenize(macro.Expand(def, args))
	if err != nil {
		return nil, err
	}
	sub := &parser{toks: toks, opts: p.opts, depth: p.depth + 1}
	body, err := sub.list(ctx, 0)
	if err != nil {
		return nil, &Error{Pos: tok.Pos, Msg: "expanding " + tok.Value + ": " + err.Error(), Err: err}
	}
	g := newAtom(atom.Group, ctx)
	g.Body = body
	g.Latex = p.since(start)
	return one(g)
}

// length converts a TeX dimension to em; unparseable values are zero.
func length(raw string) float64 {
	l, ok := atom.ParseLength(strings.TrimSpace(raw))
	if !ok {
		return 0
	}
	return l.Em()
}

// codePoint reads the argument of \unicode, either "hex or decimal.
func codePoint(raw string) string {
	raw = strings.TrimSpace(raw)
	var n uint64
	var err error
	if h, ok := strings.CutPrefix(raw, `"`); ok {
		n, err = strconv.ParseUint(h, 16, 32)
	} else {
		n, err = strconv.ParseUint(raw, 10, 32)
	}
	if err != nil || !utf8.ValidRune(rune(n)) {
		return ""
	}
	return string(rune(n))
}
