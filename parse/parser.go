package parse

import (
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/texatom/atom"
)

// maxMacroDepth bounds nested macro expansion.
const maxMacroDepth = 32

// stopSet names the tokens that end a list instead of being parsed.
type stopSet uint8

const (
	stopBrace   stopSet = 1 << iota // }
	stopBracket                     // ]
	stopCell                        // & \\ \cr
	stopEnd                         // \end
	stopRight                       // \right \mright
	stopDollar                      // $
)

type parser struct {
	toks  []lexer.Token
	pos   int
	opts  *options
	depth int
}

func (p *parser) peek() *lexer.Token {
	if p.pos >= len(p.toks) {
		eof := lexer.Token{Type: lexer.EOF}
		if n := len(p.toks); n > 0 {
			eof.Pos = p.toks[n-1].Pos
			eof.Pos.Offset += len(p.toks[n-1].Value)
		}
		return &eof
	}
	return &p.toks[p.pos]
}

func (p *parser) advance() *lexer.Token {
	tok := p.peek()
	if !tok.EOF() {
		p.pos++
	}
	return tok
}

// skipSpace skips whitespace and comments.
func (p *parser) skipSpace() {
	for {
		tok := p.peek()
		if tok.Type != whitespaceType && tok.Type != commentType {
			return
		}
		p.pos++
	}
}

// since returns the source consumed from token index start.
func (p *parser) since(start int) string {
	return verbatim(p.toks[start:p.pos])
}

func (p *parser) fail(tok *lexer.Token, sentinel error, msg string) error {
	return &Error{Pos: tok.Pos, Msg: msg, Err: sentinel}
}

func isChar(tok *lexer.Token, c string) bool {
	return tok.Type == charType && tok.Value == c
}

func stopsAt(tok *lexer.Token, stops stopSet) bool {
	switch tok.Type {
	case rbraceType:
		return stops&stopBrace != 0
	case charType:
		switch tok.Value {
		case "]":
			return stops&stopBracket != 0
		case "&":
			return stops&stopCell != 0
		case "$":
			return stops&stopDollar != 0
		}
	case commandType:
		switch tok.Value {
		case `\\`, `\cr`:
			return stops&stopCell != 0
		case `\end`:
			return stops&stopEnd != 0
		case `\right`, `\mright`:
			return stops&stopRight != 0
		}
	}
	return false
}

func newAtom(typ atom.Type, ctx atom.Style) *atom.Atom {
	return &atom.Atom{Type: typ, Style: ctx}
}

// list parses atoms until EOF or a token in stops, which is left unread.
// Style switches such as \color only last until the end of the list.
func (p *parser) list(ctx atom.Style, stops stopSet) ([]*atom.Atom, error) {
	res := []*atom.Atom{}
	var infix *atom.Atom
	for {
		tok := p.peek()
		if tok.EOF() || stopsAt(tok, stops) {
			break
		}
		if ctx.Mode != atom.TextMode && (tok.Type == whitespaceType || tok.Type == commentType) {
			p.pos++
			continue
		}

		switch {
		case tok.Type == rbraceType:
			return nil, p.fail(tok, ErrUnbalanced, "unexpected }")
		case tok.Type == commandType && (tok.Value == `\end` || tok.Value == `\right` || tok.Value == `\mright`):
			return nil, p.fail(tok, ErrUnbalanced, tok.Value+" without matching opening")
		case tok.Type == commandType && (tok.Value == `\over` || tok.Value == `\atop` || tok.Value == `\choose`):
			p.pos++
			if infix != nil {
				res = append(res, p.errorAtom(ctx, tok))
				continue
			}
			infix = newAtom(atom.Genfrac, ctx)
			infix.Value = tok.Value[1:]
			infix.Latex = tok.Value
			infix.Numer = res
			res = []*atom.Atom{}
			continue
		case tok.Type == commandType && (tok.Value == `\limits` || tok.Value == `\nolimits`):
			p.pos++
			if n := len(res); n > 0 && res[n-1].Type == atom.Mop {
				res[n-1].Limits = tok.Value[1:]
				res[n-1].ExplicitLimits = true
			} else {
				res = append(res, p.errorAtom(ctx, tok))
			}
			continue
		case ctx.Mode != atom.TextMode && tok.Type == charType && (tok.Value == "^" || tok.Value == "_"):
			if err := p.script(ctx, &res); err != nil {
				return nil, err
			}
			continue
		case ctx.Mode != atom.TextMode && isChar(tok, "'"):
			p.pos++
			p.prime(ctx, &res)
			continue
		case tok.Type == commandType && tok.Value == `\color`:
			p.pos++
			c, _, err := p.rawArg()
			if err != nil {
				return nil, err
			}
			ctx.Color = c
			continue
		case tok.Type == commandType && sizes[tok.Value[1:]] != "":
			p.pos++
			ctx.FontSize = sizes[tok.Value[1:]]
			continue
		}

		atoms, err := p.item(ctx)
		if err != nil {
			return nil, err
		}
		res = append(res, atoms...)
	}

	if infix != nil {
		infix.Denom = res
		return []*atom.Atom{infix}, nil
	}
	return res, nil
}

// item parses one unit of input: a character, a group or a command with its
// arguments.
func (p *parser) item(ctx atom.Style) ([]*atom.Atom, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.EOF:
		return nil, p.fail(tok, ErrUnterminated, "unexpected end of input")
	case rbraceType:
		return nil, p.fail(tok, ErrUnbalanced, "unexpected }")
	case lbraceType:
		return p.group(ctx)
	case commandType, charCodeType:
		return p.command(ctx)
	case whitespaceType:
		p.pos++
		if ctx.Mode == atom.TextMode {
			a := newAtom(atom.Text, ctx)
			a.Value = " "
			return []*atom.Atom{a}, nil
		}
		return nil, nil
	case commentType:
		p.pos++
		return nil, nil
	}

	p.pos++
	switch tok.Value {
	case "~":
		a := newAtom(atom.Space, ctx)
		a.Latex = "~"
		return []*atom.Atom{a}, nil
	case "&", "#":
		return []*atom.Atom{p.errorAtom(ctx, tok)}, nil
	case "$":
		if ctx.Mode == atom.TextMode {
			return p.inlineMath(ctx, tok)
		}
		return []*atom.Atom{p.errorAtom(ctx, tok)}, nil
	}
	typ := atom.Text
	if ctx.Mode != atom.TextMode {
		typ = mathChar(tok.Value)
	}
	a := newAtom(typ, ctx)
	a.Value = tok.Value
	return []*atom.Atom{a}, nil
}

// group parses {...}. In math mode the result is a group atom caching the
// text between the braces; in text mode the atoms are spliced in.
func (p *parser) group(ctx atom.Style) ([]*atom.Atom, error) {
	body, inner, err := p.braced(ctx)
	if err != nil {
		return nil, err
	}
	if ctx.Mode == atom.TextMode {
		return body, nil
	}
	if len(body) == 1 && body[0].Type == atom.Genfrac && isInfix(body[0]) {
		return body, nil
	}
	g := newAtom(atom.Group, ctx)
	g.Body = body
	g.Latex = inner
	return []*atom.Atom{g}, nil
}

func isInfix(a *atom.Atom) bool {
	switch a.Value {
	case "over", "atop", "choose":
		return true
	}
	return false
}

// braced parses a {...} list and returns it with the verbatim text between
// the braces.
func (p *parser) braced(ctx atom.Style) ([]*atom.Atom, string, error) {
	open := p.advance()
	start := p.pos
	body, err := p.list(ctx, stopBrace)
	if err != nil {
		return nil, "", err
	}
	inner := p.since(start)
	if p.peek().Type != rbraceType {
		return nil, "", p.fail(open, ErrUnbalanced, "missing }")
	}
	p.pos++
	return body, inner, nil
}

// arg parses a command argument: a braced list or a single item.
func (p *parser) arg(ctx atom.Style) ([]*atom.Atom, error) {
	p.skipSpace()
	if p.peek().Type == lbraceType {
		body, _, err := p.braced(ctx)
		return body, err
	}
	atoms, err := p.item(ctx)
	if err != nil {
		return nil, err
	}
	if atoms == nil {
		atoms = []*atom.Atom{}
	}
	return atoms, nil
}

// rawArg returns the verbatim text of an argument without parsing it.
func (p *parser) rawArg() (string, *lexer.Token, error) {
	p.skipSpace()
	tok := p.peek()
	switch tok.Type {
	case lexer.EOF:
		return "", tok, p.fail(tok, ErrUnterminated, "missing argument")
	case rbraceType:
		return "", tok, p.fail(tok, ErrUnbalanced, "unexpected }")
	case lbraceType:
	default:
		p.pos++
		return tok.Value, tok, nil
	}

	p.pos++
	start, depth := p.pos, 1
	for {
		t := p.peek()
		switch t.Type {
		case lexer.EOF:
			return "", tok, p.fail(tok, ErrUnbalanced, "missing }")
		case lbraceType:
			depth++
		case rbraceType:
			depth--
		}
		if depth == 0 {
			raw := p.since(start)
			p.pos++
			return raw, tok, nil
		}
		p.pos++
	}
}

// rawOptional returns the verbatim text of an optional [...] argument.
func (p *parser) rawOptional() (string, bool, error) {
	save := p.pos
	p.skipSpace()
	open := p.peek()
	if !isChar(open, "[") {
		p.pos = save
		return "", false, nil
	}
	p.pos++
	start, depth := p.pos, 0
	for {
		t := p.peek()
		switch {
		case t.EOF():
			return "", false, p.fail(open, ErrUnterminated, "missing ]")
		case t.Type == lbraceType:
			depth++
		case t.Type == rbraceType:
			depth--
		case depth == 0 && isChar(t, "]"):
			raw := p.since(start)
			p.pos++
			return raw, true, nil
		}
		p.pos++
	}
}

// optional parses an optional [...] argument as a list. The result is nil
// when the argument is absent.
func (p *parser) optional(ctx atom.Style) ([]*atom.Atom, error) {
	save := p.pos
	p.skipSpace()
	open := p.peek()
	if !isChar(open, "[") {
		p.pos = save
		return nil, nil
	}
	p.pos++
	body, err := p.list(ctx, stopBracket)
	if err != nil {
		return nil, err
	}
	if !isChar(p.peek(), "]") {
		return nil, p.fail(open, ErrUnterminated, "missing ]")
	}
	p.pos++
	return body, nil
}

// script attaches a ^ or _ argument to the last atom, or to a new msubsup
// atom when there is no base or the base already has that script.
func (p *parser) script(ctx atom.Style, res *[]*atom.Atom) error {
	tok := p.advance()
	arg, err := p.arg(ctx)
	if err != nil {
		return err
	}
	sup := tok.Value == "^"
	base := lastAtom(*res)
	if base == nil || (sup && base.Superscript != nil) || (!sup && base.Subscript != nil) {
		base = newAtom(atom.Msubsup, ctx)
		base.Value = atom.ZeroWidthSpace
		*res = append(*res, base)
	}
	if sup {
		base.Superscript = arg
	} else {
		base.Subscript = arg
	}
	return nil
}

// prime adds a prime to the superscript of the last atom. Two primes make
// a double prime.
func (p *parser) prime(ctx atom.Style, res *[]*atom.Atom) {
	base := lastAtom(*res)
	if base == nil {
		base = newAtom(atom.Msubsup, ctx)
		base.Value = atom.ZeroWidthSpace
		*res = append(*res, base)
	}
	if len(base.Superscript) == 1 && base.Superscript[0].Value == "′" {
		base.Superscript[0].Value = "″"
		return
	}
	a := newAtom(atom.Mord, ctx)
	a.Value = "′"
	base.Superscript = append(base.Superscript, a)
}

func lastAtom(atoms []*atom.Atom) *atom.Atom {
	if len(atoms) == 0 {
		return nil
	}
	return atoms[len(atoms)-1]
}

// inlineMath parses $...$ inside text.
func (p *parser) inlineMath(ctx atom.Style, open *lexer.Token) ([]*atom.Atom, error) {
	ctx.Mode = atom.MathMode
	body, err := p.list(ctx, stopDollar)
	if err != nil {
		return nil, err
	}
	if !isChar(p.peek(), "$") {
		return nil, p.fail(open, ErrUnterminated, "missing $")
	}
	p.pos++
	return body, nil
}

func (p *parser) errorAtom(ctx atom.Style, tok *lexer.Token) *atom.Atom {
	p.opts.log.Debug("unsupported input", "latex", tok.Value, "offset", tok.Pos.Offset)
	a := newAtom(atom.Error, ctx)
	a.Latex = tok.Value
	if r, _ := utf8.DecodeLastRuneInString(tok.Value); tok.Type == commandType && unicode.IsLetter(r) {
		a.Latex += " "
	}
	return a
}
