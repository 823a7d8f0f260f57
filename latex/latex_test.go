package latex

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/ByLCY/texatom/atom"
)

func mord(v string) *atom.Atom { return &atom.Atom{Type: atom.Mord, Value: v} }

func ptr(v float64) *float64 { return &v }

func TestScenarios(t *testing.T) {
	cases := []struct {
		name string
		in   []*atom.Atom
		want string
	}{
		{
			name: "sqrt with index",
			in:   []*atom.Atom{{Type: atom.Surd, Index: []*atom.Atom{mord("3")}, Body: []*atom.Atom{mord("x")}}},
			want: `\sqrt[3]{x}`,
		},
		{
			name: "frac",
			in:   []*atom.Atom{{Type: atom.Genfrac, Command: `\frac`, Numer: []*atom.Atom{mord("1")}, Denom: []*atom.Atom{mord("2")}}},
			want: `\frac{1}{2}`,
		},
		{
			name: "dfrac from cached source",
			in:   []*atom.Atom{{Type: atom.Genfrac, Latex: `\dfrac{1}{2}`, Numer: []*atom.Atom{mord("1")}, Denom: []*atom.Atom{mord("2")}}},
			want: `\dfrac{1}{2}`,
		},
		{
			name: "infix over",
			in:   []*atom.Atom{{Type: atom.Genfrac, Value: "over", Numer: []*atom.Atom{mord("a")}, Denom: []*atom.Atom{mord("b")}}},
			want: `{a\over b}`,
		},
		{
			name: "left right",
			in: []*atom.Atom{{
				Type: atom.LeftRight, Inner: true, LeftDelim: "(", RightDelim: ")",
				Body: []*atom.Atom{mord("x"), {Type: atom.Mbin, Value: "+"}, mord("y")},
			}},
			want: `\left(x+y\right)`,
		},
		{
			name: "bbox",
			in: []*atom.Atom{{
				Type: atom.Box, Command: `\bbox`,
				Box:  &atom.BoxParams{Padding: ptr(0.3), BackgroundColor: "yellow"},
				Body: []*atom.Atom{mord("x")},
			}},
			want: `\bbox[0.3em,yellow]{x}`,
		},
		{
			name: "operator keeps trailing space",
			in:   []*atom.Atom{{Type: atom.Mop, Latex: `\sin`, IsFunction: true}},
			want: `\sin `,
		},
		{
			name: "first sentinel",
			in:   []*atom.Atom{atom.NewFirst(), mord("a")},
			want: "a",
		},
	}
	for _, tc := range cases {
		if got := FromAtoms(tc.in); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestEmptySequence(t *testing.T) {
	if got := FromAtoms(nil); got != "" {
		t.Fatalf("nil sequence: %q", got)
	}
	if got := FromAtoms([]*atom.Atom{atom.NewFirst()}); got != "" {
		t.Fatalf("sentinel only: %q", got)
	}
	if got := FromAtom(atom.MakeRoot(atom.MathMode, nil)); got != "" {
		t.Fatalf("empty root: %q", got)
	}
}

func TestRunCollapsing(t *testing.T) {
	var atoms []*atom.Atom
	for _, v := range []string{"a", "b", "c"} {
		a := mord(v)
		a.Color = "#ff0000"
		atoms = append(atoms, a)
	}
	got := FromAtoms(atoms)
	if got != `\textcolor{red}{abc}` {
		t.Fatalf("got %q", got)
	}
	if n := strings.Count(got, `\textcolor`); n != 1 {
		t.Fatalf("%d \\textcolor commands", n)
	}
}

// 运算符不会打断样式区间。
func TestOperatorDoesNotBreakRun(t *testing.T) {
	x, y := mord("x"), mord("y")
	x.Color, y.Color = "blue", "blue"
	op := &atom.Atom{Type: atom.Mop, Latex: `\sin`, IsFunction: true}
	if got := FromAtoms([]*atom.Atom{x, op, y}); got != `\textcolor{blue}{x\sin y}` {
		t.Fatalf("got %q", got)
	}
}

func TestParentColorNotRepeated(t *testing.T) {
	parent := &atom.Atom{Type: atom.Group, Style: atom.Style{Color: "red"}}
	a, b := mord("a"), mord("b")
	a.Color, b.Color = "red", "green"
	got := New().Atoms(parent, []*atom.Atom{a, b})
	if got != `a\textcolor{green}{b}` {
		t.Fatalf("got %q", got)
	}
}

func TestStyleNesting(t *testing.T) {
	a := mord("a")
	a.Color, a.FontSeries = "red", "b"
	h := &atom.Atom{Type: atom.Text, Value: "h", Style: atom.Style{Mode: atom.TextMode, FontSeries: "b"}}
	i := &atom.Atom{Type: atom.Text, Value: "i", Style: atom.Style{Mode: atom.TextMode, FontSeries: "b"}}
	atoms := []*atom.Atom{a, h, i}

	if got := FromAtoms(atoms); got != `\textcolor{red}{\mathbf{a}}\textbf{hi}` {
		t.Fatalf("styled: %q", got)
	}
	if got := FromAtoms(atoms, OutputStyles(false)); got != `a\text{hi}` {
		t.Fatalf("unstyled: %q", got)
	}
}

func TestStyleSuppression(t *testing.T) {
	a := mord("a")
	a.Color, a.BackgroundColor, a.FontSize, a.FontShape = "red", "yellow", "size9", "it"
	b := mord("b")
	b.FontSeries = "b"
	c := &atom.Atom{Type: atom.Text, Value: "c", Style: atom.Style{Mode: atom.TextMode, FontShape: "it"}}

	got := FromAtoms([]*atom.Atom{a, b, c}, OutputStyles(false))
	for _, cmd := range []string{`\textcolor`, `\colorbox`, `\mathbf`, `\mathit`, `\huge`, `\textit`} {
		if strings.Contains(got, cmd) {
			t.Fatalf("%s in %q", cmd, got)
		}
	}
	if got != `ab\text{c}` {
		t.Fatalf("got %q", got)
	}
}

func TestTextWrapper(t *testing.T) {
	plain := []*atom.Atom{
		{Type: atom.Text, Value: "h", Style: atom.Style{Mode: atom.TextMode}},
		{Type: atom.Text, Value: "i", Style: atom.Style{Mode: atom.TextMode}},
	}
	if got := FromAtoms(plain); got != `\text{hi}` {
		t.Fatalf("got %q", got)
	}
	family := []*atom.Atom{{Type: atom.Text, Value: "a", Style: atom.Style{Mode: atom.TextMode, FontFamily: "ptm"}}}
	if got := FromAtoms(family); got != `{\fontfamily{ptm}a}` {
		t.Fatalf("generic family: %q", got)
	}
	shape := []*atom.Atom{{Type: atom.Text, Value: "a", Style: atom.Style{Mode: atom.TextMode, FontShape: "ol"}}}
	if got := FromAtoms(shape); got != `\text{\fontshape{ol}a}` {
		t.Fatalf("generic shape: %q", got)
	}
}

func TestMathFonts(t *testing.T) {
	cases := []struct {
		style atom.Style
		want  string
	}{
		{atom.Style{FontShape: "n", FontSeries: "b"}, `\mathbf{x}`},
		{atom.Style{FontShape: "it"}, `\mathit{x}`},
		{atom.Style{FontShape: "n"}, `{\upshape x}`},
		{atom.Style{FontSeries: "sb"}, `{\fontseries{sb}x}`},
		{atom.Style{FontSeries: "n"}, `x`},
		{atom.Style{FontFamily: "bb"}, `\mathbb{x}`},
		{atom.Style{BaseFontFamily: "cmtt"}, `\mathtt{x}`},
		{atom.Style{FontFamily: "main"}, `x`},
		{atom.Style{FontFamily: "ptm"}, `{\fontfamily{ptm}x}`},
		// the family command ends splitting on shape and series
		{atom.Style{FontFamily: "cal", FontSeries: "b"}, `\mathcal{x}`},
		{atom.Style{FontSize: "size9"}, `{\huge x}`},
		{atom.Style{FontSize: "size42"}, `x`},
		{atom.Style{BackgroundColor: "#ffff00"}, `\colorbox{yellow}{x}`},
		{atom.Style{Color: "none"}, `x`},
	}
	for _, tc := range cases {
		a := mord("x")
		a.Style = tc.style
		if got := FromAtoms([]*atom.Atom{a}); got != tc.want {
			t.Fatalf("%+v: got %q, want %q", tc.style, got, tc.want)
		}
	}
}

func TestFunctionKeepsFamily(t *testing.T) {
	sin := &atom.Atom{Type: atom.Mop, Latex: `\sin`, IsFunction: true, Style: atom.Style{FontFamily: "cmr"}}
	if got := FromAtoms([]*atom.Atom{sin}); got != `\sin ` {
		t.Fatalf("got %q", got)
	}
}

func TestOperatorNameShortCircuit(t *testing.T) {
	op := &atom.Atom{
		Type:        atom.Mop,
		Latex:       `\operatorname{foo}`,
		Value:       "foo",
		Style:       atom.Style{FontFamily: "cmr"},
		Superscript: []*atom.Atom{mord("2")},
	}
	got := FromAtoms([]*atom.Atom{op, mord("x")})
	if got != `\operatorname{foo}^{2}x` {
		t.Fatalf("got %q", got)
	}
	// the rest of the run is still written, in its own family
	y := &atom.Atom{Type: atom.Mord, Value: "y", Style: atom.Style{FontFamily: "cmr"}}
	if got := FromAtoms([]*atom.Atom{op, y}); got != `\operatorname{foo}^{2}\mathrm{y}` {
		t.Fatalf("run after operator name: got %q", got)
	}
}

func TestArrayShape(t *testing.T) {
	row := func(n int) [][]*atom.Atom {
		var r [][]*atom.Atom
		for i := 0; i < n; i++ {
			r = append(r, []*atom.Atom{mord("a")})
		}
		return r
	}
	arr := &atom.Atom{Type: atom.Array, Env: "matrix", Array: [][][]*atom.Atom{row(2), row(3), row(1)}}
	got := FromAtom(arr)
	if got != `\begin{matrix}a & a \\ a & a & a \\ a\end{matrix}` {
		t.Fatalf("got %q", got)
	}
	rows := strings.Split(strings.TrimSuffix(strings.TrimPrefix(got, `\begin{matrix}`), `\end{matrix}`), ` \\ `)
	if len(rows) != 3 {
		t.Fatalf("%d rows", len(rows))
	}
	for i, want := range []int{1, 2, 0} {
		if n := strings.Count(rows[i], "&"); n != want {
			t.Fatalf("row %d: %d separators", i, n)
		}
	}
	if strings.HasSuffix(strings.TrimSuffix(got, `\end{matrix}`), `\\ `) {
		t.Fatalf("trailing row separator in %q", got)
	}
}

func TestArrayColumnFormat(t *testing.T) {
	arr := &atom.Atom{
		Type: atom.Array,
		Env:  "array",
		ColFormat: []atom.ColumnFormat{
			{Align: "l"}, {Rule: true}, {Align: "r"},
		},
		Array: [][][]*atom.Atom{{{mord("1")}, {mord("2")}}},
	}
	if got := FromAtom(arr); got != `\begin{array}{l|r}1 & 2\end{array}` {
		t.Fatalf("got %q", got)
	}
}

func TestGroup(t *testing.T) {
	body := []*atom.Atom{mord("x")}
	cases := []struct {
		group *atom.Atom
		opts  []Option
		want  string
	}{
		{&atom.Atom{Type: atom.Group, Body: body}, nil, `{x}`},
		{&atom.Atom{Type: atom.Group, Latex: `\R`, Body: body}, nil, `{\R}`},
		{&atom.Atom{Type: atom.Group, Latex: `\R`, Body: body}, []Option{ExpandMacro(true)}, `{x}`},
		{&atom.Atom{Type: atom.Group, CSSClass: "ML__emph", Body: body}, nil, `\emph{x}`},
		{&atom.Atom{Type: atom.Group, CSSClass: "hl", Body: body}, nil, `\class{hl}{x}`},
		{&atom.Atom{Type: atom.Group, CSSClass: "hl", Body: body}, []Option{OutputStyles(false)}, `{x}`},
		{&atom.Atom{Type: atom.Group, CSSId: "a", CSSClass: "hl", Body: body}, nil, `\cssId{a}{\class{hl}{x}}`},
		{&atom.Atom{Type: atom.Group, LatexOpen: `\begingroup `, LatexClose: `\endgroup `, Body: body}, nil, `\begingroup x\endgroup `},
	}
	for i, tc := range cases {
		if got := FromAtom(tc.group, tc.opts...); got != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}

func TestIdempotentExpansion(t *testing.T) {
	r := mord("R")
	r.FontFamily = "bb"
	root := atom.MakeRoot(atom.MathMode, []*atom.Atom{
		{Type: atom.Group, Latex: `\R`, Body: []*atom.Atom{r}},
		{Type: atom.Mrel, Latex: `\in`},
		{Type: atom.Surd, Body: []*atom.Atom{mord("2")}},
	})
	s := New(ExpandMacro(true))
	first, second := s.Atom(root), s.Atom(root)
	if first != second {
		t.Fatalf("not idempotent: %q vs %q", first, second)
	}
	if first != `{\mathbb{R}}\in \sqrt{2}` {
		t.Fatalf("got %q", first)
	}
}

func TestSymbols(t *testing.T) {
	cases := []struct {
		a    *atom.Atom
		want string
	}{
		{&atom.Atom{Type: atom.Mrel, Latex: `\leq`}, `\leq `},
		{&atom.Atom{Type: atom.Mopen, Latex: `\{`}, `\{`},
		{&atom.Atom{Type: atom.Mord, Command: `\alpha`, Value: "α"}, `\alpha `},
		{&atom.Atom{Type: atom.Mbin, Latex: `\mathbin{x}`, Body: []*atom.Atom{mord("x")}}, `\mathbin{x}`},
		{&atom.Atom{Type: atom.Mord, Latex: `\char"41`, Value: "A"}, `\char"41 `},
		{&atom.Atom{Type: atom.Mord, Latex: `\unicode{"41}`, Value: "A"}, `\unicode{"000041}`},
		{&atom.Atom{Type: atom.Mord, Value: atom.ZeroWidthSpace}, ``},
		{&atom.Atom{Type: atom.Textord, Value: "7"}, `7`},
		{&atom.Atom{Type: atom.Mord, Value: "x", Superscript: []*atom.Atom{mord("′")}}, `x^{\prime }`},
		{&atom.Atom{Type: atom.Mord, Value: "x", Superscript: []*atom.Atom{mord("″")}, Subscript: []*atom.Atom{mord("1")}}, `x^{\doubleprime }_{1}`},
		{&atom.Atom{Type: atom.Mord, Value: "x", Superscript: []*atom.Atom{}}, `x^{}`},
	}
	for _, tc := range cases {
		if got := FromAtom(tc.a); got != tc.want {
			t.Fatalf("%+v: got %q, want %q", tc.a, got, tc.want)
		}
	}
}

func TestOperators(t *testing.T) {
	cases := []struct {
		a    *atom.Atom
		want string
	}{
		{&atom.Atom{Type: atom.Mop, Latex: `\sum`, Limits: "limits", ExplicitLimits: true, Subscript: []*atom.Atom{mord("i")}}, `\sum \limits _{i}`},
		{&atom.Atom{Type: atom.Mop, Latex: `\int`, Limits: "nolimits", ExplicitLimits: true}, `\int \nolimits `},
		{&atom.Atom{Type: atom.Mop, Latex: `\operatorname{argmax}`, Value: "argmax"}, `\operatorname{argmax}`},
		{&atom.Atom{Type: atom.Mop, Latex: `\mathop{x}`, Body: []*atom.Atom{mord("x")}}, `\mathop{x}`},
		{&atom.Atom{Type: atom.Mop, Value: atom.ZeroWidthSpace, Limits: "limits", ExplicitLimits: true}, `\limits `},
	}
	for _, tc := range cases {
		if got := FromAtom(tc.a); got != tc.want {
			t.Fatalf("got %q, want %q", got, tc.want)
		}
	}
}

func TestStructuralAtoms(t *testing.T) {
	x := []*atom.Atom{mord("x")}
	cases := []struct {
		a    *atom.Atom
		want string
	}{
		{&atom.Atom{Type: atom.LeftRight, LeftDelim: ".", RightDelim: ")", Body: x}, `x\mright)`},
		{&atom.Atom{Type: atom.LeftRight, LeftDelim: "(", Body: x}, `\mleft(x`},
		{&atom.Atom{Type: atom.LeftRight, Inner: true, LeftDelim: `\langle`, Body: x}, `\left\langle x\right.`},
		{&atom.Atom{Type: atom.SizedDelim, Latex: `\bigl`, Delim: "("}, `\bigl{(}`},
		{&atom.Atom{Type: atom.Rule, Command: `\rule`, Shift: 0.5, Width: 1, Height: 0.25}, `\rule[0.5em]{1em}{0.25em}`},
		{&atom.Atom{Type: atom.Rule, Width: 2, Height: 1}, `\rule{2em}{1em}`},
		{&atom.Atom{Type: atom.Line, Command: `\overline`, Body: x}, `\overline{x}`},
		{&atom.Atom{Type: atom.Accent, Latex: `\vec{x}`, Body: x}, `\vec{x}`},
		{&atom.Atom{Type: atom.Overlap, Command: `\mathrlap`, Body: x}, `\mathrlap{x}`},
		{&atom.Atom{Type: atom.OverUnder, Command: `\overset`, Overscript: []*atom.Atom{mord("a")}, Body: x}, `\overset{a}{x}`},
		{&atom.Atom{Type: atom.OverUnder, Command: `\underset`, Underscript: []*atom.Atom{mord("b")}, Body: x}, `\underset{b}{x}`},
		{&atom.Atom{Type: atom.Spacing, Latex: `\hspace{2em}`, Width: 2}, `\hspace{2em}`},
		{&atom.Atom{Type: atom.Spacing, Command: `\hspace*`}, `\hspace*{0em}`},
		{&atom.Atom{Type: atom.Spacing, Latex: `\quad`}, `\quad `},
		{&atom.Atom{Type: atom.Spacing, Command: `\hskip`, Width: 1.5}, `\hskip 1.5em `},
		{&atom.Atom{Type: atom.MathStyle, MathStyle: "displaystyle"}, `\displaystyle `},
		{&atom.Atom{Type: atom.Space, Latex: `~`}, `~`},
		{&atom.Atom{Type: atom.Placeholder, Value: "?"}, `\placeholder{?}`},
		{&atom.Atom{Type: atom.Variable, Value: "a b"}, `\variable{a~b}`},
		{&atom.Atom{Type: atom.Error, Latex: `\foo`}, `\foo`},
		{&atom.Atom{Type: atom.Msubsup, Superscript: []*atom.Atom{mord("2")}}, `^{2}`},
		{&atom.Atom{Type: atom.Command, Value: "x"}, ``},
	}
	for _, tc := range cases {
		if got := FromAtom(tc.a); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.a.Type, got, tc.want)
		}
	}
}

func TestBoxes(t *testing.T) {
	x := []*atom.Atom{mord("x")}
	cases := []struct {
		a    *atom.Atom
		want string
	}{
		{&atom.Atom{Type: atom.Box, Command: `\bbox`, Body: x}, `\bbox{x}`},
		{&atom.Atom{Type: atom.Box, Command: `\bbox`, Box: &atom.BoxParams{Padding: ptr(0.256), Border: "1px solid red"}, Body: x}, `\bbox[0.25em,border:1px solid red]{x}`},
		{&atom.Atom{Type: atom.Box, Body: x}, `\boxed{x}`},
		{&atom.Atom{Type: atom.Box, Command: `\colorbox`, Box: &atom.BoxParams{BackgroundColor: "#00ff00"}, Body: x}, `\colorbox{green}{x}`},
		{&atom.Atom{Type: atom.Box, Command: `\fcolorbox`, Box: &atom.BoxParams{FrameColor: "red", BackgroundColor: "yellow"}, Body: x}, `\fcolorbox{red}{yellow}{x}`},
	}
	for _, tc := range cases {
		if got := FromAtom(tc.a); got != tc.want {
			t.Fatalf("got %q, want %q", got, tc.want)
		}
	}
}

func TestEnclose(t *testing.T) {
	x := []*atom.Atom{mord("x")}
	cases := []struct {
		a    *atom.Atom
		want string
	}{
		{&atom.Atom{Type: atom.Enclose, Body: x, Enclose: &atom.EncloseParams{
			Notation: []string{"circle"}, StrokeColor: "red", StrokeWidth: 1, StrokeStyle: "solid",
			BackgroundColor: "transparent", Shadow: "auto",
		}}, `\enclose{circle}[mathcolor="red"]{x}`},
		{&atom.Atom{Type: atom.Enclose, Body: x, Enclose: &atom.EncloseParams{
			Notation: []string{"box", "", "roundedbox"}, BorderStyle: "2px dashed blue", StrokeWidth: 2, StrokeStyle: "dashed",
			StrokeColor: "blue", BackgroundColor: "yellow", Shadow: "1px 1px gray",
		}}, `\enclose{box roundedbox}[mathbackground="yellow",shadow="1px 1px gray",2px dashed blue]{x}`},
		{&atom.Atom{Type: atom.Enclose, Body: x, Enclose: &atom.EncloseParams{
			Notation: []string{"box"}, StrokeColor: "currentColor", StrokeWidth: 1, StrokeStyle: "solid",
		}}, `\enclose{box}{x}`},
		{&atom.Atom{Type: atom.Enclose, Command: `\cancel`, Body: x}, `\cancel{x}`},
	}
	for _, tc := range cases {
		if got := FromAtom(tc.a); got != tc.want {
			t.Fatalf("got %q, want %q", got, tc.want)
		}
	}
}

func TestEmittersCoverAllTypes(t *testing.T) {
	table := defaultEmitters()
	for _, typ := range atom.Types() {
		if _, ok := table[typ]; !ok {
			t.Fatalf("no emitter for %q", typ)
		}
	}
}

func TestUnknownTypeWarns(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	got := FromAtoms([]*atom.Atom{mord("a"), {Type: "bogus", Latex: `\bogus`}, mord("b")}, WithLogger(log))
	if got != "ab" {
		t.Fatalf("got %q", got)
	}
	out := buf.String()
	if !strings.Contains(out, "unexpected atom type") || !strings.Contains(out, "type=bogus") {
		t.Fatalf("missing warning: %q", out)
	}
}

func TestWithEmitter(t *testing.T) {
	s := New(WithEmitter(atom.Placeholder, func(*Serializer, *atom.Atom) string { return `\Box ` }))
	if got := s.Atom(&atom.Atom{Type: atom.Placeholder}); got != `\Box ` {
		t.Fatalf("override ignored: %q", got)
	}
	if got := New().Atom(&atom.Atom{Type: atom.Placeholder}); got != `\placeholder{}` {
		t.Fatalf("override leaked into another serializer: %q", got)
	}
}

type upper struct{}

func (upper) ColorToString(v string) string { return strings.ToUpper(v) }

func TestWithColorResolver(t *testing.T) {
	a := mord("x")
	a.Color = "red"
	if got := FromAtoms([]*atom.Atom{a}, WithColorResolver(upper{})); got != `\textcolor{RED}{x}` {
		t.Fatalf("got %q", got)
	}
}

func TestLeadingCommand(t *testing.T) {
	cases := map[string]string{
		`\frac{1}{2}`:   `\frac`,
		`\hspace*{1em}`: `\hspace*`,
		`\char"41`:      `\char"`,
		`\,`:            `\,`,
		`\sin`:          `\sin`,
		`\ x`:           ``,
		`x`:             ``,
		``:              ``,
	}
	for in, want := range cases {
		if got := LeadingCommand(in); got != want {
			t.Fatalf("LeadingCommand(%q) = %q, want %q", in, got, want)
		}
	}
}
