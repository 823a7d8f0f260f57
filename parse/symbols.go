package parse

import "github.com/ByLCY/texatom/atom"

type symbol struct {
	typ   atom.Type
	value string
}

var mathSymbols = map[string]symbol{
	// lowercase greek
	"alpha": {atom.Mord, "α"}, "beta": {atom.Mord, "β"}, "gamma": {atom.Mord, "γ"},
	"delta": {atom.Mord, "δ"}, "epsilon": {atom.Mord, "ϵ"}, "varepsilon": {atom.Mord, "ε"},
	"zeta": {atom.Mord, "ζ"}, "eta": {atom.Mord, "η"}, "theta": {atom.Mord, "θ"},
	"vartheta": {atom.Mord, "ϑ"}, "iota": {atom.Mord, "ι"}, "kappa": {atom.Mord, "κ"},
	"lambda": {atom.Mord, "λ"}, "mu": {atom.Mord, "μ"}, "nu": {atom.Mord, "ν"},
	"xi": {atom.Mord, "ξ"}, "pi": {atom.Mord, "π"}, "varpi": {atom.Mord, "ϖ"},
	"rho": {atom.Mord, "ρ"}, "varrho": {atom.Mord, "ϱ"}, "sigma": {atom.Mord, "σ"},
	"varsigma": {atom.Mord, "ς"}, "tau": {atom.Mord, "τ"}, "upsilon": {atom.Mord, "υ"},
	"phi": {atom.Mord, "ϕ"}, "varphi": {atom.Mord, "φ"}, "chi": {atom.Mord, "χ"},
	"psi": {atom.Mord, "ψ"}, "omega": {atom.Mord, "ω"},

	// uppercase greek
	"Gamma": {atom.Mord, "Γ"}, "Delta": {atom.Mord, "Δ"}, "Theta": {atom.Mord, "Θ"},
	"Lambda": {atom.Mord, "Λ"}, "Xi": {atom.Mord, "Ξ"}, "Pi": {atom.Mord, "Π"},
	"Sigma": {atom.Mord, "Σ"}, "Upsilon": {atom.Mord, "Υ"}, "Phi": {atom.Mord, "Φ"},
	"Psi": {atom.Mord, "Ψ"}, "Omega": {atom.Mord, "Ω"},

	"infty": {atom.Mord, "∞"}, "partial": {atom.Mord, "∂"}, "nabla": {atom.Mord, "∇"},
	"forall": {atom.Mord, "∀"}, "exists": {atom.Mord, "∃"}, "nexists": {atom.Mord, "∄"},
	"emptyset": {atom.Mord, "∅"}, "varnothing": {atom.Mord, "∅"},
	"ldots": {atom.Minner, "…"}, "cdots": {atom.Minner, "⋯"}, "dots": {atom.Minner, "…"},
	"vdots": {atom.Mord, "⋮"}, "ddots": {atom.Minner, "⋱"},
	"prime": {atom.Mord, "′"}, "doubleprime": {atom.Mord, "″"},
	"hbar": {atom.Mord, "ℏ"}, "ell": {atom.Mord, "ℓ"}, "Re": {atom.Mord, "ℜ"},
	"Im": {atom.Mord, "ℑ"}, "aleph": {atom.Mord, "ℵ"}, "wp": {atom.Mord, "℘"},
	"angle": {atom.Mord, "∠"}, "triangle": {atom.Mord, "△"}, "neg": {atom.Mord, "¬"},
	"lnot": {atom.Mord, "¬"}, "top": {atom.Mord, "⊤"}, "bot": {atom.Mord, "⊥"},
	"degree": {atom.Mord, "°"}, "backslash": {atom.Mord, "\\"},
	"$": {atom.Mord, "$"}, "%": {atom.Mord, "%"}, "&": {atom.Mord, "&"},
	"#": {atom.Mord, "#"}, "_": {atom.Mord, "_"},

	// binary operators
	"pm": {atom.Mbin, "±"}, "mp": {atom.Mbin, "∓"}, "times": {atom.Mbin, "×"},
	"div": {atom.Mbin, "÷"}, "cdot": {atom.Mbin, "⋅"}, "ast": {atom.Mbin, "∗"},
	"star": {atom.Mbin, "⋆"}, "circ": {atom.Mbin, "∘"}, "bullet": {atom.Mbin, "∙"},
	"cup": {atom.Mbin, "∪"}, "cap": {atom.Mbin, "∩"}, "wedge": {atom.Mbin, "∧"},
	"vee": {atom.Mbin, "∨"}, "land": {atom.Mbin, "∧"}, "lor": {atom.Mbin, "∨"},
	"setminus": {atom.Mbin, "∖"}, "oplus": {atom.Mbin, "⊕"}, "ominus": {atom.Mbin, "⊖"},
	"otimes": {atom.Mbin, "⊗"}, "odot": {atom.Mbin, "⊙"},

	// relations
	"leq": {atom.Mrel, "≤"}, "le": {atom.Mrel, "≤"}, "geq": {atom.Mrel, "≥"},
	"ge": {atom.Mrel, "≥"}, "neq": {atom.Mrel, "≠"}, "ne": {atom.Mrel, "≠"},
	"approx": {atom.Mrel, "≈"}, "equiv": {atom.Mrel, "≡"}, "sim": {atom.Mrel, "∼"},
	"simeq": {atom.Mrel, "≃"}, "cong": {atom.Mrel, "≅"}, "propto": {atom.Mrel, "∝"},
	"in": {atom.Mrel, "∈"}, "notin": {atom.Mrel, "∉"}, "ni": {atom.Mrel, "∋"},
	"subset": {atom.Mrel, "⊂"}, "supset": {atom.Mrel, "⊃"}, "subseteq": {atom.Mrel, "⊆"},
	"supseteq": {atom.Mrel, "⊇"}, "to": {atom.Mrel, "→"}, "rightarrow": {atom.Mrel, "→"},
	"leftarrow": {atom.Mrel, "←"}, "gets": {atom.Mrel, "←"}, "Rightarrow": {atom.Mrel, "⇒"},
	"Leftarrow": {atom.Mrel, "⇐"}, "leftrightarrow": {atom.Mrel, "↔"},
	"Leftrightarrow": {atom.Mrel, "⇔"}, "iff": {atom.Mrel, "⟺"}, "implies": {atom.Mrel, "⟹"},
	"mapsto": {atom.Mrel, "↦"}, "parallel": {atom.Mrel, "∥"}, "perp": {atom.Mrel, "⊥"},
	"mid": {atom.Mrel, "∣"}, "ll": {atom.Mrel, "≪"}, "gg": {atom.Mrel, "≫"},
	"prec": {atom.Mrel, "≺"}, "succ": {atom.Mrel, "≻"},

	// fences
	"{": {atom.Mopen, "{"}, "}": {atom.Mclose, "}"}, "lbrace": {atom.Mopen, "{"},
	"rbrace": {atom.Mclose, "}"}, "langle": {atom.Mopen, "⟨"}, "rangle": {atom.Mclose, "⟩"},
	"lfloor": {atom.Mopen, "⌊"}, "rfloor": {atom.Mclose, "⌋"}, "lceil": {atom.Mopen, "⌈"},
	"rceil": {atom.Mclose, "⌉"}, "lvert": {atom.Mopen, "|"}, "rvert": {atom.Mclose, "|"},
	"lVert": {atom.Mopen, "‖"}, "rVert": {atom.Mclose, "‖"}, "|": {atom.Mord, "‖"},
	"vert": {atom.Mord, "|"}, "Vert": {atom.Mord, "‖"},

	"colon": {atom.Mpunct, ":"},
}

// bigOperators are operators with limits.
var bigOperators = map[string]string{
	"sum": "∑", "prod": "∏", "coprod": "∐", "int": "∫", "iint": "∬", "iiint": "∭",
	"oint": "∮", "bigcup": "⋃", "bigcap": "⋂", "bigoplus": "⨁", "bigotimes": "⨂",
	"bigvee": "⋁", "bigwedge": "⋀",
}

// functions are operators set in roman type.
var functions = map[string]bool{
	"sin": true, "cos": true, "tan": true, "cot": true, "sec": true, "csc": true,
	"arcsin": true, "arccos": true, "arctan": true, "sinh": true, "cosh": true,
	"tanh": true, "coth": true, "log": true, "ln": true, "lg": true, "exp": true,
	"ker": true, "dim": true, "hom": true, "deg": true, "lim": true, "limsup": true,
	"liminf": true, "max": true, "min": true, "sup": true, "inf": true, "det": true,
	"gcd": true, "Pr": true, "arg": true,
}

var mathClasses = map[string]atom.Type{
	"mathord":   atom.Mord,
	"mathbin":   atom.Mbin,
	"mathrel":   atom.Mrel,
	"mathopen":  atom.Mopen,
	"mathclose": atom.Mclose,
	"mathpunct": atom.Mpunct,
	"mathinner": atom.Minner,
}

var fractions = map[string]bool{
	"frac": true, "dfrac": true, "tfrac": true, "cfrac": true,
	"binom": true, "dbinom": true, "tbinom": true,
}

var spacings = map[string]bool{
	",": true, ":": true, ";": true, "!": true, "quad": true, "qquad": true,
	"enspace": true, "thinspace": true, "medspace": true, "thickspace": true,
	"negthinspace": true, "negmedspace": true, "negthickspace": true,
}

var lines = map[string]bool{"overline": true, "underline": true}

var accents = map[string]bool{
	"hat": true, "widehat": true, "vec": true, "bar": true, "tilde": true,
	"widetilde": true, "dot": true, "ddot": true, "acute": true, "grave": true,
	"check": true, "breve": true, "mathring": true,
}

var overlaps = map[string]bool{
	"mathrlap": true, "mathllap": true, "mathclap": true, "rlap": true, "llap": true,
}

var mathStyles = map[string]bool{
	"displaystyle": true, "textstyle": true, "scriptstyle": true, "scriptscriptstyle": true,
}

var sizes = map[string]string{
	"tiny": "size1", "scriptsize": "size2", "footnotesize": "size3", "small": "size4",
	"normalsize": "size5", "large": "size6", "Large": "size7", "LARGE": "size8",
	"huge": "size9", "Huge": "size10",
}

var sizedDelims = map[string]bool{}

func init() {
	for _, size := range []string{"big", "Big", "bigg", "Bigg"} {
		for _, suffix := range []string{"", "l", "r", "m"} {
			sizedDelims[size+suffix] = true
		}
	}
}

// delimiters accepted after \left, \right, \middle and the \big family.
var delimiters = map[string]bool{
	"(": true, ")": true, "[": true, "]": true, "|": true, ".": true, "/": true,
	"<": true, ">": true,
	`\{`: true, `\}`: true, `\|`: true, `\langle`: true, `\rangle`: true,
	`\lfloor`: true, `\rfloor`: true, `\lceil`: true, `\rceil`: true,
	`\vert`: true, `\Vert`: true, `\lvert`: true, `\rvert`: true, `\lVert`: true,
	`\rVert`: true, `\lbrace`: true, `\rbrace`: true, `\lbrack`: true, `\rbrack`: true,
	`\uparrow`: true, `\downarrow`: true, `\updownarrow`: true, `\Uparrow`: true,
	`\Downarrow`: true, `\backslash`: true,
}

type fontChange func(*atom.Style)

// mathFonts are the math alphabet commands.
var mathFonts = map[string]fontChange{
	"mathbf":     func(s *atom.Style) { s.FontSeries = "b" },
	"boldsymbol": func(s *atom.Style) { s.FontSeries = "b" },
	"bm":         func(s *atom.Style) { s.FontSeries = "b" },
	"mathit":     func(s *atom.Style) { s.FontShape = "it" },
	"mathrm":     func(s *atom.Style) { s.FontFamily = "cmr" },
	"mathsf":     func(s *atom.Style) { s.FontFamily = "cmss" },
	"mathtt":     func(s *atom.Style) { s.FontFamily = "cmtt" },
	"mathbb":     func(s *atom.Style) { s.FontFamily = "bb" },
	"mathcal":    func(s *atom.Style) { s.FontFamily = "cal" },
	"mathfrak":   func(s *atom.Style) { s.FontFamily = "frak" },
	"mathscr":    func(s *atom.Style) { s.FontFamily = "scr" },
}

// textFonts are the commands switching to text mode.
var textFonts = map[string]fontChange{
	"text":   func(*atom.Style) {},
	"mbox":   func(*atom.Style) {},
	"textrm": func(s *atom.Style) { s.FontFamily = "cmr" },
	"textsf": func(s *atom.Style) { s.FontFamily = "cmss" },
	"texttt": func(s *atom.Style) { s.FontFamily = "cmtt" },
	"textbf": func(s *atom.Style) { s.FontSeries = "b" },
	"textmd": func(s *atom.Style) { s.FontSeries = "m" },
	"textit": func(s *atom.Style) { s.FontShape = "it" },
	"textsl": func(s *atom.Style) { s.FontShape = "sl" },
	"textsc": func(s *atom.Style) { s.FontShape = "sc" },
	"textup": func(s *atom.Style) { s.FontShape = "n" },
}

// textEscapes are the commands that stand for one character in text mode.
var textEscapes = map[string]string{
	`\$`: "$", `\%`: "%", `\&`: "&", `\#`: "#", `\_`: "_", `\{`: "{", `\}`: "}",
	`\textbackslash`: "\\",
}

var cancels = map[string]string{
	"cancel":  "updiagonalstrike",
	"bcancel": "downdiagonalstrike",
	"xcancel": "updiagonalstrike downdiagonalstrike",
}

// mathChar is the class of a character typed in math mode.
func mathChar(c string) atom.Type {
	switch c {
	case "+", "-", "*":
		return atom.Mbin
	case "=", "<", ">", ":":
		return atom.Mrel
	case ",", ";":
		return atom.Mpunct
	case "(", "[":
		return atom.Mopen
	case ")", "]", "!", "?":
		return atom.Mclose
	}
	return atom.Mord
}
