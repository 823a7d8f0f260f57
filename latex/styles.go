package latex

import (
	"regexp"

	"github.com/ByLCY/texatom/atom"
)

// wrapper is the text written around one run.
type wrapper struct {
	open, close string
	// final stops splitting the run on the remaining properties.
	final bool
	// verbatim means the first atom of the run is an \operatorname whose
	// cached source is written as is.
	verbatim bool
}

var sizeCommands = map[string]string{
	"size1":  "tiny",
	"size2":  "scriptsize",
	"size3":  "footnotesize",
	"size4":  "small",
	"size5":  "normalsize",
	"size6":  "large",
	"size7":  "Large",
	"size8":  "LARGE",
	"size9":  "huge",
	"size10": "Huge",
}

var mathFamilies = map[string]string{
	"cmr":  "mathrm",
	"cmss": "mathsf",
	"cmtt": "mathtt",
	"cal":  "mathcal",
	"frak": "mathfrak",
	"bb":   "mathbb",
	"scr":  "mathscr",
}

var textFamilies = map[string]string{
	"cmr":  "textrm",
	"cmtt": "texttt",
	"cmss": "textsf",
}

var textShapes = map[string]string{
	"it": "textit",
	"sl": "textsl",
	"sc": "textsc",
	"n":  "textup",
}

var textSeries = map[string]string{
	"b": "textbf",
	"l": "textlf",
	"m": "textmd",
}

var operatorName = regexp.MustCompile(`^\\operatorname{`)

// wrap maps the value of p shared by run to the command opening the run.
// An empty value never wraps.
func (s *Serializer) wrap(parent *atom.Atom, p property, value string, run []*atom.Atom) wrapper {
	first := run[0]
	switch p {
	case propMode:
		if first.Mode != atom.TextMode {
			return wrapper{}
		}
		if s.outputStyles && explicitFonts(run) {
			return wrapper{}
		}
		return wrapper{open: `\text{`, close: "}"}
	}
	if value == "" {
		return wrapper{}
	}

	switch p {
	case propColor:
		if value == "none" || (parent != nil && parent.Color == value) {
			return wrapper{}
		}
		return wrapper{open: `\textcolor{` + s.color(value) + "}{", close: "}"}
	case propBackgroundColor:
		if value == "none" || (parent != nil && parent.BackgroundColor == value) {
			return wrapper{}
		}
		return wrapper{open: `\colorbox{` + s.color(value) + "}{", close: "}"}
	case propFontSize:
		cmd, ok := sizeCommands[value]
		if !ok {
			return wrapper{}
		}
		return wrapper{open: `{\` + cmd + " ", close: "}"}
	}

	if first.Mode == atom.TextMode {
		return textFont(p, value)
	}
	return mathFont(p, value, first)
}

// explicitFonts reports whether every atom carries a font property of its
// own, in which case the text commands for those fonts switch to text mode.
func explicitFonts(run []*atom.Atom) bool {
	for _, a := range run {
		if a.FontSeries == "" && a.FontShape == "" && a.FontFamily == "" && a.BaseFontFamily == "" {
			return false
		}
	}
	return true
}

func textFont(p property, value string) wrapper {
	switch p {
	case propFontFamily:
		if cmd, ok := textFamilies[value]; ok {
			return wrapper{open: `\` + cmd + "{", close: "}"}
		}
		return wrapper{open: `{\fontfamily{` + value + "}", close: "}"}
	case propFontShape:
		if cmd, ok := textShapes[value]; ok {
			return wrapper{open: `\` + cmd + "{", close: "}"}
		}
		return wrapper{open: `\text{\fontshape{` + value + "}", close: "}"}
	case propFontSeries:
		if cmd, ok := textSeries[value]; ok {
			return wrapper{open: `\` + cmd + "{", close: "}"}
		}
		return wrapper{open: `\text{\fontseries{` + value + "}", close: "}"}
	}
	return wrapper{}
}

func mathFont(p property, value string, first *atom.Atom) wrapper {
	switch {
	case p == propFontShape && value == "it":
		return wrapper{open: `\mathit{`, close: "}"}
	case p == propFontSeries && value == "b":
		return wrapper{open: `\mathbf{`, close: "}"}
	case p == propFontShape && value == "n" && first.FontSeries == "b":
		// upright bold is \mathbf; the series split below must not add
		// a second one
		return wrapper{open: `\mathbf{`, close: "}", final: true}
	case p == propFontSeries && value != "n":
		return wrapper{open: `{\fontseries{` + value + "}", close: "}"}
	case p == propFontShape && value == "n":
		return wrapper{open: `{\upshape `, close: "}"}
	case p == propFontShape:
		return wrapper{open: `{\fontshape{` + value + "}", close: "}"}
	case p == propFontFamily:
		if value == "math" || value == "main" {
			return wrapper{}
		}
		cmd, ok := mathFamilies[value]
		if !ok {
			return wrapper{open: `{\fontfamily{` + value + "}", close: "}"}
		}
		if operatorName.MatchString(first.Latex) {
			return wrapper{verbatim: true}
		}
		if first.IsFunction {
			return wrapper{final: true}
		}
		return wrapper{open: `\` + cmd + "{", close: "}", final: true}
	}
	return wrapper{}
}
