package latex

import (
	"strings"

	"github.com/ByLCY/texatom/atom"
)

type property int

const (
	propMode property = iota
	propColor
	propBackgroundColor
	propFontSize
	propFontFamily
	propFontShape
	propFontSeries
)

// styleProperties is the order in which runs are split. Changing it
// changes the nesting of the emitted commands.
var styleProperties = []property{
	propMode,
	propColor,
	propBackgroundColor,
	propFontSize,
	propFontFamily,
	propFontShape,
	propFontSeries,
}

func (p property) String() string {
	switch p {
	case propMode:
		return "mode"
	case propColor:
		return "color"
	case propBackgroundColor:
		return "backgroundColor"
	case propFontSize:
		return "fontSize"
	case propFontFamily:
		return "fontFamily"
	case propFontShape:
		return "fontShape"
	case propFontSeries:
		return "fontSeries"
	}
	return "unknown"
}

func (p property) value(a *atom.Atom) string {
	switch p {
	case propMode:
		return string(a.Mode)
	case propColor:
		return a.Color
	case propBackgroundColor:
		return a.BackgroundColor
	case propFontSize:
		return a.FontSize
	case propFontFamily:
		if a.FontFamily != "" {
			return a.FontFamily
		}
		return a.BaseFontFamily
	case propFontShape:
		return a.FontShape
	case propFontSeries:
		return a.FontSeries
	}
	return ""
}

// runLength is the length of the longest prefix of atoms whose value for p
// equals value. Operators never end a run so that \sin keeps the style of
// its neighbours.
func runLength(atoms []*atom.Atom, p property, value string) int {
	n := 1
	for n < len(atoms) {
		a := atoms[n]
		if a.Type != atom.Mop && p.value(a) != value {
			break
		}
		n++
	}
	return n
}

// partition writes atoms split into maximal runs over props[index:]. Each
// run is wrapped by the command for its value of props[index], then split
// further on the following properties. The remainder after the run starts
// over at the first property.
func (s *Serializer) partition(parent *atom.Atom, props []property, atoms []*atom.Atom, index int) string {
	if len(atoms) == 0 {
		return ""
	}
	if index >= len(props) {
		var sb strings.Builder
		for _, a := range atoms {
			sb.WriteString(s.Atom(a))
		}
		return sb.String()
	}

	p := props[index]
	value := p.value(atoms[0])
	n := runLength(atoms, p, value)
	run, rest := atoms[:n], atoms[n:]

	w := s.wrap(parent, p, value, run)
	if w.verbatim {
		// the operator name was already written as source; only the
		// scripts of that atom still need output
		first := atoms[0]
		return first.Latex + s.scripts(first) + s.partition(parent, props, atoms[1:], 0)
	}

	next := index + 1
	if w.final {
		next = len(props)
	}
	var sb strings.Builder
	sb.WriteString(w.open)
	sb.WriteString(s.partition(parent, props, run, next))
	sb.WriteString(w.close)
	sb.WriteString(s.partition(parent, props, rest, 0))
	return sb.String()
}
