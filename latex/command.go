package latex

import (
	"regexp"

	"github.com/ByLCY/texatom/atom"
)

var leadingCommand = regexp.MustCompile(`^(\\[^{\s0-9]+)`)

// LeadingCommand returns the command at the start of src, such as \frac in
// `\frac{1}{2}` or \hspace* in `\hspace*{1em}`, or "" when src does not
// start with a command.
func LeadingCommand(src string) string {
	m := leadingCommand.FindStringSubmatch(src)
	if m == nil {
		return ""
	}
	return m[1]
}

// command is the command that produced a: the one leading its cached
// source, else its Command field, else fallback.
func command(a *atom.Atom, fallback string) string {
	if cmd := LeadingCommand(a.Latex); cmd != "" {
		return cmd
	}
	if a.Command != "" {
		return a.Command
	}
	return fallback
}
