package latex

import (
	"log/slog"

	"github.com/ByLCY/texatom/atom"
)

// ColorResolver turns a color value into the literal written in
// \textcolor, \colorbox, mathcolor and mathbackground.
type ColorResolver interface {
	ColorToString(v string) string
}

// Option configures a Serializer.
type Option func(*Serializer)

// ExpandMacro forces resynthesis from children instead of echoing the
// cached source of groups. Output built this way no longer round-trips
// macros.
func ExpandMacro(v bool) Option {
	return func(s *Serializer) { s.expandMacro = v }
}

// OutputStyles controls font, color and size commands. When false only the
// text/math boundary is written.
func OutputStyles(v bool) Option {
	return func(s *Serializer) { s.outputStyles = v }
}

func WithColorResolver(r ColorResolver) Option {
	return func(s *Serializer) {
		if r != nil {
			s.colors = r
		}
	}
}

// WithLogger sets the logger receiving diagnostics such as unknown atom
// types. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Serializer) {
		if l != nil {
			s.log = l
		}
	}
}

// WithEmitter installs f as the emission rule for atoms of type t,
// replacing the built-in rule if there is one.
func WithEmitter(t atom.Type, f EmitFunc) Option {
	return func(s *Serializer) { s.emitters[t] = f }
}
