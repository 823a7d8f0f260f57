// Package color resolves color values to the canonical strings written into
// LaTeX output.
package color

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Named is the xcolor base palette.
var Named = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"red":       "#ff0000",
	"green":     "#00ff00",
	"blue":      "#0000ff",
	"cyan":      "#00ffff",
	"magenta":   "#ff00ff",
	"yellow":    "#ffff00",
	"gray":      "#808080",
	"darkgray":  "#404040",
	"lightgray": "#bfbfbf",
	"brown":     "#bf8040",
	"lime":      "#bfff00",
	"olive":     "#808000",
	"orange":    "#ff8000",
	"pink":      "#ffbfbf",
	"purple":    "#bf0040",
	"teal":      "#008080",
	"violet":    "#800080",
}

// passthrough values are keywords rather than colors.
var passthrough = map[string]bool{
	"none":         true,
	"transparent":  true,
	"currentColor": true,
}

// Resolver maps color values to canonical strings.
type Resolver struct {
	names map[string]string
	byHex map[string]string
}

// Default returns a resolver over the Named palette.
func Default() *Resolver { return New(Named) }

// New returns a resolver over the given name → "#rrggbb" palette.
func New(palette map[string]string) *Resolver {
	r := &Resolver{
		names: make(map[string]string, len(palette)),
		byHex: make(map[string]string, len(palette)),
	}
	for name, hex := range palette {
		name, hex = strings.ToLower(name), strings.ToLower(hex)
		r.names[name] = hex
		if prev, ok := r.byHex[hex]; !ok || name < prev {
			r.byHex[hex] = name
		}
	}
	return r
}

// ColorToString returns the palette name for v when there is one, the
// lowercase #rrggbb form for other parseable colors, and v unchanged
// otherwise.
func (r *Resolver) ColorToString(v string) string {
	s := strings.TrimSpace(v)
	if s == "" || passthrough[s] {
		return s
	}
	if _, ok := r.names[strings.ToLower(s)]; ok {
		return strings.ToLower(s)
	}
	c, ok := r.Parse(s)
	if !ok {
		return v
	}
	hex := c.Hex()
	if name, ok := r.byHex[hex]; ok {
		return name
	}
	return hex
}

// Parse converts v to a color. Palette names, #rgb, #rrggbb and rgb(r,g,b)
// are understood.
func (r *Resolver) Parse(v string) (colorful.Color, bool) {
	s := strings.ToLower(strings.TrimSpace(v))
	if hex, ok := r.names[s]; ok {
		s = hex
	}
	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		return parseRGB(s[len("rgb(") : len(s)-1])
	}
	if strings.HasPrefix(s, "#") && len(s) == 4 {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	if !strings.HasPrefix(s, "#") || len(s) != 7 {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

func parseRGB(args string) (colorful.Color, bool) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return colorful.Color{}, false
	}
	var ch [3]float64
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return colorful.Color{}, false
		}
		ch[i] = float64(n) / 255
	}
	return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, true
}
