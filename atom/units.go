package atom

import (
	"math"
	"strconv"
	"strings"
)

// This file defines unit-safe types and helpers for TeX dimensions. Atoms
// store every dimension in em; the parser converts through Length.

// Unit represents the original unit of a dimension as written in the source.
type Unit int

const (
	UnitNone Unit = iota // bare numbers, read as em
	UnitEm
	UnitEx
	UnitPt
	UnitPx
	UnitMM
	UnitCM
	UnitIN
	UnitMu
)

// Conversion constants, relative to a 10pt font.
const (
	PtPerEm = 10.0
	EmPerEx = 0.431
	MuPerEm = 18.0
	PtPerPx = 0.75
	PtPerIn = 72.27
	MmPerIn = 25.4
)

var unitSuffixes = []struct {
	s string
	u Unit
}{{"em", UnitEm}, {"ex", UnitEx}, {"pt", UnitPt}, {"px", UnitPx}, {"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"mu", UnitMu}}

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	for _, suf := range unitSuffixes {
		if suf.u == u {
			return suf.s
		}
	}
	return ""
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Em converts the length to em. Converted values are rounded to four
// decimals so they print compactly.
func (l Length) Em() float64 {
	if l.Unit == UnitEm || l.Unit == UnitNone {
		return l.Value
	}
	return math.Round(l.em()*1e4) / 1e4
}

func (l Length) em() float64 {
	switch l.Unit {
	case UnitEx:
		return l.Value * EmPerEx
	case UnitPt:
		return l.Value / PtPerEm
	case UnitPx:
		return l.Value * PtPerPx / PtPerEm
	case UnitMM:
		return l.Value / MmPerIn * PtPerIn / PtPerEm
	case UnitCM:
		return l.Value * 10 / MmPerIn * PtPerIn / PtPerEm
	case UnitIN:
		return l.Value * PtPerIn / PtPerEm
	case UnitMu:
		return l.Value / MuPerEm
	}
	return l.Value
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + UnitToString(l.Unit)
}

// ParseLength parses a TeX dimension such as "2pt", "-0.5em" or "3". It
// reports false when the numeric part is malformed.
func ParseLength(value string) (Length, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Length{}, false
	}
	lower := strings.ToLower(v)
	unit := UnitNone
	num := lower
	for _, suf := range unitSuffixes {
		if strings.HasSuffix(lower, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(lower, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}

// FormatEm prints an em value with as few digits as needed, without the unit.
func FormatEm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
