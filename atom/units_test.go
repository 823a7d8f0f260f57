package atom

import (
	"math"
	"testing"
)

// TestParseLengthUnits 覆盖常见 TeX 单位的解析与到 em 的换算。
func TestParseLengthUnits(t *testing.T) {
	cases := []struct {
		in   string
		unit Unit
		em   float64
	}{
		{"1em", UnitEm, 1},
		{"-0.5em", UnitEm, -0.5},
		{"3", UnitNone, 3},
		{"5pt", UnitPt, 0.5},
		{"18mu", UnitMu, 1},
		{"2ex", UnitEx, 0.862},
		{"1in", UnitIN, 7.227},
	}
	for _, c := range cases {
		l, ok := ParseLength(c.in)
		if !ok {
			t.Fatalf("%q: parse failed", c.in)
		}
		if l.Unit != c.unit {
			t.Fatalf("%q: unit got %v want %v", c.in, l.Unit, c.unit)
		}
		if diff := math.Abs(l.Em() - c.em); diff > 1e-9 {
			t.Fatalf("%q: em got %g want %g", c.in, l.Em(), c.em)
		}
	}
}

func TestParseLengthRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "em", "abc", "1.2.3pt"} {
		if _, ok := ParseLength(in); ok {
			t.Fatalf("%q: expected failure", in)
		}
	}
}

func TestFormatEm(t *testing.T) {
	if got := FormatEm(0.25); got != "0.25" {
		t.Fatalf("FormatEm(0.25) = %q", got)
	}
	if got := FormatEm(2); got != "2" {
		t.Fatalf("FormatEm(2) = %q", got)
	}
	if got := (Length{Value: 3, Unit: UnitPt}).String(); got != "3pt" {
		t.Fatalf("Length.String() = %q", got)
	}
}
