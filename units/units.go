// Package units defines unit-safe length types shared by the measurement
// backend, the preview layout and the tool configuration. Layout values are
// carried in millimeters; font systems speak points, conversion happens at
// the boundary.
package units

import (
	"strconv"
	"strings"
)

// Unit represents the original unit of a length value as written by the author.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// String returns the unit suffix.
func (u Unit) String() string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// IsZero reports whether the length carries no value.
func (l Length) IsZero() bool { return l.Value == 0 }

// To converts this length to the target unit. Supported targets: UnitMM, UnitPT.
func (l Length) To(target Unit) float64 {
	mm := l.Value
	switch l.Unit {
	case UnitCM:
		mm = l.Value * 10
	case UnitIN:
		mm = l.Value * 25.4
	case UnitPT:
		mm = l.Value * PtToMm
	case UnitMM, UnitNone:
		// already mm (unit-less values are treated as mm by callers)
	}
	if target == UnitPT {
		return mm * MmToPt
	}
	return mm
}

// ToMM converts to millimeters.
func (l Length) ToMM() float64 { return l.To(UnitMM) }

// ToPT converts to points.
func (l Length) ToPT() float64 { return l.To(UnitPT) }

// Parse parses a length string like "12pt", "6mm", "1.5cm" preserving its
// unit. Unit-less numbers yield UnitNone; malformed input yields a zero
// length rather than an error.
func Parse(value string) Length {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}
	}
	return Length{Value: f, Unit: unit}
}
