// Package units converts mass and length magnitudes between common
// engineering units. It exists only at the boundary of the system: the
// core works in kilograms and metres, and callers convert on the way
// in and out (weights files, CAD geometry in mm, ...).
//
// Area and volume units are expressed with the 2/3 suffix convention:
// "mm2" is square millimetres, "m3" cubic metres.
package units

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownUnit is returned when a unit name is not recognized or two
// units measure different quantities.
var ErrUnknownUnit = errors.New("unknown or incompatible unit")

// massFactors maps mass unit names to kilograms.
var massFactors = map[string]float64{
	"kg": 1,
	"g":  1e-3,
	"mg": 1e-6,
	"t":  1e3,
	"lb": 0.45359237,
	"oz": 0.028349523125,
}

// lengthFactors maps length unit names to metres.
var lengthFactors = map[string]float64{
	"m":  1,
	"dm": 0.1,
	"cm": 0.01,
	"mm": 1e-3,
	"km": 1e3,
	"in": 0.0254,
	"ft": 0.3048,
	"yd": 0.9144,
}

// Convert converts a magnitude between two units of the same quantity:
// two mass units, two length units, or two area/volume units built
// from length units with the 2/3 suffix (e.g. "mm2" -> "m2").
func Convert(value float64, from, to string) (float64, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)

	if f, ok := massFactors[from]; ok {
		t, ok := massFactors[to]
		if !ok {
			return 0, fmt.Errorf("%w: cannot convert mass %q to %q", ErrUnknownUnit, from, to)
		}
		return value * f / t, nil
	}

	if f, ok := lengthFactors[from]; ok {
		t, ok := lengthFactors[to]
		if !ok {
			return 0, fmt.Errorf("%w: cannot convert length %q to %q", ErrUnknownUnit, from, to)
		}
		return value * f / t, nil
	}

	// Area and volume via the suffix convention.
	for _, p := range [2]struct {
		suffix string
		power  int
	}{{"2", 2}, {"3", 3}} {
		if strings.HasSuffix(from, p.suffix) && strings.HasSuffix(to, p.suffix) {
			f, okFrom := lengthFactors[strings.TrimSuffix(from, p.suffix)]
			t, okTo := lengthFactors[strings.TrimSuffix(to, p.suffix)]
			if okFrom && okTo {
				ratio := f / t
				scaled := ratio
				for i := 1; i < p.power; i++ {
					scaled *= ratio
				}
				return value * scaled, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: %q -> %q", ErrUnknownUnit, from, to)
}

// ToKilograms converts a mass magnitude to kilograms.
func ToKilograms(value float64, unit string) (float64, error) {
	return Convert(value, unit, "kg")
}

// ToMetres converts a length magnitude to metres.
func ToMetres(value float64, unit string) (float64, error) {
	return Convert(value, unit, "m")
}
