package units

import (
	"errors"
	"math"
	"testing"
)

const tol = 1e-12

func TestConvert(t *testing.T) {
	tests := []struct {
		value    float64
		from, to string
		want     float64
	}{
		{2500, "g", "kg", 2.5},
		{2.5, "kg", "g", 2500},
		{1, "t", "kg", 1000},
		{1, "lb", "kg", 0.45359237},
		{16, "oz", "lb", 1},
		{550, "mm", "m", 0.55},
		{1, "m", "mm", 1000},
		{12, "in", "ft", 1},
		{3, "ft", "yd", 1},
		{1, "km", "m", 1000},
		{1, "m2", "mm2", 1e6},
		{1e6, "mm2", "m2", 1},
		{1, "m3", "mm3", 1e9},
		{1, "cm3", "mm3", 1000},
		{1, "kg", "kg", 1},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			got, err := Convert(tt.value, tt.from, tt.to)
			if err != nil {
				t.Fatalf("Convert(%v, %q, %q) error: %v", tt.value, tt.from, tt.to, err)
			}
			if math.Abs(got-tt.want) > tol*math.Max(1, math.Abs(tt.want)) {
				t.Errorf("Convert(%v, %q, %q) = %v, want %v", tt.value, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestConvertUnknownUnit(t *testing.T) {
	tests := []struct {
		from, to string
	}{
		{"furlong", "m"},
		{"m", "furlong"},
		{"kg", "m"},     // mass to length
		{"mm2", "mm3"},  // area to volume
		{"kg2", "m2"},   // not a length base
		{"", "kg"},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			if _, err := Convert(1, tt.from, tt.to); !errors.Is(err, ErrUnknownUnit) {
				t.Errorf("Convert(1, %q, %q) error = %v, want ErrUnknownUnit", tt.from, tt.to, err)
			}
		})
	}
}

func TestConvertTrimsSpace(t *testing.T) {
	got, err := Convert(1000, " g ", " kg")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if got != 1 {
		t.Errorf("Convert() = %v, want 1", got)
	}
}

func TestHelpers(t *testing.T) {
	kg, err := ToKilograms(2500, "g")
	if err != nil || kg != 2.5 {
		t.Errorf("ToKilograms(2500, g) = %v, %v; want 2.5, nil", kg, err)
	}
	m, err := ToMetres(-200, "mm")
	if err != nil || m != -0.2 {
		t.Errorf("ToMetres(-200, mm) = %v, %v; want -0.2, nil", m, err)
	}
}
