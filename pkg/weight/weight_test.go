package weight

import (
	"errors"
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// mustNew builds a Weight or fails the test.
func mustNew(t *testing.T, mass float64, cg v3.Vec, name string) *Weight {
	t.Helper()
	w, err := New(mass, cg, name)
	if err != nil {
		t.Fatalf("New(%v, %v, %q): %v", mass, cg, name, err)
	}
	return w
}

func TestNewValid(t *testing.T) {
	tests := []struct {
		name string
		mass float64
		cg   v3.Vec
	}{
		{"plain", 10, v3.Vec{X: 2, Y: 3, Z: 4}},
		{"zero mass", 0, v3.Vec{X: 1, Y: 1, Z: 1}},
		{"origin", 5, v3.Vec{}},
		{"negative coordinates", 2.5, v3.Vec{X: -1, Y: -2, Z: -3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := New(tt.mass, tt.cg, "")
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			if got := w.Mass(); got != tt.mass {
				t.Errorf("Mass() = %v, want %v", got, tt.mass)
			}
			cg, err := w.CG()
			if err != nil {
				t.Fatalf("CG() error: %v", err)
			}
			if cg != tt.cg {
				t.Errorf("CG() = %v, want %v", cg, tt.cg)
			}
		})
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name string
		mass float64
		cg   v3.Vec
	}{
		{"negative mass", -10, v3.Vec{X: 2, Y: 3, Z: 4}},
		{"NaN mass", math.NaN(), v3.Vec{}},
		{"infinite mass", math.Inf(1), v3.Vec{}},
		{"NaN coordinate", 1, v3.Vec{X: math.NaN()}},
		{"infinite coordinate", 1, v3.Vec{Z: math.Inf(1)}},
		{"negative infinite coordinate", 1, v3.Vec{Y: math.Inf(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.mass, tt.cg, "")
			if !errors.Is(err, ErrInvalidWeight) {
				t.Errorf("New() error = %v, want ErrInvalidWeight", err)
			}
		})
	}
}

func TestWeightName(t *testing.T) {
	w := mustNew(t, 1, v3.Vec{}, "keel bulb")
	if got := w.Name(); got != "keel bulb" {
		t.Errorf("Name() = %q, want %q", got, "keel bulb")
	}
}

func TestWeightImmutableAccessors(t *testing.T) {
	cg := v3.Vec{X: 2, Y: 5, Z: 20}
	w := mustNew(t, 10, cg, "")

	// Repeated reads return the construction values unchanged.
	for i := 0; i < 3; i++ {
		if w.Mass() != 10 {
			t.Fatalf("Mass() changed on read %d", i)
		}
		got, _ := w.CG()
		if got != cg {
			t.Fatalf("CG() changed on read %d", i)
		}
	}
}
