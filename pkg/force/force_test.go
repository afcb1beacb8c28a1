package force

import (
	"errors"
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/ballast-cad/ballast/pkg/weight"
)

const tol = 1e-9

func almost(a, b float64) bool {
	return math.Abs(a-b) <= tol
}

func TestWeightN(t *testing.T) {
	w1, _ := weight.New(10, v3.Vec{X: 2, Y: 3, Z: 4}, "")
	w2, _ := weight.New(10, v3.Vec{X: 2, Y: 3, Z: 4}, "")
	w3, _ := weight.New(15, v3.Vec{X: 2, Y: 3, Z: 4}, "")

	col := weight.NewCollection(w1, w2, w3)

	// 35 kg under standard gravity.
	if got := WeightN(col); !almost(got, 343.23274999999995) {
		t.Errorf("WeightN() = %v, want 343.23275", got)
	}
}

func TestOnMass(t *testing.T) {
	w, _ := weight.New(2, v3.Vec{X: 1, Y: -2, Z: 3}, "")

	f, err := OnMass(w)
	if err != nil {
		t.Fatalf("OnMass() error: %v", err)
	}
	if f.Fx != 0 || f.Fy != 0 {
		t.Errorf("horizontal components = (%v, %v), want (0, 0)", f.Fx, f.Fy)
	}
	if !almost(f.Fz, -2*GravityStandard) {
		t.Errorf("Fz = %v, want %v", f.Fz, -2*GravityStandard)
	}
	if f.Px != 1 || f.Py != -2 || f.Pz != 3 {
		t.Errorf("application point = (%v, %v, %v), want (1, -2, 3)", f.Px, f.Py, f.Pz)
	}
}

func TestOnMassUndefinedCG(t *testing.T) {
	if _, err := OnMass(weight.NewCollection()); !errors.Is(err, weight.ErrEmptyCollection) {
		t.Errorf("OnMass() error = %v, want ErrEmptyCollection", err)
	}
}
