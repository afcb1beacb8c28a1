// Package force derives gravitational loads from mass properties.
package force

import (
	"github.com/ballast-cad/ballast/pkg/weight"
)

// GravityStandard is the standard acceleration of gravity [m/s2].
const GravityStandard = 9.80665

// Force is a force vector [N] applied at a point [m], in global
// coordinates.
type Force struct {
	Fx, Fy, Fz float64
	Px, Py, Pz float64
}

// WeightN returns the weight [N] of a mass under standard gravity.
func WeightN(m weight.PointMass) float64 {
	return m.Mass() * GravityStandard
}

// OnMass returns the gravitational force exerted on a mass: (0, 0,
// -m*g) applied at its centre of gravity. Fails when the mass has no
// defined centre of gravity.
func OnMass(m weight.PointMass) (Force, error) {
	cg, err := m.CG()
	if err != nil {
		return Force{}, err
	}
	return Force{
		Fz: -WeightN(m),
		Px: cg.X,
		Py: cg.Y,
		Pz: cg.Z,
	}, nil
}
