package weight

import (
	"errors"
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrBadTarget is returned by the corrector functions when the target
// mass does not strictly exceed the current mass: either nothing can be
// removed (current > target) or there is nothing to add (current ==
// target, which would make the corrector position 0/0).
var ErrBadTarget = errors.New("target mass should exceed current mass")

// FindCorrector computes the single Weight that has to be added to
// current so that the combined system reaches targetMassKg with its
// centre of gravity at target [m].
func FindCorrector(current PointMass, targetMassKg float64, target v3.Vec) (*Weight, error) {
	mass, cg, err := correctorMassCG(current, targetMassKg, target)
	if err != nil {
		return nil, err
	}
	return New(mass, cg, "")
}

// FindCorrectorZ is FindCorrector with the corrector's Z coordinate
// forced to overrideZ instead of its natural position. Useful when the
// corrector can only be installed at a known height.
func FindCorrectorZ(current PointMass, targetMassKg float64, target v3.Vec, overrideZ float64) (*Weight, error) {
	mass, cg, err := correctorMassCG(current, targetMassKg, target)
	if err != nil {
		return nil, err
	}
	cg.Z = overrideZ
	return New(mass, cg, "")
}

// correctorMassCG solves the two-body weighted average for the missing
// member: target CG * target mass = current mass * current CG +
// corrector mass * corrector CG.
func correctorMassCG(current PointMass, targetMassKg float64, target v3.Vec) (float64, v3.Vec, error) {
	currentMass := current.Mass()
	if currentMass >= targetMassKg {
		return 0, v3.Vec{}, fmt.Errorf("%w: current %.6f [kg], target %.6f [kg]",
			ErrBadTarget, currentMass, targetMassKg)
	}
	currentCG, err := current.CG()
	if err != nil {
		return 0, v3.Vec{}, err
	}

	mass := targetMassKg - currentMass
	cg := v3.Vec{
		X: (target.X*targetMassKg - currentMass*currentCG.X) / mass,
		Y: (target.Y*targetMassKg - currentMass*currentCG.Y) / mass,
		Z: (target.Z*targetMassKg - currentMass*currentCG.Z) / mass,
	}
	return mass, cg, nil
}
