// Package weight models point masses and ordered collections of them.
// A Weight is a mass at a 3D position; a Collection aggregates members
// into an equivalent single weight (total mass, combined centre of
// gravity). Both satisfy the PointMass contract, so collections nest
// inside other collections transparently.
//
// All masses are in kilograms and all positions in metres. Unit
// conversion happens at the boundary (see pkg/units, pkg/weightfile).
package weight

import (
	"errors"
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

var (
	// ErrInvalidWeight is returned for a negative mass or a non-finite
	// position coordinate at construction.
	ErrInvalidWeight = errors.New("invalid weight")

	// ErrNotFound is returned by Collection.Remove when the target is
	// not a member.
	ErrNotFound = errors.New("weight not found in collection")

	// ErrEmptyCollection is returned by Collection.CG when the
	// collection has no members.
	ErrEmptyCollection = errors.New("collection has no members")

	// ErrZeroTotalMass is returned by Collection.CG when the collection
	// is non-empty but every member has zero mass, leaving the centre
	// of gravity undefined.
	ErrZeroTotalMass = errors.New("total mass is zero, centre of gravity undefined")
)

// PointMass is the shared mass-property contract. Anything with a total
// mass and a centre of gravity satisfies it: a single Weight, a
// Collection, or a caller-provided implementation.
type PointMass interface {
	// Mass returns the total mass in kilograms.
	Mass() float64

	// CG returns the centre of gravity in metres. Implementations for
	// which no centre of gravity is defined return an error.
	CG() (v3.Vec, error)
}

// Compile-time interface checks.
var (
	_ PointMass = (*Weight)(nil)
	_ PointMass = (*Collection)(nil)
)

// Weight is a point mass at a fixed 3D position. It is immutable after
// construction: aggregates computed over it can never go stale.
type Weight struct {
	mass float64
	cg   v3.Vec
	name string
}

// New creates a Weight from a mass [kg], a centre of gravity [m] and an
// optional diagnostic name. The mass must be finite and >= 0 (a
// zero-mass weight is valid) and every coordinate must be finite;
// otherwise ErrInvalidWeight is returned.
func New(massKg float64, cg v3.Vec, name string) (*Weight, error) {
	if math.IsNaN(massKg) || math.IsInf(massKg, 0) || massKg < 0 {
		return nil, fmt.Errorf("%w: mass %v should be finite and >= 0", ErrInvalidWeight, massKg)
	}
	for _, c := range [3]float64{cg.X, cg.Y, cg.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("%w: position (%v, %v, %v) has a non-finite coordinate",
				ErrInvalidWeight, cg.X, cg.Y, cg.Z)
		}
	}
	return &Weight{mass: massKg, cg: cg, name: name}, nil
}

// Mass returns the mass in kilograms.
func (w *Weight) Mass() float64 { return w.mass }

// CG returns the centre of gravity in metres. The error is always nil
// and exists only to satisfy the PointMass contract.
func (w *Weight) CG() (v3.Vec, error) { return w.cg, nil }

// Name returns the diagnostic name given at construction.
func (w *Weight) Name() string { return w.name }

func (w *Weight) String() string {
	return fmt.Sprintf("Weight <%s> : %g [kg] @ %g %g %g [m]",
		w.name, w.mass, w.cg.X, w.cg.Y, w.cg.Z)
}
