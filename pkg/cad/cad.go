// Package cad derives weights from solid geometry. A solid's mass
// properties (volume, surface area, centroid) are integrated from a
// marching-cubes tessellation of its signed distance field, so any
// sdf.SDF3 can act as the source of a weight's mass and position.
//
// Solids are expected in metres. For geometry modeled in another unit,
// convert the derived weight's inputs with pkg/units first.
package cad

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/ballast-cad/ballast/pkg/weight"
)

// meshCells controls marching cubes tessellation resolution. Higher
// values tighten the integration at cubic cost in triangles.
const meshCells = 200

// ErrDegenerateSolid is returned when tessellation produces no usable
// geometry (empty SDF or zero enclosed volume).
var ErrDegenerateSolid = errors.New("solid has no usable geometry")

// FromVolume creates a Weight whose mass is density [kg/m3] times the
// solid's volume, positioned at the solid's centroid.
func FromVolume(density float64, s sdf.SDF3, name string) (*weight.Weight, error) {
	vol, centroid, err := VolumeCentroid(s)
	if err != nil {
		return nil, err
	}
	return weight.New(density*vol, centroid, name)
}

// FromVolumeFixed creates a Weight of a known total mass [kg]
// positioned at the solid's centroid.
func FromVolumeFixed(massKg float64, s sdf.SDF3, name string) (*weight.Weight, error) {
	_, centroid, err := VolumeCentroid(s)
	if err != nil {
		return nil, err
	}
	return weight.New(massKg, centroid, name)
}

// FromSurface creates a Weight whose mass is arealDensity [kg/m2]
// times the solid's surface area, positioned at the surface centroid.
// Use for shell-type weights such as a hull skin or deck laminate.
func FromSurface(arealDensity float64, s sdf.SDF3, name string) (*weight.Weight, error) {
	area, centroid, err := AreaCentroid(s)
	if err != nil {
		return nil, err
	}
	return weight.New(arealDensity*area, centroid, name)
}

// FromSurfaceFixed creates a Weight of a known total mass [kg]
// positioned at the solid's surface centroid.
func FromSurfaceFixed(massKg float64, s sdf.SDF3, name string) (*weight.Weight, error) {
	_, centroid, err := AreaCentroid(s)
	if err != nil {
		return nil, err
	}
	return weight.New(massKg, centroid, name)
}

// VolumeCentroid returns the volume [m3] and volume centroid [m] of a
// solid, integrated over the tessellated boundary by signed tetrahedra
// against the origin. The mesh produced by marching cubes is closed
// and consistently wound, which the signed sum relies on.
func VolumeCentroid(s sdf.SDF3) (float64, v3.Vec, error) {
	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(meshCells))
	if len(triangles) == 0 {
		return 0, v3.Vec{}, fmt.Errorf("%w: tessellation is empty", ErrDegenerateSolid)
	}

	var volume float64
	var moment v3.Vec
	for _, tri := range triangles {
		a, b, c := tri[0], tri[1], tri[2]
		// Signed volume of the tetrahedron (origin, a, b, c).
		v := a.Dot(b.Cross(c)) / 6.0
		volume += v
		// Tetrahedron centroid is the average of its four vertices;
		// the origin vertex contributes zero.
		moment.X += v * (a.X + b.X + c.X) / 4.0
		moment.Y += v * (a.Y + b.Y + c.Y) / 4.0
		moment.Z += v * (a.Z + b.Z + c.Z) / 4.0
	}

	if volume <= 0 {
		return 0, v3.Vec{}, fmt.Errorf("%w: enclosed volume is %g", ErrDegenerateSolid, volume)
	}
	return volume, v3.Vec{X: moment.X / volume, Y: moment.Y / volume, Z: moment.Z / volume}, nil
}

// AreaCentroid returns the surface area [m2] and area centroid [m] of
// a solid's tessellated boundary.
func AreaCentroid(s sdf.SDF3) (float64, v3.Vec, error) {
	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(meshCells))
	if len(triangles) == 0 {
		return 0, v3.Vec{}, fmt.Errorf("%w: tessellation is empty", ErrDegenerateSolid)
	}

	var area float64
	var moment v3.Vec
	for _, tri := range triangles {
		a, b, c := tri[0], tri[1], tri[2]
		n := b.Sub(a).Cross(c.Sub(a))
		triArea := n.Length() / 2.0
		area += triArea
		moment.X += triArea * (a.X + b.X + c.X) / 3.0
		moment.Y += triArea * (a.Y + b.Y + c.Y) / 3.0
		moment.Z += triArea * (a.Z + b.Z + c.Z) / 3.0
	}

	if area == 0 {
		return 0, v3.Vec{}, fmt.Errorf("%w: surface area is zero", ErrDegenerateSolid)
	}
	return area, v3.Vec{X: moment.X / area, Y: moment.Y / area, Z: moment.Z / area}, nil
}
