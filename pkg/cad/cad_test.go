package cad

import (
	"errors"
	"math"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/ballast-cad/ballast/pkg/weight"
)

// box returns a unit-scale test solid: an axis-aligned box centered at
// the origin with the given side lengths [m].
func box(t *testing.T, x, y, z float64) sdf.SDF3 {
	t.Helper()
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		t.Fatalf("Box3D: %v", err)
	}
	return s
}

// within fails unless got is within rel of want (relative tolerance).
func within(t *testing.T, what string, got, want, rel float64) {
	t.Helper()
	if math.Abs(got-want) > rel*math.Abs(want) {
		t.Errorf("%s = %v, want %v (±%v%%)", what, got, want, rel*100)
	}
}

func TestVolumeCentroidBox(t *testing.T) {
	s := box(t, 0.2, 0.1, 0.05)

	vol, centroid, err := VolumeCentroid(s)
	if err != nil {
		t.Fatalf("VolumeCentroid() error: %v", err)
	}

	// Tessellated volume of a 0.2 x 0.1 x 0.05 box.
	within(t, "volume", vol, 0.001, 0.02)

	// Centered solid: centroid at the origin.
	for axis, c := range map[string]float64{"x": centroid.X, "y": centroid.Y, "z": centroid.Z} {
		if math.Abs(c) > 0.002 {
			t.Errorf("centroid.%s = %v, want ~0", axis, c)
		}
	}
}

func TestVolumeCentroidTranslatedBox(t *testing.T) {
	s := box(t, 0.1, 0.1, 0.1)
	moved := sdf.Transform3D(s, sdf.Translate3d(v3.Vec{X: 0.2, Y: 0.3, Z: -0.4}))

	vol, centroid, err := VolumeCentroid(moved)
	if err != nil {
		t.Fatalf("VolumeCentroid() error: %v", err)
	}
	within(t, "volume", vol, 0.001, 0.02)
	within(t, "centroid.X", centroid.X, 0.2, 0.05)
	within(t, "centroid.Y", centroid.Y, 0.3, 0.05)
	within(t, "centroid.Z", centroid.Z, -0.4, 0.05)
}

func TestAreaCentroidBox(t *testing.T) {
	s := box(t, 0.1, 0.1, 0.1)

	area, centroid, err := AreaCentroid(s)
	if err != nil {
		t.Fatalf("AreaCentroid() error: %v", err)
	}

	// 6 faces of 0.01 m2. Marching cubes rounds edges slightly, so the
	// band is wider than for volume.
	within(t, "area", area, 0.06, 0.05)

	for axis, c := range map[string]float64{"x": centroid.X, "y": centroid.Y, "z": centroid.Z} {
		if math.Abs(c) > 0.002 {
			t.Errorf("centroid.%s = %v, want ~0", axis, c)
		}
	}
}

func TestFromVolume(t *testing.T) {
	// 1 litre of lead (11340 kg/m3) is about 11.34 kg.
	s := box(t, 0.1, 0.1, 0.1)

	w, err := FromVolume(11340, s, "bulb")
	if err != nil {
		t.Fatalf("FromVolume() error: %v", err)
	}
	within(t, "mass", w.Mass(), 11.34, 0.02)
	if w.Name() != "bulb" {
		t.Errorf("Name() = %q, want %q", w.Name(), "bulb")
	}
}

func TestFromVolumeFixed(t *testing.T) {
	s := box(t, 0.1, 0.1, 0.1)
	moved := sdf.Transform3D(s, sdf.Translate3d(v3.Vec{Z: -0.3}))

	w, err := FromVolumeFixed(2.4, moved, "bulb")
	if err != nil {
		t.Fatalf("FromVolumeFixed() error: %v", err)
	}
	if w.Mass() != 2.4 {
		t.Errorf("Mass() = %v, want 2.4", w.Mass())
	}
	cg, _ := w.CG()
	within(t, "cg.Z", cg.Z, -0.3, 0.05)
}

func TestFromSurface(t *testing.T) {
	// A 0.1 m cube skinned at 1.2 kg/m2: about 0.072 kg.
	s := box(t, 0.1, 0.1, 0.1)

	w, err := FromSurface(1.2, s, "skin")
	if err != nil {
		t.Fatalf("FromSurface() error: %v", err)
	}
	within(t, "mass", w.Mass(), 0.072, 0.05)
}

func TestFromSurfaceFixed(t *testing.T) {
	s := box(t, 0.1, 0.1, 0.1)

	w, err := FromSurfaceFixed(0.5, s, "skin")
	if err != nil {
		t.Fatalf("FromSurfaceFixed() error: %v", err)
	}
	if w.Mass() != 0.5 {
		t.Errorf("Mass() = %v, want 0.5", w.Mass())
	}
}

func TestNegativeDensityRejected(t *testing.T) {
	s := box(t, 0.1, 0.1, 0.1)

	_, err := FromVolume(-1, s, "")
	if err == nil {
		t.Error("FromVolume() with negative density succeeded, want error")
	}
}

func TestFromVolumeFixedNegativeMass(t *testing.T) {
	s := box(t, 0.1, 0.1, 0.1)

	if _, err := FromVolumeFixed(-2, s, ""); !errors.Is(err, weight.ErrInvalidWeight) {
		t.Errorf("FromVolumeFixed() error = %v, want ErrInvalidWeight", err)
	}
}
