package phantom

import (
	"fmt"
	"math"

	"medphantom/pkg/geometry"
	"medphantom/pkg/raster"
)

// SheppLoganVariant selects the contrast table of the head phantom.
type SheppLoganVariant int

const (
	// SheppLoganOriginal uses the published contrast values. The interior
	// features differ by only 1-2% of the skull value.
	SheppLoganOriginal SheppLoganVariant = iota
	// SheppLoganModified uses the high-contrast variant common in image
	// reconstruction benchmarks.
	SheppLoganModified
)

// One ellipse of the head phantom. Positions and semi-axes live in the
// [-1, 1] cube; phi rotates about z in degrees.
type sheppEllipsoid struct {
	x, y, z float64
	a, b, c float64
	phiDeg  float64
}

var sheppTable = [10]sheppEllipsoid{
	{0, 0, 0.25, 0.69, 0.92, 0.90, 0},
	{0, -0.0184, 0.25, 0.6624, 0.874, 0.88, 0},
	{0.22, 0, 0, 0.11, 0.31, 0.22, -18},
	{-0.22, 0, 0, 0.16, 0.41, 0.28, 18},
	{0, 0.35, 0.10, 0.21, 0.25, 0.41, 0},
	{0, 0.1, 0.50, 0.046, 0.046, 0.05, 0},
	{0, -0.1, 0.50, 0.046, 0.046, 0.05, 0},
	{-0.08, -0.605, 0.25, 0.046, 0.023, 0.05, 0},
	{0, -0.606, 0.25, 0.023, 0.023, 0.02, 0},
	{0.06, -0.605, 0.25, 0.023, 0.046, 0.02, 0},
}

var sheppIntensity = map[SheppLoganVariant][10]float64{
	SheppLoganOriginal: {2.0, -0.98, -0.02, -0.02, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01},
	SheppLoganModified: {1.0, -0.8, -0.2, -0.2, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1},
}

// SheppLoganElements returns the ten additive ellipsoids of the head
// phantom. Every ellipsoid adds its contrast to the voxels it covers, so
// interior features are deltas on top of the skull and brain values.
func SheppLoganElements(variant SheppLoganVariant) ([]raster.Element, error) {
	values, ok := sheppIntensity[variant]
	if !ok {
		return nil, fmt.Errorf("unknown Shepp-Logan variant %d", variant)
	}
	out := make([]raster.Element, 0, len(sheppTable))
	for i, e := range sheppTable {
		var s geometry.Shape
		if e.phiDeg != 0 {
			s = geometry.NewRotatedEllipsoid(e.x, e.y, e.z, e.a, e.b, e.c,
				e.phiDeg*math.Pi/180, 0, 0)
		} else {
			s = geometry.Ellipsoid{CX: e.x, CY: e.y, CZ: e.z, RX: e.a, RY: e.b, RZ: e.c}
		}
		out = append(out, raster.Add(s, values[i]))
	}
	return out, nil
}

// SheppLogan3D renders the head phantom on an n^3 grid spanning [-1, 1]
// along every axis.
func SheppLogan3D(n int, variant SheppLoganVariant) (*raster.Volume, error) {
	if n < 2 {
		return nil, fmt.Errorf("grid size %d too small", n)
	}
	elems, err := SheppLoganElements(variant)
	if err != nil {
		return nil, err
	}
	ax := raster.Linspace(-1, 1, n)
	vol := raster.NewVolume(n, n, n)
	for _, e := range elems {
		raster.Draw3D(vol, ax, ax, ax, e)
	}
	return vol, nil
}

// SheppLoganSlice renders one n^2 section of the head phantom directly,
// without building the volume. at is the slice position along the plane
// normal in [-1, 1].
func SheppLoganSlice(n int, p geometry.Plane, at float64, variant SheppLoganVariant) (*raster.Slice, error) {
	if n < 2 {
		return nil, fmt.Errorf("grid size %d too small", n)
	}
	elems, err := SheppLoganElements(variant)
	if err != nil {
		return nil, err
	}
	ax := raster.Linspace(-1, 1, n)
	sl := raster.NewSlice(n, n)
	for _, e := range elems {
		raster.Draw2D(sl, ax, ax, p, at, e)
	}
	return sl, nil
}
