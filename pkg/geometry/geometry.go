// Package geometry provides the solid primitives used to assemble numerical
// phantoms: ellipsoids, superellipsoids, axis-aligned cylinders and rotated
// ellipsoids. Every shape supports a point containment test, an axis-aligned
// bounding box for rasterization pruning, and reprojection into a slice
// plane so that 2D sections can be rendered without building a full volume.
package geometry

// Plane identifies one of the three anatomical slice orientations.
//
// A slice is always rasterized in its own (column, row) coordinates with the
// third coordinate fixed at the slice position:
//
//	Axial    (x, y) at constant z
//	Coronal  (x, z) at constant y
//	Sagittal (y, z) at constant x
type Plane int

const (
	Axial Plane = iota
	Coronal
	Sagittal
)

func (p Plane) String() string {
	switch p {
	case Axial:
		return "axial"
	case Coronal:
		return "coronal"
	case Sagittal:
		return "sagittal"
	}
	return "unknown"
}

// Axis identifies a coordinate axis.
type Axis int

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

// Shape is a solid that can be rasterized into a volume or a slice.
type Shape interface {
	// Contains reports whether the point lies inside the shape or on its
	// surface. Surface points count as inside.
	Contains(x, y, z float64) bool

	// Bounds returns the center and half-extents of the tightest
	// axis-aligned box enclosing the shape. Rasterization only visits
	// grid indices inside this box.
	Bounds() (center, radii [3]float64)

	// View returns the shape expressed in the coordinates of the given
	// slice plane, so that rendering the view with a 2D raster at the
	// slice position reproduces the matching rows of a full 3D render.
	View(p Plane) Shape
}

// permute maps world coordinates (x, y, z) to the (column, row, normal)
// coordinates of a slice plane.
func permute(p Plane, x, y, z float64) (u, v, w float64) {
	switch p {
	case Coronal:
		return x, z, y
	case Sagittal:
		return y, z, x
	}
	return x, y, z
}

// axisUnder returns the axis that a maps to under the plane's coordinate
// permutation.
func axisUnder(p Plane, a Axis) Axis {
	switch p {
	case Coronal:
		// (x, y, z) -> (x, z, y)
		switch a {
		case YAxis:
			return ZAxis
		case ZAxis:
			return YAxis
		}
	case Sagittal:
		// (x, y, z) -> (y, z, x)
		switch a {
		case XAxis:
			return ZAxis
		case YAxis:
			return XAxis
		case ZAxis:
			return YAxis
		}
	}
	return a
}
