package raster

import "medphantom/pkg/geometry"

// Mode selects how a shape writes into voxels it covers.
type Mode int

const (
	// Additive adds the shape's value to each covered voxel. Overlapping
	// additive shapes accumulate, which is how contrast deltas compose in
	// the Shepp-Logan phantom.
	Additive Mode = iota
	// Masking overwrites each covered voxel, hiding whatever was drawn
	// before. Anatomy is built from masking shapes painted inside out.
	Masking
)

// Element pairs a shape with the value it paints and the write mode.
// Elements are rasterized in order, so later masking elements win.
type Element struct {
	Shape geometry.Shape
	Value float64
	Mode  Mode
}

// Add is a convenience constructor for an additive element.
func Add(s geometry.Shape, value float64) Element {
	return Element{Shape: s, Value: value, Mode: Additive}
}

// Mask is a convenience constructor for a masking element.
func Mask(s geometry.Shape, value float64) Element {
	return Element{Shape: s, Value: value, Mode: Masking}
}

// Draw3D rasterizes the element onto the volume sampled by the three axes.
// Only voxels inside the shape's bounding box are tested.
func Draw3D(vol *Volume, x, y, z Axis, e Element) {
	center, radii := e.Shape.Bounds()
	i0, i1, ok := x.IndexRange(center[0]-radii[0], center[0]+radii[0])
	if !ok {
		return
	}
	j0, j1, ok := y.IndexRange(center[1]-radii[1], center[1]+radii[1])
	if !ok {
		return
	}
	k0, k1, ok := z.IndexRange(center[2]-radii[2], center[2]+radii[2])
	if !ok {
		return
	}
	for k := k0; k <= k1; k++ {
		pz := z.At(k)
		for j := j0; j <= j1; j++ {
			py := y.At(j)
			base := (k*vol.NY + j) * vol.NX
			for i := i0; i <= i1; i++ {
				if !e.Shape.Contains(x.At(i), py, pz) {
					continue
				}
				if e.Mode == Masking {
					vol.Data[base+i] = e.Value
				} else {
					vol.Data[base+i] += e.Value
				}
			}
		}
	}
}

// Draw2D rasterizes the element onto a 2D slice of the given plane. The u
// and v axes sample the plane's (column, row) coordinates and at is the
// slice position along the plane normal. Rendering every element of a scene
// this way reproduces the matching section of a full Draw3D render.
func Draw2D(sl *Slice, u, v Axis, p geometry.Plane, at float64, e Element) {
	shape := e.Shape.View(p)
	center, radii := shape.Bounds()
	if at < center[2]-radii[2] || at > center[2]+radii[2] {
		return
	}
	u0, u1, ok := u.IndexRange(center[0]-radii[0], center[0]+radii[0])
	if !ok {
		return
	}
	v0, v1, ok := v.IndexRange(center[1]-radii[1], center[1]+radii[1])
	if !ok {
		return
	}
	for jv := v0; jv <= v1; jv++ {
		pv := v.At(jv)
		base := jv * sl.NU
		for iu := u0; iu <= u1; iu++ {
			if !shape.Contains(u.At(iu), pv, at) {
				continue
			}
			if e.Mode == Masking {
				sl.Data[base+iu] = e.Value
			} else {
				sl.Data[base+iu] += e.Value
			}
		}
	}
}
