// Package raster turns geometric shapes into sampled volumes and slices.
// Shapes are painted onto uniform grids in draw order, either adding their
// value to overlapping voxels or overwriting them, and each shape only
// visits the grid indices inside its bounding box.
package raster

import "math"

// Axis is a uniform sampling of one coordinate: sample i sits at
// Start + i*Step for i in [0, N).
type Axis struct {
	Start float64
	Step  float64
	N     int
}

// CellCentered samples n cells across a field of view centered on the
// origin, placing each sample at its cell center. Doubling n while doubling
// the field of view reproduces the same sample positions plus new ones
// outside, so renders are comparable across grid sizes.
func CellCentered(n int, fov float64) Axis {
	step := fov / float64(n)
	return Axis{Start: -fov/2 + step/2, Step: step, N: n}
}

// Linspace samples n points from lo to hi inclusive.
func Linspace(lo, hi float64, n int) Axis {
	if n < 2 {
		return Axis{Start: lo, Step: 0, N: n}
	}
	return Axis{Start: lo, Step: (hi - lo) / float64(n-1), N: n}
}

// At returns the coordinate of sample i.
func (a Axis) At(i int) float64 {
	return a.Start + float64(i)*a.Step
}

// IndexRange returns the first and last sample indices whose coordinates
// lie in [lo, hi], clamped to the axis. ok is false when no sample falls in
// the interval.
func (a Axis) IndexRange(lo, hi float64) (i0, i1 int, ok bool) {
	if a.N == 0 || hi < lo {
		return 0, -1, false
	}
	if a.Step == 0 {
		if a.Start >= lo && a.Start <= hi {
			return 0, 0, true
		}
		return 0, -1, false
	}
	t0 := (lo - a.Start) / a.Step
	t1 := (hi - a.Start) / a.Step
	if t0 > t1 {
		// Descending axis: the interval maps to reversed index order.
		t0, t1 = t1, t0
	}
	i0 = int(math.Ceil(t0))
	i1 = int(math.Floor(t1))
	if i0 < 0 {
		i0 = 0
	}
	if i1 > a.N-1 {
		i1 = a.N - 1
	}
	if i0 > i1 {
		return 0, -1, false
	}
	return i0, i1, true
}
