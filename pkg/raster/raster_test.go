package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medphantom/pkg/geometry"
)

func TestCellCentered(t *testing.T) {
	a := CellCentered(4, 8)
	assert.Equal(t, 4, a.N)
	assert.InDelta(t, 2.0, a.Step, 1e-12)
	assert.InDelta(t, -3.0, a.At(0), 1e-12)
	assert.InDelta(t, 3.0, a.At(3), 1e-12)
}

// Doubling both the grid and the field of view must reproduce the original
// sample positions in the interior.
func TestCellCenteredInvariance(t *testing.T) {
	small := CellCentered(16, 24)
	big := CellCentered(32, 48)
	for i := 0; i < small.N; i++ {
		assert.InDelta(t, small.At(i), big.At(i+8), 1e-12)
	}
}

func TestLinspace(t *testing.T) {
	a := Linspace(-1, 1, 5)
	assert.InDelta(t, -1, a.At(0), 1e-12)
	assert.InDelta(t, 0, a.At(2), 1e-12)
	assert.InDelta(t, 1, a.At(4), 1e-12)
}

func TestIndexRange(t *testing.T) {
	a := CellCentered(10, 10) // samples at -4.5, -3.5, ..., 4.5

	i0, i1, ok := a.IndexRange(-1, 1)
	require.True(t, ok)
	assert.Equal(t, 4, i0)
	assert.Equal(t, 5, i1)

	// Bounds exactly on samples are included.
	i0, i1, ok = a.IndexRange(-0.5, 0.5)
	require.True(t, ok)
	assert.Equal(t, 4, i0)
	assert.Equal(t, 5, i1)

	// Clamped to the grid.
	i0, i1, ok = a.IndexRange(-100, 100)
	require.True(t, ok)
	assert.Equal(t, 0, i0)
	assert.Equal(t, 9, i1)

	// Entirely off the grid.
	_, _, ok = a.IndexRange(6, 8)
	assert.False(t, ok)

	// Interval between two samples holds no sample.
	_, _, ok = a.IndexRange(-0.4, 0.4)
	assert.False(t, ok)
}

func TestDrawModes(t *testing.T) {
	ax := CellCentered(8, 2)
	vol := NewVolume(8, 8, 8)

	outer := geometry.Ellipsoid{RX: 0.9, RY: 0.9, RZ: 0.9}
	inner := geometry.Ellipsoid{RX: 0.4, RY: 0.4, RZ: 0.4}

	Draw3D(vol, ax, ax, ax, Add(outer, 2))
	Draw3D(vol, ax, ax, ax, Add(inner, -1))
	mid := vol.NX / 2
	assert.Equal(t, 1.0, vol.At(mid, mid, mid), "additive shapes accumulate")

	Draw3D(vol, ax, ax, ax, Mask(inner, 7))
	assert.Equal(t, 7.0, vol.At(mid, mid, mid), "masking overwrites")
	assert.Equal(t, 2.0, vol.At(1, mid, mid), "outside the mask keeps the sum")
}

func TestDrawOutsideGridIsNoop(t *testing.T) {
	ax := CellCentered(8, 2)
	vol := NewVolume(8, 8, 8)
	Draw3D(vol, ax, ax, ax, Add(geometry.Ellipsoid{CX: 10, RX: 0.5, RY: 0.5, RZ: 0.5}, 1))
	for _, v := range vol.Data {
		require.Zero(t, v)
	}
}

// A unit-step grid rasterizing a radius 5 cylinder covers exactly the
// lattice points with x^2+y^2 <= 25 in every section: 81 of them.
func TestCylinderLatticeCount(t *testing.T) {
	ax := CellCentered(21, 21) // integer samples -10..10
	vol := NewVolume(21, 21, 21)
	Draw3D(vol, ax, ax, ax, Mask(geometry.NewCylinderZ(0, 0, 0, 5, 21), 1))

	assert.Equal(t, 81*21, vol.Count(1))
	sl, err := vol.SliceAt(geometry.Axial, 10)
	require.NoError(t, err)
	n := 0
	for _, v := range sl.Data {
		if v == 1 {
			n++
		}
	}
	assert.Equal(t, 81, n)
}

// A radius 0.5, height 1.0 cylinder on a 21-sample [-1,1] grid: the middle
// axial slice is the exact lattice disk of the circle equation, and the
// middle coronal and sagittal slices are exact 1.0 x 1.0 rectangles.
func TestCylinderMidSlices(t *testing.T) {
	ax := Linspace(-1, 1, 21)
	vol := NewVolume(21, 21, 21)
	Draw3D(vol, ax, ax, ax, Add(geometry.NewCylinderZ(0, 0, 0, 0.5, 1.0), 1))

	mid := 10 // sample at 0
	axial, err := vol.SliceAt(geometry.Axial, mid)
	require.NoError(t, err)
	for j := 0; j < 21; j++ {
		for i := 0; i < 21; i++ {
			x, y := ax.At(i), ax.At(j)
			want := 0.0
			if x*x+y*y <= 0.25 {
				want = 1.0
			}
			require.Equal(t, want, axial.At(i, j), "axial (%d,%d)", i, j)
		}
	}

	for _, p := range []geometry.Plane{geometry.Coronal, geometry.Sagittal} {
		sl, err := vol.SliceAt(p, mid)
		require.NoError(t, err)
		for j := 0; j < 21; j++ {
			for i := 0; i < 21; i++ {
				u, w := ax.At(i), ax.At(j)
				want := 0.0
				if u >= -0.5 && u <= 0.5 && w >= -0.5 && w <= 0.5 {
					want = 1.0
				}
				require.Equal(t, want, sl.At(i, j), "%v (%d,%d)", p, i, j)
			}
		}
	}
}

func testScene() []Element {
	return []Element{
		Mask(geometry.SuperEllipsoid{CX: 0.03, CY: -0.07, CZ: 0.01, RX: 0.83, RY: 0.61, RZ: 0.77, EX: 2, EY: 2, EZ: 8}, 1.0),
		Mask(geometry.Ellipsoid{CX: 0.21, CY: 0.11, CZ: -0.13, RX: 0.31, RY: 0.23, RZ: 0.37}, 0.4),
		Add(geometry.NewRotatedEllipsoid(-0.22, 0.03, 0.07, 0.29, 0.17, 0.33, 0.4, -0.3, 0.9), 0.25),
		Mask(geometry.NewCylinderX(0.05, -0.31, 0.22, 0.13, 0.9), 0.8),
		Mask(geometry.NewCylinderY(-0.35, 0.02, -0.28, 0.11, 0.7), 0.6),
		Add(geometry.NewCylinderZ(0.42, 0.41, 0.0, 0.09, 1.1), 0.15),
	}
}

// Rendering at half the grid and half the field of view keeps the voxel
// pitch, so the result equals the center crop of the larger render.
func TestRenderCropInvariance(t *testing.T) {
	scene := testScene()

	small := NewVolume(16, 16, 16)
	sa := CellCentered(16, 2)
	for _, e := range scene {
		Draw3D(small, sa, sa, sa, e)
	}

	big := NewVolume(32, 32, 32)
	ba := CellCentered(32, 4)
	for _, e := range scene {
		Draw3D(big, ba, ba, ba, e)
	}

	for k := 0; k < 16; k++ {
		for j := 0; j < 16; j++ {
			for i := 0; i < 16; i++ {
				require.Equal(t, big.At(i+8, j+8, k+8), small.At(i, j, k),
					"voxel (%d,%d,%d)", i, j, k)
			}
		}
	}
}

// Rendering a 2D slice directly must match the same section extracted from
// a full 3D render, for every plane and slice position.
func TestSliceConsistency(t *testing.T) {
	n := 24
	x := CellCentered(n, 2)
	y := CellCentered(n, 2)
	z := CellCentered(n, 2)
	scene := testScene()

	vol := NewVolume(n, n, n)
	for _, e := range scene {
		Draw3D(vol, x, y, z, e)
	}

	planes := []struct {
		p      geometry.Plane
		u, v   Axis
		normal Axis
	}{
		{geometry.Axial, x, y, z},
		{geometry.Coronal, x, z, y},
		{geometry.Sagittal, y, z, x},
	}
	for _, pl := range planes {
		for idx := 0; idx < pl.normal.N; idx++ {
			direct := NewSlice(pl.u.N, pl.v.N)
			for _, e := range scene {
				Draw2D(direct, pl.u, pl.v, pl.p, pl.normal.At(idx), e)
			}
			extracted, err := vol.SliceAt(pl.p, idx)
			require.NoError(t, err)
			require.Equal(t, extracted.Data, direct.Data,
				"%v slice %d differs from 3D render", pl.p, idx)
		}
	}
}

func TestSliceAtErrors(t *testing.T) {
	vol := NewVolume(4, 5, 6)
	_, err := vol.SliceAt(geometry.Axial, 6)
	assert.Error(t, err)
	_, err = vol.SliceAt(geometry.Coronal, -1)
	assert.Error(t, err)
	_, err = vol.SliceAt(geometry.Sagittal, 4)
	assert.Error(t, err)

	sl, err := vol.SliceAt(geometry.Coronal, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, sl.NU)
	assert.Equal(t, 6, sl.NV)
}

func TestClone(t *testing.T) {
	vol := NewVolume(2, 2, 2)
	vol.Data[3] = 5
	cp := vol.Clone()
	cp.Data[3] = 7
	assert.Equal(t, 5.0, vol.Data[3])
	assert.Equal(t, 7.0, cp.Data[3])
}

func TestThreshold(t *testing.T) {
	vol := NewVolume(2, 1, 1)
	vol.Data[0] = 0.3
	vol.Data[1] = 0.7
	occ := vol.Threshold(0.5)
	assert.Equal(t, []bool{false, true}, occ)
	// Cutoff is inclusive.
	assert.Equal(t, []bool{true, true}, vol.Threshold(0.3))
}

func TestIndexRangeDescendingAxis(t *testing.T) {
	// Samples at 1, 0.5, 0, -0.5, -1.
	a := Axis{Start: 1, Step: -0.5, N: 5}
	i0, i1, ok := a.IndexRange(-0.6, 0.6)
	require.True(t, ok)
	assert.Equal(t, 1, i0)
	assert.Equal(t, 3, i1)

	_, _, ok = a.IndexRange(0.1, 0.4)
	assert.False(t, ok)
}
