package phantom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medphantom/pkg/geometry"
	"medphantom/pkg/raster"
)

func TestSheppLoganContrast(t *testing.T) {
	// 101 samples over [-1, 1] put pixels exactly on x=0, y=0 and y=0.9.
	sl, err := SheppLoganSlice(101, geometry.Axial, 0.25, SheppLoganOriginal)
	require.NoError(t, err)

	// The skull is covered by the outer ellipsoid alone.
	assert.Equal(t, 2.0, sl.At(50, 95))
	// Brain tissue is the skull value plus the interior delta.
	assert.InDelta(t, 2.0-0.98, sl.At(50, 50), 1e-9)
	// Outside the head nothing is painted.
	assert.Equal(t, 0.0, sl.At(0, 0))

	mod, err := SheppLoganSlice(101, geometry.Axial, 0.25, SheppLoganModified)
	require.NoError(t, err)
	assert.Equal(t, 1.0, mod.At(50, 95))
	assert.InDelta(t, 1.0-0.8, mod.At(50, 50), 1e-9)
}

// Omitting the skull ellipsoid must change every voxel it covers by its
// configured contrast and touch nothing else.
func TestSheppLoganSkullDelta(t *testing.T) {
	elems, err := SheppLoganElements(SheppLoganOriginal)
	require.NoError(t, err)

	n := 101
	ax := raster.Linspace(-1, 1, n)
	full := raster.NewSlice(n, n)
	bare := raster.NewSlice(n, n)
	for i, e := range elems {
		raster.Draw2D(full, ax, ax, geometry.Axial, 0.25, e)
		if i > 0 {
			raster.Draw2D(bare, ax, ax, geometry.Axial, 0.25, e)
		}
	}

	skull := elems[0].Shape
	for v := 0; v < n; v++ {
		for u := 0; u < n; u++ {
			want := 0.0
			if skull.Contains(ax.At(u), ax.At(v), 0.25) {
				want = 2.0
			}
			require.InDelta(t, want, full.At(u, v)-bare.At(u, v), 1e-12,
				"pixel (%d, %d)", u, v)
		}
	}
}

func TestSheppLoganSliceMatchesVolume(t *testing.T) {
	n := 33
	vol, err := SheppLogan3D(n, SheppLoganModified)
	require.NoError(t, err)

	ax := raster.Linspace(-1, 1, n)
	for _, p := range []geometry.Plane{geometry.Axial, geometry.Coronal, geometry.Sagittal} {
		for idx := 0; idx < n; idx += 4 {
			direct, err := SheppLoganSlice(n, p, ax.At(idx), SheppLoganModified)
			require.NoError(t, err)
			extracted, err := vol.SliceAt(p, idx)
			require.NoError(t, err)
			require.Equal(t, extracted.Data, direct.Data, "%v slice %d", p, idx)
		}
	}
}

func TestSheppLoganTumorsAreTilted(t *testing.T) {
	// The two large interior voids are rotated about z, so their footprint
	// at z=0 is asymmetric under x negation away from the void centers.
	sl, err := SheppLoganSlice(201, geometry.Axial, 0, SheppLoganModified)
	require.NoError(t, err)

	asymmetric := false
	for v := 0; v < 201 && !asymmetric; v++ {
		for u := 0; u < 201; u++ {
			if sl.At(u, v) != sl.At(200-u, v) {
				asymmetric = true
				break
			}
		}
	}
	assert.True(t, asymmetric, "mirrored voids of different tilt and size must break x symmetry")
}

func TestSheppLoganErrors(t *testing.T) {
	_, err := SheppLogan3D(1, SheppLoganOriginal)
	assert.Error(t, err)
	_, err = SheppLoganSlice(64, geometry.Axial, 0, SheppLoganVariant(9))
	assert.Error(t, err)
}
