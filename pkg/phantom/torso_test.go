package phantom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medphantom/pkg/motion"
	"medphantom/pkg/raster"
)

func renderTorso(t *testing.T, liters float64, n int) (*raster.Volume, motion.RespParams, raster.Axis) {
	t.Helper()
	p, err := motion.Respiratory(liters)
	require.NoError(t, err)
	ax := raster.CellCentered(n, 2)
	vol := raster.NewVolume(n, n, n)
	for _, e := range Torso(p, MaskTissues()) {
		raster.Draw3D(vol, ax, ax, ax, e)
	}
	return vol, p, ax
}

func nearest(a raster.Axis, x float64) int {
	i := int(math.Round((x - a.Start) / a.Step))
	if i < 0 {
		i = 0
	}
	if i > a.N-1 {
		i = a.N - 1
	}
	return i
}

func labelAt(vol *raster.Volume, ax raster.Axis, x, y, z float64) float64 {
	return vol.At(nearest(ax, x), nearest(ax, y), nearest(ax, z))
}

func TestTorsoTissueLayout(t *testing.T) {
	vol, p, ax := renderTorso(t, 2.7, 64)
	m := MaskTissues()

	// Chest wall away from every organ.
	assert.Equal(t, m.Body, labelAt(vol, ax, 0.6, p.YOffset, -0.7))

	// Upper right lung, clear of the hilar vessel block.
	lungCX := 0.33*p.BodyScale + 0.13
	assert.Equal(t, m.Lung, labelAt(vol, ax, lungCX, p.YOffset, 0.78))

	// The hilar block hides the lung tissue at the lung center.
	assert.Equal(t, m.VesselsBlood, labelAt(vol, ax, 0.45, 0.04, 0.33))

	assert.Equal(t, m.Liver, labelAt(vol, ax, -0.25, p.YOffsetVisceral, -0.28+0.4*p.DiaphragmUp))
	assert.Equal(t, m.Stomach, labelAt(vol, ax, 0.24, p.YOffsetVisceral-0.08, -0.36+0.4*p.DiaphragmUp))
	assert.Equal(t, m.Bones, labelAt(vol, ax, 0, p.YOffset+0.36, 0))
	assert.Equal(t, m.Bones, labelAt(vol, ax, 0, p.YOffset-0.44, -0.20))
	assert.Equal(t, m.VesselsBlood, labelAt(vol, ax, 0, p.YOffset+0.19, 0.15))

	// Outside the body envelope.
	assert.Equal(t, 0.0, labelAt(vol, ax, 0.95, 0.9, 0))
}

func TestTorsoLungsGrowWithVolume(t *testing.T) {
	small, _, _ := renderTorso(t, 1.5, 48)
	large, _, _ := renderTorso(t, 5.5, 48)
	m := MaskTissues()
	assert.Greater(t, large.Count(m.Lung), small.Count(m.Lung))

	// The chest expands with the lungs.
	assert.Greater(t, large.Count(m.Body)+large.Count(m.Lung)+large.Count(m.VesselsBlood),
		small.Count(m.Body)+small.Count(m.Lung)+small.Count(m.VesselsBlood))
}

// The hilar vessel blocks are static anatomy: they must stay inside the
// lungs at both breathing extremes, or the carved lung volume would stop
// tracking the commanded liters.
func TestHilarBlocksStayInsideLungs(t *testing.T) {
	for _, liters := range []float64{motion.MinLungVolume, 2.7, motion.MaxLungVolume} {
		p, err := motion.Respiratory(liters)
		require.NoError(t, err)

		elems := Torso(p, MaskTissues())
		lungs := elems[3:5]
		hilar := elems[5:7]
		for _, h := range hilar {
			hc, hr := h.Shape.Bounds()
			inside := false
			for _, l := range lungs {
				lc, _ := l.Shape.Bounds()
				if math.Abs(hc[0]-lc[0]) > 0.5 {
					continue
				}
				inside = true
				// Every corner of the block's bounding box must be
				// inside the superellipsoid lung on the same side.
				for sx := -1; sx <= 1; sx += 2 {
					for sy := -1; sy <= 1; sy += 2 {
						for sz := -1; sz <= 1; sz += 2 {
							x := hc[0] + float64(sx)*hr[0]
							y := hc[1] + float64(sy)*hr[1]
							z := hc[2] + float64(sz)*hr[2]
							require.True(t, l.Shape.Contains(x, y, z),
								"hilar corner (%v, %v, %v) leaves the lung at %.1f L", x, y, z, liters)
						}
					}
				}
			}
			require.True(t, inside, "no lung on the block's side")
		}
	}
}

// Single-channel masks must produce a {0,1} volume that is 1 exactly
// where the integer-label rendering shows the requested tissue.
func TestMaskForSingleChannel(t *testing.T) {
	labels, p, ax := renderTorso(t, 2.7, 48)

	tissues, err := MaskFor("lung")
	require.NoError(t, err)
	vol := raster.NewVolume(48, 48, 48)
	for _, e := range Torso(p, tissues) {
		raster.Draw3D(vol, ax, ax, ax, e)
	}

	m := MaskTissues()
	for i, v := range vol.Data {
		require.Contains(t, []float64{0, 1}, v, "voxel %d", i)
		require.Equal(t, labels.Data[i] == m.Lung, v == 1, "voxel %d", i)
	}

	_, err = MaskFor("cartilage")
	assert.ErrorContains(t, err, "unknown tissue channel")
}
