package phantom

import (
	"math"

	"medphantom/pkg/geometry"
	"medphantom/pkg/motion"
	"medphantom/pkg/raster"
)

// Chamber shape table. Centers are relative to the torso's anterior-
// posterior offset; aspect is the unit-size radii ratio of each cavity.
// The lateral layout keeps the four chambers and their walls disjoint up
// to the largest scale the volume waveforms can command.
type chamberGeom struct {
	cx, cy, cz float64    // rest center, cy relative to the torso YOffset
	aspect     [3]float64 // cavity radii shape
	baseFactor float64    // outer wall oversize
	radOffset  [3]float64 // fixed outer wall padding
}

// The ventricle pair sits caudal of the atrium pair with the
// atrioventricular plane between them; within each pair the chambers are
// split left and right of the septum. The lateral drift coefficients in
// the motion package grow faster than the cavity radii over the allowed
// volume range, so the blood pools stay disjoint at every phase.
var chambers = [motion.NumChambers]chamberGeom{
	motion.LV: {
		cx: -0.20, cy: -0.145, cz: -0.36,
		aspect:     [3]float64{0.105, 0.195, 0.365},
		baseFactor: 1.02,
		radOffset:  [3]float64{0.004, 0.004, 0.006},
	},
	motion.RV: {
		cx: 0.015, cy: -0.145, cz: -0.36,
		aspect:     [3]float64{0.100, 0.210, 0.370},
		baseFactor: 1.02,
		radOffset:  [3]float64{0.004, 0.004, 0.006},
	},
	motion.LA: {
		cx: -0.18, cy: -0.145, cz: 0.30,
		aspect:     [3]float64{0.100, 0.185, 0.210},
		baseFactor: 0.98,
		radOffset:  [3]float64{0.002, 0.002, 0.001},
	},
	motion.RA: {
		cx: 0.025, cy: -0.145, cz: 0.30,
		aspect:     [3]float64{0.085, 0.210, 0.240},
		baseFactor: 0.98,
		radOffset:  [3]float64{0.002, 0.002, 0.001},
	},
}

// cavityFactor is the tuned per-chamber cavity oversize applied on top of
// the calibration base radius. The solved base divides it back out, so the
// rendered cavity volume still equals the commanded milliliters.
var cavityFactor = [motion.NumChambers]float64{
	motion.LV: 1.10,
	motion.RV: 1.06,
	motion.LA: 0.95,
	motion.RA: 1.00,
}

// wallThickness is the myocardium thickness in normalized units (2.7 mm).
const wallThickness = 0.018

// Heart sizes and places the four chambers for each frame of a cardiac
// cycle. Cavity radii are calibrated from the cycle-mean volumes so that
// the rasterized blood pool of a chamber equals its commanded milliliters.
type Heart struct {
	motion *motion.CardiacMotion
	lam    [motion.NumChambers]float64
}

// NewHeart calibrates a heart against the given motion.
func NewHeart(m *motion.CardiacMotion) *Heart {
	h := &Heart{motion: m}
	for c := motion.LV; c < motion.NumChambers; c++ {
		g := chambers[c]
		prod := g.aspect[0] * g.aspect[1] * g.aspect[2]
		// Solve (4pi/3) * prod(aspect*lam*factor) * unitML = mean.
		h.lam[c] = math.Cbrt(m.Mean[c]/(4*math.Pi/3*unitML*prod)) / cavityFactor[c]
	}
	return h
}

func (h *Heart) cavityRadius(c motion.Chamber, i int) float64 {
	return chambers[c].aspect[i] * h.lam[c] * cavityFactor[c]
}

func (h *Heart) outerRadius(c motion.Chamber, i int, scale float64) float64 {
	g := chambers[c]
	return (h.cavityRadius(c, i)+wallThickness)*scale*g.baseFactor + g.radOffset[i]
}

// ShellElements returns one static shell per chamber, sized for the
// largest scale its waveform reaches. The shells paint the heart muscle
// region the chambers move through, so a background render stays valid
// with any frame drawn on top of it.
func (h *Heart) ShellElements(yOffset float64, t TissueIntensities) []raster.Element {
	out := make([]raster.Element, 0, int(motion.NumChambers))
	for c := motion.LV; c < motion.NumChambers; c++ {
		g := chambers[c]
		s := h.motion.MaxScale[c]
		out = append(out, raster.Mask(geometry.Ellipsoid{
			CX: g.cx, CY: yOffset + g.cy, CZ: g.cz,
			RX: h.outerRadius(c, 0, s),
			RY: h.outerRadius(c, 1, s),
			RZ: h.outerRadius(c, 2, s),
		}, t.Heart))
	}
	return out
}

// FrameElements returns the moving heart for one frame: the four
// myocardium shells followed by the four cavities. Cavities come last so
// nothing overwrites blood, which keeps voxel counts faithful to the
// commanded volumes.
func (h *Heart) FrameElements(frame int, yOffset float64, t TissueIntensities) []raster.Element {
	poses := h.motion.At(frame)
	blood := [motion.NumChambers]float64{
		motion.LV: t.LVBlood,
		motion.RV: t.RVBlood,
		motion.LA: t.LABlood,
		motion.RA: t.RABlood,
	}

	out := make([]raster.Element, 0, 2*int(motion.NumChambers))
	for c := motion.LV; c < motion.NumChambers; c++ {
		g := chambers[c]
		p := poses[c]
		out = append(out, raster.Mask(geometry.Ellipsoid{
			CX: g.cx + p.DX, CY: yOffset + g.cy, CZ: g.cz + p.DZ,
			RX: h.outerRadius(c, 0, p.Scale),
			RY: h.outerRadius(c, 1, p.Scale),
			RZ: h.outerRadius(c, 2, p.Scale),
		}, t.Heart))
	}
	for c := motion.LV; c < motion.NumChambers; c++ {
		g := chambers[c]
		p := poses[c]
		out = append(out, raster.Mask(geometry.Ellipsoid{
			CX: g.cx + p.DX, CY: yOffset + g.cy, CZ: g.cz + p.DZ,
			RX: h.cavityRadius(c, 0) * p.Scale,
			RY: h.cavityRadius(c, 1) * p.Scale,
			RZ: h.cavityRadius(c, 2) * p.Scale,
		}, blood[c]))
	}
	return out
}
