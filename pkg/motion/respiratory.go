// Package motion converts physiological signals into the geometric
// parameters that deform the phantom: lung volume drives the respiratory
// scaling of the torso and diaphragm, and chamber volume waveforms drive
// the scaling and drift of the four heart chambers.
package motion

import "fmt"

// Lung volume bounds in liters accepted by Respiratory.
const (
	MinLungVolume = 1.2
	MaxLungVolume = 6.0
)

// RespParams are the deformation parameters derived from one lung volume
// sample. All values are in the phantom's normalized coordinates.
type RespParams struct {
	// Scale multiplies the transverse lung radii.
	Scale float64
	// LowerRZ sets the caudal half-axis of the lungs, modelling the
	// diaphragm descending as the lungs fill.
	LowerRZ float64
	// BodyScale multiplies the transverse torso radii: the chest wall
	// expands with the lungs.
	BodyScale float64
	// DiaphragmUp shifts the organs under the diaphragm cranially as the
	// lungs empty.
	DiaphragmUp float64
	// YOffset recenters the torso anterior-posteriorly as the chest
	// expands.
	YOffset float64
	// YOffsetVisceral is the damped anterior-posterior shift of the
	// organs inside the torso.
	YOffsetVisceral float64
	// XYVisceralScale is the slight transverse swelling of the liver and
	// stomach over the breathing cycle.
	XYVisceralScale float64
}

// Respiratory maps a lung volume in liters onto deformation parameters.
// The polynomial coefficients are tuned so that rasterized lung volume
// tracks the commanded volume across the full range; they must not be
// altered independently of each other.
func Respiratory(liters float64) (RespParams, error) {
	if liters < MinLungVolume || liters > MaxLungVolume {
		return RespParams{}, fmt.Errorf("lung volume %.3f L outside [%.1f, %.1f]",
			liters, MinLungVolume, MaxLungVolume)
	}
	r := (liters - MinLungVolume) / (MaxLungVolume - MinLungVolume)

	scale := 0.598 + 0.842*r - 0.175*r*r - 0.0320625*r*r*r
	lowerRZ := 1.819140625 + 0.831375*r - 1.7111875*r*r + 1.24575*r*r*r
	bodyScale := 0.4 + 0.63*scale
	yOffset := -0.40 + 0.45*bodyScale

	return RespParams{
		Scale:           scale,
		LowerRZ:         lowerRZ,
		BodyScale:       bodyScale,
		DiaphragmUp:     -0.5 * (lowerRZ - 1),
		YOffset:         yOffset,
		YOffsetVisceral: 0.8 * yOffset,
		XYVisceralScale: 1 + 0.04*r,
	}, nil
}
