package motion

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Chamber identifies one of the four heart chambers.
type Chamber int

const (
	LV Chamber = iota // left ventricle
	RV                // right ventricle
	LA                // left atrium
	RA                // right atrium
	NumChambers
)

func (c Chamber) String() string {
	switch c {
	case LV:
		return "LV"
	case RV:
		return "RV"
	case LA:
		return "LA"
	case RA:
		return "RA"
	}
	return "unknown"
}

// baseZ is the long-axis excursion coefficient per chamber: how strongly a
// unit of scale change moves the atrioventricular plane.
var baseZ = [NumChambers]float64{
	LV: 0.209,
	RV: 0.195,
	LA: 0.188,
	RA: 0.188,
}

// lateralDrift is the transverse drift coefficient per chamber. Signs point
// away from the septum so the chambers separate as they grow.
var lateralDrift = [NumChambers]float64{
	LV: -0.11,
	RV: 0.12,
	LA: -0.07,
	RA: 0.06,
}

// ChamberVolumes holds one volume waveform in milliliters per chamber,
// sampled at the frame times of a render.
type ChamberVolumes [NumChambers][]float64

// Validate checks that all four waveforms are present, equally long and
// strictly positive.
func (cv ChamberVolumes) Validate() error {
	n := len(cv[LV])
	if n == 0 {
		return fmt.Errorf("empty chamber volume waveform")
	}
	for c := LV; c < NumChambers; c++ {
		if len(cv[c]) != n {
			return fmt.Errorf("%v waveform has %d frames, want %d", c, len(cv[c]), n)
		}
		for i, v := range cv[c] {
			if v <= 0 {
				return fmt.Errorf("%v volume %.3f mL at frame %d is not positive", c, v, i)
			}
		}
	}
	return nil
}

// ChamberPose is the instantaneous deformation of one chamber.
type ChamberPose struct {
	// Scale is the cube root of the volume over its cycle mean, applied
	// uniformly to the cavity radii so rasterized volume tracks the
	// waveform exactly.
	Scale float64
	// DX is the transverse drift away from the rest position.
	DX float64
	// DZ is the long-axis shift. Ventricles and their atrium move in
	// opposite directions so the atrioventricular plane does the work.
	DZ float64
}

// CardiacMotion precomputes per-frame chamber poses from the commanded
// volume waveforms.
type CardiacMotion struct {
	Frames int
	// Mean is the cycle-mean volume per chamber in milliliters. The
	// chamber rest size is calibrated against it.
	Mean [NumChambers]float64
	// MaxScale is the largest scale each chamber reaches, used to size
	// the static shell that the moving chamber never escapes.
	MaxScale [NumChambers]float64

	scales [NumChambers][]float64
}

// NewCardiacMotion validates the waveforms and derives the pose series.
func NewCardiacMotion(cv ChamberVolumes) (*CardiacMotion, error) {
	if err := cv.Validate(); err != nil {
		return nil, err
	}
	m := &CardiacMotion{Frames: len(cv[LV])}
	for c := LV; c < NumChambers; c++ {
		m.Mean[c] = stat.Mean(cv[c], nil)
		m.scales[c] = make([]float64, m.Frames)
		for i, v := range cv[c] {
			s := math.Cbrt(v / m.Mean[c])
			m.scales[c][i] = s
			if s > m.MaxScale[c] {
				m.MaxScale[c] = s
			}
		}
	}
	return m, nil
}

// At returns the pose of every chamber at the given frame.
func (m *CardiacMotion) At(frame int) [NumChambers]ChamberPose {
	var poses [NumChambers]ChamberPose
	var dz [NumChambers]float64
	for c := LV; c < NumChambers; c++ {
		s := m.scales[c][frame]
		poses[c].Scale = s
		poses[c].DX = lateralDrift[c] * (s - 1)
		dz[c] = baseZ[c] * (s - 1)
	}
	// Each ventricle-atrium pair shares the atrioventricular plane: the
	// ventricle recedes as its atrium advances by the same amount.
	left := 0.45 * (dz[LV] + dz[LA])
	right := 0.45 * (dz[RV] + dz[RA])
	poses[LV].DZ = -left
	poses[LA].DZ = left
	poses[RV].DZ = -right
	poses[RA].DZ = right
	return poses
}
