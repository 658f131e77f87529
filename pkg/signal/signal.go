// Package signal generates the physiological waveforms that drive phantom
// motion: a tidal breathing curve in liters and the four chamber volume
// curves of a beating heart in milliliters.
package signal

import (
	"fmt"
	"math"

	"medphantom/pkg/motion"
)

// Breathing is a tidal lung volume curve. Volume rests at Baseline at
// end-expiration and rises by Tidal at end-inspiration, following a
// squared-sine profile so flow is zero at both turning points.
type Breathing struct {
	Baseline float64 // liters at end-expiration
	Tidal    float64 // liters of tidal excursion
	Period   float64 // seconds per breath
}

// DefaultBreathing is quiet adult breathing.
func DefaultBreathing() Breathing {
	return Breathing{Baseline: 2.2, Tidal: 1.0, Period: 5.0}
}

func (b Breathing) Validate() error {
	if b.Period <= 0 {
		return fmt.Errorf("breathing period %.3f s must be positive", b.Period)
	}
	if b.Tidal < 0 {
		return fmt.Errorf("tidal volume %.3f L must not be negative", b.Tidal)
	}
	if b.Baseline < motion.MinLungVolume || b.Baseline+b.Tidal > motion.MaxLungVolume {
		return fmt.Errorf("breathing range [%.2f, %.2f] L outside [%.1f, %.1f]",
			b.Baseline, b.Baseline+b.Tidal, motion.MinLungVolume, motion.MaxLungVolume)
	}
	return nil
}

// At returns the lung volume in liters at time t.
func (b Breathing) At(t float64) float64 {
	s := math.Sin(math.Pi * t / b.Period)
	return b.Baseline + b.Tidal*s*s
}

// Series samples the curve at the given times.
func (b Breathing) Series(times []float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = b.At(t)
	}
	return out
}

// HeartBeat generates sinusoidal chamber volume curves. Ventricles peak at
// end-diastole while the atria, half a cycle out of phase, empty into them.
type HeartBeat struct {
	RateBPM    float64                     // beats per minute
	MeanVolume [motion.NumChambers]float64 // cycle-mean volume, mL
	Swing      [motion.NumChambers]float64 // fractional amplitude
}

// MaxSwing bounds the fractional volume amplitude. Larger swings would
// push the chamber blood pools into each other.
const MaxSwing = 0.35

// Resting mean volume bounds per chamber in milliliters. The chamber
// layout keeps the blood pools disjoint across the full swing only inside
// these ranges.
var meanVolumeBounds = [motion.NumChambers][2]float64{
	motion.LV: {80, 115},
	motion.RV: {85, 120},
	motion.LA: {40, 62},
	motion.RA: {45, 66},
}

// DefaultHeartBeat is a resting adult heart.
func DefaultHeartBeat() HeartBeat {
	return HeartBeat{
		RateBPM:    70,
		MeanVolume: [motion.NumChambers]float64{motion.LV: 105, motion.RV: 110, motion.LA: 55, motion.RA: 60},
		Swing:      [motion.NumChambers]float64{motion.LV: 0.35, motion.RV: 0.32, motion.LA: 0.30, motion.RA: 0.30},
	}
}

func (h HeartBeat) Validate() error {
	if h.RateBPM <= 0 {
		return fmt.Errorf("heart rate %.1f bpm must be positive", h.RateBPM)
	}
	for c := motion.LV; c < motion.NumChambers; c++ {
		b := meanVolumeBounds[c]
		if h.MeanVolume[c] < b[0] || h.MeanVolume[c] > b[1] {
			return fmt.Errorf("%v mean volume %.1f mL outside [%.0f, %.0f]",
				c, h.MeanVolume[c], b[0], b[1])
		}
		if h.Swing[c] < 0 || h.Swing[c] > MaxSwing {
			return fmt.Errorf("%v swing %.3f outside [0, %.2f]", c, h.Swing[c], MaxSwing)
		}
	}
	return nil
}

// At returns the chamber volumes in milliliters at time t.
func (h HeartBeat) At(t float64) [motion.NumChambers]float64 {
	phase := 2 * math.Pi * t * h.RateBPM / 60
	var out [motion.NumChambers]float64
	for c := motion.LV; c < motion.NumChambers; c++ {
		p := phase
		if c == motion.LA || c == motion.RA {
			p += math.Pi
		}
		out[c] = h.MeanVolume[c] * (1 + h.Swing[c]*math.Cos(p))
	}
	return out
}

// Series samples all four chamber curves at the given times.
func (h HeartBeat) Series(times []float64) motion.ChamberVolumes {
	var cv motion.ChamberVolumes
	for c := motion.LV; c < motion.NumChambers; c++ {
		cv[c] = make([]float64, len(times))
	}
	for i, t := range times {
		v := h.At(t)
		for c := motion.LV; c < motion.NumChambers; c++ {
			cv[c][i] = v[c]
		}
	}
	return cv
}

// Times returns n frame times spread uniformly over the duration, starting
// at zero.
func Times(n int, duration float64) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	dt := duration / float64(n)
	for i := range out {
		out[i] = float64(i) * dt
	}
	return out
}
