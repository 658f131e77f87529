package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medphantom/pkg/motion"
)

func TestBreathingProfile(t *testing.T) {
	b := DefaultBreathing()
	require.NoError(t, b.Validate())

	assert.InDelta(t, b.Baseline, b.At(0), 1e-12, "end-expiration at t=0")
	assert.InDelta(t, b.Baseline+b.Tidal, b.At(b.Period/2), 1e-12, "end-inspiration at half period")
	assert.InDelta(t, b.At(1.3), b.At(1.3+b.Period), 1e-9, "periodic")

	for _, v := range b.Series(Times(50, 2*b.Period)) {
		assert.GreaterOrEqual(t, v, motion.MinLungVolume)
		assert.LessOrEqual(t, v, motion.MaxLungVolume)
	}
}

func TestBreathingValidate(t *testing.T) {
	b := Breathing{Baseline: 1.0, Tidal: 1.0, Period: 5}
	assert.Error(t, b.Validate(), "baseline below residual volume")

	b = Breathing{Baseline: 2.0, Tidal: 4.5, Period: 5}
	assert.Error(t, b.Validate(), "peak above total lung capacity")

	b = Breathing{Baseline: 2.0, Tidal: 1.0, Period: 0}
	assert.Error(t, b.Validate())
}

func TestHeartBeatCounterPhase(t *testing.T) {
	h := DefaultHeartBeat()
	require.NoError(t, h.Validate())

	// At t=0 the ventricles are at end-diastole and the atria are empty.
	v := h.At(0)
	assert.InDelta(t, h.MeanVolume[motion.LV]*(1+h.Swing[motion.LV]), v[motion.LV], 1e-9)
	assert.InDelta(t, h.MeanVolume[motion.LA]*(1-h.Swing[motion.LA]), v[motion.LA], 1e-9)

	// Half a beat later the roles reverse.
	half := 30 / h.RateBPM
	v = h.At(half)
	assert.InDelta(t, h.MeanVolume[motion.LV]*(1-h.Swing[motion.LV]), v[motion.LV], 1e-9)
	assert.InDelta(t, h.MeanVolume[motion.LA]*(1+h.Swing[motion.LA]), v[motion.LA], 1e-9)
}

func TestHeartBeatSeriesMean(t *testing.T) {
	h := DefaultHeartBeat()
	// One full beat sampled uniformly averages to the commanded mean.
	times := Times(200, 60/h.RateBPM)
	cv := h.Series(times)
	require.NoError(t, cv.Validate())

	for c := motion.LV; c < motion.NumChambers; c++ {
		sum := 0.0
		for _, v := range cv[c] {
			sum += v
		}
		assert.InDelta(t, h.MeanVolume[c], sum/float64(len(times)), h.MeanVolume[c]*1e-6)
	}
}

func TestHeartBeatValidate(t *testing.T) {
	h := DefaultHeartBeat()
	h.Swing[motion.RV] = 0.5
	assert.Error(t, h.Validate(), "swing above the physical limit")

	h = DefaultHeartBeat()
	h.RateBPM = 0
	assert.Error(t, h.Validate())

	h = DefaultHeartBeat()
	h.MeanVolume[motion.RA] = 0
	assert.Error(t, h.Validate())
}

func TestTimes(t *testing.T) {
	ts := Times(4, 2)
	assert.Equal(t, []float64{0, 0.5, 1, 1.5}, ts)
	assert.Empty(t, Times(0, 2))
}
