// Package phantom assembles complete digital phantoms from geometric
// primitives: the classic Shepp-Logan head, a breathing torso with a
// four-chamber beating heart, and a rod phantom for geometric checks. The
// torso and heart are built from tuned shape tables so that the rasterized
// lung and chamber volumes track the commanded physiological waveforms.
package phantom

import "fmt"

// TissueIntensities assigns a voxel value to every tissue the torso
// phantom paints. The four chamber blood pools are separate channels so a
// rendering can give each its own contrast.
type TissueIntensities struct {
	Body         float64
	Lung         float64
	Liver        float64
	Stomach      float64
	Bones        float64
	Heart        float64
	VesselsBlood float64
	LVBlood      float64
	RVBlood      float64
	LABlood      float64
	RABlood      float64
}

// DefaultTissues approximates the relative signal of a T1-weighted
// acquisition.
func DefaultTissues() TissueIntensities {
	return TissueIntensities{
		Body:         0.55,
		Lung:         0.12,
		Liver:        0.58,
		Stomach:      0.35,
		Bones:        0.25,
		Heart:        0.45,
		VesselsBlood: 0.85,
		LVBlood:      0.85,
		RVBlood:      0.83,
		LABlood:      0.84,
		RABlood:      0.82,
	}
}

// MaskTissues labels every tissue with its own integer, so counting voxels
// at a label measures that tissue's volume directly.
func MaskTissues() TissueIntensities {
	return TissueIntensities{
		Body:         1,
		Lung:         2,
		Liver:        3,
		Stomach:      4,
		Bones:        5,
		Heart:        6,
		VesselsBlood: 7,
		LVBlood:      8,
		RVBlood:      9,
		LABlood:      10,
		RABlood:      11,
	}
}

// MaskFor returns a table that renders only the named channel as 1 and
// every other tissue as 0. Because the torso is composed entirely of
// masking writes, the rendered volume is restricted to {0, 1} and a voxel
// is 1 exactly where the requested tissue is the last structure drawn.
func MaskFor(channel string) (TissueIntensities, error) {
	var t TissueIntensities
	switch channel {
	case "body":
		t.Body = 1
	case "lung":
		t.Lung = 1
	case "liver":
		t.Liver = 1
	case "stomach":
		t.Stomach = 1
	case "bones":
		t.Bones = 1
	case "heart":
		t.Heart = 1
	case "vessels_blood":
		t.VesselsBlood = 1
	case "lv_blood":
		t.LVBlood = 1
	case "rv_blood":
		t.RVBlood = 1
	case "la_blood":
		t.LABlood = 1
	case "ra_blood":
		t.RABlood = 1
	default:
		return t, fmt.Errorf("unknown tissue channel: %q", channel)
	}
	return t, nil
}
