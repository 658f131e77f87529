package phantom

import (
	"fmt"
	"sync"

	"medphantom/pkg/geometry"
	"medphantom/pkg/motion"
	"medphantom/pkg/raster"
	"medphantom/pkg/signal"
)

// unitCM is the physical size of one normalized coordinate unit.
const unitCM = 15.0

// ReferenceLungVolume is the lung volume in liters used for the torso when
// no breathing signal is attached.
const ReferenceLungVolume = 2.7

// Options configures a torso render.
type Options struct {
	// Grid dimensions in voxels.
	NX, NY, NZ int
	// FOV is the field of view per axis in centimeters. 30 cm spans the
	// whole torso cross section.
	FOV [3]float64
	// Frames is the number of volumes to render; Duration is the time in
	// seconds they cover, starting at zero.
	Frames   int
	Duration float64
	Tissues  TissueIntensities
	// Breathing deforms the torso over time. Nil renders a static torso
	// held at ReferenceLungVolume unless RespiratoryLiters is set.
	Breathing *signal.Breathing
	// Heart animates the four chambers. Nil renders a resting heart at
	// its default mean volumes unless Cardiac is set.
	Heart *signal.HeartBeat
	// RespiratoryLiters drives breathing from measured per-frame lung
	// volumes instead of a generator. Length must equal Frames. Set at
	// most one of Breathing and RespiratoryLiters.
	RespiratoryLiters []float64
	// Cardiac drives the chambers from per-frame volume series in
	// milliliters, all four chambers together and each as long as the
	// respiratory samples. Set at most one of Heart and Cardiac.
	Cardiac motion.ChamberVolumes
}

func (o Options) hasCardiac() bool {
	for _, w := range o.Cardiac {
		if w != nil {
			return true
		}
	}
	return false
}

func (o Options) validate() error {
	if o.NX <= 0 || o.NY <= 0 || o.NZ <= 0 {
		return fmt.Errorf("grid %dx%dx%d must be positive in every dimension", o.NX, o.NY, o.NZ)
	}
	for i, f := range o.FOV {
		if f <= 0 {
			return fmt.Errorf("field of view %.2f cm on axis %d must be positive", f, i)
		}
	}
	if o.Frames < 1 {
		return fmt.Errorf("frame count %d must be at least 1", o.Frames)
	}
	if o.Frames > 1 && o.Duration <= 0 {
		return fmt.Errorf("duration %.3f s must be positive for a multi-frame render", o.Duration)
	}
	if o.Breathing != nil {
		if err := o.Breathing.Validate(); err != nil {
			return err
		}
	}
	if o.Heart != nil {
		if err := o.Heart.Validate(); err != nil {
			return err
		}
	}
	if o.Breathing != nil && o.RespiratoryLiters != nil {
		return fmt.Errorf("set either a breathing signal or per-frame lung volumes, not both")
	}
	if o.RespiratoryLiters != nil && len(o.RespiratoryLiters) != o.Frames {
		return fmt.Errorf("%d lung volume samples for %d frames", len(o.RespiratoryLiters), o.Frames)
	}
	if o.hasCardiac() {
		if o.Heart != nil {
			return fmt.Errorf("set either a heartbeat signal or per-frame chamber volumes, not both")
		}
		if err := o.Cardiac.Validate(); err != nil {
			return err
		}
		n := len(o.Cardiac[motion.LV])
		if o.RespiratoryLiters != nil && n != len(o.RespiratoryLiters) {
			return fmt.Errorf("%d chamber volume samples for %d lung volume samples", n, len(o.RespiratoryLiters))
		}
		if n != o.Frames {
			return fmt.Errorf("%d chamber volume samples for %d frames", n, o.Frames)
		}
	}
	return nil
}

// Renderer rasterizes a torso phantom over time. Frames are rendered into
// independent volumes, one goroutine each.
type Renderer struct {
	opts    Options
	x, y, z raster.Axis
	times   []float64
	resp    []motion.RespParams
	heart   *Heart
}

// NewRenderer validates the options, derives the per-frame motion
// parameters and calibrates the heart.
func NewRenderer(o Options) (*Renderer, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	r := &Renderer{
		opts:  o,
		x:     raster.CellCentered(o.NX, o.FOV[0]/unitCM),
		y:     raster.CellCentered(o.NY, o.FOV[1]/unitCM),
		z:     raster.CellCentered(o.NZ, o.FOV[2]/unitCM),
		times: signal.Times(o.Frames, o.Duration),
	}

	r.resp = make([]motion.RespParams, o.Frames)
	for i, t := range r.times {
		liters := ReferenceLungVolume
		switch {
		case o.RespiratoryLiters != nil:
			liters = o.RespiratoryLiters[i]
		case o.Breathing != nil:
			liters = o.Breathing.At(t)
		}
		p, err := motion.Respiratory(liters)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		r.resp[i] = p
	}

	beat := signal.DefaultHeartBeat()
	if o.Heart != nil {
		beat = *o.Heart
	}
	var cv motion.ChamberVolumes
	switch {
	case o.hasCardiac():
		cv = o.Cardiac
	case o.Heart != nil:
		cv = beat.Series(r.times)
	default:
		// A resting heart: constant chamber volumes, no wall motion.
		for c := motion.LV; c < motion.NumChambers; c++ {
			cv[c] = make([]float64, o.Frames)
			for i := range cv[c] {
				cv[c][i] = beat.MeanVolume[c]
			}
		}
	}
	cm, err := motion.NewCardiacMotion(cv)
	if err != nil {
		return nil, err
	}
	r.heart = NewHeart(cm)
	return r, nil
}

// Times returns the frame times of the render in seconds.
func (r *Renderer) Times() []float64 { return r.times }

// Elements returns the complete draw list for one frame, in paint order.
func (r *Renderer) Elements(frame int) ([]raster.Element, error) {
	if frame < 0 || frame >= r.opts.Frames {
		return nil, fmt.Errorf("frame %d out of range [0, %d)", frame, r.opts.Frames)
	}
	p := r.resp[frame]
	elems := Torso(p, r.opts.Tissues)
	elems = append(elems, r.heart.ShellElements(p.YOffset, r.opts.Tissues)...)
	elems = append(elems, r.heart.FrameElements(frame, p.YOffset, r.opts.Tissues)...)
	return elems, nil
}

// RenderFrame rasterizes a single frame into a fresh volume.
func (r *Renderer) RenderFrame(frame int) (*raster.Volume, error) {
	elems, err := r.Elements(frame)
	if err != nil {
		return nil, err
	}
	vol := raster.NewVolume(r.opts.NX, r.opts.NY, r.opts.NZ)
	for _, e := range elems {
		raster.Draw3D(vol, r.x, r.y, r.z, e)
	}
	return vol, nil
}

// Render rasterizes every frame. Without breathing the torso and the
// static heart shells are rendered once and cloned, so each frame only
// repaints the moving chamber walls and blood pools.
func (r *Renderer) Render() (*raster.Sequence, error) {
	seq := &raster.Sequence{
		Frames: make([]*raster.Volume, r.opts.Frames),
		Times:  r.times,
	}

	var template *raster.Volume
	if r.opts.Breathing == nil && r.opts.RespiratoryLiters == nil {
		p := r.resp[0]
		template = raster.NewVolume(r.opts.NX, r.opts.NY, r.opts.NZ)
		static := Torso(p, r.opts.Tissues)
		static = append(static, r.heart.ShellElements(p.YOffset, r.opts.Tissues)...)
		for _, e := range static {
			raster.Draw3D(template, r.x, r.y, r.z, e)
		}
	}

	var wg sync.WaitGroup
	for f := 0; f < r.opts.Frames; f++ {
		// Build the draw list before spawning so element errors surface
		// to the caller instead of dying inside the goroutine.
		var elems []raster.Element
		if template == nil {
			var err error
			elems, err = r.Elements(f)
			if err != nil {
				return nil, err
			}
		} else {
			p := r.resp[f]
			elems = r.heart.FrameElements(f, p.YOffset, r.opts.Tissues)
		}
		wg.Add(1)
		go func(f int, elems []raster.Element) {
			defer wg.Done()
			var vol *raster.Volume
			if template == nil {
				vol = raster.NewVolume(r.opts.NX, r.opts.NY, r.opts.NZ)
			} else {
				vol = template.Clone()
			}
			for _, e := range elems {
				raster.Draw3D(vol, r.x, r.y, r.z, e)
			}
			seq.Frames[f] = vol
		}(f, elems)
	}
	wg.Wait()
	return seq, nil
}

// RenderSlice rasterizes one 2D section of a frame directly, without
// building the volume. at is the slice position along the plane normal in
// centimeters from the isocenter. The result matches the same section of
// RenderFrame when at coincides with a voxel center.
func (r *Renderer) RenderSlice(p geometry.Plane, at float64, frame int) (*raster.Slice, error) {
	elems, err := r.Elements(frame)
	if err != nil {
		return nil, err
	}
	var u, v raster.Axis
	switch p {
	case geometry.Axial:
		u, v = r.x, r.y
	case geometry.Coronal:
		u, v = r.x, r.z
	case geometry.Sagittal:
		u, v = r.y, r.z
	default:
		return nil, fmt.Errorf("unknown plane %v", p)
	}
	sl := raster.NewSlice(u.N, v.N)
	for _, e := range elems {
		raster.Draw2D(sl, u, v, p, at/unitCM, e)
	}
	return sl, nil
}
