// Package visualization exports rendered phantom volumes as grayscale
// image files for visual inspection.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"

	"medphantom/pkg/geometry"
	"medphantom/pkg/raster"
)

// Viewer turns cross sections of a rendered volume into grayscale images
type Viewer struct {
	vol *raster.Volume

	// scale maps voxel intensity onto the full Gray16 range. Computed
	// from the volume maximum so both T1-like and label volumes display.
	scale float64
}

// NewViewer creates a viewer for the given volume
func NewViewer(vol *raster.Volume) *Viewer {
	max := 0.0
	for _, val := range vol.Data {
		if val > max {
			max = val
		}
	}

	scale := 0.0
	if max > 0 {
		scale = 65535 / max
	}

	return &Viewer{vol: vol, scale: scale}
}

// SliceCount returns the number of cross sections the volume has along
// the normal of the given plane
func (v *Viewer) SliceCount(p geometry.Plane) int {
	switch p {
	case geometry.Coronal:
		return v.vol.NY
	case geometry.Sagittal:
		return v.vol.NX
	default:
		return v.vol.NZ
	}
}

// SliceImage renders one cross section as a 16-bit grayscale image
func (v *Viewer) SliceImage(p geometry.Plane, index int) (image.Image, error) {
	slice, err := v.vol.SliceAt(p, index)
	if err != nil {
		return nil, err
	}

	img := image.NewGray16(image.Rect(0, 0, slice.NU, slice.NV))
	for j := 0; j < slice.NV; j++ {
		for i := 0; i < slice.NU; i++ {
			value := uint16(math.Max(0, math.Min(65535, slice.At(i, j)*v.scale)))
			img.SetGray16(i, j, color.Gray16{Y: value})
		}
	}

	return img, nil
}

// SaveSlice saves an extracted slice as a JPEG image
func (v *Viewer) SaveSlice(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
}

// SaveSliceSequence extracts and saves every cross section along the
// given plane into outputDir
func (v *Viewer) SaveSliceSequence(p geometry.Plane, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	for pos := 0; pos < v.SliceCount(p); pos++ {
		img, err := v.SliceImage(p, pos)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("slice_%s_%03d.jpg", p, pos))
		if err := v.SaveSlice(img, filename); err != nil {
			return err
		}
	}

	return nil
}

// SaveCine saves the same cross section of every frame in the sequence,
// producing a through-time image series at a fixed anatomical position
func SaveCine(seq *raster.Sequence, p geometry.Plane, index int, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	// One scale across all frames keeps the cine brightness steady.
	max := 0.0
	for _, vol := range seq.Frames {
		for _, val := range vol.Data {
			if val > max {
				max = val
			}
		}
	}
	scale := 0.0
	if max > 0 {
		scale = 65535 / max
	}

	for f, vol := range seq.Frames {
		viewer := &Viewer{vol: vol, scale: scale}
		img, err := viewer.SliceImage(p, index)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("cine_%s_%03d_frame_%03d.jpg", p, index, f))
		if err := viewer.SaveSlice(img, filename); err != nil {
			return err
		}
	}

	return nil
}
