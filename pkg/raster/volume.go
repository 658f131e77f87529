package raster

import (
	"fmt"

	"medphantom/pkg/geometry"
)

// Volume is a dense 3D scalar field stored as a flat slice indexed
// (k*NY + j)*NX + i for voxel (i, j, k).
type Volume struct {
	NX, NY, NZ int
	Data       []float64
}

// NewVolume allocates a zeroed volume.
func NewVolume(nx, ny, nz int) *Volume {
	return &Volume{NX: nx, NY: ny, NZ: nz, Data: make([]float64, nx*ny*nz)}
}

// Index returns the flat offset of voxel (i, j, k).
func (v *Volume) Index(i, j, k int) int {
	return (k*v.NY+j)*v.NX + i
}

// At returns the value of voxel (i, j, k).
func (v *Volume) At(i, j, k int) float64 {
	return v.Data[v.Index(i, j, k)]
}

// Clone returns a deep copy, used to seed moving frames from a static
// background render.
func (v *Volume) Clone() *Volume {
	out := &Volume{NX: v.NX, NY: v.NY, NZ: v.NZ, Data: make([]float64, len(v.Data))}
	copy(out.Data, v.Data)
	return out
}

// Count returns the number of voxels whose value equals exactly the given
// value. Tissue intensities are written verbatim, so exact comparison
// identifies a tissue painted with masking writes.
func (v *Volume) Count(value float64) int {
	n := 0
	for _, x := range v.Data {
		if x == value {
			n++
		}
	}
	return n
}

// Threshold returns a boolean occupancy view: true where the voxel value
// is at or above the cutoff.
func (v *Volume) Threshold(cutoff float64) []bool {
	out := make([]bool, len(v.Data))
	for i, x := range v.Data {
		out[i] = x >= cutoff
	}
	return out
}

// SliceAt extracts the 2D section of the volume at the given index along
// the plane normal. The slice keeps the plane's (column, row) ordering:
// axial (x, y), coronal (x, z), sagittal (y, z).
func (v *Volume) SliceAt(p geometry.Plane, index int) (*Slice, error) {
	switch p {
	case geometry.Axial:
		if index < 0 || index >= v.NZ {
			return nil, fmt.Errorf("axial index %d out of range [0, %d)", index, v.NZ)
		}
		s := NewSlice(v.NX, v.NY)
		for j := 0; j < v.NY; j++ {
			for i := 0; i < v.NX; i++ {
				s.Data[j*v.NX+i] = v.At(i, j, index)
			}
		}
		return s, nil
	case geometry.Coronal:
		if index < 0 || index >= v.NY {
			return nil, fmt.Errorf("coronal index %d out of range [0, %d)", index, v.NY)
		}
		s := NewSlice(v.NX, v.NZ)
		for k := 0; k < v.NZ; k++ {
			for i := 0; i < v.NX; i++ {
				s.Data[k*v.NX+i] = v.At(i, index, k)
			}
		}
		return s, nil
	case geometry.Sagittal:
		if index < 0 || index >= v.NX {
			return nil, fmt.Errorf("sagittal index %d out of range [0, %d)", index, v.NX)
		}
		s := NewSlice(v.NY, v.NZ)
		for k := 0; k < v.NZ; k++ {
			for j := 0; j < v.NY; j++ {
				s.Data[k*v.NY+j] = v.At(index, j, k)
			}
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown plane %v", p)
}

// Slice is a dense 2D scalar field stored row-major: voxel (u, v) lives at
// v*NU + u.
type Slice struct {
	NU, NV int
	Data   []float64
}

// NewSlice allocates a zeroed slice.
func NewSlice(nu, nv int) *Slice {
	return &Slice{NU: nu, NV: nv, Data: make([]float64, nu*nv)}
}

// At returns the value of pixel (u, v).
func (s *Slice) At(u, v int) float64 {
	return s.Data[v*s.NU+u]
}

// Sequence is a time series of volumes rendered at fixed frame times.
type Sequence struct {
	Frames []*Volume
	Times  []float64
}
