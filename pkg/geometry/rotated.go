package geometry

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// RotationZYX builds the rotation matrix Rz(phi) * Ry(theta) * Rx(psi).
// Angles are in radians. The matrix maps body coordinates to world
// coordinates.
func RotationZYX(phi, theta, psi float64) *mat.Dense {
	cp, sp := math.Cos(phi), math.Sin(phi)
	ct, st := math.Cos(theta), math.Sin(theta)
	cs, ss := math.Cos(psi), math.Sin(psi)

	rz := mat.NewDense(3, 3, []float64{
		cp, -sp, 0,
		sp, cp, 0,
		0, 0, 1,
	})
	ry := mat.NewDense(3, 3, []float64{
		ct, 0, st,
		0, 1, 0,
		-st, 0, ct,
	})
	rx := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, cs, -ss,
		0, ss, cs,
	})

	var zy, zyx mat.Dense
	zy.Mul(rz, ry)
	zyx.Mul(&zy, rx)
	return &zyx
}

// RotatedEllipsoid is an ellipsoid rotated about its center by the Z-Y-X
// Euler angles (phi, theta, psi). Construct it with NewRotatedEllipsoid.
type RotatedEllipsoid struct {
	cx, cy, cz float64
	rx, ry, rz float64
	// m maps body coordinates to world coordinates. It is orthogonal, so
	// its transpose maps back.
	m [3][3]float64
}

// NewRotatedEllipsoid returns an ellipsoid with center (cx, cy, cz) and
// semi-axes (rx, ry, rz) rotated by Rz(phi)*Ry(theta)*Rx(psi). Angles are
// in radians.
func NewRotatedEllipsoid(cx, cy, cz, rx, ry, rz, phi, theta, psi float64) RotatedEllipsoid {
	r := RotationZYX(phi, theta, psi)
	var m [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = r.At(i, j)
		}
	}
	return RotatedEllipsoid{cx, cy, cz, rx, ry, rz, m}
}

func (e RotatedEllipsoid) Contains(x, y, z float64) bool {
	wx := x - e.cx
	wy := y - e.cy
	wz := z - e.cz
	// Body coordinates are m transposed times the world offset.
	bx := e.m[0][0]*wx + e.m[1][0]*wy + e.m[2][0]*wz
	by := e.m[0][1]*wx + e.m[1][1]*wy + e.m[2][1]*wz
	bz := e.m[0][2]*wx + e.m[1][2]*wy + e.m[2][2]*wz
	bx /= e.rx
	by /= e.ry
	bz /= e.rz
	return bx*bx+by*by+bz*bz <= 1
}

func (e RotatedEllipsoid) Bounds() (center, radii [3]float64) {
	var r [3]float64
	for i := 0; i < 3; i++ {
		x := e.m[i][0] * e.rx
		y := e.m[i][1] * e.ry
		z := e.m[i][2] * e.rz
		r[i] = math.Sqrt(x*x + y*y + z*z)
	}
	return [3]float64{e.cx, e.cy, e.cz}, r
}

func (e RotatedEllipsoid) View(p Plane) Shape {
	cx, cy, cz := permute(p, e.cx, e.cy, e.cz)
	out := e
	out.cx, out.cy, out.cz = cx, cy, cz
	// Permuting the world coordinates permutes the rows of the body-to-
	// world matrix the same way.
	switch p {
	case Coronal:
		out.m[1], out.m[2] = e.m[2], e.m[1]
	case Sagittal:
		out.m[0], out.m[1], out.m[2] = e.m[1], e.m[2], e.m[0]
	}
	return out
}
