package geometry

import "math"

// Ellipsoid is an axis-aligned ellipsoid with center (CX, CY, CZ) and
// semi-axes (RX, RY, RZ).
type Ellipsoid struct {
	CX, CY, CZ float64
	RX, RY, RZ float64
}

func (e Ellipsoid) Contains(x, y, z float64) bool {
	dx := (x - e.CX) / e.RX
	dy := (y - e.CY) / e.RY
	dz := (z - e.CZ) / e.RZ
	return dx*dx+dy*dy+dz*dz <= 1
}

func (e Ellipsoid) Bounds() (center, radii [3]float64) {
	return [3]float64{e.CX, e.CY, e.CZ}, [3]float64{e.RX, e.RY, e.RZ}
}

func (e Ellipsoid) View(p Plane) Shape {
	cx, cy, cz := permute(p, e.CX, e.CY, e.CZ)
	rx, ry, rz := permute(p, e.RX, e.RY, e.RZ)
	return Ellipsoid{cx, cy, cz, rx, ry, rz}
}

// SuperEllipsoid generalizes the ellipsoid with a per-axis exponent. An
// exponent of 2 on every axis is an ordinary ellipsoid; larger exponents
// flatten the surface toward a rounded box. Exponents must be positive.
type SuperEllipsoid struct {
	CX, CY, CZ float64
	RX, RY, RZ float64
	EX, EY, EZ float64
}

func (s SuperEllipsoid) Contains(x, y, z float64) bool {
	dx := math.Abs((x - s.CX) / s.RX)
	dy := math.Abs((y - s.CY) / s.RY)
	dz := math.Abs((z - s.CZ) / s.RZ)
	return math.Pow(dx, s.EX)+math.Pow(dy, s.EY)+math.Pow(dz, s.EZ) <= 1
}

func (s SuperEllipsoid) Bounds() (center, radii [3]float64) {
	return [3]float64{s.CX, s.CY, s.CZ}, [3]float64{s.RX, s.RY, s.RZ}
}

func (s SuperEllipsoid) View(p Plane) Shape {
	cx, cy, cz := permute(p, s.CX, s.CY, s.CZ)
	rx, ry, rz := permute(p, s.RX, s.RY, s.RZ)
	ex, ey, ez := permute(p, s.EX, s.EY, s.EZ)
	return SuperEllipsoid{cx, cy, cz, rx, ry, rz, ex, ey, ez}
}

// Cylinder is a finite circular cylinder aligned with one coordinate axis.
// R is the radius in the plane perpendicular to the axis and H is the full
// length along it.
type Cylinder struct {
	CX, CY, CZ float64
	R, H       float64
	Axis       Axis
}

// NewCylinderX returns a cylinder whose axis runs along x.
func NewCylinderX(cx, cy, cz, r, h float64) Cylinder {
	return Cylinder{cx, cy, cz, r, h, XAxis}
}

// NewCylinderY returns a cylinder whose axis runs along y.
func NewCylinderY(cx, cy, cz, r, h float64) Cylinder {
	return Cylinder{cx, cy, cz, r, h, YAxis}
}

// NewCylinderZ returns a cylinder whose axis runs along z.
func NewCylinderZ(cx, cy, cz, r, h float64) Cylinder {
	return Cylinder{cx, cy, cz, r, h, ZAxis}
}

func (c Cylinder) Contains(x, y, z float64) bool {
	dx := x - c.CX
	dy := y - c.CY
	dz := z - c.CZ
	var axial, p, q float64
	switch c.Axis {
	case XAxis:
		axial, p, q = dx, dy, dz
	case YAxis:
		axial, p, q = dy, dx, dz
	default:
		axial, p, q = dz, dx, dy
	}
	if math.Abs(axial) > c.H/2 {
		return false
	}
	p /= c.R
	q /= c.R
	return p*p+q*q <= 1
}

func (c Cylinder) Bounds() (center, radii [3]float64) {
	r := [3]float64{c.R, c.R, c.R}
	r[c.Axis] = c.H / 2
	return [3]float64{c.CX, c.CY, c.CZ}, r
}

func (c Cylinder) View(p Plane) Shape {
	cx, cy, cz := permute(p, c.CX, c.CY, c.CZ)
	return Cylinder{cx, cy, cz, c.R, c.H, axisUnder(p, c.Axis)}
}
