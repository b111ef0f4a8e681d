package math

import "math"

// Euler holds rotation angles in radians about X, Y and Z. Rotations are
// applied X first, then Y, then Z about the fixed axes.
type Euler struct {
	X, Y, Z float64
}

// Quat converts the angles to a quaternion.
func (e Euler) Quat() Quat {
	ci, si := math.Cos(e.X/2), math.Sin(e.X/2)
	cj, sj := math.Cos(e.Y/2), math.Sin(e.Y/2)
	ch, sh := math.Cos(e.Z/2), math.Sin(e.Z/2)

	cc := ci * ch
	cs := ci * sh
	sc := si * ch
	ss := si * sh

	return Quat{
		X: cj*sc - sj*cs,
		Y: cj*ss + sj*cc,
		Z: cj*cs - sj*sc,
		W: cj*cc + sj*ss,
	}
}

// Euler converts q to XYZ angles. Of the two angle triples describing the
// same rotation, the one with the smaller total magnitude is returned.
func (q Quat) Euler() Euler {
	q = q.Normalize()

	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	xw, yw, zw := q.X*q.W, q.Y*q.W, q.Z*q.W

	// Row-major rotation matrix entries that the decomposition needs
	r00 := 1 - 2*(yy+zz)
	r10 := 2 * (xy + zw)
	r11 := 1 - 2*(xx+zz)
	r12 := 2 * (yz - xw)
	r20 := 2 * (xz - yw)
	r21 := 2 * (yz + xw)
	r22 := 1 - 2*(xx+yy)

	cy := math.Hypot(r00, r10)
	if cy <= 16*epsilon32 {
		return Euler{
			X: math.Atan2(-r12, r11),
			Y: math.Atan2(-r20, cy),
			Z: 0,
		}
	}

	e1 := Euler{
		X: math.Atan2(r21, r22),
		Y: math.Atan2(-r20, cy),
		Z: math.Atan2(r10, r00),
	}
	e2 := Euler{
		X: math.Atan2(-r21, -r22),
		Y: math.Atan2(-r20, -cy),
		Z: math.Atan2(-r10, -r00),
	}
	if e2.magnitude() < e1.magnitude() {
		return e2
	}
	return e1
}

func (e Euler) magnitude() float64 {
	return math.Abs(e.X) + math.Abs(e.Y) + math.Abs(e.Z)
}

// epsilon32 is the float32 machine epsilon, the gimbal-lock threshold scale.
const epsilon32 = 1.1920929e-07
