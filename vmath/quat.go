package vmath

import "math"

// Quaternion is a rotation (x, y, z, w), w last per sensor SDK convention
type Quaternion struct {
	X, Y, Z, W float32
}

// QIdentity is the no-rotation quaternion
var QIdentity = Quaternion{0, 0, 0, 1}

func QMul(a, b Quaternion) Quaternion {
	return Quaternion{
		a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		a.W*b.Y + a.Y*b.W + a.Z*b.X - a.X*b.Z,
		a.W*b.Z + a.Z*b.W + a.X*b.Y - a.Y*b.X,
		a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
}

// QInverse assumes a unit quaternion
func QInverse(q Quaternion) Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, q.W}
}

// QFromAngleAxis builds a rotation of angle radians around a unit axis
func QFromAngleAxis(angle float32, axis Vec3) Quaternion {
	s, c := math.Sincos(float64(angle) * 0.5)
	sin := float32(s)
	return Quaternion{axis.X * sin, axis.Y * sin, axis.Z * sin, float32(c)}
}

// QRotate rotates vector v by quaternion q, equivalent to building the
// 3x3 rotation matrix and multiplying
func QRotate(q Quaternion, v Vec3) Vec3 {
	x := q.X * 2.0
	y := q.Y * 2.0
	z := q.Z * 2.0
	xx := q.X * x
	yy := q.Y * y
	zz := q.Z * z
	xy := q.X * y
	xz := q.X * z
	yz := q.Y * z
	wx := q.W * x
	wy := q.W * y
	wz := q.W * z

	var res Vec3
	res.X = (1.0-(yy+zz))*v.X + (xy-wz)*v.Y + (xz+wy)*v.Z
	res.Y = (xy+wz)*v.X + (1.0-(xx+zz))*v.Y + (yz-wx)*v.Z
	res.Z = (xz-wy)*v.X + (yz+wx)*v.Y + (1.0-(xx+yy))*v.Z
	return res
}

// QNormalize renormalizes after accumulated float drift
func QNormalize(q Quaternion) Quaternion {
	mag := Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if mag == 0 {
		return QIdentity
	}
	inv := 1.0 / mag
	return Quaternion{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}
