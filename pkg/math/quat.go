package math

import "github.com/chewxy/math32"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	halfAngle := angle / 2
	s := math32.Sin(halfAngle)
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math32.Cos(halfAngle),
	}
}

// QuatFromMat4 extracts the rotation of a pure rotation matrix.
// Scale must be removed from m beforehand.
func QuatFromMat4(m Mat4) Quat {
	// r(row, col) in column-major storage.
	r := func(row, col int) float32 { return m[col*4+row] }

	trace := r(0, 0) + r(1, 1) + r(2, 2)
	var q Quat
	switch {
	case trace > 0:
		s := 0.5 / math32.Sqrt(trace+1)
		q = Quat{
			X: (r(2, 1) - r(1, 2)) * s,
			Y: (r(0, 2) - r(2, 0)) * s,
			Z: (r(1, 0) - r(0, 1)) * s,
			W: 0.25 / s,
		}
	case r(0, 0) > r(1, 1) && r(0, 0) > r(2, 2):
		s := 2 * math32.Sqrt(1+r(0, 0)-r(1, 1)-r(2, 2))
		q = Quat{
			X: 0.25 * s,
			Y: (r(0, 1) + r(1, 0)) / s,
			Z: (r(0, 2) + r(2, 0)) / s,
			W: (r(2, 1) - r(1, 2)) / s,
		}
	case r(1, 1) > r(2, 2):
		s := 2 * math32.Sqrt(1+r(1, 1)-r(0, 0)-r(2, 2))
		q = Quat{
			X: (r(0, 1) + r(1, 0)) / s,
			Y: 0.25 * s,
			Z: (r(1, 2) + r(2, 1)) / s,
			W: (r(0, 2) - r(2, 0)) / s,
		}
	default:
		s := 2 * math32.Sqrt(1+r(2, 2)-r(0, 0)-r(1, 1))
		q = Quat{
			X: (r(0, 2) + r(2, 0)) / s,
			Y: (r(1, 2) + r(2, 1)) / s,
			Z: 0.25 * s,
			W: (r(1, 0) - r(0, 1)) / s,
		}
	}
	return q.Normalize()
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// AxisAngle returns the rotation as a unit axis and an angle in [0, pi].
// The identity rotation reports the X axis with a zero angle.
func (q Quat) AxisAngle() (Vec3, float32) {
	q = q.Normalize()
	if q.W < 0 {
		q = Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: -q.W}
	}
	w := q.W
	if w > 1 {
		w = 1
	}
	angle := 2 * math32.Acos(w)
	s := math32.Sqrt(1 - w*w)
	if s < 1e-6 {
		return Vec3{1, 0, 0}, angle
	}
	return Vec3{q.X / s, q.Y / s, q.Z / s}, angle
}

// ToMat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) ToMat4() Mat4 {
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw), 0,
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw), 0,
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies two quaternions (combines rotations).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}
