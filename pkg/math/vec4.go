package math

// Vec4 is a 4-component vector. Tangents use XYZ for the direction and W for
// the bitangent handedness (+1 or -1).
type Vec4 struct {
	X, Y, Z, W float32
}

// XYZ returns the first three components.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Vec4FromVec3 extends v with w.
func Vec4FromVec3(v Vec3, w float32) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}
