package abc

import "github.com/Faultbox/abcmesh/pkg/math"

// XFormSample is a transform at one time.
type XFormSample struct {
	Inherits bool // Whether the parent transform applies
	Matrix   math.Mat4
}

// XForm reads transform samples and caches their decomposition.
type XForm struct {
	src    Source[XFormSample]
	time   float64
	sample XFormSample

	position math.Vec3
	rotation math.Quat
	scale    math.Vec3
}

// NewXForm creates a transform reader. Until the first update it reports an
// inheriting identity transform.
func NewXForm(src Source[XFormSample]) *XForm {
	return &XForm{
		src:      src,
		sample:   XFormSample{Inherits: true, Matrix: math.Identity()},
		rotation: math.QuatIdentity(),
		scale:    math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// Schema wraps the reader in a Schema.
func (x *XForm) Schema() Schema {
	return Schema{Kind: KindXForm, XForm: x}
}

// UpdateSample reads the transform at t.
func (x *XForm) UpdateSample(t float64) error {
	s, err := fetch(x.src, KindXForm, t)
	if err != nil {
		return err
	}
	x.time = t
	x.sample = s
	x.position, x.rotation, x.scale = s.Matrix.Decompose()
	return nil
}

// Inherits reports whether the parent transform applies.
func (x *XForm) Inherits() bool { return x.sample.Inherits }

// Position returns the translation.
func (x *XForm) Position() math.Vec3 { return x.position }

// Rotation returns the rotation as a quaternion.
func (x *XForm) Rotation() math.Quat { return x.rotation }

// Axis returns the rotation axis.
func (x *XForm) Axis() math.Vec3 {
	axis, _ := x.rotation.AxisAngle()
	return axis
}

// Angle returns the rotation angle in radians.
func (x *XForm) Angle() float32 {
	_, angle := x.rotation.AxisAngle()
	return angle
}

// Scale returns the scale. A mirrored transform has a negative X scale.
func (x *XForm) Scale() math.Vec3 { return x.scale }

// Matrix returns the local matrix.
func (x *XForm) Matrix() math.Mat4 { return x.sample.Matrix }
