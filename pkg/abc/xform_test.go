package abc

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/abcmesh/pkg/math"
)

func TestXForm_Decompose(t *testing.T) {
	axis := math.Vec3{X: 1, Y: 2, Z: 2}.Normalize()
	angle := float32(stdmath.Pi / 3)
	m := math.Translate(1, -2, 3).
		Mul(math.QuatFromAxisAngle(axis, angle).ToMat4()).
		Mul(math.Scale(2, 3, 4))

	x := NewXForm(Constant(XFormSample{Inherits: false, Matrix: m}))
	require.NoError(t, x.UpdateSample(1))

	assert.False(t, x.Inherits())
	assert.Equal(t, m, x.Matrix())
	assert.True(t, math.Vec3{X: 1, Y: -2, Z: 3}.ApproxEqual(x.Position(), 1e-5), "position %v", x.Position())
	assert.True(t, math.Vec3{X: 2, Y: 3, Z: 4}.ApproxEqual(x.Scale(), 1e-4), "scale %v", x.Scale())
	assert.True(t, axis.ApproxEqual(x.Axis(), 1e-4), "axis %v", x.Axis())
	assert.InDelta(t, angle, x.Angle(), 1e-4)
}

func TestXForm_Defaults(t *testing.T) {
	x := NewXForm(nil)
	assert.True(t, x.Inherits())
	assert.Equal(t, math.Identity(), x.Matrix())
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 1}, x.Scale())
	assert.Equal(t, float32(0), x.Angle())

	err := x.UpdateSample(0)
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestXForm_KeepsSampleOnError(t *testing.T) {
	var fail bool
	src := SourceFunc[XFormSample](func(t float64) (XFormSample, error) {
		if fail {
			return XFormSample{}, assert.AnError
		}
		return XFormSample{Inherits: true, Matrix: math.Translate(float32(t), 0, 0)}, nil
	})
	x := NewXForm(src)
	require.NoError(t, x.UpdateSample(2))

	fail = true
	err := x.UpdateSample(3)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, math.Vec3{X: 2}, x.Position())
}
