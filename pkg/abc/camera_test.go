package abc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamera_Params(t *testing.T) {
	c := NewCamera(Constant(CameraSample{
		FocalLength:        35,
		HorizontalAperture: 3.6,
		VerticalAperture:   2.4,
		NearClippingPlane:  0.5,
		FarClippingPlane:   500,
		FocusDistance:      120,
	}))
	require.NoError(t, c.UpdateSample(0))

	p := c.Params(0)
	assert.InDelta(t, 37.849, p.FieldOfView, 0.01)
	assert.InDelta(t, 12, p.FocusDistance, 1e-5)
	assert.InDelta(t, 0.35, p.FocalLength, 1e-6)
	assert.Equal(t, float32(0.5), p.NearClippingPlane)
	assert.Equal(t, float32(500), p.FarClippingPlane)

	// 3.6 / 1.5 gives the same 2.4 vertical aperture.
	p = c.Params(1.5)
	assert.InDelta(t, 37.849, p.FieldOfView, 0.01)
	assert.Equal(t, float32(1.5), p.TargetAspect)

	p = c.Params(3.6)
	assert.InDelta(t, 16.26, p.FieldOfView, 0.01)
}

func TestCamera_ZeroFocalLength(t *testing.T) {
	c := NewCamera(Constant(CameraSample{VerticalAperture: 2.4}))
	require.NoError(t, c.UpdateSample(0))
	assert.Equal(t, float32(0), c.Params(0).FieldOfView)
}

func TestCamera_Default(t *testing.T) {
	c := NewCamera(nil)
	assert.Equal(t, DefaultCameraSample(), c.Sample())
	assert.ErrorIs(t, c.UpdateSample(1), ErrNoSource)
	assert.Equal(t, DefaultCameraSample(), c.Sample())
}
