package abc

import "github.com/chewxy/math32"

// CameraSample holds physical camera values. Lengths follow the usual
// conventions: focal length in millimeters, apertures in centimeters and the
// focus distance in centimeters.
type CameraSample struct {
	FocalLength        float32
	HorizontalAperture float32
	VerticalAperture   float32
	NearClippingPlane  float32
	FarClippingPlane   float32
	FocusDistance      float32
}

// DefaultCameraSample returns a 35mm camera.
func DefaultCameraSample() CameraSample {
	return CameraSample{
		FocalLength:        35,
		HorizontalAperture: 3.6,
		VerticalAperture:   2.4,
		NearClippingPlane:  0.1,
		FarClippingPlane:   100000,
		FocusDistance:      5,
	}
}

// CameraParams are camera values converted for rendering.
type CameraParams struct {
	TargetAspect      float32
	NearClippingPlane float32
	FarClippingPlane  float32
	FieldOfView       float32 // Vertical, degrees
	FocusDistance     float32 // Sample focus distance scaled by 0.1
	FocalLength       float32 // Sample focal length (mm) scaled by 0.01
}

// Camera reads camera samples.
type Camera struct {
	src    Source[CameraSample]
	time   float64
	sample CameraSample
}

// NewCamera creates a camera reader. Until the first update it reports
// DefaultCameraSample.
func NewCamera(src Source[CameraSample]) *Camera {
	return &Camera{src: src, sample: DefaultCameraSample()}
}

// Schema wraps the reader in a Schema.
func (c *Camera) Schema() Schema {
	return Schema{Kind: KindCamera, Camera: c}
}

// UpdateSample reads the camera at t.
func (c *Camera) UpdateSample(t float64) error {
	s, err := fetch(c.src, KindCamera, t)
	if err != nil {
		return err
	}
	c.time = t
	c.sample = s
	return nil
}

// Sample returns the cached sample.
func (c *Camera) Sample() CameraSample {
	return c.sample
}

// Params converts the cached sample for a viewport of the given aspect ratio.
// A positive targetAspect derives the vertical aperture from the horizontal
// one; otherwise the sampled vertical aperture is used.
func (c *Camera) Params(targetAspect float32) CameraParams {
	s := c.sample
	vAperture := s.VerticalAperture
	if targetAspect > 0 {
		vAperture = s.HorizontalAperture / targetAspect
	}

	var fov float32
	if s.FocalLength > 0 {
		// Aperture is in cm, focal length in mm.
		fov = 2 * math32.Atan(vAperture*10/(2*s.FocalLength)) * 180 / math32.Pi
	}

	return CameraParams{
		TargetAspect:      targetAspect,
		NearClippingPlane: s.NearClippingPlane,
		FarClippingPlane:  s.FarClippingPlane,
		FieldOfView:       fov,
		// Fixed renderer scale factors. The results are not meters.
		FocusDistance:     s.FocusDistance * 0.1,
		FocalLength:       s.FocalLength * 0.01,
	}
}
