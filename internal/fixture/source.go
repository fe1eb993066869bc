package fixture

import (
	"slices"
	"sort"

	"github.com/chewxy/math32"

	"github.com/Faultbox/abcmesh/pkg/abc"
	"github.com/Faultbox/abcmesh/pkg/math"
	"github.com/Faultbox/abcmesh/pkg/polymesh"
)

// frames is a time-ordered list of decoded samples.
type frames[T any] struct {
	times   []float64
	samples []T
}

// at returns the sample with the greatest time not after t, or the first one.
func (f *frames[T]) at(t float64) T {
	i := sort.Search(len(f.times), func(i int) bool { return f.times[i] > t }) - 1
	return f.samples[max(i, 0)]
}

// MeshSource serves mesh frames. Each attribute carries a version stamp that
// only moves when the attribute differs from the previous frame.
type MeshSource struct {
	frames[*polymesh.Sample]
}

var _ abc.Source[*polymesh.Sample] = (*MeshSource)(nil)

// MeshSource decodes the mesh frames.
func (f *File) MeshSource() (*MeshSource, error) {
	if len(f.Mesh) == 0 {
		return nil, ErrNoFrames
	}

	src := &MeshSource{}
	var prev *polymesh.Sample
	for _, fr := range f.Mesh {
		s := &polymesh.Sample{
			Time:       fr.Time,
			Counts:     fr.Counts,
			Indices:    fr.Indices,
			Positions:  vec3s(fr.Positions),
			Velocities: vec3s(fr.Velocities),
		}
		if fr.Normals != nil {
			s.Normals = &polymesh.Vec3Param{Values: vec3s(fr.Normals.Values), Indices: fr.Normals.Indices}
		}
		if fr.UVs != nil {
			s.UVs = &polymesh.Vec2Param{Values: vec2s(fr.UVs.Values), Indices: fr.UVs.Indices}
		}
		s.Version = nextVersion(prev, s)

		src.times = append(src.times, fr.Time)
		src.samples = append(src.samples, s)
		prev = s
	}
	return src, nil
}

// Sample returns the mesh frame for t. The returned sample is shared and must
// not be modified.
func (s *MeshSource) Sample(t float64) (*polymesh.Sample, error) {
	return s.at(t), nil
}

// nextVersion stamps s relative to the previous frame.
func nextVersion(prev, s *polymesh.Sample) polymesh.SampleVersion {
	if prev == nil {
		return polymesh.SampleVersion{Topology: 1, Positions: 1, Normals: 1, UVs: 1, Velocities: 1}
	}
	v := prev.Version
	if !slices.Equal(prev.Counts, s.Counts) || !slices.Equal(prev.Indices, s.Indices) {
		v.Topology++
	}
	if !slices.Equal(prev.Positions, s.Positions) {
		v.Positions++
	}
	if !paramEqual(prev.Normals, s.Normals) {
		v.Normals++
	}
	if !paramEqual(prev.UVs, s.UVs) {
		v.UVs++
	}
	if !slices.Equal(prev.Velocities, s.Velocities) {
		v.Velocities++
	}
	return v
}

func paramEqual[T comparable](a, b *polymesh.Param[T]) bool {
	if a == nil || b == nil {
		return a == b
	}
	return slices.Equal(a.Values, b.Values) && slices.Equal(a.Indices, b.Indices)
}

// XFormSource serves transform frames.
type XFormSource struct {
	frames[abc.XFormSample]
}

var _ abc.Source[abc.XFormSample] = (*XFormSource)(nil)

// XFormSource decodes the transform frames.
func (f *File) XFormSource() (*XFormSource, error) {
	if len(f.XForm) == 0 {
		return nil, ErrNoFrames
	}
	src := &XFormSource{}
	for _, fr := range f.XForm {
		src.times = append(src.times, fr.Time)
		src.samples = append(src.samples, fr.sample())
	}
	return src, nil
}

// Sample returns the transform frame for t.
func (s *XFormSource) Sample(t float64) (abc.XFormSample, error) {
	return s.at(t), nil
}

func (x XFormFrame) sample() abc.XFormSample {
	s := abc.XFormSample{Inherits: true, Matrix: math.Identity()}
	if x.Inherits != nil {
		s.Inherits = *x.Inherits
	}
	if x.Matrix != nil {
		copy(s.Matrix[:], x.Matrix)
		return s
	}
	if x.Translate != nil {
		s.Matrix = math.Translate(x.Translate[0], x.Translate[1], x.Translate[2])
	}
	if x.Rotate != nil {
		axis := vec3(x.Rotate.Axis).Normalize()
		s.Matrix = s.Matrix.Mul(math.QuatFromAxisAngle(axis, x.Rotate.Degrees*math32.Pi/180).ToMat4())
	}
	if x.Scale != nil {
		s.Matrix = s.Matrix.Mul(math.Scale(x.Scale[0], x.Scale[1], x.Scale[2]))
	}
	return s
}

// CameraSource serves camera frames.
type CameraSource struct {
	frames[abc.CameraSample]
}

var _ abc.Source[abc.CameraSample] = (*CameraSource)(nil)

// CameraSource decodes the camera frames.
func (f *File) CameraSource() (*CameraSource, error) {
	if len(f.Camera) == 0 {
		return nil, ErrNoFrames
	}
	src := &CameraSource{}
	for _, fr := range f.Camera {
		src.times = append(src.times, fr.Time)
		src.samples = append(src.samples, abc.CameraSample{
			FocalLength:        fr.FocalLength,
			HorizontalAperture: fr.HorizontalAperture,
			VerticalAperture:   fr.VerticalAperture,
			NearClippingPlane:  fr.NearClippingPlane,
			FarClippingPlane:   fr.FarClippingPlane,
			FocusDistance:      fr.FocusDistance,
		})
	}
	return src, nil
}

// Sample returns the camera frame for t.
func (s *CameraSource) Sample(t float64) (abc.CameraSample, error) {
	return s.at(t), nil
}

func vec3(v Vec3) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func vec3s(in []Vec3) []math.Vec3 {
	if in == nil {
		return nil
	}
	out := make([]math.Vec3, len(in))
	for i, v := range in {
		out[i] = vec3(v)
	}
	return out
}

func vec2s(in []Vec2) []math.Vec2 {
	if in == nil {
		return nil
	}
	out := make([]math.Vec2, len(in))
	for i, v := range in {
		out[i] = math.Vec2{X: v[0], Y: v[1]}
	}
	return out
}
