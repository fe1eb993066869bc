// Package fixture loads animated scenes from YAML files and serves their
// frames as schema sample sources.
//
// A fixture holds a list of frames per schema. Querying a time returns the
// frame with the greatest time not after it, or the first frame when the time
// precedes all frames. No interpolation is done.
package fixture

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/abcmesh/pkg/abc"
	"github.com/Faultbox/abcmesh/pkg/polymesh"
)

var (
	ErrNoFrames     = errors.New("fixture has no frames")
	ErrInvalidFrame = errors.New("invalid fixture frame")
)

// Vec2 is a YAML-friendly two-component vector.
type Vec2 [2]float32

// Vec3 is a YAML-friendly three-component vector.
type Vec3 [3]float32

// Vec2Param is an optional, possibly indexed, 2D attribute.
type Vec2Param struct {
	Values  []Vec2   `yaml:"values"`
	Indices []uint32 `yaml:"indices,omitempty"`
}

// Vec3Param is an optional, possibly indexed, 3D attribute.
type Vec3Param struct {
	Values  []Vec3   `yaml:"values"`
	Indices []uint32 `yaml:"indices,omitempty"`
}

// MeshFrame is a polygon mesh at one time.
type MeshFrame struct {
	Time       float64    `yaml:"time"`
	Counts     []uint32   `yaml:"counts"`
	Indices    []uint32   `yaml:"indices"`
	Positions  []Vec3     `yaml:"positions"`
	Normals    *Vec3Param `yaml:"normals,omitempty"`
	UVs        *Vec2Param `yaml:"uvs,omitempty"`
	Velocities []Vec3     `yaml:"velocities,omitempty"`
}

// Rotation is an axis and an angle in degrees.
type Rotation struct {
	Axis    Vec3    `yaml:"axis"`
	Degrees float32 `yaml:"degrees"`
}

// XFormFrame is a transform at one time, given either as a column-major
// matrix or as translate, rotate and scale applied in TRS order.
type XFormFrame struct {
	Time      float64   `yaml:"time"`
	Inherits  *bool     `yaml:"inherits,omitempty"` // Defaults to true
	Matrix    []float32 `yaml:"matrix,omitempty"`
	Translate *Vec3     `yaml:"translate,omitempty"`
	Rotate    *Rotation `yaml:"rotate,omitempty"`
	Scale     *Vec3     `yaml:"scale,omitempty"`
}

// CameraFrame is a camera at one time. Omitted values take the defaults of
// abc.DefaultCameraSample.
type CameraFrame struct {
	Time               float64 `yaml:"time"`
	FocalLength        float32 `yaml:"focal_length"`
	HorizontalAperture float32 `yaml:"horizontal_aperture"`
	VerticalAperture   float32 `yaml:"vertical_aperture"`
	NearClippingPlane  float32 `yaml:"near_clipping_plane"`
	FarClippingPlane   float32 `yaml:"far_clipping_plane"`
	FocusDistance      float32 `yaml:"focus_distance"`
}

// UnmarshalYAML fills omitted camera values with defaults.
func (c *CameraFrame) UnmarshalYAML(node *yaml.Node) error {
	d := abc.DefaultCameraSample()
	type plain CameraFrame
	p := plain{
		FocalLength:        d.FocalLength,
		HorizontalAperture: d.HorizontalAperture,
		VerticalAperture:   d.VerticalAperture,
		NearClippingPlane:  d.NearClippingPlane,
		FarClippingPlane:   d.FarClippingPlane,
		FocusDistance:      d.FocusDistance,
	}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*c = CameraFrame(p)
	return nil
}

// File is a fixture scene.
type File struct {
	Facesets [][]int       `yaml:"facesets,omitempty"`
	Mesh     []MeshFrame   `yaml:"mesh,omitempty"`
	XForm    []XFormFrame  `yaml:"xform,omitempty"`
	Camera   []CameraFrame `yaml:"camera,omitempty"`
}

// Load reads a fixture file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a fixture and orders every frame list by time.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	slices.SortStableFunc(f.Mesh, func(a, b MeshFrame) int { return compareTime(a.Time, b.Time) })
	slices.SortStableFunc(f.XForm, func(a, b XFormFrame) int { return compareTime(a.Time, b.Time) })
	slices.SortStableFunc(f.Camera, func(a, b CameraFrame) int { return compareTime(a.Time, b.Time) })

	for i, x := range f.XForm {
		if x.Matrix != nil && len(x.Matrix) != 16 {
			return nil, fmt.Errorf("%w: xform frame %d has %d matrix values, need 16",
				ErrInvalidFrame, i, len(x.Matrix))
		}
	}
	return &f, nil
}

// FacesetTable returns the faceset table of the scene, or nil when the scene
// declares no facesets.
func (f *File) FacesetTable() (*polymesh.Facesets, error) {
	if len(f.Facesets) == 0 {
		return nil, nil
	}
	return polymesh.NewFacesets(f.Facesets)
}

// TimeRange returns the smallest and largest frame time over all schemas.
func (f *File) TimeRange() (first, last float64, ok bool) {
	add := func(t float64) {
		if !ok {
			first, last, ok = t, t, true
			return
		}
		first = min(first, t)
		last = max(last, t)
	}
	for _, m := range f.Mesh {
		add(m.Time)
	}
	for _, x := range f.XForm {
		add(x.Time)
	}
	for _, c := range f.Camera {
		add(c.Time)
	}
	return first, last, ok
}

func compareTime(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
