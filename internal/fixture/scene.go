package fixture

import (
	"go.uber.org/zap"

	"github.com/Faultbox/abcmesh/pkg/abc"
	"github.com/Faultbox/abcmesh/pkg/math"
	"github.com/Faultbox/abcmesh/pkg/polymesh"
)

// Scene is a fixture wired into an object hierarchy: a root transform with
// the mesh and camera as children. Schemas without frames are left out.
type Scene struct {
	Objects  *abc.ObjectTable
	Root     abc.Handle
	XForm    *abc.XForm
	Mesh     *abc.PolyMesh
	Camera   *abc.Camera
	Facesets *polymesh.Facesets
}

// Scene builds the object hierarchy. The mesh processor is configured by opts.
func (f *File) Scene(log *zap.Logger, opts ...polymesh.Option) (*Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fs, err := f.FacesetTable()
	if err != nil {
		return nil, err
	}

	sc := &Scene{Objects: abc.NewObjectTable(log), Facesets: fs}

	var xs abc.Source[abc.XFormSample] = abc.Constant(abc.XFormSample{Inherits: true, Matrix: math.Identity()})
	if len(f.XForm) > 0 {
		if xs, err = f.XFormSource(); err != nil {
			return nil, err
		}
	}
	sc.XForm = abc.NewXForm(xs)
	sc.Root = sc.Objects.Add("root", abc.NoObject, sc.XForm.Schema())

	if len(f.Mesh) > 0 {
		ms, err := f.MeshSource()
		if err != nil {
			return nil, err
		}
		sc.Mesh = abc.NewPolyMesh(ms, append(opts, polymesh.WithLogger(log))...)
		sc.Objects.Add("mesh", sc.Root, sc.Mesh.Schema())
	}

	if len(f.Camera) > 0 {
		cs, err := f.CameraSource()
		if err != nil {
			return nil, err
		}
		sc.Camera = abc.NewCamera(cs)
		sc.Objects.Add("camera", sc.Root, sc.Camera.Schema())
	}

	return sc, nil
}

// Update refreshes every object for time t.
func (sc *Scene) Update(t float64) error {
	return sc.Objects.UpdateAll(t)
}
