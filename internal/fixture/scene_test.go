package fixture

import (
	"testing"

	"github.com/Faultbox/abcmesh/pkg/abc"
	"github.com/Faultbox/abcmesh/pkg/polymesh"
)

func TestScene(t *testing.T) {
	sc, err := loadStrip(t).Scene(nil, polymesh.WithVertexCeiling(4))
	if err != nil {
		t.Fatalf("Scene() error = %v", err)
	}

	if sc.Objects.Len() != 3 {
		t.Fatalf("Objects.Len() = %d, want 3", sc.Objects.Len())
	}
	children := sc.Objects.Children(sc.Root)
	if len(children) != 2 {
		t.Fatalf("root has %d children, want 2", len(children))
	}
	if p := sc.Objects.Path(children[0]); p != "/root/mesh" {
		t.Errorf("Path() = %q, want /root/mesh", p)
	}

	if err := sc.Update(1); err != nil {
		t.Fatalf("Update(1) error = %v", err)
	}

	mesh := sc.Mesh.Mesh()
	if mesh.SplitCount() != 2 {
		t.Errorf("SplitCount() = %d, want 2", mesh.SplitCount())
	}
	n, err := mesh.PrepareSubmeshes(sc.Facesets)
	if err != nil {
		t.Fatalf("PrepareSubmeshes() error = %v", err)
	}
	if n != 2 {
		t.Errorf("PrepareSubmeshes() = %d, want 2", n)
	}
	if sc.Camera.Sample().FocalLength != 50 {
		t.Errorf("FocalLength = %v, want 50", sc.Camera.Sample().FocalLength)
	}
}

func TestSceneWithoutFrames(t *testing.T) {
	sc, err := (&File{}).Scene(nil)
	if err != nil {
		t.Fatalf("Scene() error = %v", err)
	}
	if sc.Mesh != nil || sc.Camera != nil {
		t.Error("empty fixture should have no mesh or camera")
	}
	if err := sc.Update(0); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	o, ok := sc.Objects.Object(sc.Root)
	if !ok || o.Schema.Kind != abc.KindXForm {
		t.Errorf("root object = %+v, %v, want an xform", o, ok)
	}
}
