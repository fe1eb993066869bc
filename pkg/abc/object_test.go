package abc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/abcmesh/pkg/math"
)

func TestObjectTable_Hierarchy(t *testing.T) {
	tbl := NewObjectTable(nil)
	root := tbl.Add("root", NoObject, NewXForm(Constant(XFormSample{Matrix: math.Identity()})).Schema())
	cam := tbl.Add("cam", root, NewCamera(Constant(DefaultCameraSample())).Schema())
	light := tbl.Add("key", root, NewLight().Schema())

	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []Handle{root}, tbl.Children(NoObject))
	assert.Equal(t, []Handle{cam, light}, tbl.Children(root))
	assert.Empty(t, tbl.Children(cam))
	assert.Nil(t, tbl.Children(Handle(42)))
	assert.Equal(t, "/root/cam", tbl.Path(cam))

	o, ok := tbl.Object(cam)
	require.True(t, ok)
	assert.Equal(t, "cam", o.Name)
	assert.Equal(t, root, o.Parent)
	assert.Equal(t, KindCamera, o.Schema.Kind)
	assert.Equal(t, cam, o.Schema.Object)

	_, ok = tbl.Object(NoObject)
	assert.False(t, ok)
}

func TestObjectTable_AddUnknownParent(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	tbl := NewObjectTable(zap.New(core))
	h := tbl.Add("orphan", Handle(3), NewLight().Schema())
	assert.Equal(t, NoObject, h)
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, 1, logs.Len())
}

func TestObjectTable_UpdateAll(t *testing.T) {
	tbl := NewObjectTable(nil)
	cam := NewCamera(Constant(CameraSample{FocalLength: 50}))
	root := tbl.Add("root", NoObject, NewXForm(Constant(XFormSample{Matrix: math.Translate(1, 0, 0)})).Schema())
	tbl.Add("cam", root, cam.Schema())

	require.NoError(t, tbl.UpdateAll(3))
	assert.Equal(t, float32(50), cam.Sample().FocalLength)
	o, _ := tbl.Object(root)
	assert.Equal(t, 3.0, o.Schema.Time())
	assert.Equal(t, math.Vec3{X: 1}, o.Schema.XForm.Position())
}

func TestObjectTable_UpdateAllWrapsErrors(t *testing.T) {
	tbl := NewObjectTable(nil)
	root := tbl.Add("root", NoObject, NewLight().Schema())
	tbl.Add("broken", root, NewCurves(nil).Schema())
	after := NewLight()
	tbl.Add("after", root, after.Schema())

	err := tbl.UpdateAll(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSource)
	assert.Contains(t, err.Error(), `object "/root/broken"`)
	assert.Equal(t, 0.0, after.time, "update stops at the first failure")
}

func TestSchema_Dispatch(t *testing.T) {
	tests := []struct {
		name    string
		schema  Schema
		wantErr error
	}{
		{"xform", NewXForm(Constant(XFormSample{})).Schema(), nil},
		{"curves", NewCurves(Constant(CurvesSample{})).Schema(), nil},
		{"points", NewPoints(Constant(PointsSample{})).Schema(), nil},
		{"light", NewLight().Schema(), nil},
		{"missing payload", Schema{Kind: KindCamera}, ErrNoPayload},
		{"mismatched payload", Schema{Kind: KindPoints, Light: NewLight()}, ErrNoPayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.UpdateSample(1)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1.0, tt.schema.Time())
		})
	}

	err := (&Schema{Kind: Kind(99)}).UpdateSample(0)
	assert.Error(t, err)
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindXForm, "XForm"},
		{KindPolyMesh, "PolyMesh"},
		{KindMaterial, "Material"},
		{Kind(-1), "Kind(-1)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
