package polymesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/abcmesh/pkg/math"
)

const eps = 1e-5

func assertVec3(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqual(got, eps), "want %v, got %v", want, got)
}

func TestSmoothNormals_Planar(t *testing.T) {
	m := loadedMesh(t, gridSample(3, 2, 1))
	normals := make([]math.Vec3, m.PointCount())
	require.NoError(t, m.SmoothNormals(normals))
	for _, n := range normals {
		assertVec3(t, math.Vec3{Z: 1}, n)
	}
}

func TestSmoothNormals_Winding(t *testing.T) {
	m := loadedMesh(t, quadSample(), WithWinding(WindingCW))
	normals := make([]math.Vec3, 4)
	require.NoError(t, m.SmoothNormals(normals))
	for _, n := range normals {
		assertVec3(t, math.Vec3{Z: -1}, n)
	}
}

func TestSmoothNormals_WindingChange(t *testing.T) {
	m := loadedMesh(t, quadSample())
	normals := make([]math.Vec3, 4)
	require.NoError(t, m.SmoothNormals(normals))
	assertVec3(t, math.Vec3{Z: 1}, normals[0])

	opts := m.Options()
	opts.Winding = WindingCW
	m.SetOptions(opts)
	require.NoError(t, m.SmoothNormals(normals))
	for _, n := range normals {
		assertVec3(t, math.Vec3{Z: -1}, n)
	}
}

func TestSmoothNormals_AreaWeighted(t *testing.T) {
	// A large triangle facing +Z and a small one facing +X share point 0.
	s := &Sample{
		Counts:  []uint32{3, 3},
		Indices: []uint32{0, 1, 2, 0, 3, 4},
		Positions: []math.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 4, Y: 0, Z: 0},
			{X: 0, Y: 4, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
	}
	m := loadedMesh(t, s)
	normals := make([]math.Vec3, 5)
	require.NoError(t, m.SmoothNormals(normals))

	// Face normals (0,0,16) and (1,0,0) before normalization.
	assertVec3(t, math.Vec3{X: 1, Z: 16}.Normalize(), normals[0])
	assertVec3(t, math.Vec3{Z: 1}, normals[1])
	assertVec3(t, math.Vec3{X: 1}, normals[3])
}

func TestSmoothNormals_Degenerate(t *testing.T) {
	s := &Sample{
		Counts:    []uint32{3},
		Indices:   []uint32{0, 1, 2},
		Positions: []math.Vec3{{}, {X: 1}, {X: 2}, {Y: 5}},
	}
	m := loadedMesh(t, s)
	normals := make([]math.Vec3, 4)
	require.NoError(t, m.SmoothNormals(normals))
	for _, n := range normals {
		assert.Equal(t, math.Vec3{}, n)
	}
}

func TestSmoothNormals_Idempotent(t *testing.T) {
	s := gridSample(3, 3, 1)
	for i := range s.Positions {
		s.Positions[i].Z = float32(i%3) * 0.25
	}
	m := loadedMesh(t, s)
	a := make([]math.Vec3, m.PointCount())
	require.NoError(t, m.SmoothNormals(a))

	require.NoError(t, m.UpdateSample(s))
	b := make([]math.Vec3, m.PointCount())
	require.NoError(t, m.SmoothNormals(b))
	assert.Equal(t, a, b)

	// Served from the cache: same backing array, same key.
	cached := &m.smoothNormals.value[0]
	key := m.smoothNormals.key
	require.NoError(t, m.UpdateSample(s))
	require.NoError(t, m.SmoothNormals(b))
	assert.Same(t, cached, &m.smoothNormals.value[0])
	assert.Equal(t, key, m.smoothNormals.key)

	fresh := loadedMesh(t, s)
	c := make([]math.Vec3, m.PointCount())
	require.NoError(t, fresh.SmoothNormals(c))
	assert.Equal(t, a, c)
}

func TestSmoothNormals_FollowPositions(t *testing.T) {
	m := loadedMesh(t, quadSample())
	normals := make([]math.Vec3, 4)
	require.NoError(t, m.SmoothNormals(normals))
	assertVec3(t, math.Vec3{Z: 1}, normals[0])

	// Rotate the quad into the XZ plane.
	s := quadSample()
	for i := range s.Positions {
		s.Positions[i].Y, s.Positions[i].Z = 0, s.Positions[i].Y
	}
	require.NoError(t, m.UpdateSample(s))
	require.NoError(t, m.SmoothNormals(normals))
	assertVec3(t, math.Vec3{Y: -1}, normals[0])
}

func TestSmoothNormals_Errors(t *testing.T) {
	assert.ErrorIs(t, New().SmoothNormals(nil), ErrInvalidArgument)
	m := loadedMesh(t, quadSample())
	assert.ErrorIs(t, m.SmoothNormals(make([]math.Vec3, 3)), ErrInvalidArgument)
}

func TestOutputNormals(t *testing.T) {
	withNormals := quadSample()
	withNormals.Normals = &Vec3Param{Values: []math.Vec3{{Y: 1}, {Y: 1}, {Y: 1}, {Y: 1}}}

	tests := []struct {
		name   string
		mode   NormalsMode
		sample *Sample
		want   math.Vec3
	}{
		{"read present", NormalsReadFromFile, withNormals, math.Vec3{Y: 1}},
		{"read missing", NormalsReadFromFile, quadSample(), math.Vec3{}},
		{"compute if missing present", NormalsComputeIfMissing, withNormals, math.Vec3{Y: 1}},
		{"compute if missing absent", NormalsComputeIfMissing, quadSample(), math.Vec3{Z: 1}},
		{"always compute", NormalsAlwaysCompute, withNormals, math.Vec3{Z: 1}},
		{"ignore", NormalsIgnore, withNormals, math.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := loadedMesh(t, tt.sample, WithNormalsMode(tt.mode))
			normals := make([]math.Vec3, 4)
			require.NoError(t, m.FillVertexBuffer(0, nil, normals, nil, nil))
			for _, n := range normals {
				assertVec3(t, tt.want, n)
			}
		})
	}
}
