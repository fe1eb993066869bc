package polymesh

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/abcmesh/pkg/math"
)

// quadSample is a unit quad in the XY plane, counter-clockwise seen from +Z.
func quadSample() *Sample {
	return &Sample{
		Counts:  []uint32{4},
		Indices: []uint32{0, 1, 2, 3},
		Positions: []math.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 1, Y: 1, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
		UVs: &Vec2Param{Values: []math.Vec2{
			{X: 0.1, Y: 0.1},
			{X: 0.9, Y: 0.1},
			{X: 0.9, Y: 0.9},
			{X: 0.1, Y: 0.9},
		}},
	}
}

// gridSample is an nx by ny grid of unit quads in the XY plane with per-point
// UVs equal to the point position scaled by uvScale.
func gridSample(nx, ny int, uvScale float32) *Sample {
	s := &Sample{}
	uvs := &Vec2Param{}
	for y := 0; y <= ny; y++ {
		for x := 0; x <= nx; x++ {
			s.Positions = append(s.Positions, math.Vec3{X: float32(x), Y: float32(y)})
			uvs.Values = append(uvs.Values, math.Vec2{X: float32(x) * uvScale, Y: float32(y) * uvScale})
		}
	}
	s.UVs = uvs
	p := func(x, y int) uint32 { return uint32(y*(nx+1) + x) }
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			s.Counts = append(s.Counts, 4)
			s.Indices = append(s.Indices, p(x, y), p(x+1, y), p(x+1, y+1), p(x, y+1))
		}
	}
	return s
}

func loadedMesh(t *testing.T, s *Sample, opts ...Option) *Mesh {
	t.Helper()
	m := New(opts...)
	require.NoError(t, m.UpdateSample(s))
	return m
}

// collectSubmeshes drains the cursor from the start.
func collectSubmeshes(m *Mesh) []SubmeshInfo {
	m.ResetSubmeshCursor()
	var out []SubmeshInfo
	for {
		info, ok := m.NextSubmesh()
		if !ok {
			return out
		}
		out = append(out, info)
	}
}
