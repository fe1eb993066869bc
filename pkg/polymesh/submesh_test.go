package polymesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/abcmesh/pkg/math"
)

func TestPrepareSubmeshes_SingleQuad(t *testing.T) {
	m := loadedMesh(t, quadSample())
	n, err := m.PrepareSubmeshes(nil)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	info, ok := m.NextSubmesh()
	require.True(t, ok)
	assert.Equal(t, SubmeshInfo{FacesetIndex: ImplicitFaceset, TriangleCount: 2}, info)

	idx := make([]uint32, 6)
	require.NoError(t, m.FillSubmeshIndices(idx, info))
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, idx)

	_, ok = m.NextSubmesh()
	assert.False(t, ok)
}

func TestPrepareSubmeshes_Facesets(t *testing.T) {
	s := gridSample(2, 1, 0.5)
	m := loadedMesh(t, s)
	fs, err := NewFacesets([][]int{{1}, {0}})
	require.NoError(t, err)

	n, err := m.PrepareSubmeshes(fs)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	got := collectSubmeshes(m)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].FacesetIndex)
	assert.Equal(t, 1, got[1].FacesetIndex)
	assert.Equal(t, []int{0, 1}, []int{got[0].SplitSubmeshIndex, got[1].SplitSubmeshIndex})

	// Faceset 0 holds face 1, whose corners start at face-vertex 4.
	idx := make([]uint32, 6)
	require.NoError(t, m.FillSubmeshIndices(idx, got[0]))
	assert.Equal(t, []uint32{4, 5, 6, 4, 6, 7}, idx)

	count, err := m.SplitSubmeshCount(0)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, m.Splits()[0].SubmeshCount)
}

func TestPrepareSubmeshes_UVTiles(t *testing.T) {
	// Each quad spans one UV unit, so every face lands in its own tile.
	m := loadedMesh(t, gridSample(2, 2, 1))
	n, err := m.PrepareSubmeshes(nil)
	require.NoError(t, err)
	require.Equal(t, 4, n)

	var tiles [][2]int
	for _, info := range collectSubmeshes(m) {
		tiles = append(tiles, [2]int{info.UTile, info.VTile})
		assert.Equal(t, 2, info.TriangleCount)
	}
	assert.Equal(t, [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, tiles)
}

func TestPrepareSubmeshes_NegativeTile(t *testing.T) {
	s := quadSample()
	for i := range s.UVs.Values {
		s.UVs.Values[i].X -= 1
	}
	m := loadedMesh(t, s)
	_, err := m.PrepareSubmeshes(nil)
	require.NoError(t, err)
	info, ok := m.NextSubmesh()
	require.True(t, ok)
	assert.Equal(t, -1, info.UTile)
	assert.Equal(t, 0, info.VTile)
}

func TestPrepareSubmeshes_AcrossSplits(t *testing.T) {
	s := gridSample(4, 4, 0.1)
	m := loadedMesh(t, s, WithVertexCeiling(12))
	fs := FacesetsFromAssignment([]int{0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1})

	n, err := m.PrepareSubmeshes(fs)
	require.NoError(t, err)

	splits := m.Splits()
	total, triangles := 0, 0
	for i, sp := range splits {
		c, err := m.SplitSubmeshCount(i)
		require.NoError(t, err)
		assert.Equal(t, sp.SubmeshCount, c)
		total += c
	}
	assert.Equal(t, n, total)

	prev := SubmeshInfo{SplitIndex: -1}
	for i, info := range collectSubmeshes(m) {
		assert.Equal(t, i, info.Index)
		if info.SplitIndex == prev.SplitIndex {
			assert.Less(t, prev.FacesetIndex, info.FacesetIndex, "order within split")
			assert.Equal(t, prev.SplitSubmeshIndex+1, info.SplitSubmeshIndex)
		} else {
			assert.Greater(t, info.SplitIndex, prev.SplitIndex, "split order")
			assert.Equal(t, 0, info.SplitSubmeshIndex)
		}

		idx := make([]uint32, info.TriangleCount*3)
		require.NoError(t, m.FillSubmeshIndices(idx, info))
		limit := uint32(splits[info.SplitIndex].IndicesCount)
		for _, v := range idx {
			assert.Less(t, v, limit)
		}
		triangles += info.TriangleCount
		prev = info
	}
	assert.Equal(t, 16*2, triangles)
}

func TestPrepareSubmeshes_Deterministic(t *testing.T) {
	build := func() []SubmeshInfo {
		m := loadedMesh(t, gridSample(5, 3, 0.7), WithVertexCeiling(20))
		fs := FacesetsFromAssignment([]int{3, 1, 2, 0, 1, 3, 2})
		_, err := m.PrepareSubmeshes(fs)
		require.NoError(t, err)
		return collectSubmeshes(m)
	}
	first := build()
	for range 5 {
		assert.Equal(t, first, build())
	}
}

func TestPrepareSubmeshes_Errors(t *testing.T) {
	_, err := New().PrepareSubmeshes(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	m := loadedMesh(t, quadSample())
	fs, err := NewFacesets([][]int{{0, 5}})
	require.NoError(t, err)
	_, err = m.PrepareSubmeshes(fs)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSubmeshes_StaleAfterTopologyChange(t *testing.T) {
	m := loadedMesh(t, quadSample())
	_, err := m.PrepareSubmeshes(nil)
	require.NoError(t, err)
	info, ok := m.NextSubmesh()
	require.True(t, ok)

	// Positions alone keep the submeshes.
	moved := quadSample()
	moved.Positions[0].Z = 1
	require.NoError(t, m.UpdateSample(moved))
	m.ResetSubmeshCursor()
	_, ok = m.NextSubmesh()
	assert.True(t, ok)

	require.NoError(t, m.UpdateSample(gridSample(2, 1, 0.5)))
	_, ok = m.NextSubmesh()
	assert.False(t, ok)
	assert.ErrorIs(t, m.FillSubmeshIndices(make([]uint32, 6), info), ErrInvalidArgument)
	assert.Equal(t, 0, m.Splits()[0].SubmeshCount)
}

func TestFillSubmeshIndices_BufferSize(t *testing.T) {
	m := loadedMesh(t, quadSample())
	_, err := m.PrepareSubmeshes(nil)
	require.NoError(t, err)
	info, _ := m.NextSubmesh()

	assert.ErrorIs(t, m.FillSubmeshIndices(make([]uint32, 5), info), ErrInvalidArgument)

	wrong := info
	wrong.SplitIndex = 3
	assert.ErrorIs(t, m.FillSubmeshIndices(make([]uint32, 6), wrong), ErrInvalidArgument)
}

func TestTriangulate_Polygon(t *testing.T) {
	s := &Sample{
		Counts:    []uint32{3, 5},
		Indices:   []uint32{0, 1, 2, 0, 1, 2, 3, 4},
		Positions: make([]math.Vec3, 5),
	}
	m := loadedMesh(t, s)
	_, err := m.PrepareSubmeshes(nil)
	require.NoError(t, err)
	info, ok := m.NextSubmesh()
	require.True(t, ok)
	require.Equal(t, 4, info.TriangleCount)

	idx := make([]uint32, 12)
	require.NoError(t, m.FillSubmeshIndices(idx, info))
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5, 3, 5, 6, 3, 6, 7}, idx)
}
