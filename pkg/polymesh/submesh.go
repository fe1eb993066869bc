package polymesh

import (
	"cmp"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// submeshKey identifies a submesh. Keys order by split, faceset, U tile, then
// V tile; that order is the enumeration order of submeshes.
type submeshKey struct {
	splitIndex   int
	facesetIndex int
	uTile        int
	vTile        int
}

func compareKeys(a, b submeshKey) int {
	if c := cmp.Compare(a.splitIndex, b.splitIndex); c != 0 {
		return c
	}
	if c := cmp.Compare(a.facesetIndex, b.facesetIndex); c != 0 {
		return c
	}
	if c := cmp.Compare(a.uTile, b.uTile); c != 0 {
		return c
	}
	return cmp.Compare(a.vTile, b.vTile)
}

// submesh is the faces of one key within one split.
type submesh struct {
	key           submeshKey
	faces         []int
	vertexIndices []uint32 // Split-local, three per triangle
	triangleCount int
	index         int
	splitIndex    int // Dense index within the split
}

func (s *submesh) info() SubmeshInfo {
	return SubmeshInfo{
		Index:             s.index,
		SplitIndex:        s.key.splitIndex,
		SplitSubmeshIndex: s.splitIndex,
		FacesetIndex:      s.key.facesetIndex,
		UTile:             s.key.uTile,
		VTile:             s.key.vTile,
		TriangleCount:     s.triangleCount,
	}
}

func (m *Mesh) currentSubmeshStamp() submeshStamp {
	return submeshStamp{plan: m.planCount, uvs: m.attrs.gen.uvs}
}

// submeshesFresh reports whether the prepared submeshes still match the
// installed sample and split plan.
func (m *Mesh) submeshesFresh() bool {
	if !m.submeshesLive {
		return false
	}
	m.ensureSplits()
	return m.submeshStamp == m.currentSubmeshStamp()
}

// PrepareSubmeshes groups the faces of every split by faceset and UV tile and
// returns the total number of submeshes. The tile of a face is taken from the
// texture coordinate of its first corner; faces of meshes without UVs use tile
// (0, 0). It must be called again after the topology or UVs change.
func (m *Mesh) PrepareSubmeshes(fs *Facesets) (int, error) {
	if !m.attrs.loaded {
		return 0, fmt.Errorf("%w: no sample installed", ErrInvalidArgument)
	}
	splits := m.ensureSplits()
	nFaces := m.attrs.faceCount()
	if mf := fs.maxFace(); mf >= nFaces {
		return 0, fmt.Errorf("%w: faceset table references face %d of %d", ErrInvalidArgument, mf, nFaces)
	}

	counts := m.attrs.counts
	offsets := m.attrs.layout.faceOffsets
	hasUVs := m.HasUVs()

	buckets := make(map[submeshKey]*submesh)
	var keys []submeshKey
	for f := 0; f < nFaces; f++ {
		key := submeshKey{splitIndex: m.faceSplit[f], facesetIndex: fs.FacesetOf(f)}
		if hasUVs {
			key.uTile, key.vTile = m.attrs.uvAt(offsets[f]).Tile()
		}
		sm, ok := buckets[key]
		if !ok {
			sm = &submesh{key: key}
			buckets[key] = sm
			keys = append(keys, key)
		}
		sm.faces = append(sm.faces, f)
		sm.triangleCount += int(counts[f]) - 2
	}
	slices.SortFunc(keys, compareKeys)

	for i := range splits {
		splits[i].SubmeshCount = 0
	}
	m.submeshes = m.submeshes[:0]
	for i, key := range keys {
		sm := buckets[key]
		split := &splits[key.splitIndex]
		sm.index = i
		sm.splitIndex = split.SubmeshCount
		split.SubmeshCount++
		sm.vertexIndices = triangulate(sm.faces, counts, offsets, split.IndexOffset, sm.triangleCount)
		m.submeshes = append(m.submeshes, *sm)
	}

	m.submeshStamp = m.currentSubmeshStamp()
	m.submeshesLive = true
	m.cursor = 0

	m.log.Debug("prepared submeshes",
		zap.Int("splits", len(splits)),
		zap.Int("submeshes", len(m.submeshes)),
		zap.Int("facesets", fs.Count()))
	return len(m.submeshes), nil
}

// triangulate fans every face from its first corner and returns split-local
// face-vertex indices.
func triangulate(faces []int, counts []uint32, offsets []int, splitOffset, triangles int) []uint32 {
	out := make([]uint32, 0, triangles*3)
	for _, f := range faces {
		base := uint32(offsets[f] - splitOffset)
		for j := uint32(1); j+1 < counts[f]; j++ {
			out = append(out, base, base+j, base+j+1)
		}
	}
	return out
}

// SplitSubmeshCount returns the number of submeshes prepared for split. It is
// zero until PrepareSubmeshes has run for the current topology.
func (m *Mesh) SplitSubmeshCount(split int) (int, error) {
	s, err := m.split(split)
	if err != nil {
		return 0, err
	}
	if !m.submeshesFresh() {
		return 0, nil
	}
	return s.SubmeshCount, nil
}

// NextSubmesh advances the submesh cursor. It returns false once every
// prepared submesh has been visited or when the submeshes are stale.
func (m *Mesh) NextSubmesh() (SubmeshInfo, bool) {
	if !m.submeshesFresh() || m.cursor >= len(m.submeshes) {
		return SubmeshInfo{}, false
	}
	info := m.submeshes[m.cursor].info()
	m.cursor++
	return info, true
}

// ResetSubmeshCursor rewinds NextSubmesh to the first submesh.
func (m *Mesh) ResetSubmeshCursor() {
	m.cursor = 0
}

// FillSubmeshIndices copies the triangle indices of a submesh into dst, which
// must hold exactly TriangleCount*3 values. Indices address the vertex buffer
// of the submesh's split.
func (m *Mesh) FillSubmeshIndices(dst []uint32, info SubmeshInfo) error {
	if !m.submeshesFresh() {
		return fmt.Errorf("%w: submeshes are not prepared", ErrInvalidArgument)
	}
	if info.Index < 0 || info.Index >= len(m.submeshes) {
		return fmt.Errorf("%w: submesh %d of %d", ErrInvalidArgument, info.Index, len(m.submeshes))
	}
	sm := &m.submeshes[info.Index]
	if sm.key.splitIndex != info.SplitIndex || sm.splitIndex != info.SplitSubmeshIndex {
		return fmt.Errorf("%w: submesh %d does not belong to split %d", ErrInvalidArgument, info.Index, info.SplitIndex)
	}
	if len(dst) != len(sm.vertexIndices) {
		return fmt.Errorf("%w: index buffer holds %d, need %d", ErrInvalidArgument, len(dst), len(sm.vertexIndices))
	}
	copy(dst, sm.vertexIndices)
	return nil
}
