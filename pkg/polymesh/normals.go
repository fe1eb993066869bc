package polymesh

import (
	"go.uber.org/zap"

	"github.com/Faultbox/abcmesh/pkg/math"
)

// normalSource is where output normals come from.
type normalSource int

const (
	normalsNone normalSource = iota
	normalsFromSample
	normalsSmooth
)

type normalsKey struct {
	topology  uint64
	positions uint64
	winding   Winding
}

// outputNormals decides the normal source for vertex buffers.
func (m *Mesh) outputNormals() normalSource {
	switch m.opts.NormalsMode {
	case NormalsReadFromFile:
		if m.HasNormals() {
			return normalsFromSample
		}
		return normalsNone
	case NormalsComputeIfMissing:
		if m.HasNormals() {
			return normalsFromSample
		}
		return normalsSmooth
	case NormalsAlwaysCompute:
		return normalsSmooth
	default:
		return normalsNone
	}
}

// smoothNormalsRequired reports whether smooth normals feed either the output
// or the tangents.
func (m *Mesh) smoothNormalsRequired() bool {
	return m.outputNormals() == normalsSmooth || (m.tangentsRequired() && m.tangentsUseSmoothNormals())
}

func (m *Mesh) currentNormalsKey() normalsKey {
	return normalsKey{
		topology:  m.attrs.gen.topology,
		positions: m.attrs.gen.positions,
		winding:   m.opts.Winding,
	}
}

// ensureSmoothNormals returns per-point smooth normals, recomputing them only
// when topology, positions or winding changed since the last computation.
func (m *Mesh) ensureSmoothNormals() []math.Vec3 {
	key := m.currentNormalsKey()
	if !m.smoothNormals.fresh(key) {
		buf := resize(m.smoothNormals.value, len(m.attrs.positions))
		computeSmoothNormals(buf, m.attrs.counts, m.attrs.indices, m.attrs.positions, m.opts.Winding)
		m.smoothNormals.store(key, buf)
		m.log.Debug("computed smooth normals", zap.Int("points", len(buf)))
	}
	return m.smoothNormals.value
}

// SmoothNormals copies the per-point smooth normals of the installed sample
// into dst, which must hold exactly PointCount values.
func (m *Mesh) SmoothNormals(dst []math.Vec3) error {
	if !m.attrs.loaded {
		return errNotLoaded()
	}
	if len(dst) != len(m.attrs.positions) {
		return errBufferSize("normal", len(dst), len(m.attrs.positions))
	}
	copy(dst, m.ensureSmoothNormals())
	return nil
}

// computeSmoothNormals accumulates area-weighted face normals on every point of
// each face and normalizes the sums. acc must be zeroed and hold one entry per
// point. Points that end with a zero sum keep the zero vector.
func computeSmoothNormals(acc []math.Vec3, counts, indices []uint32, positions []math.Vec3, winding Winding) {
	o := 0
	for _, c := range counts {
		k := int(c)
		n := faceNormal(indices[o:o+k], positions, winding)
		for j := 0; j < k; j++ {
			p := indices[o+j]
			acc[p] = acc[p].Add(n)
		}
		o += k
	}
	for i := range acc {
		acc[i] = acc[i].Normalize()
	}
}

// faceNormal returns the unnormalized normal of a polygon, summed over the fan
// from its first corner. Its length is twice the area of a planar polygon.
func faceNormal(face []uint32, positions []math.Vec3, winding Winding) math.Vec3 {
	p0 := positions[face[0]]
	var n math.Vec3
	for j := 1; j+1 < len(face); j++ {
		e1 := positions[face[j]].Sub(p0)
		e2 := positions[face[j+1]].Sub(p0)
		if winding == WindingCW {
			n = n.Add(e2.Cross(e1))
		} else {
			n = n.Add(e1.Cross(e2))
		}
	}
	return n
}
