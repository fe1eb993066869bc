package polymesh

import (
	"go.uber.org/zap"

	"github.com/Faultbox/abcmesh/pkg/math"
)

// tangentSet holds derived tangents and, per face-vertex, the tangent slot it
// reads.
type tangentSet struct {
	values  []math.Vec4
	indices []int
}

type tangentsKey struct {
	topology  uint64
	positions uint64
	normals   uint64
	uvs       uint64
	winding   Winding
	mode      TangentsMode
	smooth    bool
}

// degenerateTangent is used where no tangent direction can be derived.
var degenerateTangent = math.Vec4{X: 1, Y: 0, Z: 0, W: 1}

// tangentsRequired reports whether tangents are requested and derivable.
func (m *Mesh) tangentsRequired() bool {
	return m.opts.TangentsMode != TangentsNone && m.HasUVs()
}

// tangentsUseSmoothNormals reports whether tangents are orthogonalized against
// smooth normals rather than sample normals.
func (m *Mesh) tangentsUseSmoothNormals() bool {
	return m.outputNormals() != normalsFromSample
}

func (m *Mesh) currentTangentsKey() tangentsKey {
	return tangentsKey{
		topology:  m.attrs.gen.topology,
		positions: m.attrs.gen.positions,
		normals:   m.attrs.gen.normals,
		uvs:       m.attrs.gen.uvs,
		winding:   m.opts.Winding,
		mode:      m.opts.TangentsMode,
		smooth:    m.tangentsUseSmoothNormals(),
	}
}

// ensureTangents returns the tangent set for the installed sample. Callers
// must check tangentsRequired first.
func (m *Mesh) ensureTangents() tangentSet {
	key := m.currentTangentsKey()
	if m.tangents.fresh(key) {
		return m.tangents.value
	}

	a := &m.attrs
	in := tangentInput{
		counts:    a.counts,
		indices:   a.indices,
		positions: a.positions,
		uvAt:      a.uvAt,
		uvSlot:    func(fv int) int { return a.layout.uvs.slot(fv, a.indices[fv]) },
		mode:      m.opts.TangentsMode,
	}
	if key.smooth {
		sn := m.ensureSmoothNormals()
		in.normalAt = func(fv int) math.Vec3 { return sn[a.indices[fv]] }
		in.normalSlot = func(fv int) int { return int(a.indices[fv]) }
	} else {
		in.normalAt = a.normalAt
		in.normalSlot = func(fv int) int { return a.layout.normals.slot(fv, a.indices[fv]) }
	}

	set := computeTangents(m.tangents.value, in)
	m.tangents.store(key, set)
	m.log.Debug("computed tangents",
		zap.Stringer("mode", m.opts.TangentsMode),
		zap.Bool("smooth_normals", key.smooth),
		zap.Int("tangents", len(set.values)))
	return set
}

type tangentInput struct {
	counts     []uint32
	indices    []uint32
	positions  []math.Vec3
	uvAt       func(fv int) math.Vec2
	uvSlot     func(fv int) int
	normalAt   func(fv int) math.Vec3
	normalSlot func(fv int) int
	mode       TangentsMode
}

// computeTangents derives one tangent per slot. Smooth mode uses one slot per
// point; split mode one slot per distinct (point, normal, uv) combination so
// that UV seams and hard edges keep their own tangents. reuse donates storage.
func computeTangents(reuse tangentSet, in tangentInput) tangentSet {
	nfv := len(in.indices)
	set := tangentSet{indices: resize(reuse.indices, nfv)}

	nslots := 0
	switch in.mode {
	case TangentsSplit:
		seen := make(map[[3]int]int)
		for fv := 0; fv < nfv; fv++ {
			k := [3]int{int(in.indices[fv]), in.normalSlot(fv), in.uvSlot(fv)}
			s, ok := seen[k]
			if !ok {
				s = nslots
				seen[k] = s
				nslots++
			}
			set.indices[fv] = s
		}
	default:
		for fv := 0; fv < nfv; fv++ {
			set.indices[fv] = int(in.indices[fv])
		}
		nslots = len(in.positions)
	}

	tan := make([]math.Vec3, nslots)
	bitan := make([]math.Vec3, nslots)
	nrm := make([]math.Vec3, nslots)

	o := 0
	for _, c := range in.counts {
		k := int(c)
		for j := 0; j < k; j++ {
			fv := o + j
			next := o + (j+1)%k
			prev := o + (j+k-1)%k
			s := set.indices[fv]

			nrm[s] = nrm[s].Add(in.normalAt(fv))

			p := in.positions[in.indices[fv]]
			e1 := in.positions[in.indices[next]].Sub(p)
			e2 := in.positions[in.indices[prev]].Sub(p)
			uv := in.uvAt(fv)
			d1 := in.uvAt(next).Sub(uv)
			d2 := in.uvAt(prev).Sub(uv)

			det := d1.X*d2.Y - d1.Y*d2.X
			if det == 0 {
				continue
			}
			r := 1 / det
			t := e1.Scale(d2.Y).Sub(e2.Scale(d1.Y)).Scale(r)
			b := e2.Scale(d1.X).Sub(e1.Scale(d2.X)).Scale(r)
			tan[s] = tan[s].Add(t)
			bitan[s] = bitan[s].Add(b)
		}
		o += k
	}

	set.values = resize(reuse.values, nslots)
	for s := range set.values {
		n := nrm[s].Normalize()
		// Gram-Schmidt: T' = T - N * dot(N, T)
		t := tan[s].Sub(n.Scale(n.Dot(tan[s])))
		if t.Length() < 1e-6 {
			set.values[s] = degenerateTangent
			continue
		}
		t = t.Normalize()
		w := float32(1)
		if n.Cross(t).Dot(bitan[s]) < 0 {
			w = -1
		}
		set.values[s] = math.Vec4FromVec3(t, w)
	}
	return set
}
