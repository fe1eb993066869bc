package polymesh

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/abcmesh/pkg/math"
)

// VertexBufferLength returns the number of vertices of a split's vertex
// buffer: one per face-vertex of its faces.
func (m *Mesh) VertexBufferLength(split int) (int, error) {
	s, err := m.split(split)
	if err != nil {
		return 0, err
	}
	return s.IndicesCount, nil
}

// SplitBuffers are destination buffers for one split. Nil buffers are skipped.
type SplitBuffers struct {
	Split     int
	Positions []math.Vec3
	Normals   []math.Vec3
	UVs       []math.Vec2
	Tangents  []math.Vec4
}

// derived is the read-only view of everything a fill needs.
type derived struct {
	normals  normalSource
	smooth   []math.Vec3
	tangents *tangentSet
}

// resolveDerived brings the smooth normal and tangent caches up to date and
// returns a view that fills can share without further mutation.
func (m *Mesh) resolveDerived() derived {
	d := derived{normals: m.outputNormals()}
	if d.normals == normalsSmooth {
		d.smooth = m.ensureSmoothNormals()
	}
	if m.tangentsRequired() {
		set := m.ensureTangents()
		d.tangents = &set
	}
	return d
}

// FillVertexBuffer copies the de-indexed attributes of a split into the given
// buffers. Each non-nil buffer must hold exactly VertexBufferLength(split)
// values; nil buffers are skipped. Normals and tangents that cannot be
// provided under the current options are written as zero vectors, as are
// texture coordinates of meshes without UVs. Nothing is written on error.
func (m *Mesh) FillVertexBuffer(split int, positions, normals []math.Vec3, uvs []math.Vec2, tangents []math.Vec4) error {
	b := SplitBuffers{Split: split, Positions: positions, Normals: normals, UVs: uvs, Tangents: tangents}
	s, err := m.checkBuffers(b)
	if err != nil {
		return err
	}
	m.fillSplit(s, b, m.resolveDerived())
	return nil
}

// FillSplits fills several splits at once, in parallel. The result equals
// calling FillVertexBuffer for each entry. All buffers are checked before any
// is written.
func (m *Mesh) FillSplits(bufs []SplitBuffers) error {
	splits := make([]Split, len(bufs))
	for i, b := range bufs {
		s, err := m.checkBuffers(b)
		if err != nil {
			return err
		}
		splits[i] = s
	}

	d := m.resolveDerived()
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range bufs {
		g.Go(func() error {
			m.fillSplit(splits[i], bufs[i], d)
			return nil
		})
	}
	return g.Wait()
}

func (m *Mesh) checkBuffers(b SplitBuffers) (Split, error) {
	if !m.attrs.loaded {
		return Split{}, errNotLoaded()
	}
	s, err := m.split(b.Split)
	if err != nil {
		return Split{}, err
	}
	n := s.IndicesCount
	switch {
	case b.Positions != nil && len(b.Positions) != n:
		return Split{}, errBufferSize("position", len(b.Positions), n)
	case b.Normals != nil && len(b.Normals) != n:
		return Split{}, errBufferSize("normal", len(b.Normals), n)
	case b.UVs != nil && len(b.UVs) != n:
		return Split{}, errBufferSize("uv", len(b.UVs), n)
	case b.Tangents != nil && len(b.Tangents) != n:
		return Split{}, errBufferSize("tangent", len(b.Tangents), n)
	}
	return s, nil
}

// fillSplit only reads mesh state, so distinct buffers may be filled
// concurrently.
func (m *Mesh) fillSplit(s Split, b SplitBuffers, d derived) {
	a := &m.attrs
	first := s.IndexOffset
	last := s.IndexOffset + s.IndicesCount

	if b.Positions != nil {
		for fv := first; fv < last; fv++ {
			b.Positions[fv-first] = a.positions[a.indices[fv]]
		}
	}

	if b.Normals != nil {
		switch d.normals {
		case normalsFromSample:
			for fv := first; fv < last; fv++ {
				b.Normals[fv-first] = a.normalAt(fv)
			}
		case normalsSmooth:
			for fv := first; fv < last; fv++ {
				b.Normals[fv-first] = d.smooth[a.indices[fv]]
			}
		default:
			clear(b.Normals)
		}
	}

	if b.UVs != nil {
		if a.layout.uvs.present() {
			for fv := first; fv < last; fv++ {
				b.UVs[fv-first] = a.uvAt(fv)
			}
		} else {
			clear(b.UVs)
		}
	}

	if b.Tangents != nil {
		if d.tangents != nil {
			for fv := first; fv < last; fv++ {
				b.Tangents[fv-first] = d.tangents.values[d.tangents.indices[fv]]
			}
		} else {
			clear(b.Tangents)
		}
	}
}
