package polymesh

import "fmt"

// paramScope tells how a face-vertex finds its attribute value.
type paramScope int

const (
	scopeNone        paramScope = iota // Attribute absent
	scopeIndexed                       // Values[Indices[fv]]
	scopeVertex                        // Values[point]
	scopeFaceVarying                   // Values[fv]
)

// lookup resolves face-vertex attribute slots.
type lookup struct {
	scope   paramScope
	indices []uint32
}

// slot returns the value index for face-vertex fv referencing point.
func (l lookup) slot(fv int, point uint32) int {
	switch l.scope {
	case scopeIndexed:
		return int(l.indices[fv])
	case scopeVertex:
		return int(point)
	default:
		return fv
	}
}

func (l lookup) present() bool {
	return l.scope != scopeNone
}

// sampleLayout is the validated shape of a sample.
type sampleLayout struct {
	faceOffsets []int // len(Counts)+1 face-vertex offsets
	normals     lookup
	uvs         lookup
}

// validate checks a sample and returns its layout. It never modifies the
// sample.
func validate(s *Sample) (sampleLayout, error) {
	var layout sampleLayout

	offsets := make([]int, len(s.Counts)+1)
	total := 0
	for i, c := range s.Counts {
		if c < 3 {
			return layout, fmt.Errorf("%w: face %d has %d vertices", ErrInvalidTopology, i, c)
		}
		offsets[i] = total
		total += int(c)
	}
	offsets[len(s.Counts)] = total

	if total != len(s.Indices) {
		return layout, fmt.Errorf("%w: face counts sum to %d but there are %d indices",
			ErrInvalidTopology, total, len(s.Indices))
	}

	nPoints := len(s.Positions)
	for i, idx := range s.Indices {
		if int(idx) >= nPoints {
			return layout, fmt.Errorf("%w: index %d references point %d of %d",
				ErrInvalidTopology, i, idx, nPoints)
		}
	}

	if len(s.Velocities) != 0 && len(s.Velocities) != nPoints {
		return layout, fmt.Errorf("%w: %d velocities for %d points",
			ErrInvalidTopology, len(s.Velocities), nPoints)
	}

	var err error
	if s.Normals != nil {
		layout.normals, err = resolveScope("normals", len(s.Normals.Values), s.Normals.Indices, nPoints, total)
		if err != nil {
			return layout, err
		}
	}
	if s.UVs != nil {
		layout.uvs, err = resolveScope("uvs", len(s.UVs.Values), s.UVs.Indices, nPoints, total)
		if err != nil {
			return layout, err
		}
	}

	layout.faceOffsets = offsets
	return layout, nil
}

// resolveScope decides how an attribute of valueCount values is addressed.
// An attribute without values is treated as absent.
func resolveScope(name string, valueCount int, indices []uint32, nPoints, nFaceVertices int) (lookup, error) {
	if valueCount == 0 {
		return lookup{}, nil
	}
	if indices != nil {
		if len(indices) != nFaceVertices {
			return lookup{}, fmt.Errorf("%w: %s has %d indices for %d face-vertices",
				ErrInvalidTopology, name, len(indices), nFaceVertices)
		}
		for i, idx := range indices {
			if int(idx) >= valueCount {
				return lookup{}, fmt.Errorf("%w: %s index %d references value %d of %d",
					ErrInvalidTopology, name, i, idx, valueCount)
			}
		}
		return lookup{scope: scopeIndexed, indices: indices}, nil
	}
	switch valueCount {
	case nPoints:
		return lookup{scope: scopeVertex}, nil
	case nFaceVertices:
		return lookup{scope: scopeFaceVarying}, nil
	}
	return lookup{}, fmt.Errorf("%w: %s has %d values for %d points and %d face-vertices",
		ErrInvalidTopology, name, valueCount, nPoints, nFaceVertices)
}
