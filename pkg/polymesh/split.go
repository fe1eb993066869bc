package polymesh

import (
	"fmt"

	"go.uber.org/zap"
)

// updateSplits partitions the faces into splits. Faces are taken in index
// order and a new split starts whenever adding the next face would push the
// running face-vertex count over the ceiling.
func (m *Mesh) updateSplits(key splitKey) {
	counts := m.attrs.counts
	ceiling := key.ceiling

	splits := m.splits.value[:0]
	m.faceSplit = resize(m.faceSplit, len(counts))

	offset := 0
	for i, c := range counts {
		nv := int(c)
		n := len(splits)
		if n == 0 || (splits[n-1].IndicesCount > 0 && splits[n-1].IndicesCount+nv > ceiling) {
			splits = append(splits, Split{FirstFace: i, LastFace: i, IndexOffset: offset})
			n++
		}
		cur := &splits[n-1]
		cur.LastFace = i
		cur.IndicesCount += nv
		m.faceSplit[i] = n - 1
		offset += nv

		if nv > ceiling {
			m.log.Warn("face exceeds split vertex ceiling",
				zap.Int("face", i),
				zap.Int("vertices", nv),
				zap.Int("ceiling", ceiling))
		}
	}

	m.splits.store(key, splits)
	m.planCount++
	m.log.Debug("planned splits",
		zap.Int("faces", len(counts)),
		zap.Int("splits", len(splits)),
		zap.Int("ceiling", ceiling))
}

func (m *Mesh) currentSplitKey() splitKey {
	return splitKey{
		topology: m.attrs.gen.topology,
		ceiling:  m.ceiling(),
		forced:   m.forceReplan,
	}
}

// ensureSplits re-plans when the topology or ceiling moved since the last plan.
func (m *Mesh) ensureSplits() []Split {
	if !m.attrs.loaded {
		return nil
	}
	key := m.currentSplitKey()
	if !m.splits.fresh(key) {
		m.updateSplits(key)
	}
	return m.splits.value
}

// SplitCount returns the number of splits of the installed sample. The plan is
// cached and only recomputed after a topology or ceiling change.
func (m *Mesh) SplitCount() int {
	return len(m.ensureSplits())
}

// RefreshSplitCount re-plans the splits unconditionally and returns their
// number. Submeshes must be prepared again afterwards.
func (m *Mesh) RefreshSplitCount() int {
	if !m.attrs.loaded {
		return 0
	}
	m.forceReplan++
	return m.SplitCount()
}

// Splits returns a copy of the split plan.
func (m *Mesh) Splits() []Split {
	splits := m.ensureSplits()
	out := make([]Split, len(splits))
	copy(out, splits)
	if !m.submeshesFresh() {
		for i := range out {
			out[i].SubmeshCount = 0
		}
	}
	return out
}

// SplitForFace returns the split containing face.
func (m *Mesh) SplitForFace(face int) (int, error) {
	m.ensureSplits()
	if face < 0 || face >= len(m.faceSplit) {
		return 0, fmt.Errorf("%w: face %d of %d", ErrInvalidArgument, face, len(m.faceSplit))
	}
	return m.faceSplit[face], nil
}

func (m *Mesh) split(index int) (Split, error) {
	splits := m.ensureSplits()
	if index < 0 || index >= len(splits) {
		return Split{}, fmt.Errorf("%w: split %d of %d", ErrInvalidArgument, index, len(splits))
	}
	return splits[index], nil
}
