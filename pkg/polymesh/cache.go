package polymesh

import (
	"slices"

	"github.com/Faultbox/abcmesh/pkg/math"
)

// cacheEntry is a derived value stamped with the inputs it was computed from.
// It is stale as soon as the current stamp differs from the stored one.
type cacheEntry[K comparable, V any] struct {
	key   K
	value V
	valid bool
}

func (c *cacheEntry[K, V]) fresh(key K) bool {
	return c.valid && c.key == key
}

func (c *cacheEntry[K, V]) store(key K, value V) {
	c.key = key
	c.value = value
	c.valid = true
}

func (c *cacheEntry[K, V]) invalidate() {
	c.valid = false
}

// generations counts changes per attribute. A counter moves every time the
// matching attribute of an installed sample differs from the previous one.
type generations struct {
	topology   uint64
	positions  uint64
	normals    uint64
	uvs        uint64
	velocities uint64
}

// attributeCache holds copies of the arrays of the most recently installed
// sample.
type attributeCache struct {
	time       float64
	counts     []uint32
	indices    []uint32
	positions  []math.Vec3
	normals    Vec3Param
	uvs        Vec2Param
	velocities []math.Vec3
	layout     sampleLayout
	version    SampleVersion
	gen        generations
	variance   TopologyVariance
	loaded     bool
}

// install replaces the cached arrays with those of s, which must already be
// validated, and reports how much the mesh changed.
func (c *attributeCache) install(s *Sample, layout sampleLayout) TopologyVariance {
	first := !c.loaded

	// A stamp is only trusted while the array sizes agree with the cache.
	topoChanged := first || len(c.counts) != len(s.Counts) || len(c.indices) != len(s.Indices) ||
		changed(c.version.Topology, s.Version.Topology, func() bool {
			return !slices.Equal(c.counts, s.Counts) || !slices.Equal(c.indices, s.Indices)
		})
	posChanged := first || len(c.positions) != len(s.Positions) ||
		changed(c.version.Positions, s.Version.Positions, func() bool {
			return !slices.Equal(c.positions, s.Positions)
		})
	nrmChanged := first || !paramShapeEqual(&c.normals, s.Normals) ||
		changed(c.version.Normals, s.Version.Normals, func() bool {
			return !paramEqual(&c.normals, s.Normals)
		})
	uvChanged := first || !paramShapeEqual(&c.uvs, s.UVs) ||
		changed(c.version.UVs, s.Version.UVs, func() bool {
			return !paramEqual(&c.uvs, s.UVs)
		})
	velChanged := first || len(c.velocities) != len(s.Velocities) ||
		changed(c.version.Velocities, s.Version.Velocities, func() bool {
			return !slices.Equal(c.velocities, s.Velocities)
		})

	c.time = s.Time
	c.counts = append(c.counts[:0], s.Counts...)
	c.indices = append(c.indices[:0], s.Indices...)
	c.positions = append(c.positions[:0], s.Positions...)
	c.velocities = append(c.velocities[:0], s.Velocities...)
	copyParam(&c.normals, s.Normals)
	copyParam(&c.uvs, s.UVs)
	layout.normals.indices = c.normals.Indices
	layout.uvs.indices = c.uvs.Indices
	c.layout = layout
	c.version = s.Version
	c.loaded = true

	if topoChanged {
		c.gen.topology++
	}
	if posChanged {
		c.gen.positions++
	}
	if nrmChanged {
		c.gen.normals++
	}
	if uvChanged {
		c.gen.uvs++
	}
	if velChanged {
		c.gen.velocities++
	}

	switch {
	case topoChanged:
		c.variance = VarianceHeterogeneous
	case posChanged || nrmChanged || uvChanged || velChanged:
		c.variance = VarianceHomogeneous
	default:
		c.variance = VarianceConstant
	}
	return c.variance
}

// changed decides whether an attribute changed, trusting non-zero stamps and
// falling back to a content comparison otherwise.
func changed(prev, next uint64, differs func() bool) bool {
	if prev != 0 && next != 0 {
		return prev != next
	}
	return differs()
}

func paramEqual[T comparable](cached *Param[T], next *Param[T]) bool {
	n := derefParam(next)
	if (cached.Indices == nil) != (n.Indices == nil) {
		return false
	}
	return slices.Equal(cached.Values, n.Values) && slices.Equal(cached.Indices, n.Indices)
}

// paramShapeEqual reports whether next has the same value count and
// indexing as the cached param.
func paramShapeEqual[T any](cached *Param[T], next *Param[T]) bool {
	n := derefParam(next)
	return len(cached.Values) == len(n.Values) &&
		(cached.Indices == nil) == (n.Indices == nil) &&
		len(cached.Indices) == len(n.Indices)
}

// copyParam copies src into dst, reusing dst storage. A nil index slice
// stays nil.
func copyParam[T any](dst *Param[T], src *Param[T]) {
	p := derefParam(src)
	dst.Values = append(dst.Values[:0], p.Values...)
	if p.Indices == nil {
		dst.Indices = nil
		return
	}
	if dst.Indices == nil || cap(dst.Indices) < len(p.Indices) {
		dst.Indices = make([]uint32, len(p.Indices))
	} else {
		dst.Indices = dst.Indices[:len(p.Indices)]
	}
	copy(dst.Indices, p.Indices)
}

func derefParam[T any](p *Param[T]) Param[T] {
	if p == nil {
		return Param[T]{}
	}
	return *p
}

func (c *attributeCache) faceCount() int {
	return len(c.counts)
}

func (c *attributeCache) faceVertexCount() int {
	return len(c.indices)
}

// uvAt returns the texture coordinate of face-vertex fv.
func (c *attributeCache) uvAt(fv int) math.Vec2 {
	return c.uvs.Values[c.layout.uvs.slot(fv, c.indices[fv])]
}

// normalAt returns the sample normal of face-vertex fv.
func (c *attributeCache) normalAt(fv int) math.Vec3 {
	return c.normals.Values[c.layout.normals.slot(fv, c.indices[fv])]
}

// resize returns buf with length n, reusing its storage when possible.
func resize[T any](buf []T, n int) []T {
	if cap(buf) >= n {
		buf = buf[:n]
		clear(buf)
		return buf
	}
	return make([]T, n)
}
