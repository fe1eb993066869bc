package polymesh

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/abcmesh/pkg/math"
)

// Option configures a Mesh.
type Option func(*Mesh)

// WithOptions replaces all options at once.
func WithOptions(opts Options) Option {
	return func(m *Mesh) { m.opts = opts }
}

// WithNormalsMode sets the normals mode.
func WithNormalsMode(mode NormalsMode) Option {
	return func(m *Mesh) { m.opts.NormalsMode = mode }
}

// WithTangentsMode sets the tangents mode.
func WithTangentsMode(mode TangentsMode) Option {
	return func(m *Mesh) { m.opts.TangentsMode = mode }
}

// WithWinding sets the front-face winding of the source polygons.
func WithWinding(w Winding) Option {
	return func(m *Mesh) { m.opts.Winding = w }
}

// WithVertexCeiling sets the maximum face-vertex count per split.
// Values below 1 select DefaultVertexCeiling.
func WithVertexCeiling(n int) Option {
	return func(m *Mesh) { m.opts.VertexCeiling = n }
}

// WithLogger sets the logger used for debug and warning output.
func WithLogger(log *zap.Logger) Option {
	return func(m *Mesh) {
		if log != nil {
			m.log = log
		}
	}
}

// splitKey stamps a split plan.
type splitKey struct {
	topology uint64
	ceiling  int
	forced   uint64
}

// submeshStamp records what a submesh list was built from.
type submeshStamp struct {
	plan uint64
	uvs  uint64
}

// Mesh processes polygon mesh samples. The zero value is not usable; create
// meshes with New.
type Mesh struct {
	opts Options
	log  *zap.Logger

	attrs attributeCache

	splits      cacheEntry[splitKey, []Split]
	faceSplit   []int
	planCount   uint64
	forceReplan uint64

	submeshes     []submesh
	submeshStamp  submeshStamp
	submeshesLive bool
	cursor        int

	smoothNormals cacheEntry[normalsKey, []math.Vec3]
	tangents      cacheEntry[tangentsKey, tangentSet]
}

// New creates a mesh processor with DefaultOptions modified by opts.
func New(opts ...Option) *Mesh {
	m := &Mesh{
		opts: DefaultOptions(),
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Options returns the current options.
func (m *Mesh) Options() Options {
	return m.opts
}

// SetOptions changes the options. Derived data depending on a changed option
// is recomputed on next access.
func (m *Mesh) SetOptions(opts Options) {
	m.opts = opts
}

func (m *Mesh) ceiling() int {
	if m.opts.VertexCeiling < 1 {
		return DefaultVertexCeiling
	}
	return m.opts.VertexCeiling
}

// UpdateSample installs a new sample. A malformed sample is rejected with
// ErrInvalidTopology and the previously installed sample stays in effect.
func (m *Mesh) UpdateSample(s *Sample) error {
	if s == nil {
		return fmt.Errorf("%w: nil sample", ErrInvalidArgument)
	}
	layout, err := validate(s)
	if err != nil {
		m.log.Debug("rejected mesh sample", zap.Float64("time", s.Time), zap.Error(err))
		return err
	}

	variance := m.attrs.install(s, layout)
	m.log.Debug("mesh sample updated",
		zap.Float64("time", s.Time),
		zap.Int("faces", len(s.Counts)),
		zap.Int("points", len(s.Positions)),
		zap.Stringer("variance", variance))
	return nil
}

// Loaded reports whether a sample has been installed.
func (m *Mesh) Loaded() bool {
	return m.attrs.loaded
}

// Time returns the time of the installed sample.
func (m *Mesh) Time() float64 {
	return m.attrs.time
}

// TopologyVariance reports how the installed sample differed from the one
// before it. The first sample is always heterogeneous.
func (m *Mesh) TopologyVariance() TopologyVariance {
	return m.attrs.variance
}

// FaceCount returns the number of faces in the installed sample.
func (m *Mesh) FaceCount() int {
	return m.attrs.faceCount()
}

// PointCount returns the number of points in the installed sample.
func (m *Mesh) PointCount() int {
	return len(m.attrs.positions)
}

// HasNormals reports whether the installed sample carries normals.
func (m *Mesh) HasNormals() bool {
	return m.attrs.layout.normals.present()
}

// HasUVs reports whether the installed sample carries texture coordinates.
func (m *Mesh) HasUVs() bool {
	return m.attrs.layout.uvs.present()
}

// HasVelocities reports whether the installed sample carries velocities.
func (m *Mesh) HasVelocities() bool {
	return len(m.attrs.velocities) > 0
}

// Velocities copies per-point velocities into dst, which must hold exactly
// PointCount values.
func (m *Mesh) Velocities(dst []math.Vec3) error {
	if !m.HasVelocities() {
		return fmt.Errorf("%w: sample has no velocities", ErrInvalidArgument)
	}
	if len(dst) != len(m.attrs.velocities) {
		return fmt.Errorf("%w: velocity buffer holds %d, need %d",
			ErrInvalidArgument, len(dst), len(m.attrs.velocities))
	}
	copy(dst, m.attrs.velocities)
	return nil
}
