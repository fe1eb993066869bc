// Package polymesh turns time samples of an indexed polygon mesh into
// render-ready buffers.
//
// A Mesh partitions the faces of the current sample into splits that respect a
// per-split vertex ceiling, groups the faces of every split into submeshes by
// UV tile and faceset, derives smooth normals and tangents when needed, and
// copies de-indexed vertex attributes into caller-owned buffers.
//
// A Mesh is not safe for concurrent use. Call UpdateSample once per time, then
// issue any number of queries before the next UpdateSample.
package polymesh

import (
	"fmt"

	"github.com/Faultbox/abcmesh/pkg/math"
)

// DefaultVertexCeiling is the default maximum number of vertices per split.
const DefaultVertexCeiling = 65535

// NormalsMode selects where output normals come from.
type NormalsMode int

const (
	NormalsReadFromFile     NormalsMode = iota // Sample normals only
	NormalsComputeIfMissing                    // Sample normals, smooth normals when absent
	NormalsAlwaysCompute                       // Smooth normals, sample normals ignored
	NormalsIgnore                              // No normals
)

var normalsModeNames = []string{"read_from_file", "compute_if_missing", "always_compute", "ignore"}

// String returns the configuration name of the mode.
func (m NormalsMode) String() string {
	if m >= 0 && int(m) < len(normalsModeNames) {
		return normalsModeNames[m]
	}
	return fmt.Sprintf("NormalsMode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m NormalsMode) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(normalsModeNames) {
		return nil, fmt.Errorf("%w: normals mode %d", ErrInvalidArgument, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *NormalsMode) UnmarshalText(text []byte) error {
	i, err := parseName(normalsModeNames, string(text), "normals mode")
	if err != nil {
		return err
	}
	*m = NormalsMode(i)
	return nil
}

// TangentsMode selects whether and how tangents are derived.
type TangentsMode int

const (
	TangentsNone   TangentsMode = iota // No tangents
	TangentsSmooth                     // One tangent per point
	TangentsSplit                      // One tangent per distinct (point, normal, uv) corner
)

var tangentsModeNames = []string{"none", "smooth", "split"}

// String returns the configuration name of the mode.
func (m TangentsMode) String() string {
	if m >= 0 && int(m) < len(tangentsModeNames) {
		return tangentsModeNames[m]
	}
	return fmt.Sprintf("TangentsMode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m TangentsMode) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(tangentsModeNames) {
		return nil, fmt.Errorf("%w: tangents mode %d", ErrInvalidArgument, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *TangentsMode) UnmarshalText(text []byte) error {
	i, err := parseName(tangentsModeNames, string(text), "tangents mode")
	if err != nil {
		return err
	}
	*m = TangentsMode(i)
	return nil
}

// Winding is the front-face vertex order of the source polygons.
type Winding int

const (
	WindingCCW Winding = iota // Counter-clockwise front faces
	WindingCW                 // Clockwise front faces
)

var windingNames = []string{"ccw", "cw"}

// String returns the configuration name of the winding.
func (w Winding) String() string {
	if w >= 0 && int(w) < len(windingNames) {
		return windingNames[w]
	}
	return fmt.Sprintf("Winding(%d)", int(w))
}

// MarshalText implements encoding.TextMarshaler.
func (w Winding) MarshalText() ([]byte, error) {
	if w < 0 || int(w) >= len(windingNames) {
		return nil, fmt.Errorf("%w: winding %d", ErrInvalidArgument, int(w))
	}
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *Winding) UnmarshalText(text []byte) error {
	i, err := parseName(windingNames, string(text), "winding")
	if err != nil {
		return err
	}
	*w = Winding(i)
	return nil
}

func parseName(names []string, s, what string) (int, error) {
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s %q", ErrInvalidArgument, what, s)
}

// TopologyVariance classifies how a sample differs from the previous one.
type TopologyVariance int

const (
	VarianceConstant      TopologyVariance = iota // Nothing changed
	VarianceHomogeneous                           // Attributes changed, connectivity identical
	VarianceHeterogeneous                         // Face counts or indices changed
)

// String returns a human-readable variance name.
func (v TopologyVariance) String() string {
	switch v {
	case VarianceConstant:
		return "Constant"
	case VarianceHomogeneous:
		return "Homogeneous"
	case VarianceHeterogeneous:
		return "Heterogeneous"
	default:
		return fmt.Sprintf("Unknown(%d)", int(v))
	}
}

// Param is an optional geometry attribute. When Indices is non-nil the
// attribute is indexed: face-vertex i reads Values[Indices[i]]. Otherwise the
// attribute is per point when len(Values) equals the point count and per
// face-vertex when it equals the face-vertex count.
type Param[T any] struct {
	Values  []T
	Indices []uint32
}

// Vec3Param is a normal attribute.
type Vec3Param = Param[math.Vec3]

// Vec2Param is a texture coordinate attribute.
type Vec2Param = Param[math.Vec2]

// SampleVersion carries per-attribute identity stamps. Equal non-zero stamps
// mean the attribute did not change since the previous sample; a zero stamp
// means unknown and the contents are compared instead.
type SampleVersion struct {
	Topology   uint64
	Positions  uint64
	Normals    uint64
	UVs        uint64
	Velocities uint64
}

// Sample is one time sample of a polygon mesh. The slices are owned by the
// caller and must not be modified while the sample is installed in a Mesh.
type Sample struct {
	Time       float64
	Counts     []uint32 // Vertices per face
	Indices    []uint32 // Face-vertex to point index
	Positions  []math.Vec3
	Normals    *Vec3Param
	UVs        *Vec2Param
	Velocities []math.Vec3
	Version    SampleVersion
}

// Split is a contiguous range of faces whose face-vertex count stays within
// the vertex ceiling. A single face larger than the ceiling forms a split of
// its own and is the only case where IndicesCount exceeds the ceiling.
type Split struct {
	FirstFace    int
	LastFace     int // Inclusive
	IndexOffset  int // Face-vertex offset of FirstFace
	IndicesCount int // Face-vertices in the split, also its vertex buffer length
	SubmeshCount int
}

// FaceCount returns the number of faces in the split.
func (s Split) FaceCount() int {
	return s.LastFace - s.FirstFace + 1
}

// SubmeshInfo describes one submesh produced by PrepareSubmeshes.
type SubmeshInfo struct {
	Index             int // Position in the overall enumeration
	SplitIndex        int
	SplitSubmeshIndex int // Dense index within the split
	FacesetIndex      int // -1 for the implicit faceset
	UTile, VTile      int
	TriangleCount     int
}

// Options configures a Mesh.
type Options struct {
	NormalsMode   NormalsMode
	TangentsMode  TangentsMode
	Winding       Winding
	VertexCeiling int
}

// DefaultOptions returns the options used by New.
func DefaultOptions() Options {
	return Options{
		NormalsMode:   NormalsComputeIfMissing,
		TangentsMode:  TangentsNone,
		Winding:       WindingCCW,
		VertexCeiling: DefaultVertexCeiling,
	}
}
