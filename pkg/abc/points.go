package abc

import "github.com/Faultbox/abcmesh/pkg/math"

// PointsSample is a point cloud at one time.
type PointsSample struct {
	Positions  []math.Vec3
	Velocities []math.Vec3
	IDs        []uint64
}

// Points reads point cloud samples.
type Points struct {
	src    Source[PointsSample]
	time   float64
	sample PointsSample
}

// NewPoints creates a point cloud reader.
func NewPoints(src Source[PointsSample]) *Points {
	return &Points{src: src}
}

// Schema wraps the reader in a Schema.
func (p *Points) Schema() Schema {
	return Schema{Kind: KindPoints, Points: p}
}

// UpdateSample reads the points at t.
func (p *Points) UpdateSample(t float64) error {
	s, err := fetch(p.src, KindPoints, t)
	if err != nil {
		return err
	}
	p.time = t
	p.sample = s
	return nil
}

func (p *Points) Count() int              { return len(p.sample.Positions) }
func (p *Points) Positions() []math.Vec3  { return p.sample.Positions }
func (p *Points) Velocities() []math.Vec3 { return p.sample.Velocities }
func (p *Points) IDs() []uint64           { return p.sample.IDs }
