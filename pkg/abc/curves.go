package abc

import "github.com/Faultbox/abcmesh/pkg/math"

// CurvesSample is a set of curves at one time. Counts holds the number of
// points of each curve.
type CurvesSample struct {
	Counts    []uint32
	Positions []math.Vec3
	Widths    []float32
}

// Curves reads curve samples.
type Curves struct {
	src    Source[CurvesSample]
	time   float64
	sample CurvesSample
}

// NewCurves creates a curves reader.
func NewCurves(src Source[CurvesSample]) *Curves {
	return &Curves{src: src}
}

// Schema wraps the reader in a Schema.
func (c *Curves) Schema() Schema {
	return Schema{Kind: KindCurves, Curves: c}
}

// UpdateSample reads the curves at t.
func (c *Curves) UpdateSample(t float64) error {
	s, err := fetch(c.src, KindCurves, t)
	if err != nil {
		return err
	}
	c.time = t
	c.sample = s
	return nil
}

// CurveCount returns the number of curves.
func (c *Curves) CurveCount() int { return len(c.sample.Counts) }

// Counts returns the point count of every curve.
func (c *Curves) Counts() []uint32 { return c.sample.Counts }

// Positions returns the points of all curves, curve after curve.
func (c *Curves) Positions() []math.Vec3 { return c.sample.Positions }

// Widths returns the per-point widths, or nil.
func (c *Curves) Widths() []float32 { return c.sample.Widths }
