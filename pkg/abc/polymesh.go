package abc

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/abcmesh/pkg/polymesh"
)

// PolyMesh feeds polygon mesh samples into a polymesh.Mesh.
type PolyMesh struct {
	src  Source[*polymesh.Sample]
	mesh *polymesh.Mesh
	time float64
}

// NewPolyMesh creates a mesh reader whose processor is configured by opts.
func NewPolyMesh(src Source[*polymesh.Sample], opts ...polymesh.Option) *PolyMesh {
	return &PolyMesh{src: src, mesh: polymesh.New(opts...)}
}

// Schema wraps the reader in a Schema.
func (p *PolyMesh) Schema() Schema {
	return Schema{Kind: KindPolyMesh, PolyMesh: p}
}

// Mesh returns the mesh processor.
func (p *PolyMesh) Mesh() *polymesh.Mesh {
	return p.mesh
}

// UpdateSample reads the mesh sample at t and installs it stamped with t. A
// rejected sample leaves the mesh unchanged.
func (p *PolyMesh) UpdateSample(t float64) error {
	s, err := fetch(p.src, KindPolyMesh, t)
	if err != nil {
		return err
	}
	if s == nil {
		return errors.Wrapf(ErrNoPayload, "%s sample at %g", KindPolyMesh, t)
	}
	stamped := *s
	stamped.Time = t
	if err := p.mesh.UpdateSample(&stamped); err != nil {
		return errors.Wrapf(err, "%s sample at %g", KindPolyMesh, t)
	}
	p.time = t
	return nil
}
