package abc

import "github.com/pkg/errors"

// Schema is the schema of one object. Kind selects which payload pointer is
// set; all others are nil.
type Schema struct {
	Kind   Kind
	Object Handle // Owning object, set by ObjectTable.Add

	XForm    *XForm
	PolyMesh *PolyMesh
	Curves   *Curves
	Points   *Points
	Camera   *Camera
	Light    *Light
	Material *Material
}

// UpdateSample refreshes the schema for time t.
func (s *Schema) UpdateSample(t float64) error {
	switch s.Kind {
	case KindXForm:
		if s.XForm != nil {
			return s.XForm.UpdateSample(t)
		}
	case KindPolyMesh:
		if s.PolyMesh != nil {
			return s.PolyMesh.UpdateSample(t)
		}
	case KindCurves:
		if s.Curves != nil {
			return s.Curves.UpdateSample(t)
		}
	case KindPoints:
		if s.Points != nil {
			return s.Points.UpdateSample(t)
		}
	case KindCamera:
		if s.Camera != nil {
			return s.Camera.UpdateSample(t)
		}
	case KindLight:
		if s.Light != nil {
			return s.Light.UpdateSample(t)
		}
	case KindMaterial:
		if s.Material != nil {
			return s.Material.UpdateSample(t)
		}
	default:
		return errors.Errorf("unknown schema kind %d", int(s.Kind))
	}
	return errors.Wrapf(ErrNoPayload, "%s", s.Kind)
}

// Time returns the time of the last successful update.
func (s *Schema) Time() float64 {
	switch s.Kind {
	case KindXForm:
		if s.XForm != nil {
			return s.XForm.time
		}
	case KindPolyMesh:
		if s.PolyMesh != nil {
			return s.PolyMesh.time
		}
	case KindCurves:
		if s.Curves != nil {
			return s.Curves.time
		}
	case KindPoints:
		if s.Points != nil {
			return s.Points.time
		}
	case KindCamera:
		if s.Camera != nil {
			return s.Camera.time
		}
	case KindLight:
		if s.Light != nil {
			return s.Light.time
		}
	case KindMaterial:
		if s.Material != nil {
			return s.Material.time
		}
	}
	return 0
}
