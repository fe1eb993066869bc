// Package abc provides per-object schema readers for Alembic-style scenes.
//
// Every object in a scene carries exactly one schema. A schema pulls its
// sample for a time from a Source and caches the decoded fields for
// synchronous getters. Schemas are a closed set of kinds dispatched by Kind.
package abc

import "fmt"

// Kind identifies the schema carried by an object.
type Kind int

const (
	KindXForm Kind = iota
	KindPolyMesh
	KindCurves
	KindPoints
	KindCamera
	KindLight
	KindMaterial
)

var kindNames = []string{"XForm", "PolyMesh", "Curves", "Points", "Camera", "Light", "Material"}

// String returns a human-readable kind name.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}
