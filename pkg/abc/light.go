package abc

// Light tracks the sample time of a light. Light samples carry no fields that
// are decoded here.
type Light struct {
	time float64
}

// NewLight creates a light reader.
func NewLight() *Light {
	return &Light{}
}

// Schema wraps the reader in a Schema.
func (l *Light) Schema() Schema {
	return Schema{Kind: KindLight, Light: l}
}

// UpdateSample records t.
func (l *Light) UpdateSample(t float64) error {
	l.time = t
	return nil
}
