package abc

// Material stands in for material schemas, which are not decoded.
type Material struct {
	time float64
}

// NewMaterial creates a material reader.
func NewMaterial() *Material {
	return &Material{}
}

// Schema wraps the reader in a Schema.
func (m *Material) Schema() Schema {
	return Schema{Kind: KindMaterial, Material: m}
}

// UpdateSample does nothing beyond recording t.
func (m *Material) UpdateSample(t float64) error {
	m.time = t
	return nil
}

// Supported reports whether material data is decoded. It is always false.
func (m *Material) Supported() bool {
	return false
}
