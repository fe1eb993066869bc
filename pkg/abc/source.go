package abc

import "github.com/pkg/errors"

// Source yields the sample of one schema at a time.
type Source[T any] interface {
	Sample(t float64) (T, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc[T any] func(t float64) (T, error)

// Sample calls f(t).
func (f SourceFunc[T]) Sample(t float64) (T, error) {
	return f(t)
}

// Constant returns a source that yields v at every time.
func Constant[T any](v T) Source[T] {
	return SourceFunc[T](func(float64) (T, error) { return v, nil })
}

// ErrNoSource is returned by readers created without a source.
var ErrNoSource = errors.New("schema has no sample source")

// ErrNoPayload is returned by a Schema whose payload does not match its kind.
var ErrNoPayload = errors.New("schema has no payload for its kind")

// fetch reads the sample at t from src.
func fetch[T any](src Source[T], kind Kind, t float64) (T, error) {
	var zero T
	if src == nil {
		return zero, errors.Wrapf(ErrNoSource, "%s", kind)
	}
	v, err := src.Sample(t)
	if err != nil {
		return zero, errors.Wrapf(err, "%s sample at %g", kind, t)
	}
	return v, nil
}
