package polymesh

import (
	"errors"
	"fmt"
)

// Mesh errors.
var (
	ErrInvalidTopology = errors.New("invalid mesh topology")
	ErrInvalidArgument = errors.New("invalid argument")
)

func errNotLoaded() error {
	return fmt.Errorf("%w: no sample installed", ErrInvalidArgument)
}

func errBufferSize(what string, got, want int) error {
	return fmt.Errorf("%w: %s buffer holds %d, need %d", ErrInvalidArgument, what, got, want)
}
