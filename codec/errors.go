package codec

import "errors"

var (
	// ErrInvalidValue is returned by Sanitize when a value cannot be normalised.
	ErrInvalidValue = errors.New("lattice: invalid value")

	// ErrUnknownFieldType is returned by Resolve when no codec is registered
	// for a field type. The returned codec is still usable.
	ErrUnknownFieldType = errors.New("lattice: unknown field type")
)
