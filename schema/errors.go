package schema

import "errors"

var (
	// ErrInvalidSchema is returned when a definition breaks naming rules.
	ErrInvalidSchema = errors.New("lattice: invalid field schema")

	// ErrCircularSchema is returned when a schema revisits a definition or
	// nests deeper than the configured limit.
	ErrCircularSchema = errors.New("lattice: circular or unbounded field schema")
)
