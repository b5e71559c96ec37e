package fields

import (
	"errors"

	"github.com/jacentio/lattice/schema"
)

var (
	// ErrCircularSchema is returned when a field tree nests deeper than
	// Config.MaxDepth, which is how a cyclic tree presents itself.
	ErrCircularSchema = schema.ErrCircularSchema

	// ErrInvalidCount is reported for a repeating group whose submitted row
	// count is not a number.
	ErrInvalidCount = errors.New("lattice: invalid row count")

	// ErrTooManyRows is reported for a repeating group whose submitted row
	// count exceeds Config.MaxRows.
	ErrTooManyRows = errors.New("lattice: row count exceeds limit")

	// ErrUnsupportedKind is returned for a field without a known Kind.
	ErrUnsupportedKind = errors.New("lattice: unsupported field kind")
)
