package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jacentio/lattice/schema"
)

// Codec normalises the values of one field type.
type Codec interface {
	// Sanitize returns the canonical stored form of a submitted value.
	// raw is nil when nothing was submitted for the field.
	Sanitize(raw any, s schema.Settings) (any, error)

	// Default returns the value reported for a field that was never stored,
	// given the field's configured default (nil when none).
	Default(def any, s schema.Settings) any

	// Load returns the canonical form of a value decoded by a store.
	Load(stored any, s schema.Settings) any
}

// Passthrough stores any value as a plain string. It backs unknown types.
type Passthrough struct{}

// Sanitize implements Codec.
func (Passthrough) Sanitize(raw any, _ schema.Settings) (any, error) {
	return toString(raw), nil
}

// Default implements Codec.
func (Passthrough) Default(def any, _ schema.Settings) any {
	return toString(def)
}

// Load implements Codec.
func (Passthrough) Load(stored any, _ schema.Settings) any {
	return toString(stored)
}

// toString renders scalars the way they were most likely submitted.
func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case bool:
		if t {
			return "1"
		}
		return ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// truthy reports whether v is a checked-checkbox style marker.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "", "0", "false", "off", "no":
			return false
		}
		return true
	case []any:
		return len(t) > 0
	default:
		return toString(v) != ""
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidValue}, args...)...)
}
