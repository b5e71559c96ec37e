package codec

import (
	"math"
	"strconv"
	"strings"

	"github.com/jacentio/lattice/schema"
)

// Number stores float64 values. Unparseable input is stored as "".
// With Clamp set, values are bounded by the "min" and "max" settings.
type Number struct {
	Clamp bool
}

// Sanitize implements Codec.
func (n Number) Sanitize(raw any, s schema.Settings) (any, error) {
	f, ok := parseFloat(raw)
	if !ok {
		return "", nil
	}
	if n.Clamp {
		if min, ok := s.Float("min"); ok && f < min {
			f = min
		}
		if max, ok := s.Float("max"); ok && f > max {
			f = max
		}
	}
	return f, nil
}

// Default implements Codec.
func (n Number) Default(def any, s schema.Settings) any {
	if def == nil {
		return ""
	}
	v, _ := n.Sanitize(def, s)
	return v
}

// Load implements Codec.
func (Number) Load(stored any, _ schema.Settings) any {
	f, ok := parseFloat(stored)
	if !ok {
		return ""
	}
	return f
}

func parseFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case int32:
		f = float64(t)
	default:
		s := strings.TrimSpace(toString(v))
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Toggle stores int64 1 for any truthy marker and 0 otherwise.
type Toggle struct{}

// Sanitize implements Codec.
func (Toggle) Sanitize(raw any, _ schema.Settings) (any, error) {
	return boolInt(truthy(raw)), nil
}

// Default implements Codec.
func (Toggle) Default(def any, _ schema.Settings) any {
	return boolInt(truthy(def))
}

// Load implements Codec.
func (Toggle) Load(stored any, _ schema.Settings) any {
	return boolInt(truthy(stored))
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
