package codec

import (
	"math"
	"strconv"
	"strings"

	"github.com/jacentio/lattice/schema"
)

// IDs stores object references. Multiple fields (or any field whose
// "multiple" setting is on) hold a []int64; others hold one int64, or ""
// when empty. Ids are made non-negative; zeros and non-numeric entries are
// dropped.
type IDs struct {
	Multiple bool
}

func (c IDs) multiple(s schema.Settings) bool {
	return c.Multiple || s.Bool("multiple")
}

// Sanitize implements Codec.
func (c IDs) Sanitize(raw any, s schema.Settings) (any, error) {
	return c.normalise(raw, s), nil
}

// Default implements Codec.
func (c IDs) Default(def any, s schema.Settings) any {
	return c.normalise(def, s)
}

// Load implements Codec.
func (c IDs) Load(stored any, s schema.Settings) any {
	return c.normalise(stored, s)
}

func (c IDs) normalise(v any, s schema.Settings) any {
	ids := idList(v)
	if c.multiple(s) {
		return ids
	}
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// idList flattens a native list, a comma-joined string or a scalar.
func idList(v any) []int64 {
	out := []int64{}
	add := func(item any) {
		if id := absID(item); id > 0 {
			out = append(out, id)
		}
	}

	switch t := v.(type) {
	case nil:
	case []int64:
		for _, item := range t {
			add(item)
		}
	case []int:
		for _, item := range t {
			add(item)
		}
	case []float64:
		for _, item := range t {
			add(item)
		}
	case []string:
		for _, item := range t {
			add(item)
		}
	case []any:
		for _, item := range t {
			add(item)
		}
	case string:
		for _, part := range strings.Split(t, ",") {
			add(part)
		}
	default:
		add(t)
	}
	return out
}

// absID converts one entry to a non-negative id; anything unparseable is 0.
func absID(v any) int64 {
	var n int64
	switch t := v.(type) {
	case int64:
		n = t
	case int:
		n = int64(t)
	case int32:
		n = int64(t)
	case float64:
		n = floatID(t)
	default:
		s := strings.TrimSpace(toString(v))
		parsed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(s, 64)
			if ferr != nil {
				return 0
			}
			parsed = floatID(f)
		}
		n = parsed
	}
	if n == math.MinInt64 {
		return 0
	}
	if n < 0 {
		n = -n
	}
	return n
}

// floatID truncates f, or returns 0 when f is NaN or outside the int64 range.
func floatID(f float64) int64 {
	if !(math.Abs(f) < math.MaxInt64) {
		return 0
	}
	return int64(f)
}
