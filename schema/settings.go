package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Settings holds type-specific options of a field definition.
type Settings map[string]any

// String returns the setting as a string, or "" when absent.
func (s Settings) String(key string) string {
	v, ok := s[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// Bool returns the setting as a bool. Numbers and "1"/"true" count as true.
func (s Settings) Bool(key string) bool {
	switch t := s[key].(type) {
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	default:
		return false
	}
}

// Float returns the setting as a float64 and whether it was set and numeric.
func (s Settings) Float(key string) (float64, bool) {
	switch t := s[key].(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Int returns the setting as an int and whether it was set and numeric.
func (s Settings) Int(key string) (int, bool) {
	f, ok := s.Float(key)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// Strings returns a list setting. A map setting yields its keys, which is
// how choice lists ({value: label}) are usually authored.
func (s Settings) Strings(key string) []string {
	switch t := s[key].(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			out = append(out, fmt.Sprint(v))
		}
		return out
	case map[string]any:
		out := make([]string, 0, len(t))
		for k := range t {
			out = append(out, k)
		}
		return out
	case map[string]string:
		out := make([]string, 0, len(t))
		for k := range t {
			out = append(out, k)
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	default:
		return nil
	}
}
