package codec

import (
	"github.com/jacentio/lattice/schema"
)

var linkKeys = []string{"url", "title", "target"}

// Link stores a map[string]string with url, title and target. Each part is
// sanitised as plain text on its own; missing parts are "".
type Link struct {
	text Text
}

// NewLink creates a link codec.
func NewLink() Link {
	return Link{text: NewText(false)}
}

// Sanitize implements Codec.
func (l Link) Sanitize(raw any, s schema.Settings) (any, error) {
	parts, ok := linkParts(raw)
	if !ok {
		return nil, invalid("link must be an object or url string, got %T", raw)
	}
	out := make(map[string]string, len(linkKeys))
	for _, k := range linkKeys {
		v, _ := l.text.Sanitize(parts[k], nil)
		out[k] = v.(string)
	}
	return out, nil
}

// Default implements Codec.
func (l Link) Default(def any, s schema.Settings) any {
	v, err := l.Sanitize(def, s)
	if err != nil {
		v, _ = l.Sanitize(nil, s)
	}
	return v
}

// Load implements Codec.
func (l Link) Load(stored any, s schema.Settings) any {
	return l.Default(stored, s)
}

func linkParts(raw any) (map[string]any, bool) {
	switch t := raw.(type) {
	case nil:
		return map[string]any{}, true
	case string:
		return map[string]any{"url": t}, true
	case map[string]any:
		return t, true
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, v := range t {
			out[k] = v
		}
		return out, true
	default:
		return nil, false
	}
}
