package codec

import (
	"fmt"
	"sort"
)

// Registry maps field type names to codecs.
// Register codecs during setup; lookups are not synchronised with Register.
type Registry struct {
	codecs   map[string]Codec
	fallback Codec
}

// NewRegistry creates an empty Registry that falls back to Passthrough.
func NewRegistry() *Registry {
	return &Registry{
		codecs:   make(map[string]Codec),
		fallback: Passthrough{},
	}
}

// DefaultRegistry creates a Registry holding every built-in field type.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register("text", NewText(false))
	r.Register("textarea", NewText(true))
	r.Register("password", NewText(false))
	r.Register("wysiwyg", NewRichText())

	r.Register("number", Number{})
	r.Register("range", Number{Clamp: true})

	r.Register("true_false", Toggle{})
	r.Register("toggle", Toggle{})

	r.Register("relationship", IDs{Multiple: true})
	r.Register("gallery", IDs{Multiple: true})
	r.Register("taxonomy", IDs{Multiple: true})
	r.Register("post_object", IDs{})
	r.Register("user", IDs{})
	r.Register("image", IDs{})
	r.Register("file", IDs{})
	r.Register("page_link", IDs{})

	r.Register("link", NewLink())

	r.Register("select", Choice{})
	r.Register("radio", Choice{})
	r.Register("email", Email{})
	r.Register("url", URL{})
	r.Register("date_picker", Date{})
	r.Register("color_picker", Color{})

	return r
}

// Register adds or replaces the codec for fieldType.
func (r *Registry) Register(fieldType string, c Codec) {
	r.codecs[fieldType] = c
}

// SetFallback replaces the codec Resolve returns for unknown types.
func (r *Registry) SetFallback(c Codec) {
	if c == nil {
		c = Passthrough{}
	}
	r.fallback = c
}

// Lookup returns the codec registered for fieldType.
func (r *Registry) Lookup(fieldType string) (Codec, bool) {
	c, ok := r.codecs[fieldType]
	return c, ok
}

// Resolve returns the codec for fieldType. For unknown types it returns the
// fallback codec together with an error wrapping ErrUnknownFieldType.
func (r *Registry) Resolve(fieldType string) (Codec, error) {
	if c, ok := r.codecs[fieldType]; ok {
		return c, nil
	}
	return r.fallback, fmt.Errorf("%w: %q", ErrUnknownFieldType, fieldType)
}

// Has returns true if a codec is registered for fieldType.
func (r *Registry) Has(fieldType string) bool {
	_, ok := r.codecs[fieldType]
	return ok
}

// Types returns the registered field types in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.codecs))
	for t := range r.codecs {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
