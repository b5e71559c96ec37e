package codec

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/jacentio/lattice/schema"
)

// Text strips all markup. Single-line text also folds line breaks and trims.
// The "maxlength" setting truncates the result by rune.
//
// Entities are decoded so "&" stays readable, and the result is stripped again
// until it no longer changes; encoded markup never comes back as tags.
type Text struct {
	policy    *bluemonday.Policy
	multiline bool
}

// NewText creates a plain text codec.
func NewText(multiline bool) Text {
	return Text{policy: bluemonday.StrictPolicy(), multiline: multiline}
}

// Sanitize implements Codec.
func (t Text) Sanitize(raw any, s schema.Settings) (any, error) {
	v := toString(raw)
	if strings.ContainsAny(v, "<>&") {
		v = t.strip(v)
	}
	if t.multiline {
		v = strings.ReplaceAll(v, "\r\n", "\n")
	} else {
		v = strings.TrimSpace(strings.NewReplacer("\r", " ", "\n", " ", "\t", " ").Replace(v))
	}
	if max, ok := s.Int("maxlength"); ok && max > 0 {
		if r := []rune(v); len(r) > max {
			v = string(r[:max])
		}
	}
	return v, nil
}

// maxStripRounds bounds how many entity layers strip decodes.
const maxStripRounds = 8

func (t Text) strip(v string) string {
	for range maxStripRounds {
		next := html.UnescapeString(t.policy.Sanitize(v))
		if next == v {
			return v
		}
		v = next
	}
	return t.policy.Sanitize(v)
}

// Default implements Codec.
func (Text) Default(def any, _ schema.Settings) any {
	return toString(def)
}

// Load implements Codec.
func (Text) Load(stored any, _ schema.Settings) any {
	return toString(stored)
}

// RichText keeps markup that passes a user-generated-content allow list.
type RichText struct {
	policy *bluemonday.Policy
}

// NewRichText creates a rich text codec.
func NewRichText() RichText {
	return RichText{policy: bluemonday.UGCPolicy()}
}

// Sanitize implements Codec.
func (r RichText) Sanitize(raw any, _ schema.Settings) (any, error) {
	return r.policy.Sanitize(toString(raw)), nil
}

// Default implements Codec.
func (RichText) Default(def any, _ schema.Settings) any {
	return toString(def)
}

// Load implements Codec.
func (RichText) Load(stored any, _ schema.Settings) any {
	return toString(stored)
}
