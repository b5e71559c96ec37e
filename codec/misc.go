package codec

import (
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/jacentio/lattice/schema"
)

// stringCodec shares Default and Load for codecs storing a string.
type stringCodec struct{}

// Default implements Codec.
func (stringCodec) Default(def any, _ schema.Settings) any {
	return toString(def)
}

// Load implements Codec.
func (stringCodec) Load(stored any, _ schema.Settings) any {
	return toString(stored)
}

// Choice stores one value which must be a key of the "choices" setting when
// choices are configured.
type Choice struct {
	stringCodec
}

// Sanitize implements Codec.
func (Choice) Sanitize(raw any, s schema.Settings) (any, error) {
	v := strings.TrimSpace(toString(raw))
	if v == "" {
		return "", nil
	}
	choices := s.Strings("choices")
	if len(choices) > 0 && !slices.Contains(choices, v) {
		return nil, invalid("%q is not one of the configured choices", v)
	}
	return v, nil
}

// Email stores a bare address.
type Email struct {
	stringCodec
}

// Sanitize implements Codec.
func (Email) Sanitize(raw any, _ schema.Settings) (any, error) {
	v := strings.TrimSpace(toString(raw))
	if v == "" {
		return "", nil
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v {
		return nil, invalid("%q is not an email address", v)
	}
	return addr.Address, nil
}

// URL stores an absolute http, https or mailto URL.
type URL struct {
	stringCodec
}

// Sanitize implements Codec.
func (URL) Sanitize(raw any, _ schema.Settings) (any, error) {
	v := strings.TrimSpace(toString(raw))
	if v == "" {
		return "", nil
	}
	u, err := url.Parse(v)
	if err != nil {
		return nil, invalid("%q is not a url", v)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return nil, invalid("%q has no host", v)
		}
	case "mailto":
	default:
		return nil, invalid("%q has unsupported scheme %q", v, u.Scheme)
	}
	return u.String(), nil
}

var dateLayouts = []string{"20060102", "2006-01-02", "2006/01/02"}

// Date stores a calendar date as YYYYMMDD.
type Date struct {
	stringCodec
}

// Sanitize implements Codec.
func (Date) Sanitize(raw any, _ schema.Settings) (any, error) {
	v := strings.TrimSpace(toString(raw))
	if v == "" {
		return "", nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("20060102"), nil
		}
	}
	return nil, invalid("%q is not a date", v)
}

var hexColor = regexp.MustCompile(`^#([0-9a-f]{3}|[0-9a-f]{6})$`)

// Color stores a lowercase hex colour.
type Color struct {
	stringCodec
}

// Sanitize implements Codec.
func (Color) Sanitize(raw any, _ schema.Settings) (any, error) {
	v := strings.ToLower(strings.TrimSpace(toString(raw)))
	if v == "" {
		return "", nil
	}
	if !hexColor.MatchString(v) {
		return nil, invalid("%q is not a hex colour", v)
	}
	return v, nil
}
