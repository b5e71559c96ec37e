package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ObjectKind names one object address space of the host.
type ObjectKind string

const (
	// KindPost addresses content items.
	KindPost ObjectKind = "post"

	// KindTerm addresses taxonomy terms.
	KindTerm ObjectKind = "term"

	// KindUser addresses accounts.
	KindUser ObjectKind = "user"
)

// Kinds returns every object kind.
func Kinds() []ObjectKind {
	return []ObjectKind{KindPost, KindTerm, KindUser}
}

// ParseObjectKind converts a kind name.
func ParseObjectKind(s string) (ObjectKind, error) {
	k := ObjectKind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindPost, KindTerm, KindUser:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// AttributeStore holds the flat attributes of every object of one kind.
type AttributeStore interface {
	// Get returns the value stored under key and whether the key exists.
	Get(ctx context.Context, objectID, key string) (any, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, objectID, key string, value any) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, objectID, key string) error

	// KeysMatching returns the keys of the object selected by p.
	KeysMatching(ctx context.Context, objectID string, p Pattern) ([]string, error)
}

// Pattern selects attribute keys of one object.
// Every selected key starts with Prefix, which backends use to narrow their
// scan; Expr, when set, must also match. An Expr's first submatch is the row
// index reported by RowIndex.
type Pattern struct {
	Prefix string
	Expr   *regexp.Regexp
}

// Match reports whether key is selected by the pattern.
func (p Pattern) Match(key string) bool {
	if !strings.HasPrefix(key, p.Prefix) {
		return false
	}
	return p.Expr == nil || p.Expr.MatchString(key)
}

// RowIndex returns the decimal submatch of key, if key is selected. A run
// too long for an int saturates at math.MaxInt.
func (p Pattern) RowIndex(key string) (int, bool) {
	if p.Expr == nil || !strings.HasPrefix(key, p.Prefix) {
		return 0, false
	}
	m := p.Expr.FindStringSubmatch(key)
	if len(m) < 2 {
		return 0, false
	}
	i, err := strconv.Atoi(m[1])
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt, true
	}
	if err != nil {
		return 0, false
	}
	return i, true
}

func (p Pattern) String() string {
	if p.Expr == nil {
		return regexp.QuoteMeta(p.Prefix) + ".*"
	}
	return p.Expr.String()
}
