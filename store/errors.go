package store

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable is returned when the backing store cannot serve a call.
	ErrStoreUnavailable = errors.New("lattice: attribute store unavailable")

	// ErrUnknownKind is returned for object kinds without a registered store.
	ErrUnknownKind = errors.New("lattice: unknown object kind")
)

// unavailable wraps a backend error so callers can match ErrStoreUnavailable
// while keeping the cause inspectable.
func unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
