package store

import "fmt"

// Stores routes object kinds to their attribute stores.
type Stores struct {
	byKind map[ObjectKind]AttributeStore
}

// NewStores creates an empty router.
func NewStores() *Stores {
	return &Stores{byKind: make(map[ObjectKind]AttributeStore)}
}

// Register sets the store for kind.
// This should be called during setup, before the router is shared.
func (s *Stores) Register(kind ObjectKind, st AttributeStore) {
	s.byKind[kind] = st
}

// For returns the store registered for kind.
func (s *Stores) For(kind ObjectKind) (AttributeStore, error) {
	st, ok := s.byKind[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return st, nil
}

// Has returns true if a store is registered for kind.
func (s *Stores) Has(kind ObjectKind) bool {
	_, ok := s.byKind[kind]
	return ok
}

// Kinds returns the registered kinds in canonical order.
func (s *Stores) Kinds() []ObjectKind {
	var kinds []ObjectKind
	for _, k := range Kinds() {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// NewMemoryStores creates a router with a fresh MemoryStore per kind.
func NewMemoryStores() *Stores {
	s := NewStores()
	for _, k := range Kinds() {
		s.Register(k, NewMemoryStore())
	}
	return s
}
