package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-process AttributeStore. Values are copied on the way
// in and out so callers cannot alias stored lists or maps.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]map[string]any
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]map[string]any)}
}

// Get implements AttributeStore.
func (m *MemoryStore) Get(_ context.Context, objectID, key string) (any, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.objects[objectID][key]
	if !ok {
		return nil, false, nil
	}
	return cloneValue(v), true, nil
}

// Set implements AttributeStore.
func (m *MemoryStore) Set(_ context.Context, objectID, key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	attrs, ok := m.objects[objectID]
	if !ok {
		attrs = make(map[string]any)
		m.objects[objectID] = attrs
	}
	attrs[key] = cloneValue(value)
	return nil
}

// Delete implements AttributeStore.
func (m *MemoryStore) Delete(_ context.Context, objectID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	attrs, ok := m.objects[objectID]
	if !ok {
		return nil
	}
	delete(attrs, key)
	if len(attrs) == 0 {
		delete(m.objects, objectID)
	}
	return nil
}

// KeysMatching implements AttributeStore. Keys are returned sorted.
func (m *MemoryStore) KeysMatching(_ context.Context, objectID string, p Pattern) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.objects[objectID] {
		if p.Match(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Snapshot returns a copy of every attribute of an object.
func (m *MemoryStore) Snapshot(objectID string) map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]any, len(m.objects[objectID]))
	for k, v := range m.objects[objectID] {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []int64:
		return append([]int64(nil), t...)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(t))
		for k, item := range t {
			out[k] = item
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
