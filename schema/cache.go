package schema

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedSource memoises Children results of another Source.
// Cached lists are shared; callers must not mutate them.
type CachedSource struct {
	src   Source
	cache *lru.Cache[string, []Definition]
}

// NewCachedSource wraps src with an LRU of size entries.
func NewCachedSource(src Source, size int) (*CachedSource, error) {
	if size < 1 {
		size = 1024
	}
	cache, err := lru.New[string, []Definition](size)
	if err != nil {
		return nil, fmt.Errorf("schema cache: %w", err)
	}
	return &CachedSource{src: src, cache: cache}, nil
}

// Children implements Source.
func (c *CachedSource) Children(ctx context.Context, parentID string) ([]Definition, error) {
	if defs, ok := c.cache.Get(parentID); ok {
		return defs, nil
	}
	defs, err := c.src.Children(ctx, parentID)
	if err != nil {
		return nil, err
	}
	c.cache.Add(parentID, defs)
	return defs, nil
}

// Invalidate drops the cached children of parentID.
func (c *CachedSource) Invalidate(parentID string) {
	c.cache.Remove(parentID)
}

// Purge drops every cached entry.
func (c *CachedSource) Purge() {
	c.cache.Purge()
}

// Len returns the number of cached parents.
func (c *CachedSource) Len() int {
	return c.cache.Len()
}
