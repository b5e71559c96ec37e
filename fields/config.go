package fields

import "github.com/jacentio/lattice/schema"

// DefaultMaxRows bounds the rows of one repeating group.
const DefaultMaxRows = 10000

// Config holds limits shared by Writer and Reader.
type Config struct {
	// MaxDepth is the deepest container nesting a tree may have.
	// Default: 32
	MaxDepth int

	// MaxRows is the largest row count a repeating group may have. Writes
	// over the limit skip the group; reads stop at the limit.
	// Default: 10000
	MaxRows int
}

// DefaultConfig returns the default limits.
func DefaultConfig() Config {
	return Config{
		MaxDepth: schema.DefaultMaxDepth,
		MaxRows:  DefaultMaxRows,
	}
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.MaxDepth <= 0 {
		c.MaxDepth = schema.DefaultMaxDepth
	}
	if c.MaxRows <= 0 {
		c.MaxRows = DefaultMaxRows
	}
}
