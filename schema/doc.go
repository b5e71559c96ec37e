// Package schema models the authored tree of field definitions.
//
// A field is either a leaf holding a value of some field type, a repeating
// group owning a variable number of rows of child fields, or a single group
// owning exactly one set of child fields. Trees are assembled from a [Source]
// of flat definitions with [Load], which enforces name rules and rejects
// cyclic or unbounded schemas.
//
// # Sources
//
//   - [StaticSource] holds definitions in memory.
//   - [YAMLSource] reads a nested YAML document.
//   - [CachedSource] wraps another source with an LRU of child lists.
package schema
