package fields

import "fmt"

// Issue is a per-field problem that did not stop the write.
type Issue struct {
	Path string
	Err  error
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %v", i.Path, i.Err)
}

// WriteReport describes the effect of one write.
type WriteReport struct {
	// WrittenPaths lists stored keys in traversal order, row counters included.
	WrittenPaths []string

	// DeletedPaths lists keys removed by orphan collection.
	DeletedPaths []string

	// Skipped lists fields that were not stored. Their previous values are
	// left in place.
	Skipped []Issue

	// Warnings lists fields that were stored with a fallback, such as an
	// unknown field type.
	Warnings []Issue
}

// OK returns true if no field was skipped.
func (r *WriteReport) OK() bool {
	return len(r.Skipped) == 0
}

func (r *WriteReport) skip(path string, err error) {
	r.Skipped = append(r.Skipped, Issue{Path: path, Err: err})
}

func (r *WriteReport) warn(path string, err error) {
	r.Warnings = append(r.Warnings, Issue{Path: path, Err: err})
}
