package fields

import (
	"context"
	"fmt"
	"math"

	"github.com/jacentio/lattice/internal/keys"
	"github.com/jacentio/lattice/schema"
	"github.com/jacentio/lattice/store"
)

// inferCount recovers the row count of a repeating group stored without a
// counter. It scans for the keys of the group's first declared child, by
// that child's own name even when the child is a container, and returns the
// highest row index found plus one.
//
// Rows that never stored the first child are not counted. A first child
// added to the tree after rows were written therefore reports fewer rows
// than exist.
func inferCount(ctx context.Context, st store.AttributeStore, objectID, base string, children []*schema.Field) (int, error) {
	if len(children) == 0 {
		return 0, nil
	}

	p := keys.RowLeaf(base, children[0].Name)
	matched, err := st.KeysMatching(ctx, objectID, p)
	if err != nil {
		return 0, fmt.Errorf("infer %s: %w", base, err)
	}

	count := 0
	for _, key := range matched {
		i, ok := p.RowIndex(key)
		if !ok || i < count {
			continue
		}
		if i == math.MaxInt {
			return math.MaxInt, nil
		}
		count = i + 1
	}
	return count, nil
}
