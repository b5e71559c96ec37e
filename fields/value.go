package fields

import (
	"github.com/jacentio/lattice/internal/keys"
	"github.com/jacentio/lattice/schema"
)

// ValueTree holds the values of a field tree keyed by field name. Leaves map
// to values, repeating groups to []ValueTree and single groups to a nested
// ValueTree.
type ValueTree map[string]any

// Rows returns the rows of the repeating group name.
func (v ValueTree) Rows(name string) []ValueTree {
	rows, _ := asRows(v[name])
	return rows
}

// Group returns the values of the single group name.
func (v ValueTree) Group(name string) ValueTree {
	g, _ := asTree(v[name])
	return g
}

// Flatten converts values shaped like tree into the flat key map accepted by
// Writer.Write. Fields missing from values are left out. Decoded JSON
// ([]any and map[string]any) is accepted in place of ValueTree.
func Flatten(tree []*schema.Field, values map[string]any) map[string]any {
	out := make(map[string]any)

	type item struct {
		fields []*schema.Field
		values ValueTree
		path   func(name string) string
	}
	pending := []item{{fields: tree, values: values, path: keys.RootPath}}

	for len(pending) > 0 {
		it := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		for _, f := range it.fields {
			raw, ok := it.values[f.Name]
			if !ok {
				continue
			}
			path := it.path(f.Name)

			switch k := f.Kind.(type) {
			case schema.Leaf:
				out[path] = raw

			case schema.RepeatingGroup:
				rows, ok := asRows(raw)
				if !ok {
					continue
				}
				out[path] = len(rows)
				for i, row := range rows {
					pending = append(pending, item{
						fields: k.Children,
						values: row,
						path:   func(name string) string { return keys.RowPath(path, i, name) },
					})
				}

			case schema.SingleGroup:
				group, ok := asTree(raw)
				if !ok {
					continue
				}
				pending = append(pending, item{
					fields: k.Children,
					values: group,
					path:   func(name string) string { return keys.ChildPath(path, name) },
				})
			}
		}
	}
	return out
}

func asTree(v any) (ValueTree, bool) {
	switch t := v.(type) {
	case ValueTree:
		return t, true
	case map[string]any:
		return ValueTree(t), true
	default:
		return nil, false
	}
}

func asRows(v any) ([]ValueTree, bool) {
	switch t := v.(type) {
	case []ValueTree:
		return t, true
	case []map[string]any:
		rows := make([]ValueTree, len(t))
		for i, row := range t {
			rows[i] = row
		}
		return rows, true
	case []any:
		rows := make([]ValueTree, 0, len(t))
		for _, item := range t {
			row, ok := asTree(item)
			if !ok {
				row = ValueTree{}
			}
			rows = append(rows, row)
		}
		return rows, true
	default:
		return nil, false
	}
}
