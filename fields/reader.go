package fields

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jacentio/lattice/codec"
	"github.com/jacentio/lattice/internal/keys"
	"github.com/jacentio/lattice/schema"
	"github.com/jacentio/lattice/store"
)

// Reader rebuilds value trees from stored attributes.
type Reader struct {
	stores *store.Stores
	codecs *codec.Registry
	config Config
	logger *slog.Logger
}

// NewReader creates a Reader. A nil logger falls back to slog.Default().
func NewReader(stores *store.Stores, codecs *codec.Registry, config Config, logger *slog.Logger) *Reader {
	config.validate()
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{
		stores: stores,
		codecs: codecs,
		config: config,
		logger: logger,
	}
}

// readFrame is a pending field together with the tree its value goes into.
type readFrame struct {
	frame
	into ValueTree
}

// Read returns the values of every field of tree on one object.
//
// A leaf whose key was never stored reads as its default; a stored empty
// value is returned as is. Repeating groups read their counter, or infer
// the count when no counter was stored.
func (r *Reader) Read(ctx context.Context, kind store.ObjectKind, objectID string, tree []*schema.Field) (out ValueTree, err error) {
	ctx, span := startSpan(ctx, "lattice.read", kind, objectID)
	defer func() { endSpan(span, err) }()

	st, err := r.stores.For(kind)
	if err != nil {
		return nil, err
	}
	if err := checkTree(tree, r.config.MaxDepth); err != nil {
		return nil, err
	}

	out = ValueTree{}
	var pending []readFrame
	push := func(children []*schema.Field, into ValueTree, compose func(string) string) {
		for i := len(children) - 1; i >= 0; i-- {
			pending = append(pending, readFrame{
				frame: frame{field: children[i], path: compose(children[i].Name)},
				into:  into,
			})
		}
	}
	push(tree, out, keys.RootPath)

	for len(pending) > 0 {
		fr := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		f := fr.field

		switch k := f.Kind.(type) {
		case schema.Leaf:
			v, err := r.readLeaf(ctx, st, objectID, f, k, fr.path)
			if err != nil {
				return nil, err
			}
			fr.into[f.Name] = v

		case schema.RepeatingGroup:
			count, err := r.rowCount(ctx, st, objectID, fr.path, k.Children)
			if err != nil {
				return nil, err
			}
			rows := make([]ValueTree, count)
			for i := count - 1; i >= 0; i-- {
				rows[i] = ValueTree{}
				base, row := fr.path, i
				push(k.Children, rows[i], func(name string) string {
					return keys.RowPath(base, row, name)
				})
			}
			fr.into[f.Name] = rows

		case schema.SingleGroup:
			group := ValueTree{}
			base := fr.path
			push(k.Children, group, func(name string) string {
				return keys.ChildPath(base, name)
			})
			fr.into[f.Name] = group

		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, fr.path)
		}
	}
	return out, nil
}

func (r *Reader) readLeaf(ctx context.Context, st store.AttributeStore, objectID string, f *schema.Field, leaf schema.Leaf, path string) (any, error) {
	c, err := r.codecs.Resolve(leaf.Type)
	if err != nil {
		r.logger.Warn("unknown field type, reading as text",
			"path", path,
			"type", leaf.Type,
		)
	}

	stored, ok, err := st.Get(ctx, objectID, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !ok {
		return c.Default(f.Default, f.Settings), nil
	}
	return c.Load(stored, f.Settings), nil
}

// rowCount returns the stored counter of the repeating group at base, or
// the inferred count when no usable counter exists.
func (r *Reader) rowCount(ctx context.Context, st store.AttributeStore, objectID, base string, children []*schema.Field) (int, error) {
	stored, ok, err := st.Get(ctx, objectID, base)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", base, err)
	}
	if ok {
		if count, err := parseCount(stored); err == nil {
			return r.limitRows(objectID, base, count), nil
		}
		r.logger.Warn("ignoring unreadable row counter",
			"objectID", objectID,
			"path", base,
			"value", stored,
		)
	}

	count, err := inferCount(ctx, st, objectID, base, children)
	if err != nil {
		return 0, err
	}
	r.logger.Debug("inferred row count",
		"objectID", objectID,
		"path", base,
		"count", count,
	)
	return r.limitRows(objectID, base, count), nil
}

func (r *Reader) limitRows(objectID, base string, count int) int {
	if count <= r.config.MaxRows {
		return count
	}
	r.logger.Warn("row count exceeds limit, truncating",
		"objectID", objectID,
		"path", base,
		"count", count,
		"limit", r.config.MaxRows,
	)
	return r.config.MaxRows
}
