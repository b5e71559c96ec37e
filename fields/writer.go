package fields

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jacentio/lattice/codec"
	"github.com/jacentio/lattice/internal/keys"
	"github.com/jacentio/lattice/schema"
	"github.com/jacentio/lattice/store"
)

// Writer stores submitted values of a field tree.
type Writer struct {
	stores *store.Stores
	codecs *codec.Registry
	config Config
	logger *slog.Logger
}

// NewWriter creates a Writer. A nil logger falls back to slog.Default().
func NewWriter(stores *store.Stores, codecs *codec.Registry, config Config, logger *slog.Logger) *Writer {
	config.validate()
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		stores: stores,
		codecs: codecs,
		config: config,
		logger: logger,
	}
}

// Write stores values for every field of tree on one object.
//
// values maps fully composed keys to raw submitted values. A leaf missing
// from values is stored as an explicit empty value. A repeating group reads
// its row count from its own key, stores it, writes that many rows and then
// deletes stored rows at or beyond the count.
//
// Per-field failures are collected in the report. The returned error is set
// only when the whole write failed, for example because the store is
// unavailable; keys written before the failure stay written.
func (w *Writer) Write(ctx context.Context, kind store.ObjectKind, objectID string, tree []*schema.Field, values map[string]any) (report *WriteReport, err error) {
	ctx, span := startSpan(ctx, "lattice.write", kind, objectID)
	defer func() {
		if report != nil {
			span.SetAttributes(
				attribute.Int("lattice.written", len(report.WrittenPaths)),
				attribute.Int("lattice.deleted", len(report.DeletedPaths)),
				attribute.Int("lattice.skipped", len(report.Skipped)),
			)
		}
		endSpan(span, err)
	}()

	st, err := w.stores.For(kind)
	if err != nil {
		return nil, err
	}
	if err := checkTree(tree, w.config.MaxDepth); err != nil {
		return nil, err
	}

	report = &WriteReport{}
	var pending stack
	pending.pushChildren(tree, keys.RootPath)

	for len(pending) > 0 {
		fr := pending.pop()

		if fr.collect {
			if err := w.collectOrphans(ctx, st, objectID, fr.path, fr.count, report); err != nil {
				return report, err
			}
			continue
		}

		switch k := fr.field.Kind.(type) {
		case schema.Leaf:
			if err := w.writeLeaf(ctx, st, objectID, fr.field, k, fr.path, values, report); err != nil {
				return report, err
			}

		case schema.RepeatingGroup:
			count, err := parseCount(values[fr.path])
			if err == nil && count > w.config.MaxRows {
				err = fmt.Errorf("%w: %d > %d", ErrTooManyRows, count, w.config.MaxRows)
			}
			if err != nil {
				w.logger.Warn("skipping repeating group",
					"objectID", objectID,
					"path", fr.path,
					"error", err,
				)
				report.skip(fr.path, err)
				continue
			}
			if err := st.Set(ctx, objectID, fr.path, int64(count)); err != nil {
				return report, fmt.Errorf("write %s: %w", fr.path, err)
			}
			report.WrittenPaths = append(report.WrittenPaths, fr.path)

			// Collection pops after every row below it.
			pending.push(frame{path: fr.path, collect: true, count: count})
			pending.pushRows(fr.path, k.Children, count)

		case schema.SingleGroup:
			base := fr.path
			pending.pushChildren(k.Children, func(name string) string {
				return keys.ChildPath(base, name)
			})

		default:
			return report, fmt.Errorf("%w: %s", ErrUnsupportedKind, fr.path)
		}
	}

	w.logger.Debug("write completed",
		"kind", kind,
		"objectID", objectID,
		"written", len(report.WrittenPaths),
		"deleted", len(report.DeletedPaths),
		"skipped", len(report.Skipped),
	)
	return report, nil
}

func (w *Writer) writeLeaf(ctx context.Context, st store.AttributeStore, objectID string, f *schema.Field, leaf schema.Leaf, path string, values map[string]any, report *WriteReport) error {
	c, err := w.codecs.Resolve(leaf.Type)
	if err != nil {
		w.logger.Warn("unknown field type, storing as text",
			"path", path,
			"type", leaf.Type,
		)
		report.warn(path, err)
	}

	v, err := c.Sanitize(values[path], f.Settings)
	if err != nil {
		w.logger.Warn("skipping invalid value",
			"objectID", objectID,
			"path", path,
			"error", err,
		)
		report.skip(path, err)
		return nil
	}

	if err := st.Set(ctx, objectID, path, v); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	report.WrittenPaths = append(report.WrittenPaths, path)
	return nil
}

// collectOrphans deletes every row key of the repeating group at base whose
// row index is count or more. Running it again with the same count deletes
// nothing.
func (w *Writer) collectOrphans(ctx context.Context, st store.AttributeStore, objectID, base string, count int, report *WriteReport) error {
	p := keys.RowKeys(base)
	matched, err := st.KeysMatching(ctx, objectID, p)
	if err != nil {
		return fmt.Errorf("collect %s: %w", base, err)
	}

	for _, key := range matched {
		i, ok := p.RowIndex(key)
		if !ok || i < count {
			continue
		}
		if err := st.Delete(ctx, objectID, key); err != nil {
			return fmt.Errorf("collect %s: %w", base, err)
		}
		w.logger.Debug("deleted orphaned row key",
			"objectID", objectID,
			"key", key,
			"count", count,
		)
		report.DeletedPaths = append(report.DeletedPaths, key)
	}
	return nil
}

// DeleteField removes every key owned by a root field of an object: a
// leaf's key, a repeating group's counter and all of its rows, or the keys
// of a single group's children. It returns the deleted keys.
func (w *Writer) DeleteField(ctx context.Context, kind store.ObjectKind, objectID string, field *schema.Field) ([]string, error) {
	st, err := w.stores.For(kind)
	if err != nil {
		return nil, err
	}
	if err := checkTree([]*schema.Field{field}, w.config.MaxDepth); err != nil {
		return nil, err
	}

	report := &WriteReport{}
	var pending stack
	pending.pushChildren([]*schema.Field{field}, keys.RootPath)

	for len(pending) > 0 {
		fr := pending.pop()

		switch k := fr.field.Kind.(type) {
		case schema.Leaf:
			if err := w.deleteKey(ctx, st, objectID, fr.path, report); err != nil {
				return report.DeletedPaths, err
			}

		case schema.RepeatingGroup:
			// Rows at every depth share the group's key prefix.
			if err := w.collectOrphans(ctx, st, objectID, fr.path, 0, report); err != nil {
				return report.DeletedPaths, err
			}
			if err := w.deleteKey(ctx, st, objectID, fr.path, report); err != nil {
				return report.DeletedPaths, err
			}

		case schema.SingleGroup:
			base := fr.path
			pending.pushChildren(k.Children, func(name string) string {
				return keys.ChildPath(base, name)
			})

		default:
			return report.DeletedPaths, fmt.Errorf("%w: %s", ErrUnsupportedKind, fr.path)
		}
	}

	w.logger.Info("field deleted",
		"kind", kind,
		"objectID", objectID,
		"field", field.Name,
		"deleted", len(report.DeletedPaths),
	)
	return report.DeletedPaths, nil
}

// deleteKey deletes key if it exists.
func (w *Writer) deleteKey(ctx context.Context, st store.AttributeStore, objectID, key string, report *WriteReport) error {
	_, ok, err := st.Get(ctx, objectID, key)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	if err := st.Delete(ctx, objectID, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	report.DeletedPaths = append(report.DeletedPaths, key)
	return nil
}

// Purge deletes every attribute of an object, including keys no field tree
// owns. It is used when the host object itself is deleted.
func (w *Writer) Purge(ctx context.Context, kind store.ObjectKind, objectID string) (deleted int, err error) {
	ctx, span := startSpan(ctx, "lattice.purge", kind, objectID)
	defer func() {
		span.SetAttributes(attribute.Int("lattice.deleted", deleted))
		endSpan(span, err)
	}()

	st, err := w.stores.For(kind)
	if err != nil {
		return 0, err
	}

	all, err := st.KeysMatching(ctx, objectID, keys.All())
	if err != nil {
		return 0, fmt.Errorf("purge %s %s: %w", kind, objectID, err)
	}

	var errs []error
	for _, key := range all {
		if err := st.Delete(ctx, objectID, key); err != nil {
			errs = append(errs, fmt.Errorf("purge %s: %w", key, err))
			continue
		}
		deleted++
	}
	return deleted, errors.Join(errs...)
}
