package fields_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"

	"github.com/jacentio/lattice/codec"
	"github.com/jacentio/lattice/fields"
	"github.com/jacentio/lattice/schema"
	"github.com/jacentio/lattice/store"
)

type fieldTree = []*schema.Field

const objectID = "42"

var ctx = context.Background()

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type harness struct {
	mem    *store.MemoryStore
	writer *fields.Writer
	reader *fields.Reader
}

// newHarness wires a Writer and Reader to one post store.
func newHarness(t *testing.T, st store.AttributeStore) *harness {
	t.Helper()
	return newHarnessWithConfig(t, st, fields.DefaultConfig())
}

func newHarnessWithConfig(t *testing.T, st store.AttributeStore, cfg fields.Config) *harness {
	t.Helper()
	mem := store.NewMemoryStore()
	if st == nil {
		st = mem
	}
	stores := store.NewStores()
	stores.Register(store.KindPost, st)

	registry := codec.DefaultRegistry()
	return &harness{
		mem:    mem,
		writer: fields.NewWriter(stores, registry, cfg, quietLogger()),
		reader: fields.NewReader(stores, registry, cfg, quietLogger()),
	}
}

func (h *harness) mustWrite(t *testing.T, tree fieldTree, values map[string]any) *fields.WriteReport {
	t.Helper()
	report, err := h.writer.Write(ctx, store.KindPost, objectID, tree, values)
	if err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}
	return report
}

func (h *harness) mustRead(t *testing.T, tree fieldTree) fields.ValueTree {
	t.Helper()
	values, err := h.reader.Read(ctx, store.KindPost, objectID, tree)
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	return values
}

// jsonStore stores values as JSON text, so reads return the generic
// decodings (float64, []any, map[string]any) a persistent backend returns.
type jsonStore struct {
	*store.MemoryStore
}

func (s jsonStore) Set(ctx context.Context, objectID, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.MemoryStore.Set(ctx, objectID, key, string(raw))
}

func (s jsonStore) Get(ctx context.Context, objectID, key string) (any, bool, error) {
	raw, ok, err := s.MemoryStore.Get(ctx, objectID, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	var v any
	if err := json.Unmarshal([]byte(raw.(string)), &v); err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// failingStore fails Set after failAfter successful calls, and every Get
// when failGets is set.
type failingStore struct {
	*store.MemoryStore
	failAfter int
	failGets  bool
	sets      int
}

func (s *failingStore) Get(ctx context.Context, objectID, key string) (any, bool, error) {
	if s.failGets {
		return nil, false, fmt.Errorf("%w: get %s: timeout", store.ErrStoreUnavailable, key)
	}
	return s.MemoryStore.Get(ctx, objectID, key)
}

func (s *failingStore) Set(ctx context.Context, objectID, key string, value any) error {
	if s.sets >= s.failAfter {
		return fmt.Errorf("%w: set %s: connection reset", store.ErrStoreUnavailable, key)
	}
	s.sets++
	return s.MemoryStore.Set(ctx, objectID, key, value)
}
