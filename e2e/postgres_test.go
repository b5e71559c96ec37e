//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jacentio/lattice/codec"
	"github.com/jacentio/lattice/fields"
	"github.com/jacentio/lattice/schema"
	"github.com/jacentio/lattice/store"
)

// openPostgres returns stores over fresh per-test tables, or skips the test
// when LATTICE_PG_DSN is unset.
func openPostgres(t *testing.T) *store.Stores {
	t.Helper()
	dsn := os.Getenv("LATTICE_PG_DSN")
	if dsn == "" {
		t.Skip("LATTICE_PG_DSN not set")
	}

	ctx := context.Background()
	db, err := store.OpenPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("OpenPostgres failed: %v", err)
	}

	suffix := uuid.New().String()[:8]
	cfg := store.Config{
		PostTable: fmt.Sprintf("lattice_e2e_%s_postmeta", suffix),
		TermTable: fmt.Sprintf("lattice_e2e_%s_termmeta", suffix),
		UserTable: fmt.Sprintf("lattice_e2e_%s_usermeta", suffix),
	}
	for _, kind := range store.Kinds() {
		if err := store.NewPostgresStore(db, kind, cfg).EnsureSchema(ctx); err != nil {
			t.Fatalf("EnsureSchema failed: %v", err)
		}
	}

	t.Cleanup(func() {
		for _, kind := range store.Kinds() {
			table := pgx.Identifier{cfg.Table(kind)}.Sanitize()
			if _, err := db.ExecContext(context.Background(), "DROP TABLE IF EXISTS "+table); err != nil {
				t.Logf("Warning: failed to drop %s: %v", table, err)
			}
		}
		_ = db.Close()
	})

	return store.NewPostgresStores(db, cfg)
}

func TestPostgres_WriteRead(t *testing.T) {
	stores := openPostgres(t)
	ctx := context.Background()
	w := fields.NewWriter(stores, codec.DefaultRegistry(), fields.DefaultConfig(), nil)
	r := fields.NewReader(stores, codec.DefaultRegistry(), fields.DefaultConfig(), nil)

	tree := []*schema.Field{
		schema.NewRepeater("links",
			schema.NewLeaf("link", "link"),
			schema.NewLeaf("tags", "taxonomy"),
		),
		schema.NewLeaf("featured", "true_false"),
	}

	if _, err := w.Write(ctx, store.KindPost, "1", tree, map[string]any{
		"links":        3,
		"links_0_link": "https://example.com",
		"links_0_tags": "4,5",
		"links_1_link": map[string]any{"url": "https://a.example", "target": "_blank"},
		"links_2_link": "",
		"featured":     true,
	}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := r.Read(ctx, store.KindPost, "1", tree)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	want := fields.ValueTree{
		"links": []fields.ValueTree{
			{"link": map[string]string{"url": "https://example.com", "title": "", "target": ""}, "tags": []int64{4, 5}},
			{"link": map[string]string{"url": "https://a.example", "title": "", "target": "_blank"}, "tags": []int64{}},
			{"link": map[string]string{"url": "", "title": "", "target": ""}, "tags": []int64{}},
		},
		"featured": int64(1),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("read mismatch (-want +got):\n%s", diff)
	}
}

func TestPostgres_LikeWildcardsAreLiteral(t *testing.T) {
	stores := openPostgres(t)
	ctx := context.Background()
	posts, _ := stores.For(store.KindPost)

	for _, key := range []string{"ab_0_c", "abx0_c", "ab_1_c"} {
		if err := posts.Set(ctx, "1", key, "v"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	keys, err := posts.KeysMatching(ctx, "1", store.Pattern{Prefix: "ab_"})
	if err != nil {
		t.Fatalf("KeysMatching failed: %v", err)
	}
	if diff := cmp.Diff([]string{"ab_0_c", "ab_1_c"}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}
