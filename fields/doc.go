// Package fields writes field trees to flat attribute stores and reads them
// back.
//
// A Writer stores each leaf under the key composed from its position in the
// tree. Repeating groups also store their row count under their own key and
// prune rows beyond it; single groups only extend the key of their children.
// A Reader mirrors the Writer, falling back to row-count inference for
// repeating groups written without a counter.
//
// Basic usage:
//
//	stores := store.NewMemoryStores()
//	w := fields.NewWriter(stores, codec.DefaultRegistry(), fields.DefaultConfig(), nil)
//	report, err := w.Write(ctx, store.KindPost, "42", tree, map[string]any{
//	    "gallery":           2,
//	    "gallery_0_caption": "A",
//	    "gallery_1_caption": "B",
//	})
//
//	r := fields.NewReader(stores, codec.DefaultRegistry(), fields.DefaultConfig(), nil)
//	values, err := r.Read(ctx, store.KindPost, "42", tree)
//	// values["gallery"] == []fields.ValueTree{{"caption": "A"}, {"caption": "B"}}
package fields
