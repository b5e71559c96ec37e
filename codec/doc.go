// Package codec normalises field values per field type.
//
// A [Codec] has three sides: Sanitize turns a submitted value into the
// canonical stored form, Default produces the value shown when a field was
// never stored, and Load turns whatever a store decoded back into the
// canonical form (stores may hand back float64 for integers, []any for lists
// or map[string]any for composites).
//
// Codecs are looked up in a [Registry] that callers construct and inject;
// [DefaultRegistry] returns a fresh registry holding the built-in types.
//
// # Canonical forms
//
//   - text, textarea, password, wysiwyg, select, radio, email, url,
//     date_picker, color_picker: string
//   - number, range: float64, or "" when empty
//   - true_false, toggle: int64 0 or 1
//   - relationship, gallery, taxonomy (and post_object, user with the
//     "multiple" setting): []int64
//   - image, file, page_link, post_object, user: int64, or "" when empty
//   - link: map[string]string with url, title and target
package codec
