// Package keys composes flat attribute keys for nested field schemas.
//
// Every stored value is addressed by a single string key. Nesting is encoded
// by concatenating name segments with "_", inserting a decimal row index only
// at repeating-group boundaries:
//
//	gallery                       root field
//	seo_title                     child "title" of single group "seo"
//	gallery_0_caption             child "caption" of row 0 of "gallery"
//	team_0_achievements_1_title   two nested repeating groups
package keys

import (
	"regexp"
	"strconv"

	"github.com/jacentio/lattice/store"
)

// RootPath returns the key of a top-level field.
func RootPath(name string) string {
	return name
}

// ChildPath returns the key of a field nested in a single group at base.
func ChildPath(base, name string) string {
	return base + "_" + name
}

// RowPath returns the key of a field in row i of the repeating group at base.
func RowPath(base string, i int, name string) string {
	return base + "_" + strconv.Itoa(i) + "_" + name
}

// RowKeys matches every key stored under any row of the repeating group at
// base, at any depth. The row index is the digit run right after base.
func RowKeys(base string) store.Pattern {
	return store.Pattern{
		Prefix: base + "_",
		Expr:   regexp.MustCompile("^" + regexp.QuoteMeta(base) + `_(\d+)_.+$`),
	}
}

// RowLeaf matches the key of child in any row of the repeating group at base.
func RowLeaf(base, child string) store.Pattern {
	return store.Pattern{
		Prefix: base + "_",
		Expr:   regexp.MustCompile("^" + regexp.QuoteMeta(base) + `_(\d+)_` + regexp.QuoteMeta(child) + "$"),
	}
}

// All matches every key of an object.
func All() store.Pattern {
	return store.Pattern{}
}
