package schema

import (
	"fmt"
	"regexp"
)

// Container type names. Any other definition type is a leaf type.
const (
	TypeRepeater = "repeater"
	TypeGroup    = "group"
)

var namePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// ValidName reports whether name is a legal field name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Field is one node of a field tree.
type Field struct {
	// ID uniquely identifies the definition in its source.
	ID string

	// ParentID is the owning field's ID, or the field group's ID for roots.
	ParentID string

	// Name is the storage segment, unique among siblings.
	Name string

	// Kind is Leaf, RepeatingGroup or SingleGroup.
	Kind Kind

	// Order positions the field among its siblings.
	Order int

	// Settings holds type-specific options (choices, min, max, ...).
	Settings Settings

	// Default is applied on read when the field's key was never stored.
	Default any
}

// Kind is the closed set of field shapes.
type Kind interface {
	kind()
}

// Leaf is a value-holding field of the named field type.
type Leaf struct {
	Type string
}

// RepeatingGroup owns zero or more rows of Children.
type RepeatingGroup struct {
	Children []*Field
}

// SingleGroup owns exactly one set of Children.
type SingleGroup struct {
	Children []*Field
}

func (Leaf) kind()           {}
func (RepeatingGroup) kind() {}
func (SingleGroup) kind()    {}

// Children returns the direct children of a container field, or nil for leaves.
func (f *Field) Children() []*Field {
	switch k := f.Kind.(type) {
	case RepeatingGroup:
		return k.Children
	case SingleGroup:
		return k.Children
	default:
		return nil
	}
}

// Type returns the definition type name of the field.
func (f *Field) Type() string {
	switch k := f.Kind.(type) {
	case Leaf:
		return k.Type
	case RepeatingGroup:
		return TypeRepeater
	case SingleGroup:
		return TypeGroup
	default:
		return ""
	}
}

func (f *Field) String() string {
	return fmt.Sprintf("%s(%s)", f.Name, f.Type())
}

// Find returns the root field named name.
func Find(tree []*Field, name string) (*Field, bool) {
	for _, f := range tree {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// NewLeaf builds a leaf field.
func NewLeaf(name, fieldType string) *Field {
	return &Field{Name: name, Kind: Leaf{Type: fieldType}}
}

// NewRepeater builds a repeating group field.
func NewRepeater(name string, children ...*Field) *Field {
	return &Field{Name: name, Kind: RepeatingGroup{Children: children}}
}

// NewGroup builds a single group field.
func NewGroup(name string, children ...*Field) *Field {
	return &Field{Name: name, Kind: SingleGroup{Children: children}}
}

// WithDefault sets the default value and returns f.
func (f *Field) WithDefault(v any) *Field {
	f.Default = v
	return f
}

// WithSettings sets the type settings and returns f.
func (f *Field) WithSettings(s Settings) *Field {
	f.Settings = s
	return f
}
