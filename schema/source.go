package schema

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Definition is one flat, authored field record as held by a Source.
type Definition struct {
	ID       string
	ParentID string
	Name     string
	Type     string
	Order    int
	Settings Settings
	Default  any
}

// Source supplies field definitions by parent.
type Source interface {
	// Children returns the definitions whose parent is parentID.
	Children(ctx context.Context, parentID string) ([]Definition, error)
}

// DefaultMaxDepth bounds container nesting when callers pass no limit.
const DefaultMaxDepth = 32

type pendingContainer struct {
	field *Field
	depth int
}

// Load assembles the field tree rooted at rootID. Siblings are ordered by
// Order, names are validated, and the walk fails with ErrCircularSchema when a
// definition is reached twice or containers nest deeper than maxDepth.
func Load(ctx context.Context, src Source, rootID string, maxDepth int) ([]*Field, error) {
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}
	seen := map[string]struct{}{}

	defs, err := src.Children(ctx, rootID)
	if err != nil {
		return nil, fmt.Errorf("load children of %q: %w", rootID, err)
	}
	roots, err := buildLevel(defs, seen)
	if err != nil {
		return nil, err
	}

	var stack []pendingContainer
	for i := len(roots) - 1; i >= 0; i-- {
		if isContainerType(roots[i].Type()) {
			stack = append(stack, pendingContainer{field: roots[i], depth: 1})
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.depth > maxDepth {
			return nil, fmt.Errorf("%w: %q nests deeper than %d", ErrCircularSchema, top.field.Name, maxDepth)
		}
		if top.field.ID == "" {
			return nil, fmt.Errorf("%w: container %q has no id", ErrInvalidSchema, top.field.Name)
		}

		defs, err := src.Children(ctx, top.field.ID)
		if err != nil {
			return nil, fmt.Errorf("load children of %q: %w", top.field.ID, err)
		}
		kids, err := buildLevel(defs, seen)
		if err != nil {
			return nil, err
		}

		switch top.field.Kind.(type) {
		case RepeatingGroup:
			top.field.Kind = RepeatingGroup{Children: kids}
		case SingleGroup:
			top.field.Kind = SingleGroup{Children: kids}
		}

		for i := len(kids) - 1; i >= 0; i-- {
			if isContainerType(kids[i].Type()) {
				stack = append(stack, pendingContainer{field: kids[i], depth: top.depth + 1})
			}
		}
	}

	return roots, nil
}

// buildLevel converts one sibling list into fields.
func buildLevel(defs []Definition, seen map[string]struct{}) ([]*Field, error) {
	sorted := make([]Definition, len(defs))
	copy(sorted, defs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	names := make(map[string]struct{}, len(sorted))
	fields := make([]*Field, 0, len(sorted))
	for _, d := range sorted {
		if !ValidName(d.Name) {
			return nil, fmt.Errorf("%w: name %q must match [a-z0-9_]+", ErrInvalidSchema, d.Name)
		}
		if _, dup := names[d.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate sibling name %q", ErrInvalidSchema, d.Name)
		}
		names[d.Name] = struct{}{}

		if d.ID != "" {
			if _, again := seen[d.ID]; again {
				return nil, fmt.Errorf("%w: definition %q reached twice", ErrCircularSchema, d.ID)
			}
			seen[d.ID] = struct{}{}
		}
		fields = append(fields, fromDefinition(d))
	}
	return fields, nil
}

func isContainerType(t string) bool {
	return t == TypeRepeater || t == TypeGroup
}

func fromDefinition(d Definition) *Field {
	f := &Field{
		ID:       d.ID,
		ParentID: d.ParentID,
		Name:     d.Name,
		Order:    d.Order,
		Settings: d.Settings,
		Default:  d.Default,
	}
	switch d.Type {
	case TypeRepeater:
		f.Kind = RepeatingGroup{}
	case TypeGroup:
		f.Kind = SingleGroup{}
	default:
		f.Kind = Leaf{Type: d.Type}
	}
	return f
}

// StaticSource is an in-memory Source keyed by parent ID.
type StaticSource struct {
	mu       sync.RWMutex
	byParent map[string][]Definition
}

// NewStaticSource creates a StaticSource holding defs.
func NewStaticSource(defs ...Definition) *StaticSource {
	s := &StaticSource{byParent: make(map[string][]Definition)}
	for _, d := range defs {
		s.Add(d)
	}
	return s
}

// Add registers a definition under its parent.
func (s *StaticSource) Add(d Definition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byParent[d.ParentID] = append(s.byParent[d.ParentID], d)
}

// Children implements Source.
func (s *StaticSource) Children(_ context.Context, parentID string) ([]Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	defs := s.byParent[parentID]
	out := make([]Definition, len(defs))
	copy(out, defs)
	return out, nil
}
