package fields

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jacentio/lattice/internal/keys"
	"github.com/jacentio/lattice/schema"
	"github.com/jacentio/lattice/store"
)

const tracerName = "github.com/jacentio/lattice/fields"

// frame is one pending unit of a tree walk.
type frame struct {
	field *schema.Field
	path  string

	// collect marks a deferred orphan collection for the repeating group
	// at path, run once all of its rows were visited.
	collect bool
	count   int
}

// stack is a LIFO of frames. Push children in reverse so they pop in
// declared order.
type stack []frame

func (s *stack) push(f frame) {
	*s = append(*s, f)
}

func (s *stack) pop() frame {
	old := *s
	f := old[len(old)-1]
	*s = old[:len(old)-1]
	return f
}

// pushChildren queues the children of a container, composing each child's
// key with compose.
func (s *stack) pushChildren(children []*schema.Field, compose func(name string) string) {
	for i := len(children) - 1; i >= 0; i-- {
		s.push(frame{field: children[i], path: compose(children[i].Name)})
	}
}

// pushRows queues count rows of a repeating group at base.
func (s *stack) pushRows(base string, children []*schema.Field, count int) {
	for i := count - 1; i >= 0; i-- {
		s.pushChildren(children, func(name string) string {
			return keys.RowPath(base, i, name)
		})
	}
}

// checkTree rejects trees nesting deeper than maxDepth container levels and
// fields without a Kind.
func checkTree(tree []*schema.Field, maxDepth int) error {
	type level struct {
		field *schema.Field
		depth int
	}
	pending := make([]level, 0, len(tree))
	for _, f := range tree {
		pending = append(pending, level{f, 0})
	}

	for len(pending) > 0 {
		l := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if l.field == nil {
			return fmt.Errorf("%w: nil field", ErrUnsupportedKind)
		}
		switch l.field.Kind.(type) {
		case schema.Leaf:
			continue
		case schema.RepeatingGroup, schema.SingleGroup:
		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedKind, l.field.Name)
		}

		if l.depth+1 > maxDepth {
			return fmt.Errorf("%w: %s nests deeper than %d levels", ErrCircularSchema, l.field.Name, maxDepth)
		}
		for _, c := range l.field.Children() {
			pending = append(pending, level{c, l.depth + 1})
		}
	}
	return nil
}

// parseCount converts a submitted or stored row count. Empty means zero;
// negative counts clamp to zero.
func parseCount(v any) (int, error) {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0, nil
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case float64:
		f = t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidCount, t)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("%w: %T", ErrInvalidCount, v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCount, v)
	}
	if f < 0 {
		return 0, nil
	}
	return int(f), nil
}

// startSpan opens a span for an object operation.
func startSpan(ctx context.Context, name string, kind store.ObjectKind, objectID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name,
		trace.WithAttributes(
			attribute.String("lattice.object_kind", string(kind)),
			attribute.String("lattice.object_id", objectID),
		),
	)
}

// endSpan records err on span, if any, and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
