package fields

import (
	"errors"
	"testing"

	"github.com/jacentio/lattice/schema"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		input    any
		expected int
		wantErr  bool
	}{
		{nil, 0, false},
		{"", 0, false},
		{" 3 ", 3, false},
		{"2.0", 2, false},
		{int64(4), 4, false},
		{5, 5, false},
		{7.9, 7, false},
		{-1, 0, false},
		{"abc", 0, true},
		{"NaN", 0, true},
		{1e12, 0, true},
		{[]any{1}, 0, true},
	}

	for _, tt := range tests {
		got, err := parseCount(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidCount) {
				t.Errorf("parseCount(%#v): expected ErrInvalidCount, got %v", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.expected {
			t.Errorf("parseCount(%#v) = %d, %v; want %d", tt.input, got, err, tt.expected)
		}
	}
}

func TestStack_PopsInDeclaredOrder(t *testing.T) {
	children := []*schema.Field{
		schema.NewLeaf("a", "text"),
		schema.NewLeaf("b", "text"),
	}

	var s stack
	s.pushRows("rows", children, 2)

	var got []string
	for len(s) > 0 {
		got = append(got, s.pop().path)
	}
	want := []string{"rows_0_a", "rows_0_b", "rows_1_a", "rows_1_b"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxDepth != 32 {
		t.Errorf("expected MaxDepth 32, got %d", cfg.MaxDepth)
	}
	if cfg.MaxRows != 10000 {
		t.Errorf("expected MaxRows 10000, got %d", cfg.MaxRows)
	}

	cfg = Config{MaxDepth: -1}
	cfg.validate()
	if cfg.MaxDepth != 32 {
		t.Errorf("expected invalid MaxDepth to reset to 32, got %d", cfg.MaxDepth)
	}
	if cfg.MaxRows != 10000 {
		t.Errorf("expected unset MaxRows to default to 10000, got %d", cfg.MaxRows)
	}
}
