package store

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// --- keyConditionExpr Tests ---

func TestKeyConditionExpr(t *testing.T) {
	if got := keyConditionExpr(""); got != "#id = :id" {
		t.Errorf("expected '#id = :id', got %q", got)
	}
	if got := keyConditionExpr("gallery_"); got != "#id = :id AND begins_with(#key, :prefix)" {
		t.Errorf("unexpected condition %q", got)
	}
}

func TestKeyExprValues(t *testing.T) {
	values := keyExprValues("42", "")
	if len(values) != 1 {
		t.Errorf("expected only :id without prefix, got %v", values)
	}
	values = keyExprValues("42", "gallery_")
	if p, ok := values[":prefix"].(*types.AttributeValueMemberS); !ok || p.Value != "gallery_" {
		t.Errorf("expected :prefix 'gallery_', got %#v", values[":prefix"])
	}
}

func TestItemKey(t *testing.T) {
	key := itemKey("42", "title")
	if stringAttr(key, attrObjectID) != "42" || stringAttr(key, attrKey) != "title" {
		t.Errorf("unexpected key %#v", key)
	}
}

// --- encodeValue / decodeValue Tests ---

func TestEncodeValue_EmptyStringStaysString(t *testing.T) {
	av, err := encodeValue("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, ok := av.(*types.AttributeValueMemberS)
	if !ok || s.Value != "" {
		t.Errorf("expected empty S attribute, got %#v", av)
	}
}

func TestEncodeValue_Nil(t *testing.T) {
	av, _ := encodeValue(nil)
	if _, ok := av.(*types.AttributeValueMemberNULL); !ok {
		t.Errorf("expected NULL attribute, got %#v", av)
	}
}

func TestEncodeDecode_Number(t *testing.T) {
	av, err := encodeValue(int64(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, ok := av.(*types.AttributeValueMemberN); !ok || n.Value != "3" {
		t.Errorf("expected N '3', got %#v", av)
	}
	v, err := decodeValue(av)
	if err != nil || v != 3.0 {
		t.Errorf("expected 3.0, got %#v (%v)", v, err)
	}
}

func TestEncodeDecode_IDList(t *testing.T) {
	av, err := encodeValue([]int64{4, 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := decodeValue(av)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, ok := v.([]any)
	if !ok || len(list) != 2 || list[0] != 4.0 {
		t.Errorf("expected [4 5], got %#v", v)
	}
}

func TestDecodeValue_Missing(t *testing.T) {
	v, err := decodeValue(nil)
	if err != nil || v != nil {
		t.Errorf("expected nil, got %#v (%v)", v, err)
	}
}

// --- escapeLike Tests ---

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"gallery_", `gallery\_`},
		{"100%", `100\%`},
		{`a\b`, `a\\b`},
		{"team_0_achievements_", `team\_0\_achievements\_`},
	}

	for _, tt := range tests {
		if got := escapeLike(tt.input); got != tt.expected {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestPostgresStore_Naming(t *testing.T) {
	s := NewPostgresStore(nil, KindTerm, DefaultConfig())
	if s.table != "lattice_termmeta" || s.idColumn != "term_id" {
		t.Errorf("expected lattice_termmeta/term_id, got %s/%s", s.table, s.idColumn)
	}

	q := s.query(`SELECT meta_value FROM %[1]s WHERE %[2]s = $1`)
	if q != `SELECT meta_value FROM "lattice_termmeta" WHERE "term_id" = $1` {
		t.Errorf("unexpected query %q", q)
	}

	stmts := s.schemaStatements()
	if len(stmts) != 2 {
		t.Fatalf("expected 2 schema statements, got %d", len(stmts))
	}
}

func TestConfig_ValidateClampsPageSize(t *testing.T) {
	cfg := Config{PageSize: 5000}
	cfg.validate()
	if cfg.PageSize != 1000 {
		t.Errorf("expected PageSize 1000, got %d", cfg.PageSize)
	}
	cfg = Config{PageSize: -1}
	cfg.validate()
	if cfg.PageSize != 0 {
		t.Errorf("expected PageSize 0, got %d", cfg.PageSize)
	}
}
