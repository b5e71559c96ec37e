package config

import (
	"errors"
	"flag"
	"log/slog"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"LATTICE_BACKEND", "LATTICE_PG_DSN", "LATTICE_MAX_DEPTH", "LATTICE_MAX_ROWS", "LATTICE_POST_TABLE", "LATTICE_PAGE_SIZE", "LATTICE_LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != BackendMemory {
		t.Errorf("expected backend 'memory', got %q", cfg.Backend)
	}
	if cfg.Fields.MaxDepth != 32 {
		t.Errorf("expected MaxDepth 32, got %d", cfg.Fields.MaxDepth)
	}
	if cfg.Fields.MaxRows != 10000 {
		t.Errorf("expected MaxRows 10000, got %d", cfg.Fields.MaxRows)
	}
	if cfg.Store.PostTable != "lattice_postmeta" {
		t.Errorf("expected PostTable 'lattice_postmeta', got %q", cfg.Store.PostTable)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("LATTICE_BACKEND", "DynamoDB")
	t.Setenv("LATTICE_MAX_DEPTH", "8")
	t.Setenv("LATTICE_MAX_ROWS", "250")
	t.Setenv("LATTICE_POST_TABLE", "posts_meta")
	t.Setenv("LATTICE_PAGE_SIZE", "50")
	t.Setenv("LATTICE_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != BackendDynamoDB {
		t.Errorf("expected backend 'dynamodb', got %q", cfg.Backend)
	}
	if cfg.Fields.MaxDepth != 8 {
		t.Errorf("expected MaxDepth 8, got %d", cfg.Fields.MaxDepth)
	}
	if cfg.Fields.MaxRows != 250 {
		t.Errorf("expected MaxRows 250, got %d", cfg.Fields.MaxRows)
	}
	if cfg.Store.PostTable != "posts_meta" || cfg.Store.PageSize != 50 {
		t.Errorf("unexpected store config %+v", cfg.Store)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
}

func TestLoad_InvalidBackend(t *testing.T) {
	tests := []struct {
		backend string
		dsn     string
	}{
		{"mysql", ""},
		{"postgres", ""},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			t.Setenv("LATTICE_BACKEND", tt.backend)
			t.Setenv("LATTICE_PG_DSN", tt.dsn)
			if _, err := Load(); !errors.Is(err, ErrUnknownBackend) {
				t.Errorf("expected ErrUnknownBackend, got %v", err)
			}
		})
	}
}

func TestRegisterFlags(t *testing.T) {
	cfg := &Config{Backend: BackendMemory}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)

	if err := fs.Parse([]string{"-backend", "postgres", "-pg.dsn", "postgres://localhost/db", "-max-depth", "4"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != BackendPostgres || cfg.PostgresDSN == "" || cfg.Fields.MaxDepth != 4 {
		t.Errorf("expected flags to override config, got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "  ", " b ", "c"); got != "b" {
		t.Errorf("expected 'b', got %q", got)
	}
	if got := firstNonEmpty(); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
