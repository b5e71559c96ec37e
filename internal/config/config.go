// Package config loads settings for the lattice binaries from the
// environment, an optional .env file and command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/jacentio/lattice/fields"
	"github.com/jacentio/lattice/store"
)

// Backend names.
const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
	BackendPostgres = "postgres"
)

// ErrUnknownBackend is returned for an unsupported LATTICE_BACKEND.
var ErrUnknownBackend = errors.New("lattice: unknown backend")

// Config holds settings shared by the lattice binaries.
type Config struct {
	// Backend selects the attribute store: memory, dynamodb or postgres.
	Backend string

	// PostgresDSN is the connection string for the postgres backend.
	PostgresDSN string

	// AWSProfile selects a shared config profile for the dynamodb backend.
	AWSProfile string

	// SchemaFile is the YAML field schema used by the CLI.
	SchemaFile string

	// SchemaCacheSize bounds the schema definition cache.
	SchemaCacheSize int

	// LogLevel is the minimum level logged.
	LogLevel slog.Level

	Store  store.Config
	Fields fields.Config
}

// Load reads a .env file when present and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Backend:         strings.ToLower(firstNonEmpty(os.Getenv("LATTICE_BACKEND"), BackendMemory)),
		PostgresDSN:     strings.TrimSpace(os.Getenv("LATTICE_PG_DSN")),
		AWSProfile:      strings.TrimSpace(os.Getenv("AWS_PROFILE")),
		SchemaFile:      strings.TrimSpace(os.Getenv("LATTICE_SCHEMA")),
		SchemaCacheSize: envInt("LATTICE_SCHEMA_CACHE", 1024),
		LogLevel:        envLevel("LATTICE_LOG_LEVEL", slog.LevelInfo),
		Store:           store.DefaultConfig(),
		Fields:          fields.DefaultConfig(),
	}

	cfg.Store.PostTable = firstNonEmpty(os.Getenv("LATTICE_POST_TABLE"), cfg.Store.PostTable)
	cfg.Store.TermTable = firstNonEmpty(os.Getenv("LATTICE_TERM_TABLE"), cfg.Store.TermTable)
	cfg.Store.UserTable = firstNonEmpty(os.Getenv("LATTICE_USER_TABLE"), cfg.Store.UserTable)
	cfg.Store.PageSize = int32(envInt("LATTICE_PAGE_SIZE", 0))
	cfg.Fields.MaxDepth = envInt("LATTICE_MAX_DEPTH", cfg.Fields.MaxDepth)
	cfg.Fields.MaxRows = envInt("LATTICE_MAX_ROWS", cfg.Fields.MaxRows)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RegisterFlags binds flags that override the loaded values.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Backend, "backend", c.Backend, "attribute store: memory, dynamodb or postgres")
	fs.StringVar(&c.PostgresDSN, "pg.dsn", c.PostgresDSN, "PostgreSQL connection string")
	fs.StringVar(&c.AWSProfile, "aws.profile", c.AWSProfile, "AWS shared config profile")
	fs.StringVar(&c.SchemaFile, "schema", c.SchemaFile, "YAML field schema file")
	fs.IntVar(&c.Fields.MaxDepth, "max-depth", c.Fields.MaxDepth, "deepest allowed container nesting")
	fs.IntVar(&c.Fields.MaxRows, "max-rows", c.Fields.MaxRows, "largest row count of one repeating group")
}

// Validate normalises the backend name and checks values that cannot be
// defaulted.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case BackendMemory, BackendDynamoDB:
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("%w: postgres requires LATTICE_PG_DSN", ErrUnknownBackend)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	return nil
}

// Logger returns a text logger on stderr at the configured level.
func (c *Config) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envLevel(key string, fallback slog.Level) slog.Level {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return fallback
	}
	return level
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
