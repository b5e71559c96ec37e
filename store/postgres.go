package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore provides attribute storage for one object kind in a
// PostgreSQL table shaped like the host's meta tables:
//
//	lattice_postmeta(post_id, meta_key, meta_value, updated_at)
//
// Values are stored as JSON text.
type PostgresStore struct {
	db       *sql.DB
	table    string
	idColumn string
}

// OpenPostgres opens and pings a database through the pgx driver.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, unavailable("ping", err)
	}
	return db, nil
}

// NewPostgresStore creates a store for kind using the table named in config.
func NewPostgresStore(db *sql.DB, kind ObjectKind, config Config) *PostgresStore {
	return &PostgresStore{
		db:       db,
		table:    config.Table(kind),
		idColumn: string(kind) + "_id",
	}
}

// NewPostgresStores creates a router with one PostgresStore per kind.
func NewPostgresStores(db *sql.DB, config Config) *Stores {
	s := NewStores()
	for _, kind := range Kinds() {
		s.Register(kind, NewPostgresStore(db, kind, config))
	}
	return s
}

// EnsureSchema creates the table and its key-prefix index when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range s.schemaStatements() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return unavailable("ensure schema "+s.table, err)
		}
	}
	return nil
}

func (s *PostgresStore) schemaStatements() []string {
	table := pgx.Identifier{s.table}.Sanitize()
	id := pgx.Identifier{s.idColumn}.Sanitize()
	index := pgx.Identifier{s.table + "_key_prefix"}.Sanitize()
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s TEXT NOT NULL,
	meta_key TEXT NOT NULL,
	meta_value TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (%s, meta_key)
)`, table, id, id),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (%s, meta_key text_pattern_ops)`, index, table, id),
	}
}

func (s *PostgresStore) query(format string) string {
	return fmt.Sprintf(format, pgx.Identifier{s.table}.Sanitize(), pgx.Identifier{s.idColumn}.Sanitize())
}

// Get implements AttributeStore.
func (s *PostgresStore) Get(ctx context.Context, objectID, key string) (any, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		s.query(`SELECT meta_value FROM %[1]s WHERE %[2]s = $1 AND meta_key = $2`),
		objectID, key,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, unavailable("get "+key, err)
	}

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, true, nil
}

// Set implements AttributeStore.
func (s *PostgresStore) Set(ctx context.Context, objectID, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx,
		s.query(`INSERT INTO %[1]s (%[2]s, meta_key, meta_value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (%[2]s, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value, updated_at = now()`),
		objectID, key, string(raw),
	)
	return unavailable("set "+key, err)
}

// Delete implements AttributeStore.
func (s *PostgresStore) Delete(ctx context.Context, objectID, key string) error {
	_, err := s.db.ExecContext(ctx,
		s.query(`DELETE FROM %[1]s WHERE %[2]s = $1 AND meta_key = $2`),
		objectID, key,
	)
	return unavailable("delete "+key, err)
}

// KeysMatching implements AttributeStore. The pattern prefix is pushed down
// as a LIKE clause; the full pattern is applied to the returned keys.
func (s *PostgresStore) KeysMatching(ctx context.Context, objectID string, p Pattern) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		s.query(`SELECT meta_key FROM %[1]s WHERE %[2]s = $1 AND meta_key LIKE $2 ESCAPE '\' ORDER BY meta_key`),
		objectID, escapeLike(p.Prefix)+"%",
	)
	if err != nil {
		return nil, unavailable("query "+p.String(), err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, unavailable("scan "+p.String(), err)
		}
		if p.Match(key) {
			keys = append(keys, key)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("query "+p.String(), err)
	}
	return keys, nil
}

// escapeLike escapes LIKE wildcards. Field keys are full of "_", which LIKE
// would otherwise treat as a single-character wildcard.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
