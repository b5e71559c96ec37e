package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-json"

	"github.com/jacentio/lattice/codec"
	"github.com/jacentio/lattice/fields"
	"github.com/jacentio/lattice/internal/config"
	"github.com/jacentio/lattice/schema"
	"github.com/jacentio/lattice/store"
)

// app holds what every object command needs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	stores *store.Stores
	close  func() error

	kind     store.ObjectKind
	objectID string
	group    string
}

// objectFlags registers the flags shared by object commands.
type objectFlags struct {
	kind     string
	objectID string
	group    string
}

func newFlagSet(name string, cfg *config.Config, withSchema bool) (*flag.FlagSet, *objectFlags) {
	of := &objectFlags{kind: string(store.KindPost)}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	cfg.RegisterFlags(fs)
	fs.StringVar(&of.kind, "kind", of.kind, "object kind")
	fs.StringVar(&of.objectID, "id", "", "object id")
	if withSchema {
		fs.StringVar(&of.group, "group", "", "field group id")
	}
	return fs, of
}

// open validates the parsed flags and connects to the backend.
func open(ctx context.Context, cfg *config.Config, of *objectFlags) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	kind, err := store.ParseObjectKind(of.kind)
	if err != nil {
		return nil, err
	}
	if of.objectID == "" {
		return nil, errors.New("-id is required")
	}

	stores, closeFn, err := cfg.OpenStores(ctx)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:      cfg,
		logger:   cfg.Logger(),
		stores:   stores,
		close:    closeFn,
		kind:     kind,
		objectID: of.objectID,
		group:    of.group,
	}, nil
}

func (a *app) writer() *fields.Writer {
	return fields.NewWriter(a.stores, codec.DefaultRegistry(), a.cfg.Fields, a.logger)
}

func (a *app) reader() *fields.Reader {
	return fields.NewReader(a.stores, codec.DefaultRegistry(), a.cfg.Fields, a.logger)
}

// tree loads the field tree of the selected group from the schema file.
func (a *app) tree(ctx context.Context) ([]*schema.Field, error) {
	if a.cfg.SchemaFile == "" {
		return nil, errors.New("-schema or LATTICE_SCHEMA is required")
	}
	src, err := schema.LoadYAMLFile(a.cfg.SchemaFile)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	group := a.group
	if group == "" {
		groups := src.Groups()
		if len(groups) == 0 {
			return nil, fmt.Errorf("%w: %s has no field groups", schema.ErrInvalidSchema, a.cfg.SchemaFile)
		}
		group = groups[0]
	}

	cached, err := schema.NewCachedSource(src, a.cfg.SchemaCacheSize)
	if err != nil {
		return nil, err
	}
	return schema.Load(ctx, cached, group, a.cfg.Fields.MaxDepth)
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func readJSON(path string, v any) error {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	return json.NewDecoder(r).Decode(v)
}
