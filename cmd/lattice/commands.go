package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jacentio/lattice/codec"
	"github.com/jacentio/lattice/fields"
	"github.com/jacentio/lattice/internal/config"
	"github.com/jacentio/lattice/schema"
)

func cmdRead(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	fs, of := newFlagSet("read", cfg, true)
	flat := fs.Bool("flat", false, "print flat storage keys")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, readUsage)
		return err
	}

	ctx := context.Background()
	a, err := open(ctx, cfg, of)
	if err != nil {
		fmt.Fprint(os.Stderr, readUsage)
		return err
	}
	defer a.close()

	tree, err := a.tree(ctx)
	if err != nil {
		return err
	}
	values, err := a.reader().Read(ctx, a.kind, a.objectID, tree)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", a.kind, a.objectID, err)
	}

	if *flat {
		return printJSON(os.Stdout, fields.Flatten(tree, values))
	}
	return printJSON(os.Stdout, values)
}

func cmdWrite(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	fs, of := newFlagSet("write", cfg, true)
	in := fs.String("in", "-", "JSON values file")
	nested := fs.Bool("nested", false, "input is a value tree")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, writeUsage)
		return err
	}

	ctx := context.Background()
	a, err := open(ctx, cfg, of)
	if err != nil {
		fmt.Fprint(os.Stderr, writeUsage)
		return err
	}
	defer a.close()

	tree, err := a.tree(ctx)
	if err != nil {
		return err
	}

	var values map[string]any
	if err := readJSON(*in, &values); err != nil {
		return fmt.Errorf("decode values: %w", err)
	}
	if *nested {
		values = fields.Flatten(tree, values)
	}

	report, err := a.writer().Write(ctx, a.kind, a.objectID, tree, values)
	if report != nil {
		if perr := printJSON(os.Stdout, reportJSON(report)); perr != nil {
			return perr
		}
	}
	if err != nil {
		return fmt.Errorf("write %s %s: %w", a.kind, a.objectID, err)
	}
	if !report.OK() {
		return fmt.Errorf("%d field(s) skipped", len(report.Skipped))
	}
	return nil
}

func cmdDeleteField(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	fs, of := newFlagSet("delete-field", cfg, true)
	name := fs.String("field", "", "root field name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, deleteFieldUsage)
		return err
	}
	if *name == "" {
		fmt.Fprint(os.Stderr, deleteFieldUsage)
		return errors.New("-field is required")
	}

	ctx := context.Background()
	a, err := open(ctx, cfg, of)
	if err != nil {
		fmt.Fprint(os.Stderr, deleteFieldUsage)
		return err
	}
	defer a.close()

	tree, err := a.tree(ctx)
	if err != nil {
		return err
	}
	field, ok := schema.Find(tree, *name)
	if !ok {
		return fmt.Errorf("field %q not found in group", *name)
	}

	deleted, err := a.writer().DeleteField(ctx, a.kind, a.objectID, field)
	if err != nil {
		return fmt.Errorf("delete %s: %w", *name, err)
	}
	return printJSON(os.Stdout, map[string]any{"deleted": deleted})
}

func cmdPurge(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	fs, of := newFlagSet("purge", cfg, false)
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, purgeUsage)
		return err
	}

	ctx := context.Background()
	a, err := open(ctx, cfg, of)
	if err != nil {
		fmt.Fprint(os.Stderr, purgeUsage)
		return err
	}
	defer a.close()

	n, err := a.writer().Purge(ctx, a.kind, a.objectID)
	if err != nil {
		return fmt.Errorf("purge %s %s: %w", a.kind, a.objectID, err)
	}
	return printJSON(os.Stdout, map[string]any{"deleted": n})
}

func cmdEnsureSchema(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	fs, _ := newFlagSet("ensure-schema", cfg, false)
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, purgeUsage)
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	stores, closeFn, err := cfg.OpenStores(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	return cfg.EnsureSchema(ctx, stores)
}

func cmdTypes() error {
	for _, t := range codec.DefaultRegistry().Types() {
		fmt.Println(t)
	}
	return nil
}

// reportJSON renders a WriteReport with error messages as strings.
func reportJSON(r *fields.WriteReport) map[string]any {
	issues := func(in []fields.Issue) []map[string]string {
		out := make([]map[string]string, 0, len(in))
		for _, i := range in {
			out = append(out, map[string]string{"path": i.Path, "reason": i.Err.Error()})
		}
		return out
	}
	return map[string]any{
		"written":  r.WrittenPaths,
		"deleted":  r.DeletedPaths,
		"skipped":  issues(r.Skipped),
		"warnings": issues(r.Warnings),
	}
}
