package main

import (
	"context"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/schemacompose/schemacompose/compose"
	"github.com/schemacompose/schemacompose/diag"
	"github.com/schemacompose/schemacompose/ir"
	"github.com/schemacompose/schemacompose/langgen"
	"github.com/schemacompose/schemacompose/loader"
	"github.com/schemacompose/schemacompose/metaschema"
)

// merge runs the pipeline: load and validate every input, run the
// composition passes in order, and write the composite document only
// when no errors were recorded.
func merge(cfg *MainConfig, cc *cli.Context, patterns []string) error {
	rep := reporter(cfg, cc)

	files, err := loader.Discover(patterns)
	if err != nil {
		return fmt.Errorf("%w: %v", cli.ErrUsage, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no input files match %v", cli.ErrUsage, patterns)
	}

	meta, err := metaschema.Load(context.Background(), cfg.Meta, rep)
	if err != nil {
		return err
	}
	ctx := compose.NewContext(rep, meta.Definitions(), meta.ID)

	for _, path := range files {
		rep.Progressf("processing %s", path)
		root, err := loader.Load(path)
		if err != nil {
			rep.Errorf("%s", err)
			continue
		}
		if loader.IsComposite(root) {
			rep.Warnf("skipping %s: document declares a top-level $id", path)
			continue
		}
		name := loader.TypeName(path)
		for _, item := range meta.Validate(root) {
			rep.Errorf("%s%s: %s", name, item.Path, item.Message)
		}
		if err := ctx.Defs.Add(name, root); err != nil {
			rep.Errorf("%s: %s", path, err)
		}
	}

	compose.RewriteRefs(ctx)
	compose.ProcessRoles(ctx)
	compose.AnnotateTitles(ctx)
	compose.ExpandTypeRefs(ctx)
	compose.InjectProperties(ctx)
	compose.SortUnions(ctx)
	doc := compose.Assemble(ctx, cfg.Output)

	if rep.Failed() {
		rep.Errorf("could not merge %s", cfg.Output)
		os.Exit(1)
	}

	if err := write(doc, cfg.Output); err != nil {
		return err
	}
	rep.Progressf("wrote %s", cfg.Output)

	tmplPath, err := langgen.Merge(cfg.Output, files, cfg.Flat, rep)
	if err != nil {
		rep.Errorf("%s", err)
	}
	if tmplPath != "" {
		rep.Progressf("wrote %s", tmplPath)
	}
	if rep.Failed() {
		os.Exit(1)
	}
	return nil
}

func write(doc *ir.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", path, err)
	}
	defer f.Close()
	return ir.EncodeJSON(doc, f, "    ")
}

func reporter(cfg *MainConfig, cc *cli.Context) *diag.Reporter {
	if cfg.Color {
		return diag.NewWithColors(cc.Out, diag.NewColors())
	}
	return diag.New(cc.Out)
}
