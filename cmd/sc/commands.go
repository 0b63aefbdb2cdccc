package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := newMainConfig()
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "sc").
		WithSynopsis("sc [opts] <schema-globs...>").
		WithDescription(scDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return scMain(cfg, cc, args)
		})
}

func scMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Version {
		fmt.Fprintln(cc.Out, version)
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: at least one input schema pattern is required", cli.ErrUsage)
	}
	return merge(cfg, cc, args)
}

const scDescription = `sc composes independently authored component type schemas
into one composite schema document.

Each input file defines one component type, named after the file's
base name.  Types may declare union containers and union membership
with the $role keyword and reference each other by name with
$typeRef; sc namespaces internal references, resolves unions and
type references, injects the standard instance properties, and
writes a single document a downstream loader can use to validate
and discriminate polymorphic configuration objects.

Inputs are validated against an umbrella meta schema, which is
cached locally and synthesized on first use from the canonical meta
schema.  The composite document is only written when the run
recorded no errors.  Companion <Type>.template.json files found
next to the inputs are merged beside the output.`
