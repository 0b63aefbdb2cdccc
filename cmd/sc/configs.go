package main

import (
	"github.com/scott-cotton/cli"

	"github.com/schemacompose/schemacompose/metaschema"
)

const (
	version       = "0.3.0"
	defaultOutput = "composite.schema.json"
)

type MainConfig struct {
	Flat    bool `cli:"name=flat desc='flat naming convention for the template merge'"`
	Version bool `cli:"name=version aliases=V desc='print version and exit'"`
	Color   bool `cli:"name=color desc='force colored diagnostics'"`

	Output string `cli:"name=o aliases=output desc='output file path'"`
	Meta   string `cli:"name=meta desc='meta schema cache file'"`

	Main *cli.Command
}

func newMainConfig() *MainConfig {
	return &MainConfig{
		Output: defaultOutput,
		Meta:   metaschema.DefaultCachePath,
	}
}
