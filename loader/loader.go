// Package loader discovers input schema files and prepares their
// trees for composition: parse, then structural allOf flattening.
// Everything downstream sees one flattened tree per type name.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/schemacompose/schemacompose/debug"
	"github.com/schemacompose/schemacompose/ir"
)

// Discover expands glob patterns into file paths, preserving pattern
// order and, within a pattern, the glob's lexical order.  Processing
// order equals discovery order, so diagnostics are reproducible.
func Discover(patterns []string) ([]string, error) {
	var res []string
	seen := map[string]bool{}
	for _, pat := range patterns {
		matches, err := filepath.Glob(pat)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pat, err)
		}
		if len(matches) == 0 {
			// a literal path that matched nothing is still an input
			if _, serr := os.Stat(pat); serr == nil {
				matches = []string{pat}
			}
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			res = append(res, m)
		}
	}
	return res, nil
}

// IsComposite reports whether a tree declares a top-level identity
// key, marking it as an already-composed document.  Such files are
// skipped entirely; this is the only guard against re-processing the
// tool's own output.
func IsComposite(root *ir.Node) bool {
	return root.Type == ir.ObjectType && root.Get("$id") != nil
}

// TypeName derives a type name from a path: base name, extension
// stripped.
func TypeName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load reads and parses one input file, accepting YAML alongside
// JSON, and flattens allOf before returning the tree.
func Load(path string) (*ir.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("could not convert %q: %w", path, err)
		}
	}
	root, err := ir.ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if debug.Load() {
		debug.Logf("loaded %s (%s)\n", path, root.Type)
	}
	FlattenAllOf(root)
	return root, nil
}
