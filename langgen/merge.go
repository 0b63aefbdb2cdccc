// Package langgen is the downstream language-generation merge step.
// Its only contract with the composition engine is the written
// composite schema, consumed as a lookup table of valid type names.
package langgen

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/schemacompose/schemacompose/diag"
	"github.com/schemacompose/schemacompose/ir"
)

const templateSuffix = ".template.json"

// Merge discovers companion template files next to the inputs, drops
// (with a warning) any naming a type absent from the composite
// schema, and writes the rest as one document beside the composite.
// The flat flag selects the naming convention: bare type-name keys,
// or keys grouped by source directory.  Groups are keyed by directory
// base name, falling back to the full path when two directories share
// a base.  Returns the written path, or "" when there was nothing to
// merge.
func Merge(compositePath string, inputs []string, flat bool, rep *diag.Reporter) (string, error) {
	data, err := os.ReadFile(compositePath)
	if err != nil {
		return "", fmt.Errorf("could not read composite schema: %w", err)
	}
	doc, err := ir.ParseJSON(data)
	if err != nil {
		return "", fmt.Errorf("composite schema: %w", err)
	}
	defs := doc.Get("definitions")
	if defs == nil || defs.Type != ir.ObjectType {
		return "", fmt.Errorf("composite schema has no definitions")
	}

	valid := map[string]bool{}
	for _, name := range defs.Keys() {
		valid[name] = true
	}

	merged := ir.NewObject()
	dirs := inputDirs(inputs)
	keys := groupKeys(dirs)
	for _, dir := range dirs {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+templateSuffix))
		if err != nil {
			return "", err
		}
		for _, path := range matches {
			name := strings.TrimSuffix(filepath.Base(path), templateSuffix)
			if !valid[name] {
				rep.Warnf("template %s names unknown type %q", path, name)
				continue
			}
			tmpl, err := load(path)
			if err != nil {
				rep.Errorf("%s", err)
				continue
			}
			if flat {
				merged.Set(name, tmpl)
				continue
			}
			group := merged.Get(keys[dir])
			if group == nil {
				group = ir.NewObject()
				merged.Set(keys[dir], group)
			}
			group.Set(name, tmpl)
		}
	}
	if len(merged.Fields) == 0 {
		return "", nil
	}

	outPath := strings.TrimSuffix(compositePath, filepath.Ext(compositePath)) + ".templates.json"
	f, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := ir.EncodeJSON(sortFields(merged), f, "    "); err != nil {
		return "", err
	}
	return outPath, nil
}

func load(path string) (*ir.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read template %q: %w", path, err)
	}
	tmpl, err := ir.ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return tmpl, nil
}

func inputDirs(inputs []string) []string {
	var dirs []string
	seen := map[string]bool{}
	for _, in := range inputs {
		dir := filepath.Dir(in)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	return dirs
}

// groupKeys assigns each directory its nested-mode group key: the
// base name when no other directory shares it, the cleaned full path
// otherwise.
func groupKeys(dirs []string) map[string]string {
	byBase := map[string][]string{}
	for _, dir := range dirs {
		byBase[filepath.Base(dir)] = append(byBase[filepath.Base(dir)], dir)
	}
	keys := make(map[string]string, len(dirs))
	for base, group := range byBase {
		if len(group) == 1 {
			keys[group[0]] = base
			continue
		}
		for _, dir := range group {
			keys[dir] = filepath.ToSlash(filepath.Clean(dir))
		}
	}
	return keys
}

func sortFields(obj *ir.Node) *ir.Node {
	keys := obj.Keys()
	slices.Sort(keys)
	res := ir.NewObject()
	for _, k := range keys {
		v := obj.Get(k)
		if v.Type == ir.ObjectType {
			v = sortFields(v)
		}
		res.Set(k, v)
	}
	return res
}
