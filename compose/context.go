// Package compose implements the schema composition passes that turn
// independently authored component-type schemas into one composite
// document.  Passes run strictly in order over a shared Context; each
// assumes the invariants established by the previous one.
package compose

import (
	"fmt"

	"github.com/schemacompose/schemacompose/diag"
	"github.com/schemacompose/schemacompose/ir"
)

const (
	// extension keywords
	keyRole    = "$role"
	keyTypeRef = "$typeRef"
	keyID      = "$id"
	keySchema  = "$schema"
	keyRef     = "$ref"

	roleLangProperty = "langProperty"
	roleUnionType    = "unionType"

	// injected standard properties, in order
	propType     = "type"
	propCopyFrom = "copyFrom"
	propName     = "name"

	defsPrefix = "#/definitions/"
)

// Definitions maps type names to their schema roots.  Iteration via
// Names follows insertion order, which is source-file discovery
// order, so pre-sort output and diagnostics are reproducible.
type Definitions struct {
	names  []string
	byName map[string]*ir.Node
}

func NewDefinitions() *Definitions {
	return &Definitions{byName: map[string]*ir.Node{}}
}

func (d *Definitions) Add(name string, root *ir.Node) error {
	if _, exists := d.byName[name]; exists {
		return fmt.Errorf("type %q already defined", name)
	}
	d.names = append(d.names, name)
	d.byName[name] = root
	return nil
}

func (d *Definitions) Get(name string) *ir.Node {
	return d.byName[name]
}

func (d *Definitions) Has(name string) bool {
	_, ok := d.byName[name]
	return ok
}

func (d *Definitions) Names() []string {
	return d.names
}

func (d *Definitions) Len() int {
	return len(d.names)
}

// Context carries the state shared by all passes: the definitions
// map, the diagnostics reporter, the canonical meta-schema
// definitions consumed by RoleProcessor and PropertyInjector, and the
// deduplicating missing-type set.  There is no ambient global state;
// one Context is owned by one pipeline execution.
type Context struct {
	Defs   *Definitions
	Report *diag.Reporter

	// Canon is the umbrella meta-schema's definitions object.
	Canon *ir.Node

	// MetaID is the umbrella meta-schema's identity, referenced by
	// the assembled document's dialect key.
	MetaID string

	missing map[string]bool
}

func NewContext(rep *diag.Reporter, canon *ir.Node, metaID string) *Context {
	return &Context{
		Defs:    NewDefinitions(),
		Report:  rep,
		Canon:   canon,
		MetaID:  metaID,
		missing: map[string]bool{},
	}
}

// IsUnion reports whether the named type's root carries the bare
// unionType role.
func (ctx *Context) IsUnion(name string) bool {
	root := ctx.Defs.Get(name)
	if root == nil || root.Type != ir.ObjectType {
		return false
	}
	for _, r := range rolesOf(root) {
		if r == roleUnionType {
			return true
		}
	}
	return false
}

// canonClone returns a copy of the named canonical meta-schema
// definition.  The embedded base template guarantees the entries the
// passes rely on, so a miss is an internal error.
func (ctx *Context) canonClone(name string) *ir.Node {
	def := ctx.Canon.Get(name)
	if def == nil {
		panic(fmt.Sprintf("meta schema has no definition %q", name))
	}
	return def.Clone()
}

// rolesOf returns the role names attached to an object node.  The
// role key holds either a single name or a list of names; each is
// evaluated independently by the role pass.
func rolesOf(n *ir.Node) []string {
	role := n.Get(keyRole)
	if role == nil {
		return nil
	}
	switch role.Type {
	case ir.StringType:
		return []string{role.String}
	case ir.ArrayType:
		res := make([]string, 0, len(role.Values))
		for _, v := range role.Values {
			if v.Type == ir.StringType {
				res = append(res, v.String)
			}
		}
		return res
	}
	return nil
}
