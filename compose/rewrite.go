package compose

import (
	"strings"

	"github.com/schemacompose/schemacompose/debug"
	"github.com/schemacompose/schemacompose/ir"
)

// RewriteRefs namespaces every internal fragment reference inside
// each type's own tree.  Each source schema was authored as if it
// owned the document root, so after flattening, same-named internal
// pointers from different files would collide; scoping them under the
// owning type's nested definitions keeps them unique.
//
// Runs once, before any pass that depends on reference shape.
// Re-running it on already-namespaced output is unsupported.
func RewriteRefs(ctx *Context) {
	for _, name := range ctx.Defs.Names() {
		rewriteRefs(name, ctx.Defs.Get(name))
	}
}

func rewriteRefs(typeName string, root *ir.Node) {
	ir.Walk(root, func(n, parent *ir.Node, key string) bool {
		if n.Type != ir.ObjectType {
			return false
		}
		ref := n.Get(keyRef)
		if ref == nil || ref.Type != ir.StringType {
			return false
		}
		if !strings.HasPrefix(ref.String, defsPrefix) {
			return false
		}
		rest := ref.String[len(defsPrefix):]
		scoped := defsPrefix + typeName + "/definitions/" + rest
		if debug.Rewrite() {
			debug.Logf("%s: %s -> %s\n", typeName, ref.String, scoped)
		}
		ref.String = scoped
		return false
	})
}
