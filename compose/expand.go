package compose

import (
	"github.com/schemacompose/schemacompose/debug"
	"github.com/schemacompose/schemacompose/ir"
)

// ExpandTypeRefs resolves $typeRef keywords into standard fragment
// references.  A reference to a name that was never loaded is a
// cross-type failure: it is reported once per missing name across the
// whole run and marks the run failed.
func ExpandTypeRefs(ctx *Context) {
	for _, name := range ctx.Defs.Names() {
		expandTypeRefs(ctx, ctx.Defs.Get(name))
	}
}

func expandTypeRefs(ctx *Context, root *ir.Node) {
	ir.Walk(root, func(n, parent *ir.Node, key string) bool {
		if n.Type != ir.ObjectType {
			return false
		}
		tr := n.Get(keyTypeRef)
		if tr == nil || tr.Type != ir.StringType {
			return false
		}
		target := tr.String
		if !ctx.Defs.Has(target) {
			if !ctx.missing[target] {
				ctx.missing[target] = true
				ctx.Report.Errorf("missing type %q", target)
			}
			return false
		}
		if debug.Expand() {
			debug.Logf("%s: %s -> %s\n", n.Path(), target, defsPrefix+target)
		}
		n.Delete(keyTypeRef)
		n.Set(keyRef, ir.FromString(defsPrefix+target))
		return false
	})
}
