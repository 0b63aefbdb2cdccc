package compose

import (
	"github.com/schemacompose/schemacompose/ir"
)

// AnnotateTitles back-fills missing titles on oneOf branches from
// their structural type.  Downstream consumers key off title for
// human-readable discrimination, and titles must be present before
// the union sort.
func AnnotateTitles(ctx *Context) {
	for _, name := range ctx.Defs.Names() {
		ir.Walk(ctx.Defs.Get(name), func(n, parent *ir.Node, key string) bool {
			if n.Type != ir.ObjectType {
				return false
			}
			oneOf := n.Get("oneOf")
			if oneOf == nil || oneOf.Type != ir.ArrayType {
				return false
			}
			for _, entry := range oneOf.Values {
				if entry.Type != ir.ObjectType {
					continue
				}
				typ := entry.Get(propType)
				if typ == nil || typ.Type != ir.StringType {
					continue
				}
				if entry.Get("title") != nil {
					continue
				}
				entry.Set("title", ir.FromString(typ.String))
			}
			return false
		})
	}
}
