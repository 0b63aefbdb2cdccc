package compose

import (
	"github.com/schemacompose/schemacompose/debug"
	"github.com/schemacompose/schemacompose/ir"
)

// extPattern matches extension properties: keys with the reserved
// prefix stay legal on closed objects and are typed as plain strings.
const extPattern = "^_"

// InjectProperties normalizes every non-union definition's property
// set.  The first three properties are always, in order, the type
// discriminator (an enum pinned to the type's own name), the copy
// reference, and the identity property, cloned from the canonical
// meta-schema definitions; the type's own declared properties follow.
// A user property sharing one of those three names keeps the injected
// position but wins the value (last assignment).
//
// Every instance then supports two authoring styles: a lightweight
// reference requiring only copyFrom, or an inline definition
// requiring the originally declared list.
func InjectProperties(ctx *Context) {
	for _, name := range ctx.Defs.Names() {
		if ctx.IsUnion(name) {
			continue
		}
		injectProperties(ctx, name, ctx.Defs.Get(name))
	}
}

func injectProperties(ctx *Context, typeName string, root *ir.Node) {
	if root.Type != ir.ObjectType {
		return
	}
	disc := ctx.canonClone(propType)
	disc.Set("enum", ir.FromStrings([]string{typeName}))

	props := ir.NewObject()
	props.Set(propType, disc)
	props.Set(propCopyFrom, ctx.canonClone(propCopyFrom))
	props.Set(propName, ctx.canonClone(propName))
	if orig := root.Get("properties"); orig != nil && orig.Type == ir.ObjectType {
		for i := range orig.Fields {
			props.Set(orig.Fields[i].String, orig.Values[i])
		}
	}
	root.Set("properties", props)
	root.Set("additionalProperties", ir.FromBool(false))
	root.Set("patternProperties", ir.FromKeyVals([]ir.KeyVal{
		{Key: extPattern, Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: propType, Val: ir.FromString("string")},
		})},
	}))

	origReq := root.Get("required")
	root.Set("required", ir.FromStrings([]string{propType}))
	if origReq == nil || origReq.Type != ir.ArrayType || len(origReq.Values) == 0 {
		return
	}
	if debug.Inject() {
		debug.Logf("%s: required split over copy/inline: %s\n", typeName, debug.Node{Node: origReq})
	}
	root.Set("anyOf", ir.FromSlice([]*ir.Node{
		ir.FromKeyVals([]ir.KeyVal{
			{Key: "required", Val: ir.FromStrings([]string{propCopyFrom})},
		}),
		ir.FromKeyVals([]ir.KeyVal{
			{Key: "required", Val: origReq.Clone()},
		}),
	}))
}
