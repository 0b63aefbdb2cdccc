package compose

import (
	"strings"

	"github.com/schemacompose/schemacompose/debug"
	"github.com/schemacompose/schemacompose/ir"
)

// ProcessRoles interprets every $role tag in every definition.  A tag
// holds one name or a list of names; each name is evaluated
// independently against the node it is attached to.
//
// Recognized roles:
//
//   - langProperty: the node must be a property definition without a
//     structural type; the canonical language-generation property
//     keys are copied onto it.
//   - unionType: marks the owning definition as a union container;
//     legal only at the definition root.
//   - unionType(X): declares membership of the current type in union
//     X, appending a oneOf entry to X's container.
//
// Role errors are recorded and processing continues; they gate the
// final write collectively.
func ProcessRoles(ctx *Context) {
	for _, name := range ctx.Defs.Names() {
		processRoles(ctx, name, ctx.Defs.Get(name))
	}
}

func processRoles(ctx *Context, typeName string, root *ir.Node) {
	ir.Walk(root, func(n, parent *ir.Node, key string) bool {
		if n.Type != ir.ObjectType {
			return false
		}
		for _, role := range rolesOf(n) {
			head, arg := roleArg(role)
			switch {
			case role == roleLangProperty:
				applyLangProperty(ctx, typeName, n, parent)
			case role == roleUnionType:
				if parent != nil {
					ctx.Report.Errorf("%s%s: role %s can only be defined at the top of the schema definition",
						typeName, n.Path(), roleUnionType)
				}
			case head == roleUnionType && arg != "":
				declareMembership(ctx, typeName, n, arg)
			default:
				ctx.Report.Errorf("%s%s: unrecognized role %q", typeName, n.Path(), role)
			}
		}
		return false
	})
}

// roleArg splits a parameterized role name, e.g. "unionType(Bar)"
// into ("unionType", "Bar").  A bare name comes back with an empty
// argument.
func roleArg(role string) (string, string) {
	open := strings.IndexByte(role, '(')
	if open < 0 || !strings.HasSuffix(role, ")") {
		return role, ""
	}
	return role[:open], role[open+1 : len(role)-1]
}

func applyLangProperty(ctx *Context, typeName string, n, parent *ir.Node) {
	if parent == nil || parent.Type != ir.ObjectType || parent.ParentField != "properties" {
		ctx.Report.Errorf("%s%s: role %s must be in a property definition",
			typeName, n.Path(), roleLangProperty)
		return
	}
	if n.Get(propType) != nil {
		ctx.Report.Errorf("%s%s: a property with role %s should not have a type",
			typeName, n.Path(), roleLangProperty)
		return
	}
	canon := ctx.canonClone(roleLangProperty)
	if debug.Roles() {
		debug.Logf("%s%s: injecting %s keys %v\n", typeName, n.Path(), roleLangProperty, canon.Keys())
	}
	for i := range canon.Fields {
		n.Set(canon.Fields[i].String, canon.Values[i])
	}
}

// declareMembership appends a oneOf entry for typeName to the union's
// container.  The entry's description comes from the owning document's
// root, wherever the membership tag sits.
func declareMembership(ctx *Context, typeName string, n *ir.Node, union string) {
	target := ctx.Defs.Get(union)
	if target == nil {
		ctx.Report.Errorf("union type %q is not defined", union)
		return
	}
	if !ctx.IsUnion(union) {
		ctx.Report.Errorf("type %q is missing role of %s", union, roleUnionType)
		return
	}
	oneOf := target.Get("oneOf")
	if oneOf == nil {
		oneOf = ir.FromSlice(nil)
		target.Set("oneOf", oneOf)
	}
	if debug.Roles() {
		debug.Logf("union %s <- member %s\n", union, typeName)
	}
	oneOf.Append(ir.FromKeyVals([]ir.KeyVal{
		{Key: "title", Val: ir.FromString(typeName)},
		{Key: "description", Val: ir.FromString(n.Root().GetString("description"))},
		{Key: keyRef, Val: ir.FromString(defsPrefix + typeName)},
	}))
}
