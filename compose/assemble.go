package compose

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/schemacompose/schemacompose/ir"
)

// Assemble emits the final composite document: a root discriminated
// union over every non-union type plus a definitions map holding all
// types, both alphabetically ordered.  The definitions trees are
// consumed as-is; Assemble performs no further mutation.
func Assemble(ctx *Context, outPath string) *ir.Node {
	names := slices.Clone(ctx.Defs.Names())
	slices.SortStableFunc(names, collator.CompareString)

	oneOf := ir.FromSlice(nil)
	defs := ir.NewObject()
	for _, name := range names {
		root := ctx.Defs.Get(name)
		defs.Set(name, root)
		if ctx.IsUnion(name) {
			continue
		}
		oneOf.Append(ir.FromKeyVals([]ir.KeyVal{
			{Key: "title", Val: ir.FromString(name)},
			{Key: "description", Val: ir.FromString(root.GetString("description"))},
			{Key: keyRef, Val: ir.FromString(defsPrefix + name)},
		}))
	}

	doc := ir.NewObject()
	doc.Set(keyID, ir.FromString(docName(outPath)))
	doc.Set(keySchema, ir.FromString(ctx.MetaID))
	doc.Set(propType, ir.FromString("object"))
	doc.Set("oneOf", oneOf)
	doc.Set("definitions", defs)
	return doc
}

// docName derives the document identity from the output file's base
// name, extension stripped, the same derivation used for type names.
func docName(outPath string) string {
	base := filepath.Base(outPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
