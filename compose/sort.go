package compose

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/schemacompose/schemacompose/ir"
)

// collator provides the locale-aware lexicographic order used for
// union members and the assembled document, keeping output diff-stable
// regardless of source-file discovery order.
var collator = collate.New(language.Und)

// SortUnions deterministically orders each union container's member
// list by title.
func SortUnions(ctx *Context) {
	for _, name := range ctx.Defs.Names() {
		if !ctx.IsUnion(name) {
			continue
		}
		oneOf := ctx.Defs.Get(name).Get("oneOf")
		if oneOf == nil || oneOf.Type != ir.ArrayType {
			continue
		}
		oneOf.SortValues(func(a, b *ir.Node) int {
			return collator.CompareString(a.GetString("title"), b.GetString("title"))
		})
	}
}
