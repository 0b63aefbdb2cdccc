package loader

import (
	"github.com/schemacompose/schemacompose/ir"
)

// FlattenAllOf merges every allOf list into its parent node,
// bottom-up.  Properties maps are merged key-wise, required lists are
// concatenated, and for any other key the parent's own value wins.
// Internal fragment references are left untouched; they are the
// composition engine's concern.
func FlattenAllOf(root *ir.Node) {
	flattenAllOf(root)
}

func flattenAllOf(n *ir.Node) {
	switch n.Type {
	case ir.ArrayType:
		for _, v := range n.Values {
			flattenAllOf(v)
		}
	case ir.ObjectType:
		for _, v := range n.Values {
			flattenAllOf(v)
		}
		allOf := n.Get("allOf")
		if allOf == nil || allOf.Type != ir.ArrayType {
			return
		}
		n.Delete("allOf")
		for _, member := range allOf.Values {
			if member.Type != ir.ObjectType {
				continue
			}
			mergeMember(n, member)
		}
	}
}

func mergeMember(dst, member *ir.Node) {
	for i := range member.Fields {
		key := member.Fields[i].String
		val := member.Values[i]
		cur := dst.Get(key)
		switch {
		case cur == nil:
			dst.Set(key, val.Clone())
		case key == "properties" && cur.Type == ir.ObjectType && val.Type == ir.ObjectType:
			for j := range val.Fields {
				pk := val.Fields[j].String
				if cur.Get(pk) == nil {
					cur.Set(pk, val.Values[j].Clone())
				}
			}
		case key == "required" && cur.Type == ir.ArrayType && val.Type == ir.ArrayType:
			for _, req := range val.Values {
				if !containsString(cur, req.String) {
					cur.Append(req.Clone())
				}
			}
		}
	}
}

func containsString(arr *ir.Node, s string) bool {
	for _, v := range arr.Values {
		if v.Type == ir.StringType && v.String == s {
			return true
		}
	}
	return false
}
