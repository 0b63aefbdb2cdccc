// Package ir holds the JSON tree representation shared by every
// composition pass.  Objects keep their fields in insertion order so
// that diagnostics and pre-sort output are reproducible.
package ir

import (
	"encoding/json"
	"slices"
	"strconv"
)

// Node is a JSON value.  Objects carry parallel Fields/Values slices,
// arrays use Values only, scalars use the payload field selected by
// Type.  Parent back-links are maintained by the constructors and by
// the field mutators.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	String string
	Number string
	Bool   bool
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Values = make([]*Node, len(y.Values))
	dst.Fields = make([]*Node, len(y.Fields))
	for i, yv := range y.Values {
		dstI := &Node{}
		yv.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yv.ParentField
		dst.Values[i] = dstI
	}
	for i, yf := range y.Fields {
		dstI := &Node{}
		yf.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yf.String
		dst.Fields[i] = dstI
	}
	dst.String = y.String
	dst.Number = y.Number
	dst.Bool = y.Bool
	return dst
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Number: strconv.FormatInt(v, 10)}
}

func FromFloat(f float64) *Node {
	return &Node{Type: NumberType, Number: strconv.FormatFloat(f, 'g', -1, 64)}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func Null() *Node {
	return &Node{Type: NullType}
}

func NewObject() *Node {
	return &Node{Type: ObjectType}
}

type KeyVal struct {
	Key string
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		kv.Val.Parent = res
		kv.Val.ParentIndex = i
		kv.Val.ParentField = kv.Key
		res.Fields[i] = &Node{
			Parent:      res,
			ParentIndex: i,
			ParentField: kv.Key,
			Type:        StringType,
			String:      kv.Key,
		}
		res.Values[i] = kv.Val
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{Type: ArrayType}
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
		y.ParentField = ""
	}
	return res
}

func FromStrings(vs []string) *Node {
	nodes := make([]*Node, len(vs))
	for i, v := range vs {
		nodes[i] = FromString(v)
	}
	return FromSlice(nodes)
}

// Get returns the value under field, or nil.
func (y *Node) Get(field string) *Node {
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

// GetString returns the string value under field, or "" when the
// field is absent or not a string.
func (y *Node) GetString(field string) string {
	v := y.Get(field)
	if v == nil || v.Type != StringType {
		return ""
	}
	return v.String
}

// Set replaces the value under field, keeping its position, or appends
// a new field.
func (y *Node) Set(field string, v *Node) {
	v.Parent = y
	v.ParentField = field
	for i := range y.Fields {
		if y.Fields[i].String == field {
			v.ParentIndex = i
			y.Values[i] = v
			return
		}
	}
	v.ParentIndex = len(y.Fields)
	y.Fields = append(y.Fields, &Node{
		Parent:      y,
		ParentIndex: v.ParentIndex,
		ParentField: field,
		Type:        StringType,
		String:      field,
	})
	y.Values = append(y.Values, v)
}

// Delete removes field, shifting later fields down.
func (y *Node) Delete(field string) {
	for i := range y.Fields {
		if y.Fields[i].String != field {
			continue
		}
		y.Fields = append(y.Fields[:i], y.Fields[i+1:]...)
		y.Values = append(y.Values[:i], y.Values[i+1:]...)
		for j := i; j < len(y.Fields); j++ {
			y.Fields[j].ParentIndex = j
			y.Values[j].ParentIndex = j
		}
		return
	}
}

// Append adds v to an array node.
func (y *Node) Append(v *Node) {
	v.Parent = y
	v.ParentIndex = len(y.Values)
	v.ParentField = ""
	y.Values = append(y.Values, v)
}

// SortValues reorders an array node's elements by cmp, keeping
// parent indices consistent.
func (y *Node) SortValues(cmp func(a, b *Node) int) {
	slices.SortStableFunc(y.Values, cmp)
	for i, v := range y.Values {
		v.ParentIndex = i
	}
}

// Keys returns the field names in insertion order.
func (y *Node) Keys() []string {
	res := make([]string, len(y.Fields))
	for i, f := range y.Fields {
		res[i] = f.String
	}
	return res
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// Walk traverses the value tree under y in pre-order.  The visitor
// receives the node, its parent container (nil at the root) and the
// field name or array index under which the node was reached.
// Returning true skips descent into that node's children.
func Walk(y *Node, visit func(n, parent *Node, key string) bool) {
	walk(y, nil, "", visit)
}

func walk(y, parent *Node, key string, visit func(n, parent *Node, key string) bool) {
	if visit(y, parent, key) || y.Type.IsLeaf() {
		return
	}
	if y.Type == ObjectType {
		for i := range y.Fields {
			walk(y.Values[i], y, y.Fields[i].String, visit)
		}
		return
	}
	for i, v := range y.Values {
		walk(v, y, strconv.Itoa(i), visit)
	}
}

// ToAny converts the tree to the map[string]any form expected by
// generic JSON consumers.  Object field order is lost.
func (y *Node) ToAny() any {
	switch y.Type {
	case NullType:
		return nil
	case BoolType:
		return y.Bool
	case StringType:
		return y.String
	case NumberType:
		return json.Number(y.Number)
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = v.ToAny()
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i := range y.Fields {
			res[y.Fields[i].String] = y.Values[i].ToAny()
		}
		return res
	}
	return nil
}
