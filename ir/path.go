package ir

import (
	"strconv"
	"strings"
)

// Path returns the slash-separated location of y within its tree,
// e.g. "/properties/color/enum/2".  The root is "/".
func (y *Node) Path() string {
	var segs []string
	for n := y; n.Parent != nil; n = n.Parent {
		if n.Parent.Type == ArrayType {
			segs = append(segs, strconv.Itoa(n.ParentIndex))
			continue
		}
		segs = append(segs, n.ParentField)
	}
	if len(segs) == 0 {
		return "/"
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return "/" + strings.Join(segs, "/")
}
