package compose

import (
	"bytes"
	"testing"

	"github.com/schemacompose/schemacompose/diag"
	"github.com/schemacompose/schemacompose/ir"
)

const testMetaID = "component.meta.schema"

func testCanon(t *testing.T) *ir.Node {
	t.Helper()
	canon, err := ir.ParseJSON([]byte(`{
		"type": {"description": "type tag", "type": "string"},
		"copyFrom": {"description": "copy source", "type": "string"},
		"name": {"description": "instance name", "type": "string"},
		"langProperty": {
			"description": "generated text",
			"oneOf": [{"type": "string"}, {"type": "object"}]
		}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	return canon
}

func testContext(t *testing.T) *Context {
	t.Helper()
	rep := diag.NewWithColors(&bytes.Buffer{}, diag.NoColors())
	return NewContext(rep, testCanon(t), testMetaID)
}

func mustParse(t *testing.T, src string) *ir.Node {
	t.Helper()
	n, err := ir.ParseJSON([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func mustAdd(t *testing.T, ctx *Context, name, src string) *ir.Node {
	t.Helper()
	root := mustParse(t, src)
	if err := ctx.Defs.Add(name, root); err != nil {
		t.Fatal(err)
	}
	return root
}

func errorMessages(ctx *Context) []string {
	var msgs []string
	for _, r := range ctx.Report.Records() {
		if r.Severity == diag.Error {
			msgs = append(msgs, r.Message)
		}
	}
	return msgs
}
